package config

import "os"

// Config holds the runtime settings for the storefront service. Values come
// from the environment so the same binary works in dev and deployed setups.
type Config struct {
	Addr        string
	JWTSecret   string
	StoragePath string
	SeedPath    string
	DatabaseURL string
}

func Load() Config {
	return Config{
		Addr:        getenv("TIRE_SHOP_ADDR", ":8080"),
		JWTSecret:   getenv("JWT_SECRET", "tire-shop-dev-secret"),
		StoragePath: getenv("TIRE_SHOP_DATA", "./data/store.json"),
		SeedPath:    getenv("TIRE_SHOP_SEED", "./data/catalog.yaml"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
