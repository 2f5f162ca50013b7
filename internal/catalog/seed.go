package catalog

import (
	"os"

	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Products []Product `yaml:"products"`
}

// LoadSeed reads a catalog seed file. Callers fall back to DefaultProducts
// when the file is missing or malformed.
func LoadSeed(path string) ([]Product, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	return f.Products, nil
}

func ptrFloat(v float64) *float64 { return &v }

// DefaultProducts is the built-in sample catalog used when no seed file is
// configured.
func DefaultProducts() []Product {
	return []Product{
		{
			ID:          "1",
			Name:        "Michelin Pilot Sport 4",
			Description: "High performance summer tire with excellent wet and dry grip",
			Price:       189.99,
			Category:    "Performance",
			Brand:       "Michelin",
			Images:      []string{"/products/pilot-sport-4.jpg"},
			Stock:       24,
			Rating:      4.8,
			ReviewCount: 312,
			Features:    []string{"Summer compound", "225/45R17", "Wet grip class A"},
			Specifications: map[string]string{
				"width":       "225",
				"aspectRatio": "45",
				"rimDiameter": "17",
				"loadIndex":   "94",
			},
			CreatedAt: "2024-03-12T09:00:00Z",
			UpdatedAt: "2024-03-12T09:00:00Z",
		},
		{
			ID:            "2",
			Name:          "Bridgestone Turanza T005",
			Description:   "Touring tire tuned for comfort and long tread life",
			Price:         142.50,
			OriginalPrice: ptrFloat(164.99),
			Category:      "Touring",
			Brand:         "Bridgestone",
			Images:        []string{"/products/turanza-t005.jpg"},
			Stock:         40,
			Rating:        4.5,
			ReviewCount:   201,
			Features:      []string{"All-season", "205/55R16", "Low rolling resistance"},
			CreatedAt:     "2024-05-02T09:00:00Z",
			UpdatedAt:     "2024-05-02T09:00:00Z",
		},
		{
			ID:          "3",
			Name:        "Goodyear Wrangler AT",
			Description: "All-terrain tire for SUVs and light trucks",
			Price:       210.00,
			Category:    "SUV & Truck",
			Brand:       "Goodyear",
			Images:      []string{"/products/wrangler-at.jpg"},
			Stock:       12,
			Rating:      4.3,
			ReviewCount: 98,
			Features:    []string{"All-terrain", "265/70R16", "Reinforced sidewall"},
			CreatedAt:   "2024-01-20T09:00:00Z",
			UpdatedAt:   "2024-01-20T09:00:00Z",
		},
		{
			ID:            "4",
			Name:          "Continental WinterContact TS 870",
			Description:   "Winter tire with strong snow traction and short braking distances",
			Price:         133.25,
			OriginalPrice: ptrFloat(155.00),
			Category:      "Winter",
			Brand:         "Continental",
			Images:        []string{"/products/wintercontact-ts870.jpg"},
			Stock:         0,
			Rating:        4.7,
			ReviewCount:   156,
			Features:      []string{"Winter compound", "195/65R15", "3PMSF certified"},
			CreatedAt:     "2023-11-05T09:00:00Z",
			UpdatedAt:     "2024-02-14T09:00:00Z",
		},
		{
			ID:          "5",
			Name:        "Pirelli Cinturato P7",
			Description: "Eco-oriented touring tire balancing efficiency and handling",
			Price:       151.75,
			Category:    "Touring",
			Brand:       "Pirelli",
			Images:      []string{"/products/cinturato-p7.jpg"},
			Stock:       31,
			Rating:      4.4,
			ReviewCount: 187,
			Features:    []string{"All-season", "225/50R17", "Run-flat available"},
			CreatedAt:   "2024-06-18T09:00:00Z",
			UpdatedAt:   "2024-06-18T09:00:00Z",
		},
		{
			ID:          "6",
			Name:        "Hankook Ventus Prime 4",
			Description: "Mid-range summer tire with confident handling in the rain",
			Price:       98.40,
			Category:    "Performance",
			Brand:       "Hankook",
			Images:      []string{"/products/ventus-prime-4.jpg"},
			Stock:       55,
			Rating:      4.1,
			ReviewCount: 74,
			Features:    []string{"Summer compound", "215/55R17"},
			CreatedAt:   "2024-04-09T09:00:00Z",
			UpdatedAt:   "2024-04-09T09:00:00Z",
		},
	}
}
