package catalog

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func makeAppWithCatalogHandler() (*fiber.App, *Service) {
	repo := NewInMemoryRepository(DefaultProducts())
	service := NewService(repo)
	handler := NewHandler(service)

	app := fiber.New()
	handler.RegisterPublicRoutes(app)
	handler.RegisterAdminRoutes(app.Group("/admin"))
	return app, service
}

func TestShopSearchAndEmptyState(t *testing.T) {
	app, _ := makeAppWithCatalogHandler()

	res, err := app.Test(httptest.NewRequest("GET", "/shop?q=michelin&sort=price-desc", nil))
	if err != nil {
		t.Fatalf("shop request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for shop search, got %d", res.StatusCode)
	}

	var body struct {
		Products []Product `json:"products"`
		Total    int       `json:"total"`
	}
	raw, _ := io.ReadAll(res.Body)
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("invalid shop response %s: %v", raw, err)
	}
	if body.Total != 1 || len(body.Products) != 1 {
		t.Fatalf("expected exactly one michelin product, got %s", raw)
	}
	if body.Products[0].Brand != "Michelin" {
		t.Fatalf("unexpected brand %q", body.Products[0].Brand)
	}

	// no matches must still be a 200 with an explicit empty result
	res2, _ := app.Test(httptest.NewRequest("GET", "/shop?q=no-such-tire", nil))
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for empty search, got %d", res2.StatusCode)
	}
	raw2, _ := io.ReadAll(res2.Body)
	if !strings.Contains(string(raw2), `"total":0`) {
		t.Fatalf("expected empty result payload, got %s", raw2)
	}
}

func TestShopRejectsBadPriceBound(t *testing.T) {
	app, _ := makeAppWithCatalogHandler()
	res, _ := app.Test(httptest.NewRequest("GET", "/shop?minPrice=abc", nil))
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for bad minPrice, got %d", res.StatusCode)
	}
}

func TestGetProduct(t *testing.T) {
	app, _ := makeAppWithCatalogHandler()

	res, _ := app.Test(httptest.NewRequest("GET", "/product/1", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for known product, got %d", res.StatusCode)
	}
	raw, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(raw), "Pilot Sport") {
		t.Fatalf("unexpected product body: %s", raw)
	}

	res2, _ := app.Test(httptest.NewRequest("GET", "/product/does-not-exist", nil))
	if res2.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %d", res2.StatusCode)
	}
}

func TestAdminProductCRUD(t *testing.T) {
	app, service := makeAppWithCatalogHandler()

	// invalid payload is rejected with field errors
	bad := httptest.NewRequest("POST", "/admin/products", strings.NewReader(`{"name":"","price":0,"rating":9}`))
	bad.Header.Set("Content-Type", "application/json")
	resBad, _ := app.Test(bad)
	if resBad.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for invalid product, got %d", resBad.StatusCode)
	}
	rawBad, _ := io.ReadAll(resBad.Body)
	for _, field := range []string{"name", "price", "rating"} {
		if !strings.Contains(string(rawBad), field) {
			t.Fatalf("expected %q validation error, got %s", field, rawBad)
		}
	}

	// create
	create := httptest.NewRequest("POST", "/admin/products", strings.NewReader(
		`{"name":"Nokian Hakkapeliitta R5","price":175.5,"category":"Winter","brand":"Nokian","stock":10,"rating":4.6}`))
	create.Header.Set("Content-Type", "application/json")
	resCreate, _ := app.Test(create)
	if resCreate.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201 for create, got %d", resCreate.StatusCode)
	}
	var created Product
	rawCreated, _ := io.ReadAll(resCreate.Body)
	if err := json.Unmarshal(rawCreated, &created); err != nil {
		t.Fatalf("invalid create response: %v", err)
	}
	if created.ID == "" || created.CreatedAt == "" {
		t.Fatalf("create must assign id and timestamps: %s", rawCreated)
	}

	// update
	update := httptest.NewRequest("PUT", "/admin/products/"+created.ID, strings.NewReader(
		`{"name":"Nokian Hakkapeliitta R5","price":169.0,"category":"Winter","brand":"Nokian","stock":8,"rating":4.6}`))
	update.Header.Set("Content-Type", "application/json")
	resUpdate, _ := app.Test(update)
	if resUpdate.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for update, got %d", resUpdate.StatusCode)
	}
	got, err := service.GetByID(created.ID)
	if err != nil {
		t.Fatalf("updated product missing: %v", err)
	}
	if got.Price != 169.0 || got.Stock != 8 {
		t.Fatalf("update not applied: %+v", got)
	}

	// delete
	resDelete, _ := app.Test(httptest.NewRequest("DELETE", "/admin/products/"+created.ID, nil))
	if resDelete.StatusCode != fiber.StatusNoContent {
		t.Fatalf("expected 204 for delete, got %d", resDelete.StatusCode)
	}
	if _, err := service.GetByID(created.ID); err != ErrNotFound {
		t.Fatalf("expected product gone after delete, got %v", err)
	}

	// deleting again is a 404, not a crash
	resDelete2, _ := app.Test(httptest.NewRequest("DELETE", "/admin/products/"+created.ID, nil))
	if resDelete2.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for double delete, got %d", resDelete2.StatusCode)
	}
}
