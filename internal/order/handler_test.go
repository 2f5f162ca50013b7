package order

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/treadmart/tire-shop-backend/internal/catalog"
	"github.com/treadmart/tire-shop-backend/internal/cart"
	"github.com/treadmart/tire-shop-backend/internal/storage"
)

// fakeAuth injects a jwt token into locals from test headers, the same trick
// the session tests use to avoid the full middleware stack.
func fakeAuth(c *fiber.Ctx) error {
	if id := c.Get("X-User-ID"); id != "" {
		claims := jwt.MapClaims{"user_id": id, "email": c.Get("X-User-Email"), "role": "user"}
		c.Locals("user", &jwt.Token{Claims: claims})
	}
	return c.Next()
}

func makeOrderApp(t *testing.T) (*fiber.App, *cart.Engine, *Service) {
	t.Helper()

	engine := cart.NewEngine(storage.Open(filepath.Join(t.TempDir(), "store.json")))
	service := NewService(NewInMemoryRepository(SampleOrders()))
	service.SetProcessingDelay(nil)
	handler := NewHandler(service, engine)

	app := fiber.New()
	app.Use(fakeAuth)
	handler.RegisterProtectedRoutes(app)
	handler.RegisterAdminRoutes(app.Group("/admin"))
	return app, engine, service
}

func request(app *fiber.App, method, target, user, body string) (int, string) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set("X-User-ID", user)
	}
	res, _ := app.Test(req)
	raw, _ := io.ReadAll(res.Body)
	return res.StatusCode, string(raw)
}

const validCheckout = `{"shippingAddress":{"label":"Home","street":"10 Elm St","city":"Austin","state":"TX","postalCode":"78701","country":"USA"},"paymentMethod":"card"}`

func TestCheckoutRequiresAuth(t *testing.T) {
	app, _, _ := makeOrderApp(t)
	code, _ := request(app, "POST", "/checkout", "", validCheckout)
	if code != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without auth, got %d", code)
	}
}

func TestCheckoutValidation(t *testing.T) {
	app, engine, _ := makeOrderApp(t)
	engine.Add(catalog.Product{ID: "1", Name: "Pilot Sport 4", Price: 189.99, Stock: 5}, 1, cart.Options{})

	code, body := request(app, "POST", "/checkout", "u-9", `{"shippingAddress":{"street":"","city":"Austin"},"paymentMethod":"check"}`)
	if code != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for invalid checkout, got %d", code)
	}
	for _, field := range []string{"street", "state", "postalCode", "paymentMethod"} {
		if !strings.Contains(body, field) {
			t.Fatalf("expected %q error, got %s", field, body)
		}
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	app, _, _ := makeOrderApp(t)
	code, body := request(app, "POST", "/checkout", "u-9", validCheckout)
	if code != fiber.StatusBadRequest || !strings.Contains(body, "empty") {
		t.Fatalf("expected empty-cart rejection, got %d: %s", code, body)
	}
}

func TestCheckoutPlacesOrderAndClearsCart(t *testing.T) {
	app, engine, _ := makeOrderApp(t)
	engine.Add(catalog.Product{ID: "1", Name: "Pilot Sport 4", Price: 20.00, Stock: 5}, 2, cart.Options{Size: "225/45R17"})

	code, body := request(app, "POST", "/checkout", "u-9", validCheckout)
	if code != fiber.StatusCreated {
		t.Fatalf("expected 201 for checkout, got %d: %s", code, body)
	}

	var placed Order
	if err := json.Unmarshal([]byte(body), &placed); err != nil {
		t.Fatalf("invalid order response: %v", err)
	}
	if placed.Status != StatusPending {
		t.Fatalf("new orders start pending, got %q", placed.Status)
	}
	if placed.PaymentStatus != PaymentPaid {
		t.Fatalf("simulated card payment should be paid, got %q", placed.PaymentStatus)
	}
	// subtotal 40 -> shipping 9.99, tax 3.20, total 53.19
	if got := placed.TotalAmount; got < 53.18 || got > 53.20 {
		t.Fatalf("expected server-side total about 53.19, got %v", got)
	}
	if len(placed.Items) != 1 || placed.Items[0].UnitPrice != 20.00 || placed.Items[0].Size != "225/45R17" {
		t.Fatalf("expected snapshot items, got %+v", placed.Items)
	}
	if engine.ItemCount() != 0 {
		t.Fatalf("checkout must clear the cart")
	}
}

func TestListOwnOrdersNewestFirst(t *testing.T) {
	app, _, _ := makeOrderApp(t)

	code, body := request(app, "GET", "/orders", "u-1001", "")
	if code != fiber.StatusOK {
		t.Fatalf("expected 200 for orders list, got %d", code)
	}
	var orders []Order
	if err := json.Unmarshal([]byte(body), &orders); err != nil {
		t.Fatalf("invalid orders response: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected u-1001's 2 seeded orders, got %d", len(orders))
	}
	if orders[0].CreatedAt < orders[1].CreatedAt {
		t.Fatalf("orders must be newest first")
	}
	for _, o := range orders {
		if o.UserID != "u-1001" {
			t.Fatalf("other users' orders leaked: %+v", o)
		}
	}
}

func TestAdminOrderListingAndCounts(t *testing.T) {
	app, _, _ := makeOrderApp(t)

	code, body := request(app, "GET", "/admin/orders?status=shipped", "", "")
	if code != fiber.StatusOK {
		t.Fatalf("expected 200 for admin listing, got %d", code)
	}
	var parsed struct {
		Orders []Order        `json:"orders"`
		Counts map[Status]int `json:"counts"`
	}
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		t.Fatalf("invalid admin response: %v", err)
	}
	if len(parsed.Orders) != 1 || parsed.Orders[0].Status != StatusShipped {
		t.Fatalf("status filter failed: %+v", parsed.Orders)
	}
	if parsed.Counts[StatusPending] != 1 || parsed.Counts[StatusDelivered] != 1 {
		t.Fatalf("unexpected counts: %+v", parsed.Counts)
	}

	// text search over item names
	code, body = request(app, "GET", "/admin/orders?q=turanza", "", "")
	if code != fiber.StatusOK || !strings.Contains(body, "ord-1002") {
		t.Fatalf("text search failed: %d %s", code, body)
	}

	code, _ = request(app, "GET", "/admin/orders?status=bogus", "", "")
	if code != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status filter, got %d", code)
	}
}

func TestAdminStatusUpdate(t *testing.T) {
	app, _, service := makeOrderApp(t)

	// pending -> processing is legal
	code, body := request(app, "PATCH", "/admin/orders/ord-1003/status", "", `{"status":"processing"}`)
	if code != fiber.StatusOK {
		t.Fatalf("expected 200 for legal transition, got %d: %s", code, body)
	}

	// processing -> shipped assigns a tracking number
	code, body = request(app, "PATCH", "/admin/orders/ord-1003/status", "", `{"status":"shipped"}`)
	if code != fiber.StatusOK {
		t.Fatalf("expected 200 for ship transition, got %d", code)
	}
	if !strings.Contains(body, "TRK-") {
		t.Fatalf("shipping must assign a tracking number: %s", body)
	}

	// shipped -> pending is illegal
	code, _ = request(app, "PATCH", "/admin/orders/ord-1003/status", "", `{"status":"pending"}`)
	if code != fiber.StatusConflict {
		t.Fatalf("expected 409 for illegal transition, got %d", code)
	}

	// unknown order
	code, _ = request(app, "PATCH", "/admin/orders/nope/status", "", `{"status":"processing"}`)
	if code != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown order, got %d", code)
	}

	// delivering a cod order marks it paid
	if _, err := service.UpdateStatus("ord-1002", StatusDelivered); err != nil {
		t.Fatalf("deliver failed: %v", err)
	}
	o, _ := service.repo.GetByID("ord-1002")
	if o.PaymentStatus != PaymentPaid {
		t.Fatalf("cod order must be paid on delivery, got %q", o.PaymentStatus)
	}
}
