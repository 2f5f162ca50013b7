package contact

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func makeContactApp() (*fiber.App, *Handler) {
	handler := NewHandler()
	app := fiber.New()
	handler.RegisterPublicRoutes(app)
	return app, handler
}

func postContact(app *fiber.App, body string) (int, string) {
	req := httptest.NewRequest("POST", "/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	raw, _ := io.ReadAll(res.Body)
	return res.StatusCode, string(raw)
}

func TestContactSubmit(t *testing.T) {
	app, handler := makeContactApp()

	code, _ := postContact(app, `{"name":"Maya","email":"maya@example.com","subject":"Fitment","message":"Do you stock 225/45R17?"}`)
	if code != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", code)
	}
	got := handler.Received()
	if len(got) != 1 || got[0].Subject != "Fitment" {
		t.Fatalf("expected one delivered message, got %+v", got)
	}
}

func TestContactValidation(t *testing.T) {
	app, handler := makeContactApp()

	code, body := postContact(app, `{"email":"maya@example.com"}`)
	if code != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	for _, field := range []string{"name", "message"} {
		if !strings.Contains(body, field) {
			t.Fatalf("expected %q error, got %s", field, body)
		}
	}
	if len(handler.Received()) != 0 {
		t.Fatal("invalid submission must not be delivered")
	}
}

func TestContactCustomDeliver(t *testing.T) {
	app, handler := makeContactApp()

	var delivered []Message
	handler.SetDeliver(func(m Message) { delivered = append(delivered, m) })

	postContact(app, `{"name":"Liam","email":"liam@example.com","message":"Order never arrived"}`)
	if len(delivered) != 1 || len(handler.Received()) != 0 {
		t.Fatalf("expected custom hook to receive the message, got %d/%d", len(delivered), len(handler.Received()))
	}
}
