package cart

import (
	"github.com/gofiber/fiber/v2"
	"github.com/treadmart/tire-shop-backend/internal/catalog"
	"github.com/treadmart/tire-shop-backend/internal/pricing"
)

// Handler exposes the cart over HTTP. It resolves products through the
// catalog service so lines always carry a full product snapshot.
type Handler struct {
	engine  *Engine
	catalog *catalog.Service
}

func NewHandler(engine *Engine, catalogService *catalog.Service) *Handler {
	return &Handler{engine: engine, catalog: catalogService}
}

func (h *Handler) RegisterProtectedRoutes(app fiber.Router) {
	app.Get("/cart", h.getCart)
	app.Post("/cart", h.addItem)
	app.Patch("/cart/:lineId", h.setQuantity)
	app.Delete("/cart/:lineId", h.removeItem)
	app.Delete("/cart", h.clear)
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity,omitempty"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	return c.JSON(h.cartView())
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	payload := new(addItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "productId is required"})
	}
	if payload.Quantity == 0 {
		payload.Quantity = 1
	}
	if payload.Quantity < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "quantity must be positive"})
	}

	product, err := h.catalog.GetByID(payload.ProductID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	}

	// the engine itself does not bound quantity by stock; enforce it here
	opts := Options{Size: payload.Size, Color: payload.Color}
	if h.engine.QuantityOf(product.ID, opts)+payload.Quantity > product.Stock {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "insufficient stock"})
	}

	h.engine.Add(product, payload.Quantity, opts)
	return c.Status(fiber.StatusOK).JSON(h.cartView())
}

func (h *Handler) setQuantity(c *fiber.Ctx) error {
	payload := new(setQuantityRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	h.engine.SetQuantity(c.Params("lineId"), payload.Quantity)
	return c.JSON(h.cartView())
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	h.engine.Remove(c.Params("lineId"))
	return c.JSON(h.cartView())
}

func (h *Handler) clear(c *fiber.Ctx) error {
	h.engine.Clear()
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) cartView() fiber.Map {
	subtotal := h.engine.Subtotal()
	return fiber.Map{
		"items":                 h.engine.Lines(),
		"itemCount":             h.engine.ItemCount(),
		"quote":                 pricing.QuoteFor(subtotal),
		"freeShippingRemainder": pricing.FreeShippingRemainder(subtotal),
	}
}
