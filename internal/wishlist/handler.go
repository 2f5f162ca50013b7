package wishlist

import (
	"github.com/gofiber/fiber/v2"
	"github.com/treadmart/tire-shop-backend/internal/catalog"
	"github.com/treadmart/tire-shop-backend/internal/session"
)

type Handler struct {
	repo    *Repository
	catalog *catalog.Service
}

func NewHandler(repo *Repository, catalogService *catalog.Service) *Handler {
	return &Handler{repo: repo, catalog: catalogService}
}

func (h *Handler) RegisterProtectedRoutes(app fiber.Router) {
	app.Get("/wishlist", h.list)
	app.Post("/wishlist", h.add)
	app.Delete("/wishlist/:productId", h.remove)
}

// listItem pairs an entry with its resolved product.
type listItem struct {
	Entry
	Product catalog.Product `json:"product"`
}

func (h *Handler) list(c *fiber.Ctx) error {
	user, err := session.UserFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	entries := h.repo.List(user.ID)
	items := make([]listItem, 0, len(entries))
	for _, e := range entries {
		p, err := h.catalog.GetByID(e.ProductID)
		if err != nil {
			// product was deleted from the catalog; skip the stale entry
			continue
		}
		items = append(items, listItem{Entry: e, Product: p})
	}
	return c.JSON(items)
}

type addRequest struct {
	ProductID string `json:"productId"`
}

func (h *Handler) add(c *fiber.Ctx) error {
	user, err := session.UserFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(addRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "productId is required"})
	}
	if _, err := h.catalog.GetByID(payload.ProductID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	}

	entry, err := h.repo.Add(user.ID, payload.ProductID)
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "product already in wishlist"})
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (h *Handler) remove(c *fiber.Ctx) error {
	user, err := session.UserFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	if err := h.repo.Remove(user.ID, c.Params("productId")); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not in wishlist"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
