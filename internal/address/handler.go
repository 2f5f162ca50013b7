package address

import (
	"github.com/gofiber/fiber/v2"
	"github.com/treadmart/tire-shop-backend/internal/session"
)

// Handler exposes the address book under /profile/addresses. All routes are
// protected; the owner comes from the session token.
type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterProtectedRoutes(app fiber.Router) {
	app.Get("/profile/addresses", h.list)
	app.Post("/profile/addresses", h.add)
	app.Put("/profile/addresses/:id", h.update)
	app.Delete("/profile/addresses/:id", h.remove)
	app.Post("/profile/addresses/:id/default", h.setDefault)
}

func validateAddress(a *Address) map[string]string {
	errs := map[string]string{}
	if a.Street == "" {
		errs["street"] = "street is required"
	}
	if a.City == "" {
		errs["city"] = "city is required"
	}
	if a.State == "" {
		errs["state"] = "state is required"
	}
	if a.PostalCode == "" {
		errs["postalCode"] = "postalCode is required"
	}
	return errs
}

func (h *Handler) list(c *fiber.Ctx) error {
	user, err := session.UserFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	return c.JSON(h.repo.ListByUser(user.ID))
}

func (h *Handler) add(c *fiber.Ctx) error {
	user, err := session.UserFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	a := new(Address)
	if err := c.BodyParser(a); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if ves := validateAddress(a); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	a.UserID = user.ID
	return c.Status(fiber.StatusCreated).JSON(h.repo.Add(*a))
}

func (h *Handler) update(c *fiber.Ctx) error {
	user, err := session.UserFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	a := new(Address)
	if err := c.BodyParser(a); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if ves := validateAddress(a); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	updated, err := h.repo.Update(user.ID, c.Params("id"), *a)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "address not found"})
	}
	return c.JSON(updated)
}

func (h *Handler) remove(c *fiber.Ctx) error {
	user, err := session.UserFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	if err := h.repo.Delete(user.ID, c.Params("id")); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "address not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) setDefault(c *fiber.Ctx) error {
	user, err := session.UserFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	updated, err := h.repo.SetDefault(user.ID, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "address not found"})
	}
	return c.JSON(updated)
}
