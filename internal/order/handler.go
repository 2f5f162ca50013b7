package order

import (
	"github.com/gofiber/fiber/v2"
	"github.com/treadmart/tire-shop-backend/internal/address"
	"github.com/treadmart/tire-shop-backend/internal/cart"
	"github.com/treadmart/tire-shop-backend/internal/session"
)

// Handler wires checkout and order listing. It owns no cart state; it reads
// and clears the injected engine when an order is placed.
type Handler struct {
	service *Service
	cart    *cart.Engine
}

func NewHandler(service *Service, engine *cart.Engine) *Handler {
	return &Handler{service: service, cart: engine}
}

func (h *Handler) RegisterProtectedRoutes(app fiber.Router) {
	app.Post("/checkout", h.checkout)
	app.Get("/orders", h.listOrders)
}

func (h *Handler) RegisterAdminRoutes(router fiber.Router) {
	router.Get("/orders", h.adminListOrders)
	router.Patch("/orders/:id/status", h.adminUpdateStatus)
}

type checkoutRequest struct {
	ShippingAddress address.Address `json:"shippingAddress"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
}

func (h *Handler) checkout(c *fiber.Ctx) error {
	user, err := session.UserFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(checkoutRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	errs := map[string]string{}
	if payload.ShippingAddress.Street == "" {
		errs["street"] = "street is required"
	}
	if payload.ShippingAddress.City == "" {
		errs["city"] = "city is required"
	}
	if payload.ShippingAddress.State == "" {
		errs["state"] = "state is required"
	}
	if payload.ShippingAddress.PostalCode == "" {
		errs["postalCode"] = "postalCode is required"
	}
	if !payload.PaymentMethod.Valid() {
		errs["paymentMethod"] = "paymentMethod must be one of cod, card, wallet"
	}
	if len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	payload.ShippingAddress.UserID = user.ID
	placed, err := h.service.Place(user.ID, h.cart.Lines(), payload.ShippingAddress, payload.PaymentMethod)
	if err != nil {
		if err == ErrEmptyCart {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "cart is empty"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	// the order owns the line snapshots now
	h.cart.Clear()
	return c.Status(fiber.StatusCreated).JSON(placed)
}

func (h *Handler) listOrders(c *fiber.Ctx) error {
	user, err := session.UserFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	orders := h.service.ListByUser(user.ID)
	if orders == nil {
		orders = []Order{}
	}
	return c.JSON(orders)
}

func (h *Handler) adminListOrders(c *fiber.Ctx) error {
	f := AdminFilter{Query: c.Query("q")}
	if v := c.Query("status"); v != "" {
		st := Status(v)
		if !st.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "unknown status"})
		}
		f.Status = st
	}

	orders := h.service.ListAll(f)
	if orders == nil {
		orders = []Order{}
	}
	return c.JSON(fiber.Map{
		"orders": orders,
		"counts": h.service.CountsByStatus(),
	})
}

type statusUpdateRequest struct {
	Status Status `json:"status"`
}

func (h *Handler) adminUpdateStatus(c *fiber.Ctx) error {
	payload := new(statusUpdateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if !payload.Status.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "unknown status"})
	}

	updated, err := h.service.UpdateStatus(c.Params("id"), payload.Status)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		case ErrInvalidTransition:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "invalid status transition"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(updated)
}
