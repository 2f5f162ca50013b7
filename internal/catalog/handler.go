package catalog

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/shop", h.search)
	app.Get("/product/:id", h.getProduct)
}

// RegisterAdminRoutes attaches the back-office CRUD endpoints. The caller is
// expected to mount these behind the admin guard.
func (h *Handler) RegisterAdminRoutes(router fiber.Router) {
	router.Get("/products", h.listProducts)
	router.Post("/products", h.createProduct)
	router.Put("/products/:id", h.updateProduct)
	router.Delete("/products/:id", h.deleteProduct)
}

// search handles `/shop?q=&category=&brand=&minPrice=&maxPrice=&sort=`.
func (h *Handler) search(c *fiber.Ctx) error {
	f := Filter{
		Query:    c.Query("q"),
		Category: c.Query("category"),
		Brand:    c.Query("brand"),
		Sort:     SortKey(c.Query("sort")),
	}
	if v := c.Query("minPrice"); v != "" {
		min, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid minPrice"})
		}
		f.MinPrice = &min
	}
	if v := c.Query("maxPrice"); v != "" {
		max, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid maxPrice"})
		}
		f.MaxPrice = &max
	}

	products := h.service.Search(f)
	return c.JSON(fiber.Map{
		"products": products,
		"total":    len(products),
	})
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	p, err := h.service.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	}
	return c.JSON(p)
}

func (h *Handler) listProducts(c *fiber.Ctx) error {
	return c.JSON(h.service.List())
}

func validateProductPayload(p *Product) map[string]string {
	errs := map[string]string{}
	if p.Name == "" {
		errs["name"] = "name is required"
	}
	if p.Price <= 0 {
		errs["price"] = "price must be greater than zero"
	}
	if p.OriginalPrice != nil && *p.OriginalPrice <= p.Price {
		errs["originalPrice"] = "originalPrice must be greater than price"
	}
	if p.Stock < 0 {
		errs["stock"] = "stock must be >= 0"
	}
	if p.Rating < 0 || p.Rating > 5 {
		errs["rating"] = "rating must be between 0 and 5"
	}
	if p.ReviewCount < 0 {
		errs["reviewCount"] = "reviewCount must be >= 0"
	}
	return errs
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	p := new(Product)
	if err := c.BodyParser(p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if ves := validateProductPayload(p); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if p.CreatedAt == "" {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	created, err := h.service.Create(*p)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) updateProduct(c *fiber.Ctx) error {
	p := new(Product)
	if err := c.BodyParser(p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if ves := validateProductPayload(p); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	p.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	updated, err := h.service.Update(c.Params("id"), *p)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	}
	return c.JSON(updated)
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Params("id")); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
