package session

import (
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
	secret  []byte
}

func NewHandler(service *Service, secret []byte) *Handler {
	return &Handler{service: service, secret: secret}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/login", h.login)
	app.Post("/register", h.register)
}

func (h *Handler) RegisterProtectedRoutes(app fiber.Router) {
	app.Get("/profile", h.getProfile)
	app.Put("/profile", h.updateProfile)
	app.Patch("/profile", h.updateProfile)
	app.Post("/logout", h.logout)
}

// RegisterAdminRoutes attaches the user listing for the back office.
func (h *Handler) RegisterAdminRoutes(router fiber.Router) {
	router.Get("/users", h.listUsers)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *fiber.Ctx) error {
	payload := new(loginRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Email == "" || payload.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "email and password are required"})
	}

	user, err := h.service.Login(payload.Email, payload.Password)
	if err != nil {
		// the placeholder never fails, but a real credential backend will;
		// surface it the same way form errors are surfaced
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "invalid email or password"})
	}

	token, err := IssueToken(user, h.secret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to generate token"})
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    user,
		"token":   token,
	})
}

func (h *Handler) register(c *fiber.Ctx) error {
	payload := new(Registration)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Name == "" || payload.Email == "" || payload.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "missing required fields"})
	}

	user, err := h.service.Register(*payload)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	token, err := IssueToken(user, h.secret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to generate token"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registration successful",
		"user":    user,
		"token":   token,
	})
}

func (h *Handler) getProfile(c *fiber.Ctx) error {
	user, ok := h.service.Current()
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	return c.JSON(user)
}

func (h *Handler) updateProfile(c *fiber.Ctx) error {
	payload := new(ProfileUpdate)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	user, err := h.service.UpdateProfile(*payload)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	return c.JSON(user)
}

func (h *Handler) logout(c *fiber.Ctx) error {
	h.service.Logout()
	return c.JSON(fiber.Map{"message": "Logged out"})
}

func (h *Handler) listUsers(c *fiber.Ctx) error {
	return c.JSON(h.service.Users())
}
