package contact

import "github.com/gofiber/fiber/v2"

// Message is an inbound contact-form submission.
type Message struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type Handler struct {
	// deliver forwards an accepted message. The default keeps it in memory;
	// a real deployment would hand it to a mailer or ticket queue.
	deliver func(Message)

	received []Message
}

func NewHandler() *Handler {
	h := &Handler{}
	h.deliver = func(m Message) { h.received = append(h.received, m) }
	return h
}

// SetDeliver replaces the delivery hook. Passing nil restores the in-memory
// default.
func (h *Handler) SetDeliver(fn func(Message)) {
	if fn == nil {
		fn = func(m Message) { h.received = append(h.received, m) }
	}
	h.deliver = fn
}

// Received returns the messages kept by the default delivery hook.
func (h *Handler) Received() []Message {
	out := make([]Message, len(h.received))
	copy(out, h.received)
	return out
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Post("/contact", h.submit)
}

func (h *Handler) submit(c *fiber.Ctx) error {
	payload := new(Message)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	errs := fiber.Map{}
	if payload.Name == "" {
		errs["name"] = "name is required"
	}
	if payload.Email == "" {
		errs["email"] = "email is required"
	}
	if payload.Message == "" {
		errs["message"] = "message is required"
	}
	if len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	h.deliver(*payload)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "thanks for reaching out, we will get back to you shortly",
	})
}
