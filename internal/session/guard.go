package session

import "github.com/gofiber/fiber/v2"

// RedirectAnonymous is the JWT middleware error handler: a request with no
// usable session goes to the login entry point.
func RedirectAnonymous(c *fiber.Ctx, _ error) error {
	return c.Redirect("/login", fiber.StatusFound)
}

// RequireAdmin gates the back office. An authenticated caller without the
// administrator role is sent home, not to login: "not allowed" is a
// different outcome than "not authenticated".
func RequireAdmin(c *fiber.Ctx) error {
	u, err := UserFromCtx(c)
	if err != nil {
		return c.Redirect("/login", fiber.StatusFound)
	}
	if u.Role != RoleAdmin {
		return c.Redirect("/", fiber.StatusFound)
	}
	return c.Next()
}
