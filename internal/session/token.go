package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// TokenTTL matches the storefront's long-lived browser sessions.
const TokenTTL = 72 * time.Hour

// IssueToken signs a session token carrying the identity and role claims the
// route guard needs.
func IssueToken(u User, secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"user_id": u.ID,
		"email":   u.Email,
		"role":    string(u.Role),
		"exp":     time.Now().Add(TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// UserFromCtx rebuilds the token identity from the JWT the middleware stored
// in locals. Handlers use it to scope reads/writes to the caller.
func UserFromCtx(c *fiber.Ctx) (User, error) {
	raw := c.Locals("user")
	if raw == nil {
		return User{}, fiber.ErrUnauthorized
	}
	tok, ok := raw.(*jwt.Token)
	if !ok {
		return User{}, fiber.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return User{}, fiber.ErrUnauthorized
	}

	u := User{Role: RoleUser}
	if id, ok := claims["user_id"].(string); ok && id != "" {
		u.ID = id
	} else {
		return User{}, fiber.ErrUnauthorized
	}
	if email, ok := claims["email"].(string); ok {
		u.Email = email
	}
	if role, ok := claims["role"].(string); ok && role != "" {
		u.Role = Role(role)
	}
	return u, nil
}
