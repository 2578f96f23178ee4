// Package auth resolves the request's viewer from the optional JWT issued by
// the external identity provider. Pricing and stock visibility for reseller
// accounts is gated on the token's permissions claim.
package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// Permissions recognized in the token's `permissions` claim.
const (
	PermViewPrice = "view_price"
	PermViewStock = "view_stock"
)

// Viewer describes who is looking at the catalog.
type Viewer struct {
	Authenticated bool
	Permissions   []string
}

// Can reports whether the viewer holds the given permission.
func (v Viewer) Can(perm string) bool {
	for _, p := range v.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

// ViewerFromCtx reads the JWT the middleware stored in locals. Requests
// without a valid token get an anonymous viewer, never an error.
func ViewerFromCtx(c *fiber.Ctx) Viewer {
	tok, ok := c.Locals("user").(*jwt.Token)
	if !ok || tok == nil || !tok.Valid {
		return Viewer{}
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Viewer{Authenticated: true}
	}
	v := Viewer{Authenticated: true}
	if raw, ok := claims["permissions"].([]any); ok {
		for _, item := range raw {
			if s, ok := item.(string); ok {
				v.Permissions = append(v.Permissions, s)
			}
		}
	}
	return v
}
