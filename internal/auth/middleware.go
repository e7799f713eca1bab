package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gokatarajesh/trivia-api/internal/auth/jwt"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrNotEditor    = errors.New("token does not carry the editor role")
)

// EditorGuard checks that a request carries a valid editor bearer token.
type EditorGuard struct {
	tokens *jwt.Manager
}

// NewEditorGuard builds a guard validating tokens with manager.
func NewEditorGuard(tokens *jwt.Manager) *EditorGuard {
	return &EditorGuard{tokens: tokens}
}

// Authorize validates the Authorization header of r.
func (g *EditorGuard) Authorize(r *http.Request) error {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ErrMissingToken
	}

	// Parse "Bearer <token>"
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return jwt.ErrInvalidToken
	}

	claims, err := g.tokens.Validate(parts[1])
	if err != nil {
		return err
	}
	if claims.Role != jwt.RoleEditor {
		return ErrNotEditor
	}
	return nil
}
