package auth

import (
	"crypto/subtle"
	"strings"

	"github.com/jrsteele09/go-stock-server/internal/errors"
)

// Guard checks the bearer credential on protected requests.
type Guard struct {
	credential []byte
}

func NewGuard(credential string) *Guard {
	return &Guard{credential: []byte(credential)}
}

// Authorize inspects an Authorization header value. It returns nil when the
// bearer token matches exactly, ErrUnauthorized when no bearer token is
// present and ErrForbidden when one is present but wrong.
func (g *Guard) Authorize(header string) error {
	token, ok := BearerToken(header)
	if !ok {
		return errors.ErrUnauthorized
	}
	if subtle.ConstantTimeCompare([]byte(token), g.credential) != 1 {
		return errors.ErrForbidden
	}
	return nil
}

// BearerToken extracts the token from "Bearer <token>". The scheme is case-insensitive.
func BearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], parts[1] != ""
}
