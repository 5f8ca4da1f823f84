package auth

import (
	"context"

	domainerrors "github.com/inkwellapp/inkwell/internal/errors"
)

// Gate rejects callers without an identity.
type Gate struct {
	provider IdentityProvider
}

// NewGate creates a gate over provider.
func NewGate(provider IdentityProvider) *Gate {
	return &Gate{provider: provider}
}

// Require returns the current identity, or an UNAUTHORIZED error when nobody is signed in.
func (g *Gate) Require(ctx context.Context) (Identity, error) {
	identity, ok := g.provider.Current(ctx)
	if !ok {
		return Identity{}, domainerrors.Unauthorized("sign in required")
	}
	return identity, nil
}
