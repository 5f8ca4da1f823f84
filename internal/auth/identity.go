// Package auth gates reader features behind a signed-in identity.
// The sign-in flow itself lives outside the engine; this package only asks whether someone is present.
package auth

import (
	"context"
	"strings"
)

// Identity is the signed-in reader.
type Identity struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	AvatarColor string `json:"avatar_color"`
}

// IsValid reports whether the identity names a user.
func (i Identity) IsValid() bool {
	return strings.TrimSpace(i.UserID) != ""
}

// ctxKey is the type for context keys to avoid collisions.
type ctxKey string

const identityKey ctxKey = "identity"

// WithIdentity stores the identity in ctx.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// FromContext returns the identity stored by WithIdentity.
func FromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok && identity.IsValid()
}
