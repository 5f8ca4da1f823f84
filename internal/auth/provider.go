package auth

import (
	"context"
	"log/slog"
	"sync"

	"github.com/inkwellapp/inkwell/internal/id"
)

// IdentityProvider answers who, if anyone, is signed in.
type IdentityProvider interface {
	Current(ctx context.Context) (Identity, bool)
}

// Static holds a single process-wide identity set by the host application.
type Static struct {
	logger *slog.Logger

	mu       sync.RWMutex
	identity *Identity
}

// NewStatic returns a provider with nobody signed in.
func NewStatic(logger *slog.Logger) *Static {
	return &Static{logger: logger}
}

// SignIn records identity as the current user. A missing user id is generated
// and a missing avatar colour is derived from the id.
func (s *Static) SignIn(identity Identity) (Identity, error) {
	if !identity.IsValid() {
		userID, err := id.Generate("usr")
		if err != nil {
			return Identity{}, err
		}
		identity.UserID = userID
	}
	if identity.AvatarColor == "" {
		identity.AvatarColor = AvatarColor(identity.UserID)
	}

	s.mu.Lock()
	s.identity = &identity
	s.mu.Unlock()

	s.logger.Info("user signed in", "user_id", identity.UserID)
	return identity, nil
}

// SignOut forgets the current user.
func (s *Static) SignOut() {
	s.mu.Lock()
	s.identity = nil
	s.mu.Unlock()

	s.logger.Info("user signed out")
}

// Current returns the identity from ctx if present, else the signed-in user.
func (s *Static) Current(ctx context.Context) (Identity, bool) {
	if identity, ok := FromContext(ctx); ok {
		return identity, true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return Identity{}, false
	}
	return *s.identity, true
}
