// Package auth resolves session tokens to user identities.
//
// The gate fails closed: any miss, stale session, or collaborator failure is
// reported as models.ErrNotAuthenticated without retries.
package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/marmos91/filevault/internal/logger"
	"github.com/marmos91/filevault/pkg/models"
	"github.com/marmos91/filevault/pkg/session"
	"github.com/marmos91/filevault/pkg/store"
)

// Gate validates session tokens against the session store and loads the
// corresponding user from the metadata store.
type Gate struct {
	sessions session.Store
	users    store.UserStore
}

// NewGate creates a Gate over the given stores.
func NewGate(sessions session.Store, users store.UserStore) *Gate {
	return &Gate{sessions: sessions, users: users}
}

// ResolveUser resolves a session token to a user.
//
// An empty token, a session miss, a session pointing at a deleted user, and
// a store failure all return models.ErrNotAuthenticated. The lookup is
// read-only and bounded by ctx.
func (g *Gate) ResolveUser(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, models.ErrNotAuthenticated
	}

	userID, err := g.sessions.Get(ctx, session.AuthKey(token))
	if err != nil {
		if !errors.Is(err, session.ErrKeyNotFound) {
			logger.Warn("Session lookup failed", "error", err)
		}
		return nil, models.ErrNotAuthenticated
	}

	user, err := g.users.GetUserByID(ctx, userID)
	if err != nil {
		// A session for a missing user is stale; treat it like a miss.
		if !errors.Is(err, models.ErrUserNotFound) {
			logger.Warn("User lookup failed during auth", "error", err)
		}
		return nil, models.ErrNotAuthenticated
	}

	return user, nil
}

// IssueToken validates the credentials and creates a new session.
//
// The token is an opaque UUID stored under auth_<token> with the standard
// session TTL. Invalid credentials return models.ErrInvalidCredentials.
func (g *Gate) IssueToken(ctx context.Context, email, password string) (string, error) {
	user, err := g.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return "", models.ErrInvalidCredentials
		}
		return "", err
	}

	if !user.CheckPassword(password) {
		return "", models.ErrInvalidCredentials
	}

	token := uuid.New().String()
	if err := g.sessions.Set(ctx, session.AuthKey(token), user.ID, session.TokenTTL); err != nil {
		return "", err
	}

	logger.Debug("Session issued", "user_id", user.ID)
	return token, nil
}

// RevokeToken deletes the session for the given token. The token must
// resolve to a live session; otherwise models.ErrNotAuthenticated is
// returned.
func (g *Gate) RevokeToken(ctx context.Context, token string) error {
	if token == "" {
		return models.ErrNotAuthenticated
	}

	key := session.AuthKey(token)
	if _, err := g.sessions.Get(ctx, key); err != nil {
		return models.ErrNotAuthenticated
	}

	return g.sessions.Delete(ctx, key)
}
