package service

import (
	"context"
	"errors"

	"github.com/mmynk/splitroom/internal/auth"
	"github.com/mmynk/splitroom/internal/ledger"
	"github.com/mmynk/splitroom/internal/middleware"
)

var errInactiveUser = errors.New("account is not active")

// RealtimeAuthorizer admits websocket clients holding a valid session token
// for an active account, into rooms they belong to.
type RealtimeAuthorizer struct {
	jwtManager *auth.JWTManager
	users      middleware.UserLookup
	engine     *ledger.Engine
}

// NewRealtimeAuthorizer creates a RealtimeAuthorizer.
func NewRealtimeAuthorizer(jwtManager *auth.JWTManager, users middleware.UserLookup, engine *ledger.Engine) *RealtimeAuthorizer {
	return &RealtimeAuthorizer{jwtManager: jwtManager, users: users, engine: engine}
}

// Authenticate implements realtime.Authorizer.
func (a *RealtimeAuthorizer) Authenticate(ctx context.Context, token string) (string, error) {
	claims, err := a.jwtManager.Validate(token)
	if err != nil {
		return "", err
	}
	user, err := a.users.GetUserByID(ctx, claims.UserID())
	if err != nil {
		return "", err
	}
	if !user.IsActive() {
		return "", errInactiveUser
	}
	return user.ID, nil
}

// CanWatch implements realtime.Authorizer.
func (a *RealtimeAuthorizer) CanWatch(ctx context.Context, roomID, userID string) (bool, error) {
	return a.engine.IsMember(ctx, roomID, userID)
}
