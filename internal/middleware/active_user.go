package middleware

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/splitroom/internal/models"
	"github.com/mmynk/splitroom/internal/storage"
)

var (
	errUserNotFound = errors.New("user not found")
	errUserInactive = errors.New("account is not active")
)

// UserLookup loads accounts by ID.
type UserLookup interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// RequireActiveUser rejects calls from accounts that no longer exist
// (NotFound) or are deleted or banned (PermissionDenied). It must run after
// RequireAuth; unauthenticated calls pass through untouched.
func RequireActiveUser(users UserLookup) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			userID := GetUserID(ctx)
			if userID == "" {
				return next(ctx, req)
			}

			user, err := users.GetUserByID(ctx, userID)
			if errors.Is(err, storage.ErrNotFound) {
				return nil, connect.NewError(connect.CodeNotFound, errUserNotFound)
			}
			if err != nil {
				return nil, connect.NewError(connect.CodeInternal, errors.New("internal error"))
			}
			if !user.IsActive() {
				return nil, connect.NewError(connect.CodePermissionDenied, errUserInactive)
			}
			return next(ctx, req)
		}
	}
}
