// Package auth provides the identity collaborators of the server: password
// accounts and signed session tokens.
package auth

import (
	"context"

	"github.com/mmynk/splitroom/internal/models"
)

// Authenticator creates and verifies accounts. Implementations decide what a
// credential is; the services only see users.
type Authenticator interface {
	// Register creates an active account. Returns ErrEmailExists when the
	// email is taken.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate returns the account matching email and credential.
	// Deleted or banned accounts fail with ErrAccountDisabled.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential rejects credentials that may not be stored.
	ValidateCredential(credential string) error
}
