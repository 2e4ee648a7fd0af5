// Package auth checks user credentials for signup and signin.
package auth

import (
	"context"
	"fmt"

	"github.com/mmynk/todolist/internal/models"
)

// Authenticator defines the interface for credential handling.
// Implementations decide how passwords are stored and compared; the
// service layer only sees users and ErrInvalidCredentials.
type Authenticator interface {
	// Register creates a new user with the given username and password.
	Register(ctx context.Context, username, password string) (*models.User, error)

	// Authenticate returns the user matching the credentials, or
	// ErrInvalidCredentials when there is none.
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

// Hashing modes accepted by New.
const (
	ModePlain  = "plain"
	ModeBcrypt = "bcrypt"
)

// New returns the Authenticator for the given hashing mode.
func New(mode string, storage UserStorage) (Authenticator, error) {
	switch mode {
	case ModePlain, "":
		return NewPlainAuthenticator(storage), nil
	case ModeBcrypt:
		return NewPasswordAuthenticator(storage), nil
	default:
		return nil, fmt.Errorf("unknown password hashing mode %q", mode)
	}
}
