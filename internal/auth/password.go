package auth

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/todolist/internal/models"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// UserStorage defines the user persistence operations the authenticators need.
type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUser(ctx context.Context, username, password string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// PlainAuthenticator stores passwords as given and matches them exactly
// in the store.
type PlainAuthenticator struct {
	storage UserStorage
}

// NewPlainAuthenticator creates an authenticator that keeps plain-text passwords.
func NewPlainAuthenticator(storage UserStorage) *PlainAuthenticator {
	return &PlainAuthenticator{storage: storage}
}

// Register inserts the user unconditionally. Duplicate usernames surface
// as a store error.
func (a *PlainAuthenticator) Register(ctx context.Context, username, password string) (*models.User, error) {
	user := &models.User{Username: username, Password: password}
	if err := a.storage.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate looks up a user whose username and password both match.
func (a *PlainAuthenticator) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := a.storage.FindUser(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// PasswordAuthenticator implements password-based authentication using bcrypt.
type PasswordAuthenticator struct {
	storage UserStorage
	cost    int
}

// NewPasswordAuthenticator creates a new bcrypt-backed authenticator.
func NewPasswordAuthenticator(storage UserStorage) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		storage: storage,
		cost:    bcrypt.DefaultCost,
	}
}

// Register creates a new user account with a hashed password.
func (a *PasswordAuthenticator) Register(ctx context.Context, username, password string) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword(prehash(password), a.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{Username: username, Password: string(hashed)}
	if err := a.storage.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies the username and password, returning the user if valid.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := a.storage.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), prehash(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// prehash reduces the password to a fixed 44-byte SHA-256 digest in base64,
// which stays under bcrypt's 72-byte input limit for any password length.
func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
