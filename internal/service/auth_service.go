package service

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mmynk/todolist/internal/auth"
)

// AuthService serves signup and signin.
type AuthService struct {
	authenticator auth.Authenticator
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		logger:        logger,
	}
}

type signinResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
}

type credentials struct {
	username string
	password string
}

func parseCredentials(w http.ResponseWriter, r *http.Request) (credentials, error) {
	fields, err := decodeObject(w, r)
	if err != nil {
		return credentials{}, err
	}
	username, err := requiredString(fields, "username")
	if err != nil {
		return credentials{}, err
	}
	password, err := requiredString(fields, "password")
	if err != nil {
		return credentials{}, err
	}
	return credentials{username: username, password: password}, nil
}

// Signup creates a user. Existing usernames are not checked here; the
// store's unique constraint rejects them.
func (s *AuthService) Signup(w http.ResponseWriter, r *http.Request) {
	creds, err := parseCredentials(w, r)
	if err != nil {
		writeFailure(w, s.logger, "Signup", err)
		return
	}

	user, err := s.authenticator.Register(r.Context(), creds.username, creds.password)
	if err != nil {
		writeFailure(w, s.logger, "Signup", err)
		return
	}

	s.logger.Info("User created", "user_id", user.ID, "username", user.Username)
	writeMessage(w, s.logger, "User created!")
}

// Signin checks credentials and returns the user's ID. No session or
// token is issued.
func (s *AuthService) Signin(w http.ResponseWriter, r *http.Request) {
	creds, err := parseCredentials(w, r)
	if err != nil {
		writeFailure(w, s.logger, "Signin", err)
		return
	}

	user, err := s.authenticator.Authenticate(r.Context(), creds.username, creds.password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		s.logger.Warn("Signin failed", "username", creds.username)
		writeJSON(w, s.logger, http.StatusUnauthorized, messageResponse{Message: "Invalid credentials"})
		return
	}
	if err != nil {
		writeFailure(w, s.logger, "Signin", err)
		return
	}

	s.logger.Info("User authenticated", "user_id", user.ID)
	writeJSON(w, s.logger, http.StatusOK, signinResponse{
		Message: "User authenticated!",
		UserID:  user.ID,
	})
}
