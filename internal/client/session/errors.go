package session

import (
	"errors"

	"github.com/dmitrijs2005/tapcard/internal/client/api"
)

var (
	ErrAlreadyInitialized = errors.New("session already initialized")
	ErrLoginFailed        = errors.New("login failed")
	ErrRegisterFailed     = errors.New("registration failed")
)

// Fallback messages used when the backend gave no explanation.
const (
	LoginFailedMessage    = "invalid credentials or network error"
	RegisterFailedMessage = "registration failed, please try again"
)

// AuthError is the single error returned by a failed Login or Register.
// Error returns the message meant for the user; the cause stays reachable
// through errors.Is/As.
type AuthError struct {
	Kind    error
	Message string
	Err     error
}

func (e *AuthError) Error() string { return e.Message }

func (e *AuthError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func newAuthError(kind error, cause error, fallback string) *AuthError {
	msg := fallback
	var apiErr *api.APIError
	if errors.As(cause, &apiErr) {
		msg = apiErr.Message()
	}
	return &AuthError{Kind: kind, Message: msg, Err: cause}
}
