package identity

import (
	"context"
	"time"
)

// Account is the external auth provider's view of a user
type Account struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Session is a credential the browser exchanges for a provider session
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SignUpParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Provider abstracts the external auth service. Credential storage and
// password policy live entirely on the provider side; errors returned from
// it carry the provider's own message and are surfaced verbatim to clients.
type Provider interface {
	SignUp(ctx context.Context, params SignUpParams) (*Account, *Session, error)
	SignIn(ctx context.Context, email, password string) (*Account, *Session, error)
}
