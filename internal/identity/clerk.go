package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/clerk/clerk-sdk-go/v2/signintoken"
	"github.com/clerk/clerk-sdk-go/v2/user"
)

const (
	clerkAPIBase       = "https://api.clerk.com/v1"
	sessionTTLSeconds  = 30 * 24 * 60 * 60
	verifyPasswordPath = "/users/%s/verify_password"
)

// ErrInvalidCredentials is returned when the email/password pair does not
// match any provider account
var ErrInvalidCredentials = errors.New("invalid email or password")

// ClerkProvider implements Provider against the Clerk backend API.
// Account creation and session tokens go through the official SDK; password
// verification is not exposed by the SDK so it calls the backend API
// directly.
type ClerkProvider struct {
	secretKey  string
	httpClient *http.Client
}

func NewClerkProvider(secretKey string) *ClerkProvider {
	// Configures the SDK's default backend, shared with the jwt middleware
	clerk.SetKey(secretKey)

	return &ClerkProvider{
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (p *ClerkProvider) SignUp(ctx context.Context, params SignUpParams) (*Account, *Session, error) {
	createParams := &user.CreateParams{
		EmailAddresses: &[]string{params.Email},
		Password:       clerk.String(params.Password),
	}
	if params.FirstName != "" {
		createParams.FirstName = clerk.String(params.FirstName)
	}
	if params.LastName != "" {
		createParams.LastName = clerk.String(params.LastName)
	}

	u, err := user.Create(ctx, createParams)
	if err != nil {
		return nil, nil, providerError(err)
	}

	session, err := p.mintSession(ctx, u.ID)
	if err != nil {
		return nil, nil, err
	}

	return accountFromUser(u, params.Email), session, nil
}

func (p *ClerkProvider) SignIn(ctx context.Context, email, password string) (*Account, *Session, error) {
	list, err := user.List(ctx, &user.ListParams{
		EmailAddresses: []string{email},
	})
	if err != nil {
		return nil, nil, providerError(err)
	}
	if len(list.Users) == 0 {
		return nil, nil, ErrInvalidCredentials
	}
	u := list.Users[0]

	ok, err := p.verifyPassword(ctx, u.ID, password)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, ErrInvalidCredentials
	}

	session, err := p.mintSession(ctx, u.ID)
	if err != nil {
		return nil, nil, err
	}

	return accountFromUser(u, email), session, nil
}

func (p *ClerkProvider) mintSession(ctx context.Context, userID string) (*Session, error) {
	token, err := signintoken.Create(ctx, &signintoken.CreateParams{
		UserID:           clerk.String(userID),
		ExpiresInSeconds: clerk.Int64(sessionTTLSeconds),
	})
	if err != nil {
		return nil, providerError(err)
	}

	return &Session{
		Token:     token.Token,
		ExpiresAt: time.Now().Add(sessionTTLSeconds * time.Second),
	}, nil
}

// verifyPassword calls the backend API endpoint the Go SDK does not cover.
// Clerk answers 200 with {"verified": true} on a match and 422 on a
// mismatch.
func (p *ClerkProvider) verifyPassword(ctx context.Context, userID, password string) (bool, error) {
	body, err := json.Marshal(map[string]string{"password": password})
	if err != nil {
		return false, err
	}

	url := clerkAPIBase + fmt.Sprintf(verifyPasswordPath, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	req.Header.Set("Authorization", "Bearer "+p.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("password verification request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var result struct {
			Verified bool `json:"verified"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return false, fmt.Errorf("failed to decode verification response: %w", err)
		}
		return result.Verified, nil

	case resp.StatusCode == http.StatusUnprocessableEntity, resp.StatusCode == http.StatusBadRequest:
		return false, nil

	default:
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return false, fmt.Errorf("password verification failed with status %d: %s", resp.StatusCode, payload)
	}
}

func accountFromUser(u *clerk.User, email string) *Account {
	account := &Account{
		ID:    u.ID,
		Email: email,
	}
	if u.FirstName != nil {
		account.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		account.LastName = *u.LastName
	}
	if account.Email == "" && len(u.EmailAddresses) > 0 {
		account.Email = u.EmailAddresses[0].EmailAddress
	}
	return account
}

// providerError unwraps Clerk API errors so their message reaches the
// client verbatim
func providerError(err error) error {
	var apiErr *clerk.APIErrorResponse
	if errors.As(err, &apiErr) && len(apiErr.Errors) > 0 {
		msg := apiErr.Errors[0].LongMessage
		if msg == "" {
			msg = apiErr.Errors[0].Message
		}
		return errors.New(msg)
	}
	return err
}
