package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mbaillet/chocolaterie/storage"
	"github.com/mbaillet/chocolaterie/storage/db"
	"github.com/oklog/ulid/v2"
)

var (
	// ErrEmailRequired is returned when an operation is attempted without an email
	ErrEmailRequired = errors.New("email is required")

	// ErrEmailOwned is returned when the email already belongs to a different account
	ErrEmailOwned = errors.New("email is already linked to another account")
)

// Fields holds the optional contact details collected during checkout or sign-up
type Fields struct {
	FirstName string
	LastName  string
	Phone     string
	Company   string
}

// Resolver finds or creates guest profiles keyed by email.
// Guest profiles are created during anonymous checkout and later
// converted to account-bound profiles by the Reconciler.
type Resolver struct {
	storage *storage.Storage
}

func NewResolver(storage *storage.Storage) *Resolver {
	return &Resolver{storage: storage}
}

// ResolveGuestProfile returns the profile for the given email, creating a
// guest profile when none exists. Existing profiles only have contact fields
// filled where they were previously empty; supplied empty values never
// overwrite stored ones. The boolean result reports whether a new profile
// was inserted.
func (r *Resolver) ResolveGuestProfile(ctx context.Context, email string, fields Fields) (db.Profile, bool, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return db.Profile{}, false, ErrEmailRequired
	}

	existing, err := r.storage.Queries.GetProfileByEmail(ctx, email)
	if err == nil {
		updated, updateErr := r.storage.Queries.UpdateGuestContactFields(ctx, db.UpdateGuestContactFieldsParams{
			FirstName: fields.FirstName,
			LastName:  fields.LastName,
			Phone:     fields.Phone,
			Company:   fields.Company,
			ID:        existing.ID,
		})
		if updateErr != nil {
			return db.Profile{}, false, fmt.Errorf("failed to update profile: %w", updateErr)
		}
		return updated, false, nil
	}
	if err != sql.ErrNoRows {
		return db.Profile{}, false, fmt.Errorf("failed to look up profile: %w", err)
	}

	profile, err := r.storage.Queries.CreateProfile(ctx, db.CreateProfileParams{
		ID:        ulid.Make().String(),
		Email:     email,
		FirstName: toNullString(fields.FirstName),
		LastName:  toNullString(fields.LastName),
		Phone:     toNullString(fields.Phone),
		Company:   toNullString(fields.Company),
		IsGuest:   true,
	})
	if err != nil {
		return db.Profile{}, false, fmt.Errorf("failed to create guest profile: %w", err)
	}

	slog.Info("guest profile created", "profile_id", profile.ID, "email", email)
	return profile, true, nil
}

// NormalizeEmail lowercases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
