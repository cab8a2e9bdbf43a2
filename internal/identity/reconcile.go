package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mbaillet/chocolaterie/storage"
	"github.com/mbaillet/chocolaterie/storage/db"
	"github.com/oklog/ulid/v2"
)

// ErrUserIDRequired is returned when reconciliation is attempted without an
// authenticated user id
var ErrUserIDRequired = errors.New("authenticated user id is required")

// ReconcileResult reports the resolved profile and how many guest orders
// were re-parented to it
type ReconcileResult struct {
	Profile    db.Profile
	Reparented int64
}

// Reconciler merges guest checkout history into authenticated accounts.
// It is invoked from both the sign-up and sign-in paths so the
// guest-conversion logic lives in exactly one place.
type Reconciler struct {
	storage *storage.Storage
}

func NewReconciler(storage *storage.Storage) *Reconciler {
	return &Reconciler{storage: storage}
}

// Reconcile binds the profile for email to the authenticated user id.
// A pre-existing guest profile is converted in place (user_id set, is_guest
// cleared, name fields filled only where the caller supplied non-empty
// values) and every order placed under the guest email with no owner is
// re-pointed at the profile. When no profile exists a fresh one is inserted.
//
// Profile conversion and order re-parenting run in a single transaction so
// concurrent attempts for the same email serialize on the profiles email
// uniqueness constraint instead of double-applying.
func (r *Reconciler) Reconcile(ctx context.Context, email, userID string, fields Fields) (ReconcileResult, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return ReconcileResult{}, ErrEmailRequired
	}
	if userID == "" {
		return ReconcileResult{}, ErrUserIDRequired
	}

	tx, err := r.storage.DB().BeginTx(ctx, nil)
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	q := r.storage.Queries.WithTx(tx)

	var profile db.Profile
	existing, err := q.GetProfileByEmail(ctx, email)
	switch {
	case err == sql.ErrNoRows:
		profile, err = q.CreateProfile(ctx, db.CreateProfileParams{
			ID:        ulid.Make().String(),
			UserID:    toNullString(userID),
			Email:     email,
			FirstName: toNullString(fields.FirstName),
			LastName:  toNullString(fields.LastName),
			Phone:     toNullString(fields.Phone),
			Company:   toNullString(fields.Company),
			IsGuest:   false,
		})
		if err != nil {
			return ReconcileResult{}, fmt.Errorf("failed to create profile: %w", err)
		}

	case err != nil:
		return ReconcileResult{}, fmt.Errorf("failed to look up profile: %w", err)

	case existing.UserID.Valid && existing.UserID.String == userID:
		// Already reconciled; re-parenting below stays idempotent
		profile = existing

	case existing.UserID.Valid:
		return ReconcileResult{}, ErrEmailOwned

	default:
		profile, err = q.ConvertGuestProfile(ctx, db.ConvertGuestProfileParams{
			UserID:    toNullString(userID),
			FirstName: fields.FirstName,
			LastName:  fields.LastName,
			ID:        existing.ID,
		})
		if err != nil {
			return ReconcileResult{}, fmt.Errorf("failed to convert guest profile: %w", err)
		}
		slog.Info("guest profile converted", "profile_id", profile.ID, "user_id", userID)
	}

	reparented, err := q.ReparentGuestOrders(ctx, db.ReparentGuestOrdersParams{
		ProfileID:     toNullString(profile.ID),
		CustomerEmail: email,
	})
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("failed to re-parent guest orders: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return ReconcileResult{}, fmt.Errorf("failed to commit reconciliation: %w", err)
	}

	if reparented > 0 {
		slog.Info("guest orders re-parented", "profile_id", profile.ID, "count", reparented)
	}

	return ReconcileResult{Profile: profile, Reparented: reparented}, nil
}
