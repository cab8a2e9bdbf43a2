// Package siret validates French business establishment identifiers
// against the INSEE Sirene registry. A valid SIRET gates access to the
// professional price list.
package siret

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode"
)

// SiretLength is the exact digit count of a SIRET (SIREN + NIC)
const SiretLength = 14

const cacheTTL = 30 * 24 * time.Hour

// ErrInvalidFormat is returned before any network call when the input is
// not exactly 14 digits
var ErrInvalidFormat = errors.New("SIRET must be exactly 14 digits")

// Result is the outcome of a registry check. A well-formed id that the
// registry rejects or cannot answer for still yields a Result (Valid=false)
// rather than an error: "not registered" is a normal answer, not a fault.
type Result struct {
	Valid         bool   `json:"valid"`
	Siret         string `json:"siret,omitempty"`
	RaisonSociale string `json:"raisonSociale,omitempty"`
	Error         string `json:"error,omitempty"`
}

type Validator struct {
	registry Registry
	cache    *resultCache
}

func NewValidator(registry Registry) *Validator {
	return &Validator{
		registry: registry,
		cache:    newResultCache(cacheTTL),
	}
}

// Normalize strips all whitespace from a raw SIRET input
func Normalize(raw string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
}

// IsWellFormed reports whether s is exactly 14 digits
func IsWellFormed(s string) bool {
	if len(s) != SiretLength {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Validate checks a SIRET against the registry. ErrInvalidFormat and
// ErrNotConfigured are returned as errors (mapped to 400 and 503 by the
// handler); every registry answer, including "not found" and "rate
// limited", comes back as a Result.
func (v *Validator) Validate(ctx context.Context, raw string) (Result, error) {
	siret := Normalize(raw)
	if !IsWellFormed(siret) {
		return Result{}, ErrInvalidFormat
	}

	if cached, ok := v.cache.Get(siret); ok {
		return cached, nil
	}

	establishment, err := v.registry.Lookup(ctx, siret)
	switch {
	case errors.Is(err, ErrNotConfigured):
		return Result{}, err

	case errors.Is(err, ErrNotFound):
		return Result{Valid: false, Siret: siret, Error: "SIRET inconnu au répertoire Sirene"}, nil

	case err != nil:
		slog.Warn("registry lookup failed", "siret", siret, "error", err)
		return Result{Valid: false, Siret: siret, Error: "Vérification indisponible, réessayez plus tard"}, nil
	}

	result := Result{
		Valid:         true,
		Siret:         siret,
		RaisonSociale: displayName(establishment.LegalUnit),
	}
	v.cache.Set(siret, result)

	return result, nil
}

// displayName prefers the organization name and falls back to the
// concatenated person name fields
func displayName(unit LegalUnit) string {
	if unit.Denomination != "" {
		return unit.Denomination
	}
	return strings.TrimSpace(unit.FirstName + " " + unit.LastName)
}
