package siret

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.insee.fr/api-sirene/3.11"

var (
	// ErrNotConfigured is returned when no registry credential is available
	ErrNotConfigured = errors.New("SIRENE_API_TOKEN not set")

	// ErrNotFound is returned when the registry has no establishment for the id
	ErrNotFound = errors.New("establishment not found")

	// ErrUnavailable is returned on registry rate limiting or transport errors
	ErrUnavailable = errors.New("registry unavailable")
)

// LegalUnit holds the registry's legal-entity naming fields
type LegalUnit struct {
	Denomination string `json:"denominationUniteLegale"`
	FirstName    string `json:"prenom1UniteLegale"`
	LastName     string `json:"nomUniteLegale"`
}

// Establishment is the subset of the Sirene response this service reads
type Establishment struct {
	Siret     string    `json:"siret"`
	LegalUnit LegalUnit `json:"uniteLegale"`
}

// Registry looks up SIRET ids against the national business registry
type Registry interface {
	Lookup(ctx context.Context, siret string) (*Establishment, error)
}

// SireneClient queries the INSEE Sirene API with a bearer credential
type SireneClient struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
}

func NewSireneClient(apiToken string) *SireneClient {
	return &SireneClient{
		baseURL:  defaultBaseURL,
		apiToken: apiToken,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *SireneClient) Lookup(ctx context.Context, siret string) (*Establishment, error) {
	if c.apiToken == "" {
		return nil, ErrNotConfigured
	}

	url := fmt.Sprintf("%s/siret/%s", c.baseURL, siret)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var payload struct {
			Etablissement Establishment `json:"etablissement"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, fmt.Errorf("failed to decode registry response: %w", err)
		}
		return &payload.Etablissement, nil

	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound

	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: rate limited", ErrUnavailable)

	default:
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
}
