package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mentorat/authoring/internal/models"
)

// ValidatorClient asks the external rule checker whether a formation can be published
type ValidatorClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	now        func() time.Time
}

// NewValidatorClient creates a new validator client
func NewValidatorClient(baseURL, apiKey string, httpClient *http.Client) *ValidatorClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ValidatorClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
		now:        time.Now,
	}
}

type validationResponse struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// ValidateFormation calls POST {baseURL}/formations/{id}/validate
//
// A 404 answer wraps models.ErrNotFound; any other failure wraps models.ErrPersistenceFailure.
func (c *ValidatorClient) ValidateFormation(ctx context.Context, id string) (*models.ValidationResult, error) {
	endpoint := fmt.Sprintf("%s/formations/%s/validate", c.baseURL, url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to reach validator: %v", models.ErrPersistenceFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read validator response: %v", models.ErrPersistenceFailure, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: formation %q", models.ErrNotFound, id)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: validator returned status %d: %s", models.ErrPersistenceFailure, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded validationResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("%w: failed to decode validator response: %v", models.ErrPersistenceFailure, err)
	}

	result := &models.ValidationResult{
		Errors:    decoded.Errors,
		Warnings:  decoded.Warnings,
		CheckedAt: c.now(),
	}
	if result.Errors == nil {
		result.Errors = []string{}
	}
	if result.Warnings == nil {
		result.Warnings = []string{}
	}
	return result, nil
}
