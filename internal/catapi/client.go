package catapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	apperrors "catgw/internal/errors"
)

const requestTimeout = 10 * time.Second

// Client talks to the upstream cat API. Responses are relayed as raw JSON;
// nothing is cached.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

// NewClient creates a client for the given API base URL and key.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: requestTimeout},
	}
}

// Breeds lists all breeds.
func (c *Client) Breeds(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/breeds", nil)
}

// BreedByID fetches a single breed.
func (c *Client) BreedByID(ctx context.Context, breedID string) (json.RawMessage, error) {
	return c.get(ctx, "/breeds/"+url.PathEscape(breedID), nil)
}

// SearchBreeds searches breeds by name.
func (c *Client) SearchBreeds(ctx context.Context, query string) (json.RawMessage, error) {
	return c.get(ctx, "/breeds/search", url.Values{"q": []string{query}})
}

// ImagesByBreed fetches up to limit images for a breed.
func (c *Client) ImagesByBreed(ctx context.Context, breedID string, limit int) (json.RawMessage, error) {
	return c.get(ctx, "/images/search", url.Values{
		"breed_id": []string{breedID},
		"limit":    []string{strconv.Itoa(limit)},
	})
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build cat api request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cat api request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperrors.NewNotFound("Raza no encontrada")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cat api %s: unexpected status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read cat api response: %w", err)
	}
	return json.RawMessage(body), nil
}
