package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/barcart/internal/domain"
	"github.com/tidwall/gjson"
)

const (
	// DefaultBaseURL is the public cocktail catalog
	DefaultBaseURL = "https://www.thecocktaildb.com/api/json/v1/1/"

	defaultTimeout = 15 * time.Second
	userAgent      = "barcart/1.0"

	// drinksKey is the top-level key every catalog response carries
	drinksKey = "drinks"
)

// Client implements domain.CatalogRepository against the cocktail catalog HTTP API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new catalog client. A zero timeout uses the default.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// BaseURL returns the normalized base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doRequest performs a GET and returns the body of a 2xx response
func (c *Client) doRequest(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	reqURL := c.baseURL + endpoint
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("catalog request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			c.logger.Warn("catalog request timed out", "url", reqURL)
		} else {
			c.logger.Error("catalog request failed", "url", reqURL, "error", err)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", domain.ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("catalog request error", "status", resp.StatusCode, "bodyLen", len(body))
		return nil, fmt.Errorf("%w: unexpected status code: %d", domain.ErrNetwork, resp.StatusCode)
	}

	return body, nil
}

// parseDrinks validates the envelope and returns the drinks array.
// A null list is the catalog's way of saying "no results".
func (c *Client) parseDrinks(body []byte) ([]gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		c.logger.Error("JSON parse error", "bodyLen", len(body))
		return nil, fmt.Errorf("%w: body is not valid JSON", domain.ErrProtocol)
	}

	drinks := gjson.GetBytes(body, drinksKey)
	switch {
	case !drinks.Exists():
		return nil, fmt.Errorf("%w: missing %q key", domain.ErrProtocol, drinksKey)
	case drinks.Type == gjson.Null:
		return nil, nil
	case !drinks.IsArray():
		return nil, fmt.Errorf("%w: %q is not a list", domain.ErrProtocol, drinksKey)
	}

	return drinks.Array(), nil
}

// SearchByFirstLetter returns one page of cocktails starting with letter
func (c *Client) SearchByFirstLetter(ctx context.Context, letter string, page int) ([]domain.CocktailDetail, error) {
	letter = strings.ToLower(strings.TrimSpace(letter))
	if len(letter) != 1 || letter[0] < 'a' || letter[0] > 'z' {
		return nil, fmt.Errorf("%w: search letter must be a single letter, got %q", domain.ErrInvalidArgument, letter)
	}
	if page < 1 {
		page = 1
	}

	query := url.Values{}
	query.Set("f", letter)
	query.Set("page", strconv.Itoa(page))

	body, err := c.doRequest(ctx, "search.php", query)
	if err != nil {
		return nil, err
	}

	drinks, err := c.parseDrinks(body)
	if err != nil {
		return nil, err
	}

	return MapDetails(drinks), nil
}

// ListCategories returns the catalog's category vocabulary
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	query := url.Values{}
	query.Set("c", "list")

	body, err := c.doRequest(ctx, "list.php", query)
	if err != nil {
		return nil, err
	}

	drinks, err := c.parseDrinks(body)
	if err != nil {
		return nil, err
	}

	return MapCategories(drinks), nil
}

// FilterByCategory returns summaries of the cocktails in a category.
// The catalog only populates summary fields on this endpoint.
func (c *Client) FilterByCategory(ctx context.Context, category string) ([]domain.CocktailSummary, error) {
	query := url.Values{}
	query.Set("c", category)

	body, err := c.doRequest(ctx, "filter.php", query)
	if err != nil {
		return nil, err
	}

	drinks, err := c.parseDrinks(body)
	if err != nil {
		return nil, err
	}

	return MapSummaries(drinks), nil
}

// LookupByID returns the full record for a cocktail
func (c *Client) LookupByID(ctx context.Context, id domain.CocktailID) (domain.CocktailDetail, error) {
	if strings.TrimSpace(string(id)) == "" {
		return domain.CocktailDetail{}, fmt.Errorf("%w: empty cocktail id", domain.ErrInvalidArgument)
	}

	query := url.Values{}
	query.Set("i", string(id))

	body, err := c.doRequest(ctx, "lookup.php", query)
	if err != nil {
		return domain.CocktailDetail{}, err
	}

	drinks, err := c.parseDrinks(body)
	if err != nil {
		return domain.CocktailDetail{}, err
	}

	details := MapDetails(drinks)
	if len(details) == 0 {
		return domain.CocktailDetail{}, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}

	return details[0], nil
}

// isTimeout reports whether err came from a request deadline
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne interface{ Timeout() bool }
	return errors.As(err, &ne) && ne.Timeout()
}
