package scryfall

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the root of the Scryfall REST API.
	DefaultBaseURL = "https://api.scryfall.com"

	// DefaultRequestDelay is the minimum spacing between outbound requests,
	// per Scryfall's rate-limit guidance.
	DefaultRequestDelay = 100 * time.Millisecond

	defaultUserAgent = "scryforge/1.0 (+https://github.com/scryforge/scryforge)"
	requestTimeout   = 30 * time.Second
)

// cardURLPattern matches Scryfall web URLs like
// https://scryfall.com/card/znr/280/emerias-call-emeria-shattered-skyclave.
var cardURLPattern = regexp.MustCompile(`scryfall\.com/card/([^/]+)/([^/]+)`)

// Client talks to the Scryfall API. All requests share one rate limiter so
// the inter-request delay holds across card records, meld part lookups, and
// image downloads alike.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithBaseURL overrides the API root, mainly for tests.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.baseURL = base
		}
	}
}

// WithRequestDelay sets the minimum spacing between requests. A zero or
// negative delay disables rate limiting.
func WithRequestDelay(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.limiter = rate.NewLimiter(rate.Every(d), 1)
		} else {
			c.limiter = nil
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a Scryfall API client with the default base URL, request
// delay, and timeout.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		userAgent:  defaultUserAgent,
		httpClient: &http.Client{Timeout: requestTimeout},
		limiter:    rate.NewLimiter(rate.Every(DefaultRequestDelay), 1),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetCard fetches a card by set code and collector number.
func (c *Client) GetCard(ctx context.Context, setCode, number string) (*Card, error) {
	endpoint := fmt.Sprintf("%s/cards/%s/%s", c.baseURL, url.PathEscape(setCode), url.PathEscape(number))
	return c.getCard(ctx, endpoint)
}

// GetCardNamed fetches a card by its exact name.
func (c *Client) GetCardNamed(ctx context.Context, name string) (*Card, error) {
	endpoint := fmt.Sprintf("%s/cards/named?exact=%s", c.baseURL, url.QueryEscape(name))
	return c.getCard(ctx, endpoint)
}

// GetCardByURI fetches a full card record from an absolute API URI, as found
// in a related part reference.
func (c *Client) GetCardByURI(ctx context.Context, uri string) (*Card, error) {
	return c.getCard(ctx, uri)
}

// GetCardByWebURL resolves a Scryfall web URL (scryfall.com/card/SET/NUMBER/...)
// to a card record.
func (c *Client) GetCardByWebURL(ctx context.Context, webURL string) (*Card, error) {
	m := cardURLPattern.FindStringSubmatch(webURL)
	if m == nil {
		return nil, fmt.Errorf("not a Scryfall card URL: %s", webURL)
	}
	return c.GetCard(ctx, m[1], m[2])
}

// searchPage models one page of a Scryfall search response.
type searchPage struct {
	Data     []Card `json:"data"`
	HasMore  bool   `json:"has_more"`
	NextPage string `json:"next_page"`
}

// SearchSet returns every card of a set, following has_more/next_page until
// the listing is exhausted.
func (c *Client) SearchSet(ctx context.Context, setCode string) ([]Card, error) {
	endpoint := fmt.Sprintf("%s/cards/search?q=%s&unique=cards", c.baseURL, url.QueryEscape("set:"+setCode))

	var cards []Card
	for endpoint != "" {
		body, err := c.get(ctx, endpoint)
		if err != nil {
			return cards, fmt.Errorf("searching set %s: %w", setCode, err)
		}

		var page searchPage
		if err := json.Unmarshal(body, &page); err != nil {
			return cards, fmt.Errorf("parsing search page for set %s: %w", setCode, err)
		}
		cards = append(cards, page.Data...)

		if page.HasMore {
			c.logger.Debug("fetching next search page", "set", setCode, "have", len(cards))
			endpoint = page.NextPage
		} else {
			endpoint = ""
		}
	}
	return cards, nil
}

// FetchImage downloads raw image bytes from an image URI.
func (c *Client) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	return c.get(ctx, imageURL)
}

// getCard fetches and decodes one card record.
func (c *Client) getCard(ctx context.Context, endpoint string) (*Card, error) {
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	var card Card
	if err := json.Unmarshal(body, &card); err != nil {
		return nil, fmt.Errorf("parsing card record: %w", err)
	}
	return &card, nil
}

// get performs a rate-limited GET and returns the response body.
func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "*/*")

	c.logger.Debug("scryfall request", "url", endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: HTTP %d", endpoint, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
