package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/custodia-labs/pardis/internal/core/domain"
)

const (
	// DefaultTimeout bounds a single HTTP exchange when the caller's
	// context carries no deadline.
	DefaultTimeout = 15 * time.Second

	// MaxBodyBytes caps how much of a response body is read.
	MaxBodyBytes = 8 << 20

	// maxErrorMessage caps the body excerpt kept in an APIError.
	maxErrorMessage = 200
)

// Config holds outbound policy for one Client.
type Config struct {
	// RelayURL is prefixed to every target URL, query-escaped.
	// Empty sends requests direct.
	RelayURL string

	// UserAgent is sent on every request.
	UserAgent string

	// Rate is the proactive request rate in requests per second.
	// Zero uses DefaultRate; negative disables throttling.
	Rate float64

	// HTTPClient overrides the underlying client.
	HTTPClient *http.Client
}

// Client fetches JSON and HTML from one remote source.
type Client struct {
	http      *http.Client
	relay     string
	userAgent string
	limiter   *RateLimiter
}

// NewClient creates a Client from cfg.
func NewClient(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: DefaultTimeout}
	}
	r := cfg.Rate
	if r == 0 {
		r = DefaultRate
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = domain.DefaultUserAgent
	}
	return &Client{
		http:      hc,
		relay:     cfg.RelayURL,
		userAgent: ua,
		limiter:   NewRateLimiter(r),
	}
}

// Via returns the URL actually requested for target, applying the relay.
func (c *Client) Via(target string) string {
	if c.relay == "" {
		return target
	}
	return c.relay + url.QueryEscape(target)
}

// Get fetches target and returns the (capped) body of a 2xx response.
func (c *Client) Get(ctx context.Context, target string, header http.Header) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Via(target), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", target, err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &RateLimitError{RetryAfter: c.limiter.UpdateFromResponse(resp), URL: target}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.limiter.UpdateFromResponse(resp)
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    excerpt(body),
			URL:        target,
		}
	}

	return body, nil
}

// GetJSON fetches target and decodes the body into v.
func (c *Client) GetJSON(ctx context.Context, target string, header http.Header, v any) error {
	h := header.Clone()
	if h == nil {
		h = http.Header{}
	}
	if h.Get("Accept") == "" {
		h.Set("Accept", "application/json")
	}

	body, err := c.Get(ctx, target, h)
	if err != nil {
		return err
	}
	return DecodeJSON(body, target, v)
}

// GetHTML fetches target and parses the body as an HTML document.
func (c *Client) GetHTML(ctx context.Context, target string, header http.Header) (*goquery.Document, error) {
	body, err := c.Get(ctx, target, header)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w: %w", target, domain.ErrMalformedPayload, err)
	}
	return doc, nil
}

// DecodeJSON decodes body into v. Bodies that announce a rate limit
// instead of carrying JSON yield a RateLimitError.
func DecodeJSON(body []byte, target string, v any) error {
	if !json.Valid(body) {
		if AnnouncesRateLimit(body) {
			return &RateLimitError{URL: target}
		}
		return fmt.Errorf("decode %s: %w", target, domain.ErrMalformedPayload)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w: %w", target, domain.ErrMalformedPayload, err)
	}
	return nil
}

// AnnouncesRateLimit reports whether a body is a rate-limit notice.
func AnnouncesRateLimit(body []byte) bool {
	s := string(body)
	return strings.Contains(s, "Too Many Requests") || strings.Contains(s, "Rate Limit")
}

// Resolve turns href into an absolute URL against base.
// Absolute hrefs are returned unchanged.
func Resolve(base, href string) string {
	href = strings.TrimSpace(href)
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	b, err := url.Parse(base)
	if err != nil {
		return base + href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return base + href
	}
	return b.ResolveReference(ref).String()
}

func excerpt(body []byte) string {
	s := strings.Join(strings.Fields(string(body)), " ")
	if len(s) > maxErrorMessage {
		s = strings.ToValidUTF8(s[:maxErrorMessage], "")
	}
	return s
}
