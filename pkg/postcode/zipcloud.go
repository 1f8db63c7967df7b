package postcode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultZipcloudURL = "https://zipcloud.ibsnet.co.jp/api/search"

	defaultHTTPTimeout = 5 * time.Second
	maxResponseBytes   = 1 << 20
)

// Zipcloud queries the zipcloud postal code API.
type Zipcloud struct {
	baseURL string
	client  *http.Client
}

// ZipcloudOption configures Zipcloud.
type ZipcloudOption func(*Zipcloud)

// WithBaseURL points the client at another endpoint, typically an httptest server.
func WithBaseURL(u string) ZipcloudOption {
	return func(z *Zipcloud) {
		if u != "" {
			z.baseURL = u
		}
	}
}

// WithHTTPClient replaces the default client (5s timeout).
func WithHTTPClient(c *http.Client) ZipcloudOption {
	return func(z *Zipcloud) {
		if c != nil {
			z.client = c
		}
	}
}

// NewZipcloud creates a zipcloud API client.
func NewZipcloud(opts ...ZipcloudOption) *Zipcloud {
	z := &Zipcloud{
		baseURL: DefaultZipcloudURL,
		client:  &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(z)
	}
	return z
}

type zipcloudResponse struct {
	Status  int               `json:"status"`
	Message *string           `json:"message"`
	Results []zipcloudAddress `json:"results"`
}

type zipcloudAddress struct {
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	Address3 string `json:"address3"`
	Zipcode  string `json:"zipcode"`
}

// Lookup fetches the first result for code. A null result list is ErrNotFound.
func (z *Zipcloud) Lookup(ctx context.Context, code string) (Record, error) {
	code = Normalize(code)
	if !Valid(code) {
		return Record{}, fmt.Errorf("%w: %q", ErrInvalidCode, code)
	}

	endpoint := z.baseURL + "?" + url.Values{"zipcode": {code}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Record{}, fmt.Errorf("%w: create request: %v", ErrLookupFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := z.client.Do(req)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Record{}, fmt.Errorf("%w: unexpected status %d", ErrLookupFailed, resp.StatusCode)
	}

	var body zipcloudResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&body); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	// zipcloud reports parameter errors in the payload with HTTP 200.
	if body.Status != http.StatusOK {
		msg := ""
		if body.Message != nil {
			msg = *body.Message
		}
		return Record{}, fmt.Errorf("%w: status %d: %s", ErrLookupFailed, body.Status, msg)
	}

	if len(body.Results) == 0 {
		return Record{}, ErrNotFound
	}

	first := body.Results[0]
	rec := Record{
		Prefecture: strings.TrimSpace(first.Address1),
		City:       strings.TrimSpace(first.Address2),
		Town:       strings.TrimSpace(first.Address3),
	}
	if rec.Prefecture == "" || rec.City == "" {
		return Record{}, fmt.Errorf("%w: empty prefecture or city", ErrMalformedResponse)
	}
	return rec, nil
}
