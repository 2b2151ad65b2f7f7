package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
)

// FormField is the form field carrying the image data URL.
const FormField = "imageBase64"

// DefaultEndpoint is the classifier path on the page's origin.
const DefaultEndpoint = "/hook2"

// maxResponseBytes bounds how much of a response body is read; responses
// carry one annotated image plus a crop per digit.
const maxResponseBytes = 32 << 20

var (
	// ErrStatus is wrapped by errors for non-2xx responses.
	ErrStatus = errors.New("unexpected response status")

	// ErrMalformed is wrapped by errors for bodies that are neither the
	// sentinel nor a consistent prediction document.
	ErrMalformed = errors.New("malformed prediction response")
)

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client posts drawings to the classifier.
type Client struct {
	endpoint string
	http     Doer
	logger   *log.Logger
	debug    bool
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) {
		c.http = d
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// NewClient creates a client for the classifier at endpoint. An empty
// endpoint means DefaultEndpoint.
func NewClient(endpoint string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint: endpoint,
		http:     http.DefaultClient,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the classifier URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Submit sends one drawing, given as a data URL, and returns the
// classifier's outcome.
func (c *Client) Submit(ctx context.Context, dataURL string) (*Outcome, error) {
	form := url.Values{FormField: {dataURL}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	if c.debug {
		c.logger.Printf("POST %s (%d byte image)", c.endpoint, len(dataURL))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("prediction request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if c.debug {
		c.logger.Printf("%s: %d, %d bytes", c.endpoint, resp.StatusCode, len(body))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrStatus, resp.Status)
	}

	return ParseResponse(body)
}

// ParseResponse interprets a classifier response body.
func ParseResponse(body []byte) (*Outcome, error) {
	body = bytes.TrimSpace(body)
	if isSentinel(body) {
		return &Outcome{Empty: true, Message: Sentinel}, nil
	}

	var p Prediction
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	// null, {} and unrelated objects decode cleanly; a prediction always
	// carries its annotated image.
	var fields struct {
		Image *string `json:"image"`
	}
	if err := json.Unmarshal(body, &fields); err != nil || fields.Image == nil {
		return nil, fmt.Errorf("%w: no image field", ErrMalformed)
	}
	if len(p.SmallImages) != len(p.SmallPredictions) {
		return nil, fmt.Errorf("%w: %d small images but %d prediction lists",
			ErrMalformed, len(p.SmallImages), len(p.SmallPredictions))
	}

	return &Outcome{Prediction: &p}, nil
}

// isSentinel accepts the sentinel as plain text or as a JSON string, which
// is what a backend that jsonifies every reply sends.
func isSentinel(body []byte) bool {
	if string(body) == Sentinel {
		return true
	}
	if len(body) == 0 || body[0] != '"' {
		return false
	}
	var s string
	return json.Unmarshal(body, &s) == nil && s == Sentinel
}
