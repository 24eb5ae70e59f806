// Package api is the HTTP data-access layer for the income category endpoints.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fjacquet/income-categories/internal/logging"
	"fjacquet/income-categories/internal/models"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"
)

const basePath = "/api/income-categories"

// Response is the raw outcome of a successful request.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Page is one page of a filtered listing. Meta is nil when the server sent no
// pagination metadata.
type Page struct {
	Items []models.IncomeCategory
	Meta  *models.PageMeta
}

type envelope[T any] struct {
	Data T                `json:"data"`
	Meta *models.PageMeta `json:"meta,omitempty"`
}

// Client talks to the income category endpoints. It is safe for concurrent use.
type Client struct {
	baseURL      *url.URL
	httpClient   *http.Client
	token        string
	limiter      *rate.Limiter
	logger       logging.Logger
	newRequestID func() string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout. A client passed through
// WithHTTPClient is copied, never modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

// WithToken sends the token as a bearer Authorization header.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithRateLimit spaces requests to at most perMinute per minute. Zero disables it.
func WithRateLimit(perMinute int) Option {
	return func(c *Client) {
		if perMinute <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), 1)
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger logging.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a Client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", baseURL)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	c := &Client{
		baseURL: u,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		},
		logger:       logging.NewDiscardLogger(),
		newRequestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListAll fetches the unpaginated lookup list.
func (c *Client) ListAll(ctx context.Context) ([]models.IncomeCategory, error) {
	resp, err := c.do(ctx, http.MethodGet, basePath+"/list", nil, nil)
	if err != nil {
		return nil, err
	}

	var env envelope[[]models.IncomeCategory]
	if err := decode(resp, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// ListPage fetches one page of categories whose name matches nameFilter.
func (c *Client) ListPage(ctx context.Context, page, limit int, nameFilter string) (Page, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	q.Set("name", nameFilter)

	resp, err := c.do(ctx, http.MethodGet, basePath, q, nil)
	if err != nil {
		return Page{}, err
	}

	var env envelope[[]models.IncomeCategory]
	if err := decode(resp, &env); err != nil {
		return Page{}, err
	}
	return Page{Items: env.Data, Meta: env.Meta}, nil
}

// Get fetches a single category.
func (c *Client) Get(ctx context.Context, id int64) (models.IncomeCategory, error) {
	resp, err := c.do(ctx, http.MethodGet, categoryPath(id), nil, nil)
	if err != nil {
		return models.IncomeCategory{}, err
	}

	var env envelope[models.IncomeCategory]
	if err := decode(resp, &env); err != nil {
		return models.IncomeCategory{}, err
	}
	return env.Data, nil
}

// Create posts a new category.
func (c *Client) Create(ctx context.Context, input models.IncomeCategoryInput) (*Response, error) {
	return c.do(ctx, http.MethodPost, basePath, nil, input)
}

// Update replaces the fields of category id.
func (c *Client) Update(ctx context.Context, id int64, input models.IncomeCategoryInput) (*Response, error) {
	return c.do(ctx, http.MethodPut, categoryPath(id), nil, input)
}

// Delete removes one category, or several in a single request when more than
// one id is given.
func (c *Client) Delete(ctx context.Context, ids ...int64) (*Response, error) {
	if len(ids) == 0 {
		return nil, errors.New("delete: at least one id is required")
	}
	return c.do(ctx, http.MethodDelete, basePath+"/"+models.JoinIDs(ids), nil, nil)
}

// CloseIdleConnections releases pooled connections of the underlying client.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

func categoryPath(id int64) string {
	return basePath + "/" + strconv.FormatInt(id, 10)
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}) (*Response, error) {
	target := c.endpoint(path, query)
	requestID := c.newRequestID()
	log := c.logger.WithFields(
		logging.F(logging.FieldMethod, method),
		logging.F(logging.FieldURL, target),
		logging.F(logging.FieldRequestID, requestID),
	)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &NetworkError{Method: method, URL: target, Err: err}
		}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Warn("Request failed without response")
		return nil, &NetworkError{Method: method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Method: method, URL: target, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	log = log.WithFields(
		logging.F(logging.FieldStatusCode, resp.StatusCode),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		re := newResponseError(method, target, resp.StatusCode, data)
		log.Warn("Request rejected", logging.F(logging.FieldErrorType, re.ErrorType))
		return nil, re
	}

	log.Debug("Request completed")
	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

func decode(resp *Response, v interface{}) error {
	if err := json.Unmarshal(resp.Body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
