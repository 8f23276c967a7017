package studio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/five82/aperture/internal/credentials"
)

// Fetcher defines the read side of the studio API.
// This interface is implemented by *Client and can be used for testing.
type Fetcher interface {
	FetchServices(ctx context.Context, query ListQuery) ([]Service, error)
	FetchServiceBySlug(ctx context.Context, slug string) (*Service, error)
	FetchPackages(ctx context.Context, query ListQuery) ([]Package, error)
	FetchGalleryImages(ctx context.Context, query ListQuery) ([]GalleryImage, error)
	FetchGalleryCategories(ctx context.Context) ([]Category, error)
	FetchSlides(ctx context.Context, query ListQuery) ([]Slide, error)
	FetchTestimonials(ctx context.Context, query ListQuery) ([]Testimonial, error)
}

// Writer defines the write side of the studio API.
type Writer interface {
	CreateEnquiry(ctx context.Context, req EnquiryRequest, idempotencyKey string) (EnquiryResponse, error)
	CreateTestimonial(ctx context.Context, req TestimonialRequest) (TestimonialResponse, error)
}

// Ensure Client implements both sides at compile time.
var (
	_ Fetcher = (*Client)(nil)
	_ Writer  = (*Client)(nil)
)

// Endpoint paths relative to the API base URL.
const (
	PathServices          = "/services/get-services"
	PathServiceBySlug     = "/services/slug/"
	PathPackages          = "/packages/get-packages"
	PathGalleryImages     = "/gallery/images"
	PathGalleryCategories = "/gallery/categories"
	PathSlides            = "/slider/get-sliders"
	PathTestimonials      = "/testimonials/get-testimonials"
	PathCreateEnquiry     = "/enquiries/create-enquiry"
	PathCreateTestimonial = "/testimonials/create-testimonial"
)

// DefaultBaseURL is the production API used when no base URL is configured.
const DefaultBaseURL = "https://backend.jayaphotography.in/api/v1"

const (
	defaultUserAgent = "aperture/0.1"
	requestTimeout   = 10 * time.Second
	maxErrorBody     = 64 << 10
)

// Client talks to the studio HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	creds     credentials.Provider
	logger    *slog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithCredentials sets the bearer token provider.
func WithCredentials(p credentials.Provider) Option {
	return func(c *Client) {
		if p != nil {
			c.creds = p
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient builds a Client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		creds:     credentials.None(),
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the resolved API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// ListQuery configures collection reads.
type ListQuery struct {
	ActiveOnly bool
	SortBy     string
	SortOrder  string
	Limit      int
}

func (q ListQuery) values() url.Values {
	values := url.Values{}
	if q.ActiveOnly {
		values.Set("isActive", "true")
	}
	if sortBy := strings.TrimSpace(q.SortBy); sortBy != "" {
		values.Set("sortBy", sortBy)
	}
	if order := strings.TrimSpace(q.SortOrder); order != "" {
		values.Set("sortOrder", order)
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	return values
}

// FetchServices retrieves the photography services.
func (c *Client) FetchServices(ctx context.Context, query ListQuery) ([]Service, error) {
	return fetchCollection[Service](ctx, c, PathServices, query.values(), "services")
}

// FetchServiceBySlug retrieves a single service.
func (c *Client) FetchServiceBySlug(ctx context.Context, slug string) (*Service, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, fmt.Errorf("service slug required")
	}
	body, err := c.doURL(ctx, http.MethodGet, PathServiceBySlug+url.PathEscape(slug), nil, nil)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Service *Service `json:"service"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Service != nil {
		return envelope.Service, nil
	}
	var svc Service
	if err := json.Unmarshal(body, &svc); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &svc, nil
}

// FetchPackages retrieves the booking packages.
func (c *Client) FetchPackages(ctx context.Context, query ListQuery) ([]Package, error) {
	return fetchCollection[Package](ctx, c, PathPackages, query.values(), "packages")
}

// FetchGalleryImages retrieves gallery images.
func (c *Client) FetchGalleryImages(ctx context.Context, query ListQuery) ([]GalleryImage, error) {
	return fetchCollection[GalleryImage](ctx, c, PathGalleryImages, query.values(), "images")
}

// FetchGalleryCategories retrieves the gallery category list.
func (c *Client) FetchGalleryCategories(ctx context.Context) ([]Category, error) {
	return fetchCollection[Category](ctx, c, PathGalleryCategories, nil, "categories")
}

// FetchSlides retrieves hero carousel slides.
func (c *Client) FetchSlides(ctx context.Context, query ListQuery) ([]Slide, error) {
	return fetchCollection[Slide](ctx, c, PathSlides, query.values(), "sliders", "slides")
}

// FetchTestimonials retrieves published testimonials.
func (c *Client) FetchTestimonials(ctx context.Context, query ListQuery) ([]Testimonial, error) {
	return fetchCollection[Testimonial](ctx, c, PathTestimonials, query.values(), "testimonials")
}

// CreateEnquiry posts an enquiry. A non-empty idempotencyKey is sent as the
// Idempotency-Key header.
func (c *Client) CreateEnquiry(ctx context.Context, req EnquiryRequest, idempotencyKey string) (EnquiryResponse, error) {
	if c == nil {
		return EnquiryResponse{}, fmt.Errorf("client is nil")
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return EnquiryResponse{}, fmt.Errorf("encode enquiry: %w", err)
	}
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	if key := strings.TrimSpace(idempotencyKey); key != "" {
		headers.Set("Idempotency-Key", key)
	}
	body, err := c.doURL(ctx, http.MethodPost, PathCreateEnquiry, bytes.NewReader(payload), headers)
	if err != nil {
		return EnquiryResponse{}, err
	}
	var ack EnquiryResponse
	// The record exists once the server answered 2xx; an odd ack body is not a failure.
	_ = json.Unmarshal(body, &ack)
	return ack, nil
}

// CreateTestimonial posts a review as multipart form data.
func (c *Client) CreateTestimonial(ctx context.Context, req TestimonialRequest) (TestimonialResponse, error) {
	if c == nil {
		return TestimonialResponse{}, fmt.Errorf("client is nil")
	}
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	for _, kv := range req.fields() {
		if err := form.WriteField(kv[0], kv[1]); err != nil {
			return TestimonialResponse{}, fmt.Errorf("encode review: %w", err)
		}
	}
	if err := form.Close(); err != nil {
		return TestimonialResponse{}, fmt.Errorf("encode review: %w", err)
	}
	headers := http.Header{}
	headers.Set("Content-Type", form.FormDataContentType())
	body, err := c.doURL(ctx, http.MethodPost, PathCreateTestimonial, &buf, headers)
	if err != nil {
		return TestimonialResponse{}, err
	}
	var ack TestimonialResponse
	_ = json.Unmarshal(body, &ack)
	return ack, nil
}

func fetchCollection[T any](ctx context.Context, c *Client, path string, query url.Values, envelopeKeys ...string) ([]T, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	rel := path
	if len(query) > 0 {
		rel += "?" + query.Encode()
	}
	body, err := c.doURL(ctx, http.MethodGet, rel, nil, nil)
	if err != nil {
		return nil, err
	}
	items, err := DecodeCollection[T](body, envelopeKeys...)
	if err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return items, nil
}

func (c *Client) doURL(ctx context.Context, method, rel string, body io.Reader, headers http.Header) ([]byte, error) {
	reqURL, err := c.resolve(rel)
	if err != nil {
		return nil, err
	}
	path := strings.SplitN(rel, "?", 2)[0]

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for name, values := range headers {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	token, err := c.creds.Token(ctx)
	if err != nil {
		c.logger.Warn("credential lookup failed", "error", err)
	} else if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log := c.logger.With("method", method, "path", path, "request_id", requestID)
	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("request failed", "error", err)
		return nil, &NetworkError{Method: method, Path: path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		serverErr := &ServerError{
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: serverMessage(raw),
		}
		log.Warn("request rejected", "status", resp.StatusCode, "message", serverErr.Message)
		return nil, serverErr
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Method: method, Path: path, Err: fmt.Errorf("read body: %w", err)}
	}
	log.Debug("request completed", "status", resp.StatusCode, "bytes", len(data), "elapsed", time.Since(started))
	return data, nil
}

func (c *Client) resolve(rel string) (*url.URL, error) {
	path, rawQuery, _ := strings.Cut(rel, "?")
	u := c.baseURL.JoinPath(path)
	u.RawQuery = rawQuery
	return u, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
