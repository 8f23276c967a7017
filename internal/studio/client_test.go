package studio

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/five82/aperture/internal/credentials"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != DefaultBaseURL {
		t.Fatalf("default url = %q, want %q", u.String(), DefaultBaseURL)
	}

	u, err = parseBaseURL("http://example.com:1234/api/v1/?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "/api/v1" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	u, err = parseBaseURL("studio.example.com/api")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" || u.Host != "studio.example.com" {
		t.Fatalf("url = %q, want https://studio.example.com/api", u.String())
	}

	if _, err := parseBaseURL("http:///nohost"); err == nil {
		t.Fatalf("parseBaseURL accepted url without host")
	}
}

func TestClient_FetchesEndpointsAndEncodesQueries(t *testing.T) {
	t.Parallel()

	var (
		mu           sync.Mutex
		gotQuery     url.Values
		gotUserAgent string
		gotAuth      string
		requestIDs   = map[string]bool{}
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		gotUserAgent = r.Header.Get("User-Agent")
		gotAuth = r.Header.Get("Authorization")
		requestIDs[r.Header.Get("X-Request-ID")] = true
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/api/v1/services/get-services":
			mu.Lock()
			gotQuery = r.URL.Query()
			mu.Unlock()
			_, _ = w.Write([]byte(`{"services":[{"id":"s1","title":"Maternity","slug":"maternity","isActive":true}]}`))
		case "/api/v1/services/slug/baby":
			_, _ = w.Write([]byte(`{"service":{"id":2,"title":"Baby","slug":"baby"}}`))
		case "/api/v1/packages/get-packages":
			_, _ = w.Write([]byte(`[{"id":1,"title":"Classic","price":25000}]`))
		case "/api/v1/gallery/images":
			_, _ = w.Write([]byte(`{"images":[{"id":"g1","title":"Dawn","category":"baby"}]}`))
		case "/api/v1/gallery/categories":
			_, _ = w.Write([]byte(`{"categories":["baby",{"name":"family"}]}`))
		case "/api/v1/slider/get-sliders":
			_, _ = w.Write([]byte(`{"data":[{"title":"Welcome","order":2}]}`))
		case "/api/v1/testimonials/get-testimonials":
			_, _ = w.Write([]byte(`{"testimonials":[{"name":"Asha","rating":5,"type":"text"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/api/v1", WithCredentials(credentials.Static("tok")))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	services, err := c.FetchServices(ctx, ListQuery{ActiveOnly: true, SortBy: "sortOrder", SortOrder: "asc", Limit: 50})
	if err != nil {
		t.Fatalf("FetchServices returned error: %v", err)
	}
	if len(services) != 1 || services[0].ID != "s1" || services[0].DisplayName() != "Maternity" {
		t.Fatalf("FetchServices = %#v, want one Maternity service", services)
	}
	if gotQuery.Get("isActive") != "true" ||
		gotQuery.Get("sortBy") != "sortOrder" ||
		gotQuery.Get("sortOrder") != "asc" ||
		gotQuery.Get("limit") != "50" {
		t.Fatalf("FetchServices query = %v, want params encoded", gotQuery)
	}

	svc, err := c.FetchServiceBySlug(ctx, "baby")
	if err != nil {
		t.Fatalf("FetchServiceBySlug returned error: %v", err)
	}
	if svc.ID != "2" || svc.Slug != "baby" {
		t.Fatalf("FetchServiceBySlug = %#v, want id=2 slug=baby", svc)
	}

	packages, err := c.FetchPackages(ctx, ListQuery{})
	if err != nil {
		t.Fatalf("FetchPackages returned error: %v", err)
	}
	if len(packages) != 1 || packages[0].Price != "25000" {
		t.Fatalf("FetchPackages = %#v, want price 25000", packages)
	}

	images, err := c.FetchGalleryImages(ctx, ListQuery{})
	if err != nil || len(images) != 1 || images[0].Category != "baby" {
		t.Fatalf("FetchGalleryImages = %#v, %v", images, err)
	}

	categories, err := c.FetchGalleryCategories(ctx)
	if err != nil {
		t.Fatalf("FetchGalleryCategories returned error: %v", err)
	}
	if len(categories) != 2 || categories[0] != "baby" || categories[1] != "family" {
		t.Fatalf("FetchGalleryCategories = %v, want [baby family]", categories)
	}

	slides, err := c.FetchSlides(ctx, ListQuery{})
	if err != nil || len(slides) != 1 || slides[0].Order != 2 {
		t.Fatalf("FetchSlides = %#v, %v", slides, err)
	}

	testimonials, err := c.FetchTestimonials(ctx, ListQuery{})
	if err != nil || len(testimonials) != 1 || testimonials[0].Rating != 5 {
		t.Fatalf("FetchTestimonials = %#v, %v", testimonials, err)
	}

	mu.Lock()
	defer mu.Unlock()
	if !strings.HasPrefix(gotUserAgent, "aperture/") {
		t.Fatalf("User-Agent = %q, want aperture/*", gotUserAgent)
	}
	if gotAuth != "Bearer tok" {
		t.Fatalf("Authorization = %q, want Bearer tok", gotAuth)
	}
	if len(requestIDs) != 7 {
		t.Fatalf("distinct X-Request-ID = %d, want 7", len(requestIDs))
	}
}

func TestClient_OmitsAuthorizationWithoutToken(t *testing.T) {
	t.Parallel()

	var gotAuth = "unset"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.FetchPackages(context.Background(), ListQuery{}); err != nil {
		t.Fatalf("FetchPackages returned error: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("Authorization = %q, want empty", gotAuth)
	}
}

func TestClient_CreateEnquirySendsJSONAndIdempotencyKey(t *testing.T) {
	t.Parallel()

	var (
		gotMethod string
		gotType   string
		gotKey    string
		gotBody   EnquiryRequest
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != PathCreateEnquiry {
			http.NotFound(w, r)
			return
		}
		gotMethod = r.Method
		gotType = r.Header.Get("Content-Type")
		gotKey = r.Header.Get("Idempotency-Key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"ok","id":17}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	req := EnquiryRequest{
		Name:        "Jane",
		Email:       "jane@example.com",
		Phone:       "9999999999",
		ServiceType: "maternity",
		Message:     "Hello",
		Source:      "contact_form",
		SubmittedAt: "2026-01-01T00:00:00.000Z",
	}
	ack, err := c.CreateEnquiry(context.Background(), req, "key-1")
	if err != nil {
		t.Fatalf("CreateEnquiry returned error: %v", err)
	}
	if ack.ID != "17" || ack.Message != "ok" {
		t.Fatalf("ack = %#v, want id=17 message=ok", ack)
	}
	if gotMethod != http.MethodPost || gotType != "application/json" || gotKey != "key-1" {
		t.Fatalf("request = %s %q key=%q", gotMethod, gotType, gotKey)
	}
	if gotBody != req {
		t.Fatalf("body = %#v, want %#v", gotBody, req)
	}
}

func TestClient_CreateEnquiryToleratesOddAck(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`created`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.CreateEnquiry(context.Background(), EnquiryRequest{Name: "x"}, ""); err != nil {
		t.Fatalf("CreateEnquiry returned error for 2xx: %v", err)
	}
}

func TestClient_CreateTestimonialSendsMultipart(t *testing.T) {
	t.Parallel()

	got := map[string]string{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		for k, v := range r.MultipartForm.Value {
			got[k] = v[0]
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"Thanks for the review"}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ack, err := c.CreateTestimonial(context.Background(), TestimonialRequest{
		Name:     "Ravi",
		Service:  "Family",
		Location: "Chennai",
		Rating:   4,
		Text:     "Lovely",
		Email:    "ravi@example.com",
	})
	if err != nil {
		t.Fatalf("CreateTestimonial returned error: %v", err)
	}
	if ack.Message != "Thanks for the review" {
		t.Fatalf("ack = %#v", ack)
	}
	want := map[string]string{
		"name": "Ravi", "service": "Family", "location": "Chennai",
		"rating": "4", "text": "Lovely", "email": "ravi@example.com", "type": "text",
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("field %s = %q, want %q", k, got[k], v)
		}
	}
	if _, ok := got["phone"]; ok {
		t.Fatalf("empty phone field was sent")
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case PathServices:
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		case PathPackages:
			http.Error(w, "nope", http.StatusInternalServerError)
		case PathCreateEnquiry:
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"Email already used"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.FetchServices(context.Background(), ListQuery{})
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("FetchServices error = %v, want decode response error", err)
	}

	_, err = c.FetchPackages(context.Background(), ListQuery{})
	var serverErr *ServerError
	if !errors.As(err, &serverErr) || serverErr.Status != http.StatusInternalServerError {
		t.Fatalf("FetchPackages error = %v, want status 500 error", err)
	}
	if UserMessage(err, "fallback") != "fallback" {
		t.Fatalf("UserMessage for plain-text body = %q, want fallback", UserMessage(err, "fallback"))
	}

	_, err = c.CreateEnquiry(context.Background(), EnquiryRequest{}, "")
	if got := UserMessage(err, "fallback"); got != "Email already used" {
		t.Fatalf("UserMessage = %q, want server message", got)
	}
}

func TestClient_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	c, err := NewClient(addr, WithTimeout(500*time.Millisecond))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FetchSlides(context.Background(), ListQuery{})
	if !IsNetwork(err) {
		t.Fatalf("FetchSlides error = %v, want network error", err)
	}
	if UserMessage(err, "Failed to load slides") != "Failed to load slides" {
		t.Fatalf("UserMessage did not fall back for network error")
	}
}

func TestClient_FetchServiceBySlugRequiresSlug(t *testing.T) {
	c, err := NewClient("127.0.0.1:1")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.FetchServiceBySlug(context.Background(), "  "); err == nil {
		t.Fatalf("FetchServiceBySlug returned nil error, want error")
	}
}

func TestClient_CredentialErrorStillSendsRequest(t *testing.T) {
	t.Parallel()

	hit := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
		_, _ = io.WriteString(w, `[]`)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, WithCredentials(failingProvider{}))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.FetchTestimonials(context.Background(), ListQuery{}); err != nil {
		t.Fatalf("FetchTestimonials returned error: %v", err)
	}
	if !hit {
		t.Fatalf("request was not sent")
	}
}

type failingProvider struct{}

func (failingProvider) Token(context.Context) (string, error) {
	return "", errors.New("keyring locked")
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestClient_CustomHTTPClientAndUserAgent(t *testing.T) {
	var gotUserAgent string
	transport := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		gotUserAgent = r.Header.Get("User-Agent")
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(`{"packages":[{"id":"p1","title":"Gold"}]}`)),
			Request:    r,
		}, nil
	})

	c, err := NewClient("http://studio.test/api/v1",
		WithHTTPClient(&http.Client{Transport: transport}),
		WithUserAgent("aperture/1.2.3"),
	)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	packages, err := c.FetchPackages(context.Background(), ListQuery{})
	if err != nil || len(packages) != 1 || packages[0].ID != "p1" {
		t.Fatalf("FetchPackages = %#v, %v", packages, err)
	}
	if gotUserAgent != "aperture/1.2.3" {
		t.Fatalf("User-Agent = %q, want aperture/1.2.3", gotUserAgent)
	}
}
