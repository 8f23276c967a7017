// Package studiotest provides an in-process fake of the studio API.
package studiotest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/five82/aperture/internal/studio"
)

// Response is the canned reply for one route.
type Response struct {
	Status int
	Body   string
	// Gate, when non-nil, blocks the handler until it is closed or the
	// request is cancelled.
	Gate chan struct{}
}

// Request records what the fake received.
type Request struct {
	Header http.Header
	Query  map[string][]string
	Body   []byte
}

// Server is a chi-routed fake backend that counts calls per route.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	responses map[string]Response
	calls     map[string]int
	requests  map[string][]Request
}

// New starts a fake backend mounted under /api/v1 and registers Close as a
// test cleanup. Every read route answers with an empty envelope until
// overridden with Respond.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		responses: map[string]Response{},
		calls:     map[string]int{},
		requests:  map[string][]Request{},
	}
	s.defaults()

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Get(studio.PathServices, s.handle(http.MethodGet, studio.PathServices))
		r.Get(studio.PathServiceBySlug+"{slug}", s.handleSlug)
		r.Get(studio.PathPackages, s.handle(http.MethodGet, studio.PathPackages))
		r.Get(studio.PathGalleryImages, s.handle(http.MethodGet, studio.PathGalleryImages))
		r.Get(studio.PathGalleryCategories, s.handle(http.MethodGet, studio.PathGalleryCategories))
		r.Get(studio.PathSlides, s.handle(http.MethodGet, studio.PathSlides))
		r.Get(studio.PathTestimonials, s.handle(http.MethodGet, studio.PathTestimonials))
		r.Post(studio.PathCreateEnquiry, s.handle(http.MethodPost, studio.PathCreateEnquiry))
		r.Post(studio.PathCreateTestimonial, s.handle(http.MethodPost, studio.PathCreateTestimonial))
	})

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// BaseURL returns the API root to hand to studio.NewClient.
func (s *Server) BaseURL() string {
	return s.URL + "/api/v1"
}

// Respond overrides the reply for method and path. Paths are the studio.Path*
// constants; slug lookups use studio.PathServiceBySlug plus the slug.
func (s *Server) Respond(method, path string, resp Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[key(method, path)] = resp
}

// Calls returns how many requests reached method and path.
func (s *Server) Calls(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[key(method, path)]
}

// Requests returns a copy of the recorded requests for method and path.
func (s *Server) Requests(method, path string) []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests[key(method, path)]...)
}

func (s *Server) defaults() {
	s.responses[key(http.MethodGet, studio.PathServices)] = Response{Status: http.StatusOK, Body: `{"services":[]}`}
	s.responses[key(http.MethodGet, studio.PathPackages)] = Response{Status: http.StatusOK, Body: `{"packages":[]}`}
	s.responses[key(http.MethodGet, studio.PathGalleryImages)] = Response{Status: http.StatusOK, Body: `{"images":[]}`}
	s.responses[key(http.MethodGet, studio.PathGalleryCategories)] = Response{Status: http.StatusOK, Body: `{"categories":[]}`}
	s.responses[key(http.MethodGet, studio.PathSlides)] = Response{Status: http.StatusOK, Body: `{"data":[]}`}
	s.responses[key(http.MethodGet, studio.PathTestimonials)] = Response{Status: http.StatusOK, Body: `{"testimonials":[]}`}
	s.responses[key(http.MethodPost, studio.PathCreateEnquiry)] = Response{Status: http.StatusCreated, Body: `{"message":"Enquiry created"}`}
	s.responses[key(http.MethodPost, studio.PathCreateTestimonial)] = Response{Status: http.StatusCreated, Body: `{"message":"Review submitted"}`}
}

func (s *Server) handleSlug(w http.ResponseWriter, r *http.Request) {
	path := studio.PathServiceBySlug + chi.URLParam(r, "slug")
	s.handle(http.MethodGet, path)(w, r)
}

func (s *Server) handle(method, path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		k := key(method, path)

		s.mu.Lock()
		s.calls[k]++
		s.requests[k] = append(s.requests[k], Request{
			Header: r.Header.Clone(),
			Query:  r.URL.Query(),
			Body:   body,
		})
		resp, ok := s.responses[k]
		s.mu.Unlock()

		if !ok {
			http.NotFound(w, r)
			return
		}
		if resp.Gate != nil {
			select {
			case <-resp.Gate:
			case <-r.Context().Done():
				return
			}
		}
		status := resp.Status
		if status == 0 {
			status = http.StatusOK
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, resp.Body)
	}
}

func key(method, path string) string {
	return method + " " + path
}
