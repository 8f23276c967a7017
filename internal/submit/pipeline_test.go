package submit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/five82/aperture/internal/studio"
	"github.com/five82/aperture/internal/studio/studiotest"
)

var fixedNow = func() time.Time { return time.Date(2026, 3, 4, 5, 6, 7, 890_000_000, time.UTC) }

func newEnquiryPipeline(t *testing.T, srv *studiotest.Server) *Pipeline[Enquiry] {
	t.Helper()
	client, err := studio.NewClient(srv.BaseURL())
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return NewPipeline(EnquirySender(client, fixedNow), EnquiryBusyMessage, nil)
}

func janeEnquiry() Enquiry {
	return Enquiry{Name: "Jane", Email: "jane@x.com", Phone: "555", ServiceType: "baby", Message: "hi"}
}

func TestSubmitEnquirySucceeds(t *testing.T) {
	srv := studiotest.New(t)
	p := newEnquiryPipeline(t, srv)

	res := p.Submit(context.Background(), janeEnquiry())
	if res.Outcome != OutcomeSucceeded {
		t.Fatalf("Outcome = %v (%q), want succeeded", res.Outcome, res.Message)
	}
	if res.Message != "Thank you! We'll get back to you within 24 hours." {
		t.Fatalf("Message = %q", res.Message)
	}
	if p.Phase() != Succeeded {
		t.Fatalf("Phase = %v, want succeeded", p.Phase())
	}
	p.Reset()
	if p.Phase() != Idle {
		t.Fatalf("Phase after Reset = %v, want idle", p.Phase())
	}

	reqs := srv.Requests(http.MethodPost, studio.PathCreateEnquiry)
	if len(reqs) != 1 {
		t.Fatalf("requests = %d, want 1", len(reqs))
	}
	var body map[string]any
	if err := json.Unmarshal(reqs[0].Body, &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["source"] != "contact_form" || body["serviceType"] != "baby" {
		t.Fatalf("body = %v, want contact_form/baby", body)
	}
	if body["submittedAt"] != "2026-03-04T05:06:07.890Z" {
		t.Fatalf("submittedAt = %v, want millisecond UTC timestamp", body["submittedAt"])
	}
	if _, ok := body["packageId"]; ok {
		t.Fatalf("empty packageId was sent")
	}
	if reqs[0].Header.Get("Idempotency-Key") != janeEnquiry().IdempotencyKey() {
		t.Fatalf("Idempotency-Key = %q", reqs[0].Header.Get("Idempotency-Key"))
	}
}

func TestSubmitInvalidEmailMakesNoCall(t *testing.T) {
	srv := studiotest.New(t)
	p := newEnquiryPipeline(t, srv)

	e := janeEnquiry()
	e.Email = "not-an-email"
	res := p.Submit(context.Background(), e)
	if res.Outcome != OutcomeInvalid || res.Field != "email" {
		t.Fatalf("Result = %#v, want invalid email", res)
	}
	var verr *ValidationError
	if !errors.As(res.Err, &verr) {
		t.Fatalf("Err = %v, want *ValidationError", res.Err)
	}
	if got := srv.Calls(http.MethodPost, studio.PathCreateEnquiry); got != 0 {
		t.Fatalf("calls = %d, want 0", got)
	}
	if p.Phase() != Idle {
		t.Fatalf("Phase = %v, want idle", p.Phase())
	}
}

func TestSubmitMissingFieldsMakeNoCall(t *testing.T) {
	srv := studiotest.New(t)
	p := newEnquiryPipeline(t, srv)

	blank := []func(*Enquiry){
		func(e *Enquiry) { e.Name = " " },
		func(e *Enquiry) { e.Email = "" },
		func(e *Enquiry) { e.Phone = "" },
		func(e *Enquiry) { e.ServiceType = "" },
		func(e *Enquiry) { e.Message = "\t" },
	}
	for _, edit := range blank {
		e := janeEnquiry()
		edit(&e)
		if res := p.Submit(context.Background(), e); res.Outcome != OutcomeInvalid {
			t.Fatalf("Outcome = %v, want invalid for %#v", res.Outcome, e)
		}
	}
	if got := srv.Calls(http.MethodPost, studio.PathCreateEnquiry); got != 0 {
		t.Fatalf("calls = %d, want 0", got)
	}
}

func TestSubmitWhilePendingIsBusy(t *testing.T) {
	srv := studiotest.New(t)
	gate := make(chan struct{})
	srv.Respond(http.MethodPost, studio.PathCreateEnquiry, studiotest.Response{
		Status: http.StatusCreated,
		Body:   `{"message":"ok"}`,
		Gate:   gate,
	})
	p := newEnquiryPipeline(t, srv)

	done := make(chan Result, 1)
	go func() { done <- p.Submit(context.Background(), janeEnquiry()) }()

	deadline := time.Now().Add(2 * time.Second)
	for srv.Calls(http.MethodPost, studio.PathCreateEnquiry) == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("first submission never reached the server")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if p.Phase() != Pending {
		t.Fatalf("Phase = %v, want pending", p.Phase())
	}

	res := p.Submit(context.Background(), janeEnquiry())
	if res.Outcome != OutcomeBusy || res.Message != EnquiryBusyMessage {
		t.Fatalf("second Submit = %#v, want busy", res)
	}
	close(gate)

	first := <-done
	if first.Outcome != OutcomeSucceeded {
		t.Fatalf("first Submit = %#v, want succeeded", first)
	}
	if got := srv.Calls(http.MethodPost, studio.PathCreateEnquiry); got != 1 {
		t.Fatalf("calls = %d, want 1", got)
	}
}

func TestSubmitFailureUsesServerMessageOrFallback(t *testing.T) {
	srv := studiotest.New(t)
	srv.Respond(http.MethodPost, studio.PathCreateEnquiry, studiotest.Response{
		Status: http.StatusBadRequest,
		Body:   `{"message":"Phone number is invalid"}`,
	})
	p := newEnquiryPipeline(t, srv)

	res := p.Submit(context.Background(), janeEnquiry())
	if res.Outcome != OutcomeFailed || res.Message != "Phone number is invalid" {
		t.Fatalf("Result = %#v, want failed with server message", res)
	}
	if p.Phase() != Failed || p.LastError() == nil {
		t.Fatalf("Phase = %v err = %v, want failed", p.Phase(), p.LastError())
	}

	srv.Respond(http.MethodPost, studio.PathCreateEnquiry, studiotest.Response{Status: http.StatusBadGateway, Body: `<html>`})
	res = p.Submit(context.Background(), janeEnquiry())
	if res.Message != "Failed to send enquiry. Please try again." {
		t.Fatalf("Message = %q, want generic failure", res.Message)
	}
	if got := srv.Calls(http.MethodPost, studio.PathCreateEnquiry); got != 2 {
		t.Fatalf("calls = %d, want 2 (one per submit, no retry)", got)
	}
}

func TestSubmitContractViolationIsInvalid(t *testing.T) {
	var sent atomic.Int32
	w := writerFunc(func(context.Context, studio.EnquiryRequest, string) (studio.EnquiryResponse, error) {
		sent.Add(1)
		return studio.EnquiryResponse{}, nil
	})
	p := NewPipeline(EnquirySender(w, fixedNow), EnquiryBusyMessage, nil)

	e := janeEnquiry()
	e.Source = "billboard"
	res := p.Submit(context.Background(), e)
	if res.Outcome != OutcomeInvalid || res.Field != "source" {
		t.Fatalf("Result = %#v, want invalid source", res)
	}
	if sent.Load() != 0 {
		t.Fatalf("enquiry was sent despite contract violation")
	}
	if p.Phase() != Idle {
		t.Fatalf("Phase = %v, want idle", p.Phase())
	}
}

func TestSubmitReview(t *testing.T) {
	srv := studiotest.New(t)
	client, err := studio.NewClient(srv.BaseURL())
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	p := NewPipeline(ReviewSender(client), ReviewBusyMessage, nil)

	r := Review{Name: "Ravi", Service: "Family", Location: "Chennai", Email: "ravi@x.com", Rating: 0, Text: "Lovely"}
	if res := p.Submit(context.Background(), r); res.Outcome != OutcomeInvalid || res.Field != "rating" {
		t.Fatalf("Result = %#v, want invalid rating", res)
	}

	r.Rating = 5
	res := p.Submit(context.Background(), r)
	if res.Outcome != OutcomeSucceeded || res.Message != "Review submitted" {
		t.Fatalf("Result = %#v, want succeeded with server ack", res)
	}
	if got := srv.Calls(http.MethodPost, studio.PathCreateTestimonial); got != 1 {
		t.Fatalf("calls = %d, want 1", got)
	}
}

type writerFunc func(ctx context.Context, req studio.EnquiryRequest, key string) (studio.EnquiryResponse, error)

func (f writerFunc) CreateEnquiry(ctx context.Context, req studio.EnquiryRequest, key string) (studio.EnquiryResponse, error) {
	return f(ctx, req, key)
}

func (f writerFunc) CreateTestimonial(context.Context, studio.TestimonialRequest) (studio.TestimonialResponse, error) {
	return studio.TestimonialResponse{}, errors.New("not supported")
}
