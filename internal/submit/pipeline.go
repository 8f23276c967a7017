// Package submit sends enquiries and reviews to the studio API. A Pipeline
// validates the payload, allows one in-flight request at a time and reports
// a single terminal outcome per submission.
package submit

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// Phase is the lifecycle position of a Pipeline.
type Phase int

const (
	Idle Phase = iota
	Pending
	Succeeded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// Outcome is the result of one Submit call.
type Outcome int

const (
	// OutcomeBusy means a request was already in flight; nothing was sent.
	OutcomeBusy Outcome = iota + 1
	// OutcomeInvalid means validation failed; nothing was sent.
	OutcomeInvalid
	OutcomeSucceeded
	OutcomeFailed
)

// Result describes what happened to a submission. Message is the text to
// show the user.
type Result struct {
	Outcome Outcome
	Message string
	// Field is set for OutcomeInvalid.
	Field string
	Err   error
}

// Payload is a submittable form.
type Payload interface {
	Validate() error
	SuccessMessage(ack string) string
	FailureMessage() string
}

// Sender performs the write and returns the server's acknowledgement text.
type Sender[P Payload] func(ctx context.Context, payload P) (string, error)

// Pipeline serialises submissions of one form.
type Pipeline[P Payload] struct {
	send        Sender[P]
	busyMessage string
	logger      *slog.Logger

	mu      sync.Mutex
	phase   Phase
	lastErr error
}

// NewPipeline builds a Pipeline around send. busyMessage is returned when a
// submission is attempted while one is pending.
func NewPipeline[P Payload](send Sender[P], busyMessage string, logger *slog.Logger) *Pipeline[P] {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Pipeline[P]{send: send, busyMessage: busyMessage, logger: logger}
}

// Phase returns the current phase.
func (p *Pipeline[P]) Phase() Phase {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.phase
}

// LastError returns the failure of the most recent submission, if any.
func (p *Pipeline[P]) LastError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// Reset returns a settled pipeline to Idle. It has no effect while Pending.
func (p *Pipeline[P]) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.phase != Pending {
		p.phase = Idle
		p.lastErr = nil
	}
}

// Submit validates payload and, when it is valid and nothing is pending,
// performs exactly one send.
func (p *Pipeline[P]) Submit(ctx context.Context, payload P) Result {
	p.mu.Lock()
	if p.phase == Pending {
		p.mu.Unlock()
		return Result{Outcome: OutcomeBusy, Message: p.busyMessage}
	}
	if err := payload.Validate(); err != nil {
		p.mu.Unlock()
		return invalid(err)
	}
	p.phase = Pending
	p.lastErr = nil
	p.mu.Unlock()

	ack, err := p.send(ctx, payload)

	var verr *ValidationError
	if errors.As(err, &verr) {
		p.settle(Idle, nil)
		p.logger.Warn("submission rejected before send", "field", verr.Field, "error", err)
		return invalid(err)
	}
	if err != nil {
		p.settle(Failed, err)
		p.logger.Warn("submission failed", "error", err)
		return Result{
			Outcome: OutcomeFailed,
			Message: failureText(err, payload.FailureMessage()),
			Err:     err,
		}
	}
	p.settle(Succeeded, nil)
	p.logger.Info("submission succeeded")
	return Result{Outcome: OutcomeSucceeded, Message: payload.SuccessMessage(ack)}
}

func (p *Pipeline[P]) settle(phase Phase, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.phase = phase
	p.lastErr = err
}

func invalid(err error) Result {
	res := Result{Outcome: OutcomeInvalid, Message: err.Error(), Err: err}
	var verr *ValidationError
	if errors.As(err, &verr) {
		res.Field = verr.Field
		res.Message = verr.Message
	}
	return res
}
