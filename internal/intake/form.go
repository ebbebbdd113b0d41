package intake

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aurex-exteriors/site/internal/platform/logging"
	"github.com/aurex-exteriors/site/internal/service/backend"
)

// User-facing failure messages.
const (
	MsgNetworkError = "Network error. Please check your connection and try again."
	MsgSubmitFailed = "Failed to submit, please try again."
)

// DefaultRevertDelay is how long a form stays succeeded before returning to idle.
const DefaultRevertDelay = 5 * time.Second

// Form errors
var (
	ErrSubmitting             = errors.New("form is submitting")
	ErrClosed                 = errors.New("form is closed")
	ErrAttachmentsUnsupported = errors.New("form does not accept attachments")
	ErrAttachmentIndex        = errors.New("attachment index out of range")
)

// Submitter sends a validated intake to the backend.
type Submitter interface {
	SubmitIntake(ctx context.Context, in backend.Intake, withAttachments bool) (*backend.Ack, error)
}

// Form is one open lead-capture form. All methods are safe for concurrent use; mutations
// are serialized and rejected while a submission is in flight.
type Form struct {
	id          string
	kind        Kind
	submitter   Submitter
	revertDelay time.Duration
	now         func() time.Time

	mu           sync.Mutex
	state        State
	attempt      uint64
	revert       *time.Timer
	closed       bool
	lastActivity time.Time
}

// Option configures a Form.
type Option func(*Form)

// WithRevertDelay overrides DefaultRevertDelay.
func WithRevertDelay(d time.Duration) Option {
	return func(f *Form) {
		f.revertDelay = d
	}
}

// WithClock replaces time.Now for activity tracking.
func WithClock(now func() time.Time) Option {
	return func(f *Form) {
		f.now = now
	}
}

// New opens an idle form.
func New(id string, kind Kind, submitter Submitter, opts ...Option) *Form {
	f := &Form{
		id:          id,
		kind:        kind,
		submitter:   submitter,
		revertDelay: DefaultRevertDelay,
		now:         time.Now,
		state:       State{Phase: PhaseIdle},
	}
	for _, opt := range opts {
		opt(f)
	}
	f.lastActivity = f.now()
	return f
}

func (f *Form) ID() string { return f.id }

func (f *Form) Kind() Kind { return f.kind }

// State returns a copy of the current state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot()
}

// LastActivity is the time of the last mutation or submission.
func (f *Form) LastActivity() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastActivity
}

// Change sets one field. It clears a failure message and returns a failed form to idle.
func (f *Form) Change(field Field, value string) (State, error) {
	if _, err := ParseField(string(field)); err != nil {
		return State{}, err
	}
	return f.mutate(func(in *Input) error {
		in.set(field, value)
		return nil
	})
}

// SetAttachments replaces the whole attachment list. Only quote forms accept files.
func (f *Form) SetAttachments(files []Attachment) (State, error) {
	if f.kind != KindQuote {
		return State{}, ErrAttachmentsUnsupported
	}
	return f.mutate(func(in *Input) error {
		in.Attachments = slices.Clone(files)
		return nil
	})
}

// RemoveAttachment drops the file at index and keeps the others in order.
func (f *Form) RemoveAttachment(index int) (State, error) {
	if f.kind != KindQuote {
		return State{}, ErrAttachmentsUnsupported
	}
	return f.mutate(func(in *Input) error {
		if index < 0 || index >= len(in.Attachments) {
			return ErrAttachmentIndex
		}
		in.Attachments = slices.Delete(slices.Clone(in.Attachments), index, index+1)
		return nil
	})
}

func (f *Form) mutate(apply func(*Input) error) (State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.writable(); err != nil {
		return f.snapshot(), err
	}
	if err := apply(&f.state.Input); err != nil {
		return f.snapshot(), err
	}
	f.state = changed(f.state)
	f.lastActivity = f.now()
	return f.snapshot(), nil
}

// Submit validates the input and, when valid, sends it to the backend and waits for the
// outcome. Validation, network and server failures end in PhaseFailed and are reported in
// the returned State, not as errors. The backend call is not cancelled with ctx.
func (f *Form) Submit(ctx context.Context) (State, error) {
	f.mu.Lock()
	if err := f.writable(); err != nil {
		defer f.mu.Unlock()
		return f.snapshot(), err
	}
	f.stopRevert()
	f.attempt++
	f.lastActivity = f.now()

	if err := Validate(f.state.Input); err != nil {
		var vErr *ValidationError
		errors.As(err, &vErr)
		f.state = rejected(f.state, vErr.Reason)
		st := f.snapshot()
		f.mu.Unlock()
		logging.LogAuditEvent(ctx, "submit", string(f.kind), f.id, logging.AuditFailure, map[string]any{
			"stage":  "validation",
			"reason": vErr.Reason,
		})
		return st, nil
	}

	f.state = submitting(f.state)
	attempt := f.attempt
	in, withAttachments := f.intake()
	f.mu.Unlock()

	ack, err := f.submitter.SubmitIntake(context.WithoutCancel(ctx), in, withAttachments)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastActivity = f.now()
	if f.closed {
		return f.snapshot(), ErrClosed
	}
	if attempt != f.attempt {
		return f.snapshot(), nil
	}
	details := map[string]any{
		"target":      string(in.Target),
		"attachments": len(in.Attachments),
	}
	if err != nil {
		f.state = rejected(f.state, failureMessage(err))
		details["stage"] = "backend"
		logging.LogWarn(ctx, "intake submission failed", zap.String("formId", f.id), zap.Error(err))
		logging.LogAuditEvent(ctx, "submit", string(f.kind), f.id, logging.AuditFailure, details)
		return f.snapshot(), nil
	}

	var message string
	if ack != nil {
		message = ack.Message
	}
	f.state = acknowledged(message)
	f.revert = time.AfterFunc(f.revertDelay, func() { f.revertAfterSuccess(attempt) })
	logging.LogAuditEvent(ctx, "submit", string(f.kind), f.id, logging.AuditSuccess, details)
	return f.snapshot(), nil
}

// Close stops the revert timer. Later calls fail with ErrClosed; an in-flight submission
// still completes but its outcome is discarded and its Submit returns ErrClosed.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.stopRevert()
}

func (f *Form) revertAfterSuccess(attempt uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed || attempt != f.attempt || f.state.Phase != PhaseSucceeded {
		return
	}
	f.state = reverted(f.state)
}

func (f *Form) writable() error {
	switch {
	case f.closed:
		return ErrClosed
	case f.state.Phase == PhaseSubmitting:
		return ErrSubmitting
	}
	return nil
}

func (f *Form) stopRevert() {
	if f.revert != nil {
		f.revert.Stop()
		f.revert = nil
	}
}

func (f *Form) snapshot() State {
	st := f.state
	st.Input = st.Input.clone()
	return st
}

// intake builds the backend request. Quote requests with files go to the contact
// endpoint as multipart, since only that endpoint accepts photos.
func (f *Form) intake() (backend.Intake, bool) {
	in := f.state.Input
	out := backend.Intake{
		Target:  backend.TargetContact,
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Service: in.Service,
		Message: in.Message,
	}
	if f.kind != KindQuote {
		return out, false
	}
	if len(in.Attachments) == 0 {
		out.Target = backend.TargetQuoteRequest
		return out, false
	}
	out.Attachments = make([]backend.Attachment, len(in.Attachments))
	for i, a := range in.Attachments {
		out.Attachments[i] = backend.Attachment(a)
	}
	return out, true
}

func failureMessage(err error) string {
	var apiErr *backend.APIError
	switch {
	case errors.Is(err, backend.ErrNetwork):
		return MsgNetworkError
	case errors.As(err, &apiErr) && apiErr.Detail != "":
		return apiErr.Detail
	default:
		return MsgSubmitFailed
	}
}
