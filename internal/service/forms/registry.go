package forms

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aurex-exteriors/site/internal/intake"
	"github.com/aurex-exteriors/site/internal/platform/logging"
)

const (
	defaultIdleTTL = 30 * time.Minute
	defaultMaxOpen = 10000
)

// Registry implements Service. Forms untouched for longer than the idle TTL are dropped,
// except while a submission is in flight.
type Registry struct {
	submitter   intake.Submitter
	idleTTL     time.Duration
	maxOpen     int
	revertDelay time.Duration
	now         func() time.Time

	mu    sync.Mutex
	forms map[string]*intake.Form
}

// Option configures a Registry.
type Option func(*Registry)

// WithIdleTTL sets how long an untouched form is kept.
func WithIdleTTL(d time.Duration) Option {
	return func(r *Registry) {
		r.idleTTL = d
	}
}

// WithMaxOpen caps the number of forms held at once.
func WithMaxOpen(n int) Option {
	return func(r *Registry) {
		r.maxOpen = n
	}
}

// WithRevertDelay is passed to every form opened by the registry.
func WithRevertDelay(d time.Duration) Option {
	return func(r *Registry) {
		r.revertDelay = d
	}
}

// NewRegistry creates an empty registry whose forms submit through submitter.
func NewRegistry(submitter intake.Submitter, opts ...Option) *Registry {
	r := &Registry{
		submitter:   submitter,
		idleTTL:     defaultIdleTTL,
		maxOpen:     defaultMaxOpen,
		revertDelay: intake.DefaultRevertDelay,
		now:         time.Now,
		forms:       make(map[string]*intake.Form),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) Open(ctx context.Context, kind intake.Kind) (*intake.Form, error) {
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.forms) >= r.maxOpen {
		r.sweepLocked(ctx)
	}
	if len(r.forms) >= r.maxOpen {
		logging.LogWarn(ctx, "form registry full", zap.Int("open", len(r.forms)))
		return nil, ErrCapacity
	}
	f := intake.New(uuid.NewString(), kind, r.submitter,
		intake.WithRevertDelay(r.revertDelay),
		intake.WithClock(func() time.Time { return r.now() }),
	)
	r.forms[f.ID()] = f
	logging.LogAuditEvent(ctx, "open", string(kind), f.ID(), logging.AuditSuccess, map[string]any{"open": len(r.forms)})
	return f, nil
}

func (r *Registry) Get(_ context.Context, id string) (*intake.Form, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.forms[id]
	if !ok {
		return nil, ErrNotFound
	}
	if r.expired(f) {
		r.removeLocked(id, f)
		return nil, ErrNotFound
	}
	return f, nil
}

func (r *Registry) Discard(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.forms[id]
	if !ok {
		return ErrNotFound
	}
	r.removeLocked(id, f)
	logging.LogAuditEvent(ctx, "discard", string(f.Kind()), id, logging.AuditSuccess, nil)
	return nil
}

// Len reports the number of forms held, expired ones included until the next sweep.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.forms)
}

// Sweep drops expired forms and returns how many were removed.
func (r *Registry) Sweep(ctx context.Context) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sweepLocked(ctx)
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep(ctx)
		}
	}
}

func (r *Registry) sweepLocked(ctx context.Context) int {
	removed := 0
	for id, f := range r.forms {
		if r.expired(f) {
			r.removeLocked(id, f)
			removed++
		}
	}
	if removed > 0 {
		logging.LogInfo(ctx, "expired forms removed", zap.Int("removed", removed), zap.Int("open", len(r.forms)))
	}
	return removed
}

func (r *Registry) expired(f *intake.Form) bool {
	if f.State().Phase == intake.PhaseSubmitting {
		return false
	}
	return r.now().Sub(f.LastActivity()) > r.idleTTL
}

func (r *Registry) removeLocked(id string, f *intake.Form) {
	delete(r.forms, id)
	f.Close()
}

// Compile-time interface check
var _ Service = (*Registry)(nil)
