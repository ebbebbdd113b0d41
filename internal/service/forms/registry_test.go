package forms

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurex-exteriors/site/internal/intake"
	"github.com/aurex-exteriors/site/internal/service/backend"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestRegistry(t *testing.T, opts ...Option) (*Registry, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Now()}
	r := NewRegistry(backend.NewMock(), opts...)
	r.now = clock.Now
	return r, clock
}

func TestOpenGetDiscard(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	f, err := r.Open(ctx, intake.KindQuote)
	require.NoError(t, err)
	_, err = uuid.Parse(f.ID())
	require.NoError(t, err)
	assert.Equal(t, intake.KindQuote, f.Kind())
	assert.Equal(t, intake.PhaseIdle, f.State().Phase)

	got, err := r.Get(ctx, f.ID())
	require.NoError(t, err)
	assert.Same(t, f, got)

	require.NoError(t, r.Discard(ctx, f.ID()))
	_, err = r.Get(ctx, f.ID())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, r.Discard(ctx, f.ID()), ErrNotFound)

	_, err = f.Change(intake.FieldName, "x")
	assert.ErrorIs(t, err, intake.ErrClosed, "discarded forms are closed")
}

func TestOpenRejectsUnknownKind(t *testing.T) {
	r, _ := newTestRegistry(t)
	_, err := r.Open(context.Background(), intake.Kind("newsletter"))
	assert.ErrorIs(t, err, ErrInvalidKind)
}

func TestIdleFormsExpire(t *testing.T) {
	r, clock := newTestRegistry(t, WithIdleTTL(time.Minute))
	ctx := context.Background()

	stale, _ := r.Open(ctx, intake.KindContact)
	clock.Advance(2 * time.Minute)
	fresh, _ := r.Open(ctx, intake.KindContact)

	_, err := r.Get(ctx, stale.ID())
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = r.Get(ctx, fresh.ID())
	assert.NoError(t, err)
	assert.Equal(t, 1, r.Len())
}

func TestSweep(t *testing.T) {
	r, clock := newTestRegistry(t, WithIdleTTL(time.Minute))
	ctx := context.Background()
	for range 3 {
		_, err := r.Open(ctx, intake.KindContact)
		require.NoError(t, err)
	}
	assert.Zero(t, r.Sweep(ctx))
	clock.Advance(time.Hour)
	assert.Equal(t, 3, r.Sweep(ctx))
	assert.Zero(t, r.Len())
}

func TestCapacity(t *testing.T) {
	r, clock := newTestRegistry(t, WithMaxOpen(2), WithIdleTTL(time.Minute))
	ctx := context.Background()

	_, err := r.Open(ctx, intake.KindContact)
	require.NoError(t, err)
	_, err = r.Open(ctx, intake.KindContact)
	require.NoError(t, err)
	_, err = r.Open(ctx, intake.KindContact)
	assert.ErrorIs(t, err, ErrCapacity)

	clock.Advance(2 * time.Minute)
	_, err = r.Open(ctx, intake.KindContact)
	assert.NoError(t, err, "expired forms are swept to make room")
}

func TestSubmittingFormIsNotExpired(t *testing.T) {
	release := make(chan struct{})
	mock := backend.NewMock()
	mock.SubmitFunc = func(context.Context, backend.Intake, bool) (*backend.Ack, error) {
		<-release
		return &backend.Ack{}, nil
	}
	r := NewRegistry(mock, WithIdleTTL(time.Millisecond), WithRevertDelay(time.Hour))
	ctx := context.Background()

	f, err := r.Open(ctx, intake.KindContact)
	require.NoError(t, err)
	for field, v := range map[intake.Field]string{intake.FieldName: "Jane", intake.FieldEmail: "jane@x.com", intake.FieldService: "gardening"} {
		_, err := f.Change(field, v)
		require.NoError(t, err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = f.Submit(ctx)
	}()
	require.Eventually(t, func() bool { return f.State().Phase == intake.PhaseSubmitting }, time.Second, time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	assert.Zero(t, r.Sweep(ctx))
	close(release)
	<-done
	f.Close()
}

func TestRunStopsWithContext(t *testing.T) {
	r, clock := newTestRegistry(t, WithIdleTTL(time.Minute))
	ctx, cancel := context.WithCancel(context.Background())
	_, _ = r.Open(ctx, intake.KindContact)
	clock.Advance(time.Hour)

	stopped := make(chan struct{})
	go func() {
		r.Run(ctx, 5*time.Millisecond)
		close(stopped)
	}()
	assert.Eventually(t, func() bool { return r.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	<-stopped
}
