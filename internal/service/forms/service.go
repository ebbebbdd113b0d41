// Package forms keeps the open lead-capture forms in memory, keyed by a random ID.
package forms

import (
	"context"
	"errors"

	"github.com/aurex-exteriors/site/internal/intake"
)

// Service errors
var (
	ErrNotFound    = errors.New("form not found")
	ErrCapacity    = errors.New("too many open forms")
	ErrInvalidKind = errors.New("unknown form kind")
)

// Service opens, looks up and discards forms.
type Service interface {
	Open(ctx context.Context, kind intake.Kind) (*intake.Form, error)
	Get(ctx context.Context, id string) (*intake.Form, error)
	Discard(ctx context.Context, id string) error
}
