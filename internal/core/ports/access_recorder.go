package ports

import (
	"context"

	"github.com/k0lab/analysis-gate/internal/core/domain"
)

// AccessRecorder receives access-event records for auditing. Recording is
// best-effort: a failure must never block or fail the authentication that
// produced the record.
type AccessRecorder interface {
	Record(ctx context.Context, rec domain.AccessRecord) error
}

// AccessLog is implemented by sinks that retain records and can serve them
// back, used by the admin surface. Transient sinks (console) do not.
type AccessLog interface {
	Recent(ctx context.Context, limit int) ([]domain.AccessRecord, error)
}
