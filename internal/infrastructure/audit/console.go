// Package audit provides the access-record sinks. The console recorder is
// the transient default; AsyncRecorder puts a worker fan-out in front of any
// sink so recording never blocks authentication.
package audit

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/k0lab/analysis-gate/internal/core/domain"
)

// ConsoleRecorder writes access records to the structured log and retains
// nothing.
type ConsoleRecorder struct {
	log zerolog.Logger
}

func NewConsoleRecorder(log zerolog.Logger) *ConsoleRecorder {
	return &ConsoleRecorder{log: log}
}

func (r *ConsoleRecorder) Record(_ context.Context, rec domain.AccessRecord) error {
	r.log.Info().
		Str("subject", rec.Subject).
		Bool("guest", rec.IsGuest).
		Time("timestamp", rec.Timestamp).
		Str("origin", rec.Origin).
		Msg("access recorded")
	return nil
}
