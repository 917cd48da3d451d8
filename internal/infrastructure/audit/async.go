package audit

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/k0lab/analysis-gate/internal/api/metrics"
	"github.com/k0lab/analysis-gate/internal/core/domain"
	"github.com/k0lab/analysis-gate/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// AsyncRecorder fans access records out to a fixed set of workers, sharded
// by subject so one actor's records reach the sink in order. Record never
// blocks the caller: when a worker's buffer is full the record is dropped
// and counted, which keeps auditing strictly best-effort.
type AsyncRecorder struct {
	workers []chan domain.AccessRecord
	sink    ports.AccessRecorder
	log     zerolog.Logger
}

// NewAsyncRecorder creates an AsyncRecorder with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewAsyncRecorder(numWorkers int, sink ports.AccessRecorder, log zerolog.Logger) *AsyncRecorder {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	r := &AsyncRecorder{
		workers: make([]chan domain.AccessRecord, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range r.workers {
		r.workers[i] = make(chan domain.AccessRecord, channelBuffer)
	}
	return r
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (r *AsyncRecorder) Start(ctx context.Context) {
	for i, ch := range r.workers {
		go r.runWorker(ctx, i, ch)
	}
}

// Record enqueues the record for its subject's worker.
func (r *AsyncRecorder) Record(_ context.Context, rec domain.AccessRecord) error {
	select {
	case r.workers[r.shardIndex(rec.Subject)] <- rec:
	default:
		metrics.AccessRecordsTotal.WithLabelValues("dropped").Inc()
		r.log.Warn().Str("subject", rec.Subject).Msg("audit queue full, record dropped")
	}
	return nil
}

// shardIndex maps a subject deterministically to a worker index.
func (r *AsyncRecorder) shardIndex(subject string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(subject))
	return int(h.Sum32()) % len(r.workers)
}

func (r *AsyncRecorder) runWorker(ctx context.Context, id int, ch <-chan domain.AccessRecord) {
	for {
		select {
		case <-ctx.Done():
			return
		case rec, ok := <-ch:
			if !ok {
				return
			}
			if err := r.sink.Record(ctx, rec); err != nil {
				metrics.AccessRecordsTotal.WithLabelValues("failed").Inc()
				r.log.Error().Err(err).
					Str("subject", rec.Subject).
					Int("worker_id", id).
					Msg("access record delivery failed")
				continue
			}
			metrics.AccessRecordsTotal.WithLabelValues("recorded").Inc()
		}
	}
}
