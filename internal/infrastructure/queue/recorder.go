package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/carebridge/care-platform/internal/core/domain"
	"github.com/carebridge/care-platform/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Recorder writes audit entries asynchronously on a fixed set of workers,
// sharded by uid so one caller's entries land in order. A full shard drops
// the entry rather than blocking the request that produced it.
type Recorder struct {
	workers []chan domain.AuditEntry
	audits  ports.AuditRepository
	log     zerolog.Logger
}

// NewRecorder creates a Recorder with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewRecorder(numWorkers int, audits ports.AuditRepository, log zerolog.Logger) *Recorder {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	r := &Recorder{
		workers: make([]chan domain.AuditEntry, numWorkers),
		audits:  audits,
		log:     log,
	}
	for i := range r.workers {
		r.workers[i] = make(chan domain.AuditEntry, channelBuffer)
	}
	return r
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (r *Recorder) Start(ctx context.Context) {
	for i, ch := range r.workers {
		go r.runWorker(ctx, i, ch)
	}
}

// Record enqueues one audit entry. Never blocks; on a full shard the entry is
// dropped and counted in the log.
func (r *Recorder) Record(entry domain.AuditEntry) {
	ch := r.workers[r.shardIndex(entry.UID)]
	select {
	case ch <- entry:
	default:
		r.log.Warn().Str("uid", entry.UID).Str("path", entry.Path).Msg("audit shard full, entry dropped")
	}
}

// shardIndex maps a uid deterministically to a worker index.
func (r *Recorder) shardIndex(uid string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(uid))
	return int(h.Sum32()) % len(r.workers)
}

func (r *Recorder) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEntry) {
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			if err := r.audits.Create(ctx, &entry); err != nil {
				r.log.Error().Err(err).
					Str("uid", entry.UID).
					Int("worker_id", id).
					Msg("audit write failed")
			}
		}
	}
}
