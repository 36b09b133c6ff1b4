package effects

import (
	"context"
	"log/slog"
	"time"

	"github.com/mentor3d/professor/internal/queue"
)

// Publisher publishes effect jobs to a broker.
type Publisher interface {
	PublishEffect(ctx context.Context, job *queue.EffectJob) error
}

// Dispatcher routes effects to the queue when a broker is available and
// falls back to applying them in-process otherwise. Either way the
// caller never learns the outcome: a lost effect is logged and dropped.
type Dispatcher struct {
	publisher Publisher // nil when no broker is configured
	worker    *Worker
}

// NewDispatcher creates a dispatcher. publisher may be nil.
func NewDispatcher(publisher Publisher, worker *Worker) *Dispatcher {
	return &Dispatcher{publisher: publisher, worker: worker}
}

// Dispatch sends one effect on its way and returns immediately.
func (d *Dispatcher) Dispatch(ctx context.Context, kind queue.EffectKind, userID string, payload any) {
	job, err := queue.NewEffectJob(kind, userID, payload)
	if err != nil {
		slog.Error("failed to build effect", "kind", kind, "user_id", userID, "error", err)
		return
	}

	if d.publisher != nil {
		if err := d.publisher.PublishEffect(ctx, job); err == nil {
			return
		} else {
			slog.Warn("effect publish failed, applying in-process",
				"kind", kind, "job_id", job.ID, "error", err)
		}
	}

	// Detach from the request context so the effect outlives the
	// response, then apply it in the background.
	bg := context.WithoutCancel(ctx)
	go func() {
		applyCtx, cancel := context.WithTimeout(bg, 30*time.Second)
		defer cancel()
		if err := d.worker.Apply(applyCtx, job); err != nil {
			slog.Error("effect failed", "kind", kind, "job_id", job.ID, "error", err)
		}
	}()
}
