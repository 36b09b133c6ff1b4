package queue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Producer publishes side-effect jobs to the queue
type Producer struct {
	conn *Connection
}

// NewProducer creates a new queue producer
func NewProducer(conn *Connection) *Producer {
	return &Producer{conn: conn}
}

// PublishEffect publishes a side-effect job to the effects queue
func (p *Producer) PublishEffect(ctx context.Context, job *EffectJob) error {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}

	if err := p.conn.PublishJSON(ctx, EffectQueueName, job); err != nil {
		return fmt.Errorf("failed to publish effect: %w", err)
	}

	slog.Info("published effect",
		"job_id", job.ID,
		"kind", job.Kind,
		"user_id", job.UserID,
	)

	return nil
}
