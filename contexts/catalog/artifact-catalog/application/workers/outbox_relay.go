package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	application "arcana/contexts/catalog/artifact-catalog/application"
	"arcana/contexts/catalog/artifact-catalog/ports"
)

// OutboxRelay publishes pending ownership events to the event bus. A row is
// marked sent only after a successful publish, so delivery is at least once.
type OutboxRelay struct {
	Outbox    ports.OutboxRepository
	Publisher ports.EventPublisher
	Clock     ports.Clock
	BatchSize int
	Logger    *slog.Logger
}

func (r OutboxRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}

	pending, err := r.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("catalog outbox list failed",
			"event", "catalog_outbox_list_failed",
			"module", "catalog/artifact-catalog",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	for _, row := range pending {
		var event ports.EventEnvelope
		if err := json.Unmarshal(row.Payload, &event); err != nil {
			logger.Error("catalog outbox decode failed",
				"event", "catalog_outbox_decode_failed",
				"module", "catalog/artifact-catalog",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"error", err.Error(),
			)
			return err
		}

		topic := event.EventType
		if topic == "" {
			topic = row.EventType
		}
		if err := r.Publisher.Publish(ctx, topic, event); err != nil {
			logger.Error("catalog outbox publish failed",
				"event", "catalog_outbox_publish_failed",
				"module", "catalog/artifact-catalog",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"event_id", event.EventID,
				"topic", topic,
				"error", err.Error(),
			)
			return err
		}

		sentAt := time.Now().UTC()
		if r.Clock != nil {
			sentAt = r.Clock.Now().UTC()
		}
		if err := r.Outbox.MarkOutboxSent(ctx, row.OutboxID, sentAt); err != nil {
			logger.Error("catalog outbox mark sent failed",
				"event", "catalog_outbox_mark_sent_failed",
				"module", "catalog/artifact-catalog",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"error", err.Error(),
			)
			return err
		}
	}

	if len(pending) > 0 {
		logger.Info("catalog outbox relay cycle completed",
			"event", "catalog_outbox_relay_completed",
			"module", "catalog/artifact-catalog",
			"layer", "worker",
			"published_count", len(pending),
		)
	}
	return nil
}
