package workers

import (
	"context"
	"log/slog"

	application "arcana/contexts/catalog/artifact-catalog/application"
	"arcana/contexts/catalog/artifact-catalog/ports"
)

const defaultAuditConsumerGroup = "artifact-catalog-ownership-audit-cg"

// OwnershipAuditConsumer writes one structured log line per ownership change
// seen on the bus. It owns no state; replays are logged again.
type OwnershipAuditConsumer struct {
	Subscriber    ports.EventSubscriber
	ConsumerGroup string
	Logger        *slog.Logger
}

func (c OwnershipAuditConsumer) Start(ctx context.Context) error {
	group := c.ConsumerGroup
	if group == "" {
		group = defaultAuditConsumerGroup
	}
	for _, topic := range []string{ports.EventTypeArtifactAssigned, ports.EventTypeArtifactReleased} {
		if err := c.Subscriber.Subscribe(ctx, topic, group, c.Handle); err != nil {
			return err
		}
	}
	return nil
}

func (c OwnershipAuditConsumer) Handle(_ context.Context, envelope ports.EventEnvelope) error {
	logger := application.ResolveLogger(c.Logger)
	event, err := ports.DecodeOwnershipEnvelope(envelope)
	if err != nil {
		logger.Warn("ownership event rejected",
			"event", "catalog_ownership_event_rejected",
			"module", "catalog/artifact-catalog",
			"layer", "worker",
			"event_id", envelope.EventID,
			"event_type", envelope.EventType,
			"error", err.Error(),
		)
		return err
	}

	logger.Info("ownership event observed",
		"event", "catalog_ownership_event_observed",
		"module", "catalog/artifact-catalog",
		"layer", "worker",
		"event_id", event.EventID,
		"event_type", event.EventType,
		"wizard_id", event.WizardID,
		"previous_wizard_id", event.PreviousWizardID,
		"artifact_ids", event.ArtifactIDs,
		"reason", event.Reason,
		"occurred_at", event.OccurredAt,
	)
	return nil
}
