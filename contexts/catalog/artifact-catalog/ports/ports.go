package ports

import (
	"context"
	"time"

	"arcana/contexts/catalog/artifact-catalog/domain/entities"
	contractsv1 "arcana/contracts/gen/events/v1"
)

const (
	EventTypeArtifactAssigned = "artifact.assigned"
	EventTypeArtifactReleased = "artifact.released"

	ReleaseReasonUnassigned      = "unassigned"
	ReleaseReasonArtifactDeleted = "artifact_deleted"
	ReleaseReasonWizardDeleted   = "wizard_deleted"
)

// OwnershipEvent is the outbound payload persisted to the outbox whenever an
// artifact changes hands. The caller fills EventID, EventType, Reason and
// OccurredAt; the repository fills the ownership fields it resolved inside
// the transaction.
type OwnershipEvent struct {
	EventID          string
	EventType        string
	Reason           string
	WizardID         int64
	PreviousWizardID int64
	ArtifactIDs      []string
	OccurredAt       time.Time
}

// ArtifactRepository owns artifact persistence.
type ArtifactRepository interface {
	ListArtifacts(ctx context.Context) ([]entities.Artifact, error)
	GetArtifact(ctx context.Context, artifactID string) (entities.Artifact, error)
	CreateArtifact(ctx context.Context, artifact entities.Artifact) error
	UpdateArtifact(ctx context.Context, artifact entities.Artifact) error
	// DeleteArtifact must detach the artifact from its owner and remove it in
	// one unit of work. The event is written only if the artifact was owned.
	DeleteArtifact(ctx context.Context, artifactID string, event OwnershipEvent) error
}

// WizardRepository owns wizard persistence. Returned wizards carry their
// artifact ids in assignment order.
type WizardRepository interface {
	ListWizards(ctx context.Context) ([]entities.Wizard, error)
	GetWizard(ctx context.Context, wizardID int64) (entities.Wizard, error)
	GetWizards(ctx context.Context, wizardIDs []int64) (map[int64]entities.Wizard, error)
	// CreateWizard assigns WizardID and returns the stored wizard.
	CreateWizard(ctx context.Context, wizard entities.Wizard) (entities.Wizard, error)
	UpdateWizard(ctx context.Context, wizard entities.Wizard) error
	// DeleteWizard must detach every artifact the wizard holds before
	// removing it, in one unit of work.
	DeleteWizard(ctx context.Context, wizardID int64, event OwnershipEvent) ([]string, error)
}

// OwnershipRepository runs existence checks, the ownership transfer and the
// write in one unit of work, so concurrent transfers of the same artifact
// resolve last writer wins.
type OwnershipRepository interface {
	AssignArtifact(ctx context.Context, wizardID int64, artifactID string, event OwnershipEvent) (entities.Artifact, error)
	ReleaseArtifact(ctx context.Context, wizardID int64, artifactID string, event OwnershipEvent) error
}

// Clock allows deterministic testing of timestamps.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts artifact and event identifier generation.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// OutboxMessage is a row ready to relay from the module outbox.
type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

// OutboxRepository models worker-side outbox polling/acknowledgement.
type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxSent(ctx context.Context, outboxID string, sentAt time.Time) error
}

// EventEnvelope reuses the canonical cross-runtime envelope contract.
type EventEnvelope = contractsv1.Envelope

// EventPublisher publishes canonical envelopes to a topic.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

type EventSubscriber interface {
	Subscribe(
		ctx context.Context,
		topic string,
		consumerGroup string,
		handler func(context.Context, EventEnvelope) error,
	) error
}
