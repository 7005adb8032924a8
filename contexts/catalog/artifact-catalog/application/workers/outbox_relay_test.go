package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"arcana/contexts/catalog/artifact-catalog/adapters/memory"
	"arcana/contexts/catalog/artifact-catalog/domain/entities"
	"arcana/contexts/catalog/artifact-catalog/ports"
)

type recordingPublisher struct {
	topics []string
	events []ports.EventEnvelope
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, event ports.EventEnvelope) error {
	if p.err != nil {
		return p.err
	}
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return nil
}

func seededStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore(
		[]entities.Artifact{{ArtifactID: "1", Name: "Wand", Description: "holly", ImageURL: "https://img/1"}},
		[]entities.Wizard{{WizardID: 1, Name: "Harry"}},
		nil,
	)
	_, err := store.AssignArtifact(context.Background(), 1, "1", ports.OwnershipEvent{
		EventID:    "evt-assign",
		EventType:  ports.EventTypeArtifactAssigned,
		OccurredAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	return store
}

func TestOutboxRelayPublishesAndMarksSent(t *testing.T) {
	store := seededStore(t)
	publisher := &recordingPublisher{}
	relay := OutboxRelay{Outbox: store, Publisher: publisher, Clock: store}

	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("relay failed: %v", err)
	}
	if len(publisher.events) != 1 || publisher.topics[0] != ports.EventTypeArtifactAssigned {
		t.Fatalf("unexpected publish calls %v", publisher.topics)
	}
	if publisher.events[0].SourceService != ports.SourceService {
		t.Fatalf("unexpected source service %q", publisher.events[0].SourceService)
	}

	pending, _ := store.ListPendingOutbox(context.Background(), 10)
	if len(pending) != 0 {
		t.Fatalf("expected nothing pending, got %d", len(pending))
	}

	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("second relay failed: %v", err)
	}
	if len(publisher.events) != 1 {
		t.Fatalf("sent rows must not be republished")
	}
}

func TestOutboxRelayLeavesRowPendingOnPublishFailure(t *testing.T) {
	store := seededStore(t)
	publisher := &recordingPublisher{err: errors.New("broker down")}
	relay := OutboxRelay{Outbox: store, Publisher: publisher}

	if err := relay.RunOnce(context.Background()); err == nil {
		t.Fatal("expected publish error")
	}
	pending, _ := store.ListPendingOutbox(context.Background(), 10)
	if len(pending) != 1 {
		t.Fatalf("expected row to stay pending, got %d", len(pending))
	}
}
