package postgresadapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"arcana/contexts/catalog/artifact-catalog/domain/entities"
	"arcana/contexts/catalog/artifact-catalog/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
)

func TestArtifactModelKeepsUnownedAsNull(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	row := artifactModelFromEntity(entities.Artifact{
		ArtifactID: "101", Name: "Stone", Description: "red", ImageURL: "https://img/101",
		CreatedAt: now, UpdatedAt: now,
	})
	if row.OwnerID != nil {
		t.Fatalf("expected null owner, got %d", *row.OwnerID)
	}
	if row.toEntity().OwnerID != entities.NoOwner {
		t.Fatal("null owner must map back to NoOwner")
	}

	owned := artifactModelFromEntity(entities.Artifact{ArtifactID: "102", OwnerID: 7})
	if owned.OwnerID == nil || *owned.OwnerID != 7 || owned.toEntity().OwnerID != 7 {
		t.Fatalf("unexpected owner mapping %+v", owned)
	}
}

func TestWizardModelNeverReturnsNilHoldings(t *testing.T) {
	wizard := wizardModel{WizardID: 3, Name: "Luna"}.toEntity(nil)
	if wizard.ArtifactIDs == nil || wizard.NumberOfArtifacts() != 0 {
		t.Fatalf("unexpected holdings %v", wizard.ArtifactIDs)
	}
}

func TestOutboxModelCopiesPayload(t *testing.T) {
	envelope, err := ports.NewOwnershipEnvelope(ports.OwnershipEvent{
		EventID:     "evt-1",
		EventType:   ports.EventTypeArtifactAssigned,
		WizardID:    2,
		ArtifactIDs: []string{"101"},
		OccurredAt:  time.Now(),
	})
	if err != nil {
		t.Fatalf("envelope failed: %v", err)
	}
	payload, _ := json.Marshal(envelope)
	row := outboxModel{OutboxID: "evt-1", EventType: envelope.EventType, Payload: datatypes.JSON(payload)}

	msg := row.toPort()
	row.Payload[0] = 'x'
	var decoded ports.EventEnvelope
	if err := json.Unmarshal(msg.Payload, &decoded); err != nil {
		t.Fatalf("payload not independent of the row: %v", err)
	}
	if decoded.PartitionKey != "2" {
		t.Fatalf("unexpected partition key %q", decoded.PartitionKey)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	wrapped := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	if !isUniqueViolation(wrapped) {
		t.Fatal("expected 23505 to be a unique violation")
	}
	if isUniqueViolation(&pgconn.PgError{Code: "40P01"}) || isUniqueViolation(errors.New("boom")) {
		t.Fatal("unexpected unique violation match")
	}
}
