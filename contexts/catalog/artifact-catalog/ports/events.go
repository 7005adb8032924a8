package ports

import (
	"encoding/json"
	"fmt"
	"strconv"
)

const SourceService = "artifact-catalog"

type ownershipEventData struct {
	WizardID         int64    `json:"wizard_id"`
	PreviousWizardID int64    `json:"previous_wizard_id,omitempty"`
	ArtifactIDs      []string `json:"artifact_ids"`
	Reason           string   `json:"reason,omitempty"`
}

// NewOwnershipEnvelope wraps a resolved ownership event in the canonical
// envelope. Events partition by the wizard that gained or lost artifacts.
func NewOwnershipEnvelope(event OwnershipEvent) (EventEnvelope, error) {
	payload, err := json.Marshal(ownershipEventData{
		WizardID:         event.WizardID,
		PreviousWizardID: event.PreviousWizardID,
		ArtifactIDs:      event.ArtifactIDs,
		Reason:           event.Reason,
	})
	if err != nil {
		return EventEnvelope{}, err
	}
	return EventEnvelope{
		EventID:          event.EventID,
		EventType:        event.EventType,
		OccurredAt:       event.OccurredAt.UTC(),
		SourceService:    SourceService,
		TraceID:          event.EventID,
		SchemaVersion:    1,
		PartitionKeyPath: "wizard_id",
		PartitionKey:     strconv.FormatInt(event.WizardID, 10),
		Data:             payload,
	}, nil
}

// DecodeOwnershipEnvelope is the consumer side of NewOwnershipEnvelope.
func DecodeOwnershipEnvelope(envelope EventEnvelope) (OwnershipEvent, error) {
	var payload ownershipEventData
	if err := json.Unmarshal(envelope.Data, &payload); err != nil {
		return OwnershipEvent{}, fmt.Errorf("decode ownership event payload: %w", err)
	}
	if payload.WizardID <= 0 {
		return OwnershipEvent{}, fmt.Errorf("ownership event missing wizard_id")
	}
	return OwnershipEvent{
		EventID:          envelope.EventID,
		EventType:        envelope.EventType,
		Reason:           payload.Reason,
		WizardID:         payload.WizardID,
		PreviousWizardID: payload.PreviousWizardID,
		ArtifactIDs:      payload.ArtifactIDs,
		OccurredAt:       envelope.OccurredAt,
	}, nil
}
