package commands

import (
	"context"

	"arcana/contexts/catalog/artifact-catalog/ports"
)

// newOwnershipEvent stamps the caller-side fields of an ownership event. The
// repository fills in who held what once it has locked the rows.
func newOwnershipEvent(
	ctx context.Context,
	ids ports.IDGenerator,
	clock ports.Clock,
	eventType string,
	reason string,
) (ports.OwnershipEvent, error) {
	eventID, err := ids.NewID(ctx)
	if err != nil {
		return ports.OwnershipEvent{}, err
	}
	return ports.OwnershipEvent{
		EventID:    eventID,
		EventType:  eventType,
		Reason:     reason,
		OccurredAt: clock.Now().UTC(),
	}, nil
}
