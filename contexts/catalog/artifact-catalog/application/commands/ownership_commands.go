package commands

import (
	"context"
	"log/slog"
	"strings"

	application "arcana/contexts/catalog/artifact-catalog/application"
	domainerrors "arcana/contexts/catalog/artifact-catalog/domain/errors"
	"arcana/contexts/catalog/artifact-catalog/ports"
)

type AssignArtifactCommand struct {
	WizardID   int64
	ArtifactID string
}

type AssignArtifactUseCase struct {
	Ownership ports.OwnershipRepository
	Wizards   ports.WizardRepository
	Clock     ports.Clock
	EventIDs  ports.IDGenerator
	Logger    *slog.Logger
}

// Execute moves the artifact to the wizard, taking it away from any previous
// owner. Reassigning to the current owner succeeds without emitting an event.
func (uc AssignArtifactUseCase) Execute(ctx context.Context, cmd AssignArtifactCommand) (application.ArtifactView, error) {
	logger := application.ResolveLogger(uc.Logger)
	artifactID := strings.TrimSpace(cmd.ArtifactID)
	if artifactID == "" {
		return application.ArtifactView{}, domainerrors.ErrArtifactNotFound
	}
	event, err := newOwnershipEvent(ctx, uc.EventIDs, uc.Clock, ports.EventTypeArtifactAssigned, "")
	if err != nil {
		return application.ArtifactView{}, err
	}
	artifact, err := uc.Ownership.AssignArtifact(ctx, cmd.WizardID, artifactID, event)
	if err != nil {
		return application.ArtifactView{}, err
	}

	logger.Info("artifact assigned",
		"event", "artifact_assigned",
		"module", "catalog/artifact-catalog",
		"layer", "application",
		"artifact_id", artifact.ArtifactID,
		"wizard_id", cmd.WizardID,
	)
	return application.ResolveArtifactView(ctx, uc.Wizards, artifact)
}

type ReleaseArtifactCommand struct {
	WizardID   int64
	ArtifactID string
}

type ReleaseArtifactUseCase struct {
	Ownership ports.OwnershipRepository
	Clock     ports.Clock
	EventIDs  ports.IDGenerator
	Logger    *slog.Logger
}

// Execute detaches the artifact from the wizard. It fails with
// ErrArtifactNotOwned when the wizard does not currently hold it.
func (uc ReleaseArtifactUseCase) Execute(ctx context.Context, cmd ReleaseArtifactCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	artifactID := strings.TrimSpace(cmd.ArtifactID)
	if artifactID == "" {
		return domainerrors.ErrArtifactNotFound
	}
	event, err := newOwnershipEvent(ctx, uc.EventIDs, uc.Clock, ports.EventTypeArtifactReleased, ports.ReleaseReasonUnassigned)
	if err != nil {
		return err
	}
	if err := uc.Ownership.ReleaseArtifact(ctx, cmd.WizardID, artifactID, event); err != nil {
		return err
	}

	logger.Info("artifact released",
		"event", "artifact_released",
		"module", "catalog/artifact-catalog",
		"layer", "application",
		"artifact_id", artifactID,
		"wizard_id", cmd.WizardID,
	)
	return nil
}
