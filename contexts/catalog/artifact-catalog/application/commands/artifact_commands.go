package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	application "arcana/contexts/catalog/artifact-catalog/application"
	"arcana/contexts/catalog/artifact-catalog/domain/entities"
	domainerrors "arcana/contexts/catalog/artifact-catalog/domain/errors"
	"arcana/contexts/catalog/artifact-catalog/ports"
)

type CreateArtifactCommand struct {
	Name        string
	Description string
	ImageURL    string
}

type CreateArtifactUseCase struct {
	Artifacts   ports.ArtifactRepository
	Clock       ports.Clock
	ArtifactIDs ports.IDGenerator
	Logger      *slog.Logger
}

// Execute validates the payload before minting an id so rejected requests do
// not consume sequence numbers.
func (uc CreateArtifactUseCase) Execute(ctx context.Context, cmd CreateArtifactCommand) (application.ArtifactView, error) {
	logger := application.ResolveLogger(uc.Logger)
	if err := entities.ValidateArtifactFields(cmd.Name, cmd.Description, cmd.ImageURL); err != nil {
		return application.ArtifactView{}, err
	}

	artifactID, err := uc.ArtifactIDs.NewID(ctx)
	if err != nil {
		logger.Error("artifact id generation failed",
			"event", "artifact_id_generation_failed",
			"module", "catalog/artifact-catalog",
			"layer", "application",
			"error", err.Error(),
		)
		if !errors.Is(err, domainerrors.ErrIDGenerationUnavailable) {
			err = errors.Join(domainerrors.ErrIDGenerationUnavailable, err)
		}
		return application.ArtifactView{}, err
	}

	artifact, err := entities.NewArtifact(artifactID, cmd.Name, cmd.Description, cmd.ImageURL, uc.Clock.Now())
	if err != nil {
		return application.ArtifactView{}, err
	}
	if err := uc.Artifacts.CreateArtifact(ctx, artifact); err != nil {
		return application.ArtifactView{}, err
	}

	logger.Info("artifact created",
		"event", "artifact_created",
		"module", "catalog/artifact-catalog",
		"layer", "application",
		"artifact_id", artifact.ArtifactID,
	)
	return application.ArtifactView{Artifact: artifact}, nil
}

type UpdateArtifactCommand struct {
	ArtifactID  string
	Name        string
	Description string
	ImageURL    string
}

type UpdateArtifactUseCase struct {
	Artifacts ports.ArtifactRepository
	Wizards   ports.WizardRepository
	Clock     ports.Clock
	Logger    *slog.Logger
}

func (uc UpdateArtifactUseCase) Execute(ctx context.Context, cmd UpdateArtifactCommand) (application.ArtifactView, error) {
	logger := application.ResolveLogger(uc.Logger)
	artifact, err := uc.Artifacts.GetArtifact(ctx, strings.TrimSpace(cmd.ArtifactID))
	if err != nil {
		return application.ArtifactView{}, err
	}
	artifact, err = artifact.Revise(cmd.Name, cmd.Description, cmd.ImageURL, uc.Clock.Now())
	if err != nil {
		return application.ArtifactView{}, err
	}
	if err := uc.Artifacts.UpdateArtifact(ctx, artifact); err != nil {
		return application.ArtifactView{}, err
	}

	logger.Info("artifact updated",
		"event", "artifact_updated",
		"module", "catalog/artifact-catalog",
		"layer", "application",
		"artifact_id", artifact.ArtifactID,
	)
	// UpdateArtifact leaves ownership alone, so re-read to pick up the
	// owner as currently stored.
	stored, err := uc.Artifacts.GetArtifact(ctx, artifact.ArtifactID)
	if err != nil {
		return application.ArtifactView{}, err
	}
	return application.ResolveArtifactView(ctx, uc.Wizards, stored)
}

type DeleteArtifactUseCase struct {
	Artifacts ports.ArtifactRepository
	Clock     ports.Clock
	EventIDs  ports.IDGenerator
	Logger    *slog.Logger
}

func (uc DeleteArtifactUseCase) Execute(ctx context.Context, artifactID string) error {
	logger := application.ResolveLogger(uc.Logger)
	artifactID = strings.TrimSpace(artifactID)
	if artifactID == "" {
		return domainerrors.ErrArtifactNotFound
	}
	event, err := newOwnershipEvent(ctx, uc.EventIDs, uc.Clock, ports.EventTypeArtifactReleased, ports.ReleaseReasonArtifactDeleted)
	if err != nil {
		return err
	}
	if err := uc.Artifacts.DeleteArtifact(ctx, artifactID, event); err != nil {
		return err
	}

	logger.Info("artifact deleted",
		"event", "artifact_deleted",
		"module", "catalog/artifact-catalog",
		"layer", "application",
		"artifact_id", artifactID,
	)
	return nil
}
