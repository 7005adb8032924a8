package queries

import (
	"context"
	"log/slog"
	"strings"

	application "arcana/contexts/catalog/artifact-catalog/application"
	domainerrors "arcana/contexts/catalog/artifact-catalog/domain/errors"
	"arcana/contexts/catalog/artifact-catalog/ports"
)

type ListArtifactsUseCase struct {
	Artifacts ports.ArtifactRepository
	Wizards   ports.WizardRepository
	Logger    *slog.Logger
}

func (uc ListArtifactsUseCase) Execute(ctx context.Context) ([]application.ArtifactView, error) {
	logger := application.ResolveLogger(uc.Logger)
	items, err := uc.Artifacts.ListArtifacts(ctx)
	if err != nil {
		return nil, err
	}
	views, err := application.ResolveArtifactViews(ctx, uc.Wizards, items)
	if err != nil {
		return nil, err
	}
	logger.Debug("artifacts listed",
		"event", "artifacts_listed",
		"module", "catalog/artifact-catalog",
		"layer", "application",
		"count", len(views),
	)
	return views, nil
}

type GetArtifactUseCase struct {
	Artifacts ports.ArtifactRepository
	Wizards   ports.WizardRepository
	Logger    *slog.Logger
}

func (uc GetArtifactUseCase) Execute(ctx context.Context, artifactID string) (application.ArtifactView, error) {
	artifactID = strings.TrimSpace(artifactID)
	if artifactID == "" {
		return application.ArtifactView{}, domainerrors.ErrArtifactNotFound
	}
	artifact, err := uc.Artifacts.GetArtifact(ctx, artifactID)
	if err != nil {
		return application.ArtifactView{}, err
	}
	return application.ResolveArtifactView(ctx, uc.Wizards, artifact)
}
