package httpadapter

import (
	"context"
	"log/slog"
	"time"

	application "arcana/contexts/catalog/artifact-catalog/application"
	"arcana/contexts/catalog/artifact-catalog/application/commands"
	"arcana/contexts/catalog/artifact-catalog/application/queries"
	"arcana/contexts/catalog/artifact-catalog/domain/entities"
	httptransport "arcana/contexts/catalog/artifact-catalog/transport/http"
)

type Handler struct {
	ListArtifacts   queries.ListArtifactsUseCase
	GetArtifact     queries.GetArtifactUseCase
	CreateArtifact  commands.CreateArtifactUseCase
	UpdateArtifact  commands.UpdateArtifactUseCase
	DeleteArtifact  commands.DeleteArtifactUseCase
	ListWizards     queries.ListWizardsUseCase
	GetWizard       queries.GetWizardUseCase
	CreateWizard    commands.CreateWizardUseCase
	RenameWizard    commands.RenameWizardUseCase
	DeleteWizard    commands.DeleteWizardUseCase
	AssignArtifact  commands.AssignArtifactUseCase
	ReleaseArtifact commands.ReleaseArtifactUseCase
	Logger          *slog.Logger
}

// ListArtifactsHandler godoc
// @Summary List artifacts
// @Description Returns every artifact with its owner summary, oldest first.
// @Tags artifact-catalog
// @Produce json
// @Param X-Request-Id header string false "Request correlation id"
// @Success 200 {object} httptransport.ListArtifactsResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/v1/artifacts [get]
func (h Handler) ListArtifactsHandler(ctx context.Context) (httptransport.ListArtifactsResponse, error) {
	items, err := h.ListArtifacts.Execute(ctx)
	if err != nil {
		return httptransport.ListArtifactsResponse{}, err
	}
	result := make([]httptransport.ArtifactDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapArtifact(item))
	}
	return httptransport.ListArtifactsResponse{Items: result}, nil
}

// GetArtifactHandler godoc
// @Summary Get artifact
// @Tags artifact-catalog
// @Produce json
// @Param X-Request-Id header string false "Request correlation id"
// @Param artifact_id path string true "Artifact id"
// @Success 200 {object} httptransport.ArtifactResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/v1/artifacts/{artifact_id} [get]
func (h Handler) GetArtifactHandler(ctx context.Context, artifactID string) (httptransport.ArtifactResponse, error) {
	item, err := h.GetArtifact.Execute(ctx, artifactID)
	if err != nil {
		return httptransport.ArtifactResponse{}, err
	}
	return httptransport.ArtifactResponse{Item: mapArtifact(item)}, nil
}

// CreateArtifactHandler godoc
// @Summary Create artifact
// @Description Mints a snowflake id and stores an unowned artifact.
// @Tags artifact-catalog
// @Accept json
// @Produce json
// @Param X-Request-Id header string false "Request correlation id"
// @Param request body httptransport.ArtifactRequest true "Artifact payload"
// @Success 201 {object} httptransport.ArtifactResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 503 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/v1/artifacts [post]
func (h Handler) CreateArtifactHandler(ctx context.Context, req httptransport.ArtifactRequest) (httptransport.ArtifactResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	item, err := h.CreateArtifact.Execute(ctx, commands.CreateArtifactCommand{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		logger.Warn("create artifact request failed",
			"event", "http_create_artifact_failed",
			"module", "catalog/artifact-catalog",
			"layer", "transport",
			"error", err.Error(),
		)
		return httptransport.ArtifactResponse{}, err
	}
	return httptransport.ArtifactResponse{Item: mapArtifact(item)}, nil
}

// UpdateArtifactHandler godoc
// @Summary Update artifact
// @Description Replaces name, description and image url. Ownership is unchanged.
// @Tags artifact-catalog
// @Accept json
// @Produce json
// @Param X-Request-Id header string false "Request correlation id"
// @Param artifact_id path string true "Artifact id"
// @Param request body httptransport.ArtifactRequest true "Artifact payload"
// @Success 200 {object} httptransport.ArtifactResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/v1/artifacts/{artifact_id} [put]
func (h Handler) UpdateArtifactHandler(
	ctx context.Context,
	artifactID string,
	req httptransport.ArtifactRequest,
) (httptransport.ArtifactResponse, error) {
	item, err := h.UpdateArtifact.Execute(ctx, commands.UpdateArtifactCommand{
		ArtifactID:  artifactID,
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return httptransport.ArtifactResponse{}, err
	}
	return httptransport.ArtifactResponse{Item: mapArtifact(item)}, nil
}

// DeleteArtifactHandler godoc
// @Summary Delete artifact
// @Description Detaches the artifact from its owner and deletes it.
// @Tags artifact-catalog
// @Param X-Request-Id header string false "Request correlation id"
// @Param artifact_id path string true "Artifact id"
// @Success 204
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/v1/artifacts/{artifact_id} [delete]
func (h Handler) DeleteArtifactHandler(ctx context.Context, artifactID string) error {
	return h.DeleteArtifact.Execute(ctx, artifactID)
}

// ListWizardsHandler godoc
// @Summary List wizards
// @Tags artifact-catalog
// @Produce json
// @Param X-Request-Id header string false "Request correlation id"
// @Success 200 {object} httptransport.ListWizardsResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/v1/wizards [get]
func (h Handler) ListWizardsHandler(ctx context.Context) (httptransport.ListWizardsResponse, error) {
	items, err := h.ListWizards.Execute(ctx)
	if err != nil {
		return httptransport.ListWizardsResponse{}, err
	}
	result := make([]httptransport.WizardDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapWizard(item))
	}
	return httptransport.ListWizardsResponse{Items: result}, nil
}

// GetWizardHandler godoc
// @Summary Get wizard
// @Tags artifact-catalog
// @Produce json
// @Param X-Request-Id header string false "Request correlation id"
// @Param wizard_id path int true "Wizard id"
// @Success 200 {object} httptransport.WizardResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/v1/wizards/{wizard_id} [get]
func (h Handler) GetWizardHandler(ctx context.Context, wizardID int64) (httptransport.WizardResponse, error) {
	item, err := h.GetWizard.Execute(ctx, wizardID)
	if err != nil {
		return httptransport.WizardResponse{}, err
	}
	return httptransport.WizardResponse{Item: mapWizard(item)}, nil
}

// CreateWizardHandler godoc
// @Summary Create wizard
// @Tags artifact-catalog
// @Accept json
// @Produce json
// @Param X-Request-Id header string false "Request correlation id"
// @Param request body httptransport.WizardRequest true "Wizard payload"
// @Success 201 {object} httptransport.WizardResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/v1/wizards [post]
func (h Handler) CreateWizardHandler(ctx context.Context, req httptransport.WizardRequest) (httptransport.WizardResponse, error) {
	item, err := h.CreateWizard.Execute(ctx, commands.CreateWizardCommand{Name: req.Name})
	if err != nil {
		return httptransport.WizardResponse{}, err
	}
	return httptransport.WizardResponse{Item: mapWizard(item)}, nil
}

// RenameWizardHandler godoc
// @Summary Rename wizard
// @Tags artifact-catalog
// @Accept json
// @Produce json
// @Param X-Request-Id header string false "Request correlation id"
// @Param wizard_id path int true "Wizard id"
// @Param request body httptransport.WizardRequest true "Wizard payload"
// @Success 200 {object} httptransport.WizardResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/v1/wizards/{wizard_id} [put]
func (h Handler) RenameWizardHandler(
	ctx context.Context,
	wizardID int64,
	req httptransport.WizardRequest,
) (httptransport.WizardResponse, error) {
	item, err := h.RenameWizard.Execute(ctx, commands.RenameWizardCommand{
		WizardID: wizardID,
		Name:     req.Name,
	})
	if err != nil {
		return httptransport.WizardResponse{}, err
	}
	return httptransport.WizardResponse{Item: mapWizard(item)}, nil
}

// DeleteWizardHandler godoc
// @Summary Delete wizard
// @Description Releases every artifact the wizard holds, then deletes it.
// @Tags artifact-catalog
// @Param X-Request-Id header string false "Request correlation id"
// @Param wizard_id path int true "Wizard id"
// @Success 204
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/v1/wizards/{wizard_id} [delete]
func (h Handler) DeleteWizardHandler(ctx context.Context, wizardID int64) error {
	return h.DeleteWizard.Execute(ctx, wizardID)
}

// AssignArtifactHandler godoc
// @Summary Assign artifact to wizard
// @Description Moves the artifact to the wizard, removing it from any previous owner.
// @Tags artifact-catalog
// @Produce json
// @Param X-Request-Id header string false "Request correlation id"
// @Param wizard_id path int true "Wizard id"
// @Param artifact_id path string true "Artifact id"
// @Success 200 {object} httptransport.ArtifactResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/v1/wizards/{wizard_id}/artifacts/{artifact_id} [put]
func (h Handler) AssignArtifactHandler(ctx context.Context, wizardID int64, artifactID string) (httptransport.ArtifactResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	item, err := h.AssignArtifact.Execute(ctx, commands.AssignArtifactCommand{
		WizardID:   wizardID,
		ArtifactID: artifactID,
	})
	if err != nil {
		logger.Warn("assign artifact request failed",
			"event", "http_assign_artifact_failed",
			"module", "catalog/artifact-catalog",
			"layer", "transport",
			"wizard_id", wizardID,
			"artifact_id", artifactID,
			"error", err.Error(),
		)
		return httptransport.ArtifactResponse{}, err
	}
	return httptransport.ArtifactResponse{Item: mapArtifact(item)}, nil
}

// ReleaseArtifactHandler godoc
// @Summary Release artifact from wizard
// @Tags artifact-catalog
// @Param X-Request-Id header string false "Request correlation id"
// @Param wizard_id path int true "Wizard id"
// @Param artifact_id path string true "Artifact id"
// @Success 204
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/v1/wizards/{wizard_id}/artifacts/{artifact_id} [delete]
func (h Handler) ReleaseArtifactHandler(ctx context.Context, wizardID int64, artifactID string) error {
	return h.ReleaseArtifact.Execute(ctx, commands.ReleaseArtifactCommand{
		WizardID:   wizardID,
		ArtifactID: artifactID,
	})
}

func mapArtifact(view application.ArtifactView) httptransport.ArtifactDTO {
	dto := httptransport.ArtifactDTO{
		ID:          view.Artifact.ArtifactID,
		Name:        view.Artifact.Name,
		Description: view.Artifact.Description,
		ImageURL:    view.Artifact.ImageURL,
		CreatedAt:   view.Artifact.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   view.Artifact.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if view.Owner != nil {
		dto.Owner = &httptransport.OwnerDTO{
			ID:                view.Owner.WizardID,
			Name:              view.Owner.Name,
			NumberOfArtifacts: view.Owner.NumberOfArtifacts(),
		}
	}
	return dto
}

func mapWizard(wizard entities.Wizard) httptransport.WizardDTO {
	artifactIDs := append([]string{}, wizard.ArtifactIDs...)
	return httptransport.WizardDTO{
		ID:                wizard.WizardID,
		Name:              wizard.Name,
		NumberOfArtifacts: wizard.NumberOfArtifacts(),
		ArtifactIDs:       artifactIDs,
		CreatedAt:         wizard.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:         wizard.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
