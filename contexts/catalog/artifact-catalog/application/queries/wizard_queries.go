package queries

import (
	"context"
	"log/slog"

	application "arcana/contexts/catalog/artifact-catalog/application"
	"arcana/contexts/catalog/artifact-catalog/domain/entities"
	"arcana/contexts/catalog/artifact-catalog/ports"
)

type ListWizardsUseCase struct {
	Wizards ports.WizardRepository
	Logger  *slog.Logger
}

func (uc ListWizardsUseCase) Execute(ctx context.Context) ([]entities.Wizard, error) {
	logger := application.ResolveLogger(uc.Logger)
	items, err := uc.Wizards.ListWizards(ctx)
	if err != nil {
		return nil, err
	}
	logger.Debug("wizards listed",
		"event", "wizards_listed",
		"module", "catalog/artifact-catalog",
		"layer", "application",
		"count", len(items),
	)
	return items, nil
}

type GetWizardUseCase struct {
	Wizards ports.WizardRepository
	Logger  *slog.Logger
}

func (uc GetWizardUseCase) Execute(ctx context.Context, wizardID int64) (entities.Wizard, error) {
	return uc.Wizards.GetWizard(ctx, wizardID)
}
