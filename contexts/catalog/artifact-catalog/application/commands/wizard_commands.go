package commands

import (
	"context"
	"log/slog"

	application "arcana/contexts/catalog/artifact-catalog/application"
	"arcana/contexts/catalog/artifact-catalog/domain/entities"
	"arcana/contexts/catalog/artifact-catalog/ports"
)

type CreateWizardCommand struct {
	Name string
}

type CreateWizardUseCase struct {
	Wizards ports.WizardRepository
	Clock   ports.Clock
	Logger  *slog.Logger
}

func (uc CreateWizardUseCase) Execute(ctx context.Context, cmd CreateWizardCommand) (entities.Wizard, error) {
	logger := application.ResolveLogger(uc.Logger)
	wizard, err := entities.NewWizard(cmd.Name, uc.Clock.Now())
	if err != nil {
		return entities.Wizard{}, err
	}
	created, err := uc.Wizards.CreateWizard(ctx, wizard)
	if err != nil {
		return entities.Wizard{}, err
	}

	logger.Info("wizard created",
		"event", "wizard_created",
		"module", "catalog/artifact-catalog",
		"layer", "application",
		"wizard_id", created.WizardID,
	)
	return created, nil
}

type RenameWizardCommand struct {
	WizardID int64
	Name     string
}

type RenameWizardUseCase struct {
	Wizards ports.WizardRepository
	Clock   ports.Clock
	Logger  *slog.Logger
}

func (uc RenameWizardUseCase) Execute(ctx context.Context, cmd RenameWizardCommand) (entities.Wizard, error) {
	logger := application.ResolveLogger(uc.Logger)
	wizard, err := uc.Wizards.GetWizard(ctx, cmd.WizardID)
	if err != nil {
		return entities.Wizard{}, err
	}
	wizard, err = wizard.Rename(cmd.Name, uc.Clock.Now())
	if err != nil {
		return entities.Wizard{}, err
	}
	if err := uc.Wizards.UpdateWizard(ctx, wizard); err != nil {
		return entities.Wizard{}, err
	}

	logger.Info("wizard renamed",
		"event", "wizard_renamed",
		"module", "catalog/artifact-catalog",
		"layer", "application",
		"wizard_id", wizard.WizardID,
	)
	return uc.Wizards.GetWizard(ctx, wizard.WizardID)
}

type DeleteWizardUseCase struct {
	Wizards  ports.WizardRepository
	Clock    ports.Clock
	EventIDs ports.IDGenerator
	Logger   *slog.Logger
}

// Execute detaches everything the wizard holds and then removes it. The
// detached artifacts survive unowned.
func (uc DeleteWizardUseCase) Execute(ctx context.Context, wizardID int64) error {
	logger := application.ResolveLogger(uc.Logger)
	event, err := newOwnershipEvent(ctx, uc.EventIDs, uc.Clock, ports.EventTypeArtifactReleased, ports.ReleaseReasonWizardDeleted)
	if err != nil {
		return err
	}
	detached, err := uc.Wizards.DeleteWizard(ctx, wizardID, event)
	if err != nil {
		return err
	}

	logger.Info("wizard deleted",
		"event", "wizard_deleted",
		"module", "catalog/artifact-catalog",
		"layer", "application",
		"wizard_id", wizardID,
		"detached_count", len(detached),
	)
	return nil
}
