package artifactcatalog

import (
	"log/slog"

	httpadapter "arcana/contexts/catalog/artifact-catalog/adapters/http"
	"arcana/contexts/catalog/artifact-catalog/adapters/memory"
	"arcana/contexts/catalog/artifact-catalog/adapters/snowflakeid"
	"arcana/contexts/catalog/artifact-catalog/application/commands"
	"arcana/contexts/catalog/artifact-catalog/application/queries"
	"arcana/contexts/catalog/artifact-catalog/domain/entities"
	"arcana/contexts/catalog/artifact-catalog/ports"
	"arcana/internal/platform/snowflake"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Artifacts   ports.ArtifactRepository
	Wizards     ports.WizardRepository
	Ownership   ports.OwnershipRepository
	Clock       ports.Clock
	ArtifactIDs ports.IDGenerator
	EventIDs    ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			ListArtifacts: queries.ListArtifactsUseCase{
				Artifacts: deps.Artifacts,
				Wizards:   deps.Wizards,
				Logger:    deps.Logger,
			},
			GetArtifact: queries.GetArtifactUseCase{
				Artifacts: deps.Artifacts,
				Wizards:   deps.Wizards,
				Logger:    deps.Logger,
			},
			CreateArtifact: commands.CreateArtifactUseCase{
				Artifacts:   deps.Artifacts,
				Clock:       deps.Clock,
				ArtifactIDs: deps.ArtifactIDs,
				Logger:      deps.Logger,
			},
			UpdateArtifact: commands.UpdateArtifactUseCase{
				Artifacts: deps.Artifacts,
				Wizards:   deps.Wizards,
				Clock:     deps.Clock,
				Logger:    deps.Logger,
			},
			DeleteArtifact: commands.DeleteArtifactUseCase{
				Artifacts: deps.Artifacts,
				Clock:     deps.Clock,
				EventIDs:  deps.EventIDs,
				Logger:    deps.Logger,
			},
			ListWizards: queries.ListWizardsUseCase{
				Wizards: deps.Wizards,
				Logger:  deps.Logger,
			},
			GetWizard: queries.GetWizardUseCase{
				Wizards: deps.Wizards,
				Logger:  deps.Logger,
			},
			CreateWizard: commands.CreateWizardUseCase{
				Wizards: deps.Wizards,
				Clock:   deps.Clock,
				Logger:  deps.Logger,
			},
			RenameWizard: commands.RenameWizardUseCase{
				Wizards: deps.Wizards,
				Clock:   deps.Clock,
				Logger:  deps.Logger,
			},
			DeleteWizard: commands.DeleteWizardUseCase{
				Wizards:  deps.Wizards,
				Clock:    deps.Clock,
				EventIDs: deps.EventIDs,
				Logger:   deps.Logger,
			},
			AssignArtifact: commands.AssignArtifactUseCase{
				Ownership: deps.Ownership,
				Wizards:   deps.Wizards,
				Clock:     deps.Clock,
				EventIDs:  deps.EventIDs,
				Logger:    deps.Logger,
			},
			ReleaseArtifact: commands.ReleaseArtifactUseCase{
				Ownership: deps.Ownership,
				Clock:     deps.Clock,
				EventIDs:  deps.EventIDs,
				Logger:    deps.Logger,
			},
			Logger: deps.Logger,
		},
	}
}

// NewInMemoryModule wires the module to a seeded memory store. Artifact ids
// come from generator, or from a site 0 / worker 0 generator when nil.
func NewInMemoryModule(
	artifacts []entities.Artifact,
	wizards []entities.Wizard,
	generator *snowflake.Generator,
	logger *slog.Logger,
) Module {
	if generator == nil {
		generator = snowflake.MustNew(snowflake.Config{})
	}
	store := memory.NewStore(artifacts, wizards, logger)
	module := NewModule(Dependencies{
		Artifacts:   store,
		Wizards:     store,
		Ownership:   store,
		Clock:       store,
		ArtifactIDs: snowflakeid.New(generator),
		EventIDs:    store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
