package application

import (
	"context"

	"arcana/contexts/catalog/artifact-catalog/domain/entities"
	"arcana/contexts/catalog/artifact-catalog/ports"
)

// ArtifactView is an artifact joined with a snapshot of its owner.
type ArtifactView struct {
	Artifact entities.Artifact
	Owner    *entities.Wizard
}

// ResolveArtifactViews looks up the owners of the given artifacts in one
// repository call.
func ResolveArtifactViews(ctx context.Context, wizards ports.WizardRepository, artifacts []entities.Artifact) ([]ArtifactView, error) {
	ownerIDs := make([]int64, 0, len(artifacts))
	seen := make(map[int64]struct{}, len(artifacts))
	for _, artifact := range artifacts {
		if !artifact.Owned() {
			continue
		}
		if _, ok := seen[artifact.OwnerID]; ok {
			continue
		}
		seen[artifact.OwnerID] = struct{}{}
		ownerIDs = append(ownerIDs, artifact.OwnerID)
	}

	owners := map[int64]entities.Wizard{}
	if len(ownerIDs) > 0 {
		found, err := wizards.GetWizards(ctx, ownerIDs)
		if err != nil {
			return nil, err
		}
		owners = found
	}

	views := make([]ArtifactView, 0, len(artifacts))
	for _, artifact := range artifacts {
		view := ArtifactView{Artifact: artifact}
		if owner, ok := owners[artifact.OwnerID]; ok && artifact.Owned() {
			owner := owner
			view.Owner = &owner
		}
		views = append(views, view)
	}
	return views, nil
}

func ResolveArtifactView(ctx context.Context, wizards ports.WizardRepository, artifact entities.Artifact) (ArtifactView, error) {
	views, err := ResolveArtifactViews(ctx, wizards, []entities.Artifact{artifact})
	if err != nil {
		return ArtifactView{}, err
	}
	return views[0], nil
}
