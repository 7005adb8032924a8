package entities

import (
	"fmt"
	"strings"
	"time"

	domainerrors "arcana/contexts/catalog/artifact-catalog/domain/errors"
)

type Wizard struct {
	WizardID int64
	Name     string
	// ArtifactIDs lists owned artifacts in the order they were assigned.
	ArtifactIDs []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewWizard builds a wizard with no artifacts. WizardID is left for storage
// to assign.
func NewWizard(name string, now time.Time) (Wizard, error) {
	if strings.TrimSpace(name) == "" {
		return Wizard{}, fmt.Errorf("name is required: %w", domainerrors.ErrInvalidWizard)
	}
	return Wizard{
		Name:        strings.TrimSpace(name),
		ArtifactIDs: []string{},
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}, nil
}

func (w Wizard) Rename(name string, now time.Time) (Wizard, error) {
	if strings.TrimSpace(name) == "" {
		return Wizard{}, fmt.Errorf("name is required: %w", domainerrors.ErrInvalidWizard)
	}
	w.Name = strings.TrimSpace(name)
	w.UpdatedAt = now.UTC()
	return w, nil
}

func (w Wizard) NumberOfArtifacts() int {
	return len(w.ArtifactIDs)
}
