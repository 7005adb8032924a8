package entities

import (
	"fmt"
	"strings"
	"time"

	domainerrors "arcana/contexts/catalog/artifact-catalog/domain/errors"
)

// NoOwner is the OwnerID of an unowned artifact. Wizard ids assigned by
// storage start at 1.
const NoOwner int64 = 0

type Artifact struct {
	ArtifactID  string
	Name        string
	Description string
	ImageURL    string
	OwnerID     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewArtifact builds an unowned artifact. The id is minted by the caller.
func NewArtifact(artifactID string, name string, description string, imageURL string, now time.Time) (Artifact, error) {
	if strings.TrimSpace(artifactID) == "" {
		return Artifact{}, fmt.Errorf("id is required: %w", domainerrors.ErrInvalidArtifact)
	}
	if err := ValidateArtifactFields(name, description, imageURL); err != nil {
		return Artifact{}, err
	}
	return Artifact{
		ArtifactID:  artifactID,
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		ImageURL:    strings.TrimSpace(imageURL),
		OwnerID:     NoOwner,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}, nil
}

// Revise replaces the mutable attributes. Id and owner are untouched.
func (a Artifact) Revise(name string, description string, imageURL string, now time.Time) (Artifact, error) {
	if err := ValidateArtifactFields(name, description, imageURL); err != nil {
		return Artifact{}, err
	}
	a.Name = strings.TrimSpace(name)
	a.Description = strings.TrimSpace(description)
	a.ImageURL = strings.TrimSpace(imageURL)
	a.UpdatedAt = now.UTC()
	return a, nil
}

func (a Artifact) Owned() bool {
	return a.OwnerID != NoOwner
}

func ValidateArtifactFields(name string, description string, imageURL string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("name is required: %w", domainerrors.ErrInvalidArtifact)
	case strings.TrimSpace(description) == "":
		return fmt.Errorf("description is required: %w", domainerrors.ErrInvalidArtifact)
	case strings.TrimSpace(imageURL) == "":
		return fmt.Errorf("image url is required: %w", domainerrors.ErrInvalidArtifact)
	}
	return nil
}
