package errors

import "errors"

var (
	ErrArtifactNotFound         = errors.New("artifact not found")
	ErrWizardNotFound           = errors.New("wizard not found")
	ErrInvalidArtifact          = errors.New("invalid artifact")
	ErrInvalidWizard            = errors.New("invalid wizard")
	ErrArtifactNotOwned         = errors.New("artifact is not owned by wizard")
	ErrOwnershipInvariant       = errors.New("ownership invariant violated")
	ErrIDGenerationUnavailable  = errors.New("artifact id generation unavailable")
	ErrRepositoryInvariantBroke = errors.New("repository invariant violated")
)
