package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ArtifactRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

type WizardRequest struct {
	Name string `json:"name"`
}

// OwnerDTO is the wizard summary embedded in an artifact.
type OwnerDTO struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	NumberOfArtifacts int    `json:"number_of_artifacts"`
}

type ArtifactDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Owner       *OwnerDTO `json:"owner,omitempty"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
}

type WizardDTO struct {
	ID                int64    `json:"id"`
	Name              string   `json:"name"`
	NumberOfArtifacts int      `json:"number_of_artifacts"`
	ArtifactIDs       []string `json:"artifact_ids"`
	CreatedAt         string   `json:"created_at"`
	UpdatedAt         string   `json:"updated_at"`
}

type ArtifactResponse struct {
	Item ArtifactDTO `json:"item"`
}

type ListArtifactsResponse struct {
	Items []ArtifactDTO `json:"items"`
}

type WizardResponse struct {
	Item WizardDTO `json:"item"`
}

type ListWizardsResponse struct {
	Items []WizardDTO `json:"items"`
}
