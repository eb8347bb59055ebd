// SPDX-License-Identifier: GPL-3.0-only

package handlers

// swagger:model RegisterUserRequest
type RegisterUserRequest struct {
	// Username, at most 50 characters
	// required: true
	Username string `json:"username" example:"alice"`
	// User's email address
	// required: true
	Email string `json:"email" example:"alice@example.com"`
}

// swagger:model RegisterUserResponse
type RegisterUserResponse struct {
	// Unique identifier of the new user
	ID uint `json:"id" example:"1"`
	// Username as stored
	Username string `json:"username" example:"alice"`
	// Email address as stored
	Email string `json:"email" example:"alice@example.com"`
	// API key for all subsequent requests; save it, it is shown only here
	APIKey string `json:"api_key" example:"0b1f6f26-7a43-4e7f-a49c-02b2b7a3f6a1"`
	// Subscription tier
	Tier string `json:"tier" example:"free"`
	// Message indicating successful registration
	Message string `json:"message" example:"User registered successfully"`
}

// swagger:model TemplatesResponse
type TemplatesResponse struct {
	// Templates available on the free tier
	AvailableTemplates []string `json:"available_templates" example:"basic-python,fastapi,flask"`
}

// swagger:model CreatePresetRequest
type CreatePresetRequest struct {
	// Preset name
	// required: true
	Name string `json:"name" example:"p1"`
	// Project template identifier
	// required: true
	Template string `json:"template" example:"flask"`
	// Whether generated projects should be git-initialized
	GitInit *bool `json:"git_init" example:"false"`
	// Whether generated projects should include a virtualenv
	UseVenv *bool `json:"use_venv" example:"false"`
	// Optional license identifier
	LicenseType *string `json:"license_type" example:"MIT"`
}

// swagger:model UpdatePresetRequest
type UpdatePresetRequest struct {
	// New preset name; omitted fields keep their prior values
	Name *string `json:"name" example:"p1"`
	// New template identifier
	Template *string `json:"template" example:"fastapi"`
	// New git-init flag
	GitInit *bool `json:"git_init" example:"true"`
	// New virtualenv flag
	UseVenv *bool `json:"use_venv" example:"false"`
	// New license identifier
	LicenseType *string `json:"license_type" example:"MIT"`
}

// swagger:model PresetDetails
type PresetDetails struct {
	// Preset identifier
	ID uint `json:"id" example:"1"`
	// Preset name
	Name string `json:"name" example:"p1"`
	// Template identifier
	Template string `json:"template" example:"flask"`
	// Git-init flag
	GitInit bool `json:"git_init" example:"false"`
	// Virtualenv flag
	UseVenv bool `json:"use_venv" example:"false"`
	// License identifier
	LicenseType *string `json:"license_type" example:"MIT"`
	// Timestamp of when the preset was created
	CreatedAt string `json:"created_at" example:"2023-10-01T12:00:00Z"`
	// Timestamp of when the preset was last updated
	UpdatedAt string `json:"updated_at" example:"2023-10-01T12:00:00Z"`
}

// swagger:model PresetResponse
type PresetResponse struct {
	PresetDetails
	// Message indicating the outcome
	Message string `json:"message" example:"Preset created successfully"`
}

// swagger:model PresetListResponse
type PresetListResponse struct {
	// Presets owned by the caller
	Data []PresetDetails `json:"data"`
	// Message indicating successful retrieval
	Message string `json:"message" example:"Presets retrieved successfully"`
}

// swagger:model DeletePresetResponse
type DeletePresetResponse struct {
	// Whether the preset was deleted
	Deleted bool `json:"deleted" example:"true"`
	// Message indicating the outcome
	Message string `json:"message" example:"Preset deleted successfully"`
}

// swagger:model CreateProjectRequest
type CreateProjectRequest struct {
	// Project name
	// required: true
	Name string `json:"name" example:"myproject"`
	// Project template identifier
	// required: true
	Template string `json:"template" example:"flask"`
	// Git-init flag (free tier: accepted but not applied)
	GitInit *bool `json:"git_init" example:"false"`
	// Virtualenv flag (free tier: accepted but not applied)
	UseVenv *bool `json:"use_venv" example:"false"`
	// Optional license identifier
	LicenseType *string `json:"license_type" example:"MIT"`
}

// swagger:model ProjectManifestResponse
type ProjectManifestResponse struct {
	// Name of the generated project
	ProjectName string `json:"project_name" example:"myproject"`
	// Generated files, relative to the project root
	Files []string `json:"files" example:"README.md,main.py"`
}

// swagger:model HealthResponse
type HealthResponse struct {
	// Service status
	Status string `json:"status" example:"ok"`
}
