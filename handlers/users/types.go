package users

// Error message constants
const (
	ErrInvalidRequest = "Invalid request data"
	ErrFailedFetch    = "Failed to fetch users"
	ErrFailedUpdate   = "Failed to update profile"
	ErrFailedExport   = "Failed to export users"
)

// UpdateProfileRequest model for editing the caller's profile
type UpdateProfileRequest struct {
	AvatarURL *string `json:"avatar_url"`
	Bio       *string `json:"bio"`
	Country   *string `json:"country"`
}

// ProfileResponse is the caller's account plus standing numbers
type ProfileResponse struct {
	User       interface{} `json:"user"`
	Score      int         `json:"score"`
	FlagsCount int         `json:"flags_count"`
	Rank       int         `json:"rank"`
}
