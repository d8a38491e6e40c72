package auth

// Error message constants
const (
	ErrInvalidRequest      = "Invalid request data"
	ErrInvalidCredentials  = "Invalid username or password"
	ErrUsernameTaken       = "Username is already taken"
	ErrEmailTaken          = "Email is already registered"
	ErrFailedToHash        = "Failed to process password"
	ErrFailedCreateUser    = "Failed to create user"
	ErrFailedGenerateToken = "Failed to generate session token"
)

// LoginRequest model for logging in
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest model for creating an account
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// AuthResponse carries the session token and the authenticated user
type AuthResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}
