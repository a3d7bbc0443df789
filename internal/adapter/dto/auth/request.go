package auth

// SignupRequest registers a new HR account
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest authenticates an HR account
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest exchanges a refresh token for a new pair
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest revokes the session behind a refresh token
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}
