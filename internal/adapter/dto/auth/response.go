package auth

import "github.com/Vinni986/AI-interview-platform/internal/domain/entities"

// AuthResponse is returned on signup, login and refresh
type AuthResponse struct {
	User         *entities.PublicUser `json:"user"`
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
	ExpiresIn    int64                `json:"expires_in"`
}
