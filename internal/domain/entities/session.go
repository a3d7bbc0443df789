package entities

import (
	"time"

	"github.com/google/uuid"
)

// Session represents an HR refresh-token session
type Session struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID       uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	RefreshToken string     `json:"-" gorm:"column:refresh_token;type:text;uniqueIndex;not null"` // SHA-256 hash of the token
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	ExpiresAt    time.Time  `json:"expires_at" gorm:"type:timestamp;not null;index"`
	RevokedAt    *time.Time `json:"revoked_at,omitempty" gorm:"type:timestamp"`
	LastUsedAt   *time.Time `json:"last_used_at,omitempty" gorm:"type:timestamp"`

	IPAddress *string `json:"ip_address,omitempty" gorm:"type:varchar(45)"`
	UserAgent *string `json:"user_agent,omitempty" gorm:"type:text"`
}

// NewSession creates a new session
func NewSession(userID uuid.UUID, refreshTokenHash string, expiresAt time.Time) *Session {
	return &Session{
		ID:           uuid.New(),
		UserID:       userID,
		RefreshToken: refreshTokenHash,
		ExpiresAt:    expiresAt,
		CreatedAt:    time.Now(),
	}
}

// TableName specifies the table name for Session
func (Session) TableName() string {
	return "sessions"
}

// IsExpired checks if session is expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsValid checks if session is valid (not expired and not revoked)
func (s *Session) IsValid() bool {
	if s == nil {
		return false
	}
	return !s.IsExpired() && s.RevokedAt == nil
}

// Revoke revokes the session
func (s *Session) Revoke() {
	now := time.Now()
	s.RevokedAt = &now
}

// WithDeviceInfo adds device information
func (s *Session) WithDeviceInfo(ip, userAgent string) *Session {
	s.IPAddress = &ip
	s.UserAgent = &userAgent
	return s
}
