package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// User represents an HR operator account
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email        string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Name         string    `json:"name" gorm:"type:varchar(255);not null"`
	Company      *string   `json:"company,omitempty" gorm:"type:varchar(255)"`
	Role         UserRole  `json:"role" gorm:"type:varchar(50);default:'hr';not null"`
	IsActive     bool      `json:"is_active" gorm:"default:true;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;type:text;not null"` // Never expose in JSON

	LastLoginAt *time.Time `json:"last_login_at,omitempty" gorm:"type:timestamp"`

	// Preferences (stored as JSONB in PostgreSQL)
	NotificationPreferences datatypes.JSON `json:"notification_preferences" gorm:"type:jsonb;default:'{}'"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// UserRole defines user roles
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleHR    UserRole = "hr"
)

// IsValid checks if the user role is valid
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleHR:
		return true
	}
	return false
}

// NewUser creates a new HR user with default values
func NewUser(email, name, passwordHash string) *User {
	notifPrefs, _ := json.Marshal(map[string]interface{}{
		"email":   true,
		"reports": true,
	})

	return &User{
		ID:                      uuid.New(),
		Email:                   email,
		Name:                    name,
		Role:                    RoleHR,
		IsActive:                true,
		PasswordHash:            passwordHash,
		NotificationPreferences: notifPrefs,
	}
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// PublicUser is the JSON-safe projection of a user
type PublicUser struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Company   *string   `json:"company,omitempty"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ToPublic strips credential fields for API responses
func (u *User) ToPublic() *PublicUser {
	return &PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Company:   u.Company,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
