package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/Vinni986/AI-interview-platform/internal/domain/entities"
)

// UserRepository defines persistence operations for HR user accounts
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	UpdateLastLogin(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}
