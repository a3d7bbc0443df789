package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Vinni986/AI-interview-platform/internal/domain/entities"
)

// SessionRepository defines persistence operations for refresh-token sessions
type SessionRepository interface {
	Create(ctx context.Context, session *entities.Session) error
	FindByTokenHash(ctx context.Context, tokenHash string) (*entities.Session, error)
	Revoke(ctx context.Context, id uuid.UUID) error
	RevokeAllByUserID(ctx context.Context, userID uuid.UUID) error
	DeleteExpired(ctx context.Context, before time.Time) error
}
