package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/Vinni986/AI-interview-platform/errors"
	"github.com/Vinni986/AI-interview-platform/internal/domain/entities"
	"github.com/Vinni986/AI-interview-platform/internal/domain/repositories"
	"github.com/Vinni986/AI-interview-platform/pkg/jwt"
)

// TokenCache mirrors issued refresh-token hashes. Every issued hash is
// saved with the token's own TTL and removed on revocation, so once a
// token has been mirrored, a cache miss means it is no longer usable.
// Satisfied by cache.TokenStore.
type TokenCache interface {
	Save(ctx context.Context, hash, userID string, ttl time.Duration) error
	Lookup(ctx context.Context, hash string) (string, bool, error)
	Revoke(ctx context.Context, hash string) error
}

// TokenPair is the credential set issued on signup, login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Service implements the HR authentication gate. Sessions are persisted in
// Postgres; refresh-token hashes are mirrored in the token cache so a
// revoked token is rejected on refresh without a database read. The cache
// may be nil when Redis is not configured.
type Service struct {
	users      repositories.UserRepository
	sessions   repositories.SessionRepository
	jwtManager *jwt.Manager
	tokens     TokenCache
	logger     *zap.Logger
}

// NewService creates an auth service.
func NewService(
	users repositories.UserRepository,
	sessions repositories.SessionRepository,
	jwtManager *jwt.Manager,
	tokens TokenCache,
	logger *zap.Logger,
) *Service {
	return &Service{
		users:      users,
		sessions:   sessions,
		jwtManager: jwtManager,
		tokens:     tokens,
		logger:     logger,
	}
}

// Signup registers a new HR account and signs it in.
func (s *Service) Signup(ctx context.Context, email, name, password string) (*entities.User, *TokenPair, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, entities.ErrUserNotFound) {
		return nil, nil, apperrors.ErrDBQueryFailed("find user", err)
	}
	if existing != nil {
		return nil, nil, apperrors.ErrUserAlreadyExists(email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, apperrors.ErrInternal(err)
	}

	user := entities.NewUser(email, name, string(hash))
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, apperrors.ErrDBQueryFailed("create user", err)
	}

	s.logger.Info("HR account created", zap.String("email", email))

	pair, err := s.issueTokens(ctx, user, "", "")
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Login authenticates an HR account with email and password.
func (s *Service) Login(ctx context.Context, email, password, ip, userAgent string) (*entities.User, *TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			// Same failure as a bad password so the response does not leak
			// which accounts exist.
			return nil, nil, apperrors.ErrInvalidCredentials()
		}
		return nil, nil, apperrors.ErrDBQueryFailed("find user", err)
	}

	if !user.IsActive {
		return nil, nil, apperrors.ErrForbidden("Account is disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, apperrors.ErrInvalidCredentials()
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn("failed to record last login", zap.Error(err))
	}

	pair, err := s.issueTokens(ctx, user, ip, userAgent)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a new pair. The used token's
// session is revoked so each refresh token works exactly once.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*entities.User, *TokenPair, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, nil, apperrors.ErrInvalidRefreshToken()
	}

	hash, err := s.jwtManager.HashToken(refreshToken)
	if err != nil {
		return nil, nil, apperrors.ErrInvalidRefreshToken()
	}

	// Fast path: a mirrored hash that is gone from the cache was revoked
	// or expired, so the token is rejected without touching the database.
	// A cache read failure falls through to the session lookup.
	if s.tokens != nil {
		cachedUser, found, err := s.tokens.Lookup(ctx, hash)
		if err != nil {
			s.logger.Warn("refresh token cache lookup failed", zap.Error(err))
		} else if !found || cachedUser != userID.String() {
			return nil, nil, apperrors.ErrInvalidRefreshToken()
		}
	}

	session, err := s.sessions.FindByTokenHash(ctx, hash)
	if err != nil {
		if errors.Is(err, entities.ErrSessionNotFound) {
			return nil, nil, apperrors.ErrInvalidRefreshToken()
		}
		return nil, nil, apperrors.ErrDBQueryFailed("find session", err)
	}
	if !session.IsValid() || session.UserID != userID {
		return nil, nil, apperrors.ErrInvalidRefreshToken()
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, nil, apperrors.ErrUserNotFound()
		}
		return nil, nil, apperrors.ErrDBQueryFailed("find user", err)
	}

	if err := s.sessions.Revoke(ctx, session.ID); err != nil {
		return nil, nil, apperrors.ErrDBQueryFailed("revoke session", err)
	}
	if s.tokens != nil {
		if err := s.tokens.Revoke(ctx, hash); err != nil {
			s.logger.Warn("failed to evict refresh token from cache", zap.Error(err))
		}
	}

	pair, err := s.issueTokens(ctx, user, "", "")
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Logout revokes the session behind the given refresh token.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	hash, err := s.jwtManager.HashToken(refreshToken)
	if err != nil {
		return apperrors.ErrInvalidRefreshToken()
	}

	session, err := s.sessions.FindByTokenHash(ctx, hash)
	if err != nil {
		if errors.Is(err, entities.ErrSessionNotFound) {
			// Already gone; logout is idempotent.
			return nil
		}
		return apperrors.ErrDBQueryFailed("find session", err)
	}

	if err := s.sessions.Revoke(ctx, session.ID); err != nil {
		return apperrors.ErrDBQueryFailed("revoke session", err)
	}
	if s.tokens != nil {
		if err := s.tokens.Revoke(ctx, hash); err != nil {
			s.logger.Warn("failed to evict refresh token from cache", zap.Error(err))
		}
	}

	return nil
}

// LogoutAll revokes every session the user holds.
func (s *Service) LogoutAll(ctx context.Context, userID uuid.UUID) error {
	if err := s.sessions.RevokeAllByUserID(ctx, userID); err != nil {
		return apperrors.ErrDBQueryFailed("revoke sessions", err)
	}
	return nil
}

// ValidateSession resolves an access token to its user. It backs the
// route-guard middleware on the HR dashboard surface.
func (s *Service) ValidateSession(ctx context.Context, accessToken string) (*entities.User, error) {
	claims, err := s.jwtManager.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken()
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound()
		}
		return nil, apperrors.ErrDBQueryFailed("find user", err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrForbidden("Account is disabled")
	}

	return user, nil
}

func (s *Service) issueTokens(ctx context.Context, user *entities.User, ip, userAgent string) (*TokenPair, error) {
	access, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}

	refresh, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}

	hash, err := s.jwtManager.HashToken(refresh)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}

	// fresh session per issued pair
	session := entities.NewSession(user.ID, hash, time.Now().Add(s.jwtManager.GetRefreshExpiry()))
	if ip != "" || userAgent != "" {
		session.WithDeviceInfo(ip, userAgent)
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, apperrors.ErrDBQueryFailed("create session", err)
	}

	if s.tokens != nil {
		if err := s.tokens.Save(ctx, hash, user.ID.String(), s.jwtManager.GetRefreshExpiry()); err != nil {
			s.logger.Warn("failed to cache refresh token", zap.Error(err))
		}
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.jwtManager.GetAccessExpiry().Seconds()),
	}, nil
}
