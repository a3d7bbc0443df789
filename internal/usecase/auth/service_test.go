package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/Vinni986/AI-interview-platform/errors"
	"github.com/Vinni986/AI-interview-platform/internal/domain/entities"
	"github.com/Vinni986/AI-interview-platform/pkg/jwt"
)

type fakeUserRepo struct {
	byEmail map[string]*entities.User
	byID    map[uuid.UUID]*entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*entities.User),
		byID:    make(map[uuid.UUID]*entities.User),
	}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entities.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.byEmail[user.Email] = user
	r.byID[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entities.User) error {
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, userID uuid.UUID) error {
	if u, ok := r.byID[userID]; ok {
		now := time.Now()
		u.LastLoginAt = &now
	}
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	if u, ok := r.byID[id]; ok {
		delete(r.byEmail, u.Email)
		delete(r.byID, id)
	}
	return nil
}

type fakeSessionRepo struct {
	byHash    map[string]*entities.Session
	findCalls int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{byHash: make(map[string]*entities.Session)}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *entities.Session) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	r.byHash[session.RefreshToken] = session
	return nil
}

func (r *fakeSessionRepo) FindByTokenHash(_ context.Context, tokenHash string) (*entities.Session, error) {
	r.findCalls++
	s, ok := r.byHash[tokenHash]
	if !ok {
		return nil, entities.ErrSessionNotFound
	}
	return s, nil
}

func (r *fakeSessionRepo) Revoke(_ context.Context, id uuid.UUID) error {
	for _, s := range r.byHash {
		if s.ID == id {
			now := time.Now()
			s.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeSessionRepo) RevokeAllByUserID(_ context.Context, userID uuid.UUID) error {
	for _, s := range r.byHash {
		if s.UserID == userID {
			now := time.Now()
			s.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeSessionRepo) DeleteExpired(_ context.Context, before time.Time) error {
	for hash, s := range r.byHash {
		if s.ExpiresAt.Before(before) {
			delete(r.byHash, hash)
		}
	}
	return nil
}

// fakeTokenCache is an in-memory stand-in for the Redis mirror.
type fakeTokenCache struct {
	entries map[string]string
}

func newFakeTokenCache() *fakeTokenCache {
	return &fakeTokenCache{entries: make(map[string]string)}
}

func (c *fakeTokenCache) Save(_ context.Context, hash, userID string, _ time.Duration) error {
	c.entries[hash] = userID
	return nil
}

func (c *fakeTokenCache) Lookup(_ context.Context, hash string) (string, bool, error) {
	userID, ok := c.entries[hash]
	return userID, ok, nil
}

func (c *fakeTokenCache) Revoke(_ context.Context, hash string) error {
	delete(c.entries, hash)
	return nil
}

func newTestService() (*Service, *fakeUserRepo, *fakeSessionRepo) {
	users := newFakeUserRepo()
	sessions := newFakeSessionRepo()
	manager := jwt.NewManager("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	svc := NewService(users, sessions, manager, nil, zap.NewNop())
	return svc, users, sessions
}

func newTestServiceWithCache() (*Service, *fakeSessionRepo, *fakeTokenCache) {
	users := newFakeUserRepo()
	sessions := newFakeSessionRepo()
	tokens := newFakeTokenCache()
	manager := jwt.NewManager("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	svc := NewService(users, sessions, manager, tokens, zap.NewNop())
	return svc, sessions, tokens
}

func TestSignupThenLogin(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	user, pair, err := svc.Signup(ctx, "hr@example.com", "HR Admin", "s3cret-password")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected a full token pair")
	}
	if user.Role != entities.RoleHR {
		t.Fatalf("expected default hr role, got %s", user.Role)
	}

	_, loginPair, err := svc.Login(ctx, "hr@example.com", "s3cret-password", "127.0.0.1", "test-agent")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if loginPair.AccessToken == "" {
		t.Fatal("expected access token on login")
	}
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, _, err := svc.Signup(ctx, "hr@example.com", "HR Admin", "s3cret-password"); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	_, _, err := svc.Signup(ctx, "hr@example.com", "Another", "other-password")
	var appErr apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrorCode_AUTH_USER_ALREADY_EXISTS {
		t.Fatalf("expected AUTH_USER_ALREADY_EXISTS, got %v", err)
	}
}

func TestLoginDoesNotLeakUnknownEmail(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, _, err := svc.Signup(ctx, "hr@example.com", "HR Admin", "s3cret-password"); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	_, _, unknownErr := svc.Login(ctx, "nobody@example.com", "whatever", "", "")
	_, _, badPassErr := svc.Login(ctx, "hr@example.com", "wrong-password", "", "")

	var unknownApp, badPassApp apperrors.AppError
	if !errors.As(unknownErr, &unknownApp) || unknownApp.Code != apperrors.ErrorCode_AUTH_INVALID_CREDENTIALS {
		t.Fatalf("expected AUTH_INVALID_CREDENTIALS for unknown email, got %v", unknownErr)
	}
	if !errors.As(badPassErr, &badPassApp) || badPassApp.Code != apperrors.ErrorCode_AUTH_INVALID_CREDENTIALS {
		t.Fatalf("expected AUTH_INVALID_CREDENTIALS for bad password, got %v", badPassErr)
	}
	if unknownErr.Error() != badPassErr.Error() {
		t.Fatal("unknown email and bad password must be indistinguishable")
	}
}

func TestLoginRejectsDisabledAccount(t *testing.T) {
	svc, users, _ := newTestService()
	ctx := context.Background()

	user, _, err := svc.Signup(ctx, "hr@example.com", "HR Admin", "s3cret-password")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	user.IsActive = false
	_ = users.Update(ctx, user)

	if _, _, err := svc.Login(ctx, "hr@example.com", "s3cret-password", "", ""); err == nil {
		t.Fatal("expected disabled account to be refused")
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, pair, err := svc.Signup(ctx, "hr@example.com", "HR Admin", "s3cret-password")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	_, next, err := svc.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if next.RefreshToken == pair.RefreshToken {
		t.Fatal("refresh must issue a new refresh token")
	}

	// The used token's session is revoked, so replaying it must fail.
	if _, _, err := svc.Refresh(ctx, pair.RefreshToken); err == nil {
		t.Fatal("expected replayed refresh token to be rejected")
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, pair, err := svc.Signup(ctx, "hr@example.com", "HR Admin", "s3cret-password")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	if err := svc.Logout(ctx, pair.RefreshToken); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	// Second logout finds no live session and still succeeds.
	if err := svc.Logout(ctx, pair.RefreshToken); err != nil {
		t.Fatalf("repeated logout must be a no-op, got %v", err)
	}
	if _, _, err := svc.Refresh(ctx, pair.RefreshToken); err == nil {
		t.Fatal("expected refresh after logout to fail")
	}
}

func TestValidateSession(t *testing.T) {
	svc, users, _ := newTestService()
	ctx := context.Background()

	user, pair, err := svc.Signup(ctx, "hr@example.com", "HR Admin", "s3cret-password")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	got, err := svc.ValidateSession(ctx, pair.AccessToken)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, got.ID)
	}

	if _, err := svc.ValidateSession(ctx, "not-a-token"); err == nil {
		t.Fatal("expected garbage token to be rejected")
	}

	user.IsActive = false
	_ = users.Update(ctx, user)
	if _, err := svc.ValidateSession(ctx, pair.AccessToken); err == nil {
		t.Fatal("expected disabled account to be rejected")
	}
}

func TestRefreshChecksCacheBeforeDatabase(t *testing.T) {
	svc, sessions, tokens := newTestServiceWithCache()
	ctx := context.Background()

	_, pair, err := svc.Signup(ctx, "hr@example.com", "HR Admin", "s3cret-password")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if len(tokens.entries) != 1 {
		t.Fatalf("issued token must be mirrored, cache holds %d entries", len(tokens.entries))
	}

	// Evict the hash, as a Redis-side revocation would. The session row
	// still exists, but the refresh must be rejected before any session
	// lookup happens.
	for hash := range tokens.entries {
		delete(tokens.entries, hash)
	}
	sessions.findCalls = 0

	_, _, err = svc.Refresh(ctx, pair.RefreshToken)
	var appErr apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrorCode_AUTH_INVALID_REFRESH_TOKEN {
		t.Fatalf("expected AUTH_INVALID_REFRESH_TOKEN, got %v", err)
	}
	if sessions.findCalls != 0 {
		t.Fatalf("cache-evicted token must be rejected without a session read, got %d reads", sessions.findCalls)
	}
}

func TestRefreshRotatesCacheEntry(t *testing.T) {
	svc, _, tokens := newTestServiceWithCache()
	ctx := context.Background()

	_, pair, err := svc.Signup(ctx, "hr@example.com", "HR Admin", "s3cret-password")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	_, next, err := svc.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if next.RefreshToken == pair.RefreshToken {
		t.Fatal("refresh must issue a new refresh token")
	}
	// The old hash is evicted and the new one mirrored.
	if len(tokens.entries) != 1 {
		t.Fatalf("cache must hold exactly the live token, got %d entries", len(tokens.entries))
	}
	if _, _, err := svc.Refresh(ctx, pair.RefreshToken); err == nil {
		t.Fatal("expected replayed refresh token to be rejected")
	}
}

func TestLogoutAllRevokesEverySession(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	user, first, err := svc.Signup(ctx, "hr@example.com", "HR Admin", "s3cret-password")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	_, second, err := svc.Login(ctx, "hr@example.com", "s3cret-password", "10.0.0.1", "other-device")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.LogoutAll(ctx, user.ID); err != nil {
		t.Fatalf("logout all failed: %v", err)
	}

	if _, _, err := svc.Refresh(ctx, first.RefreshToken); err == nil {
		t.Fatal("first session must be revoked")
	}
	if _, _, err := svc.Refresh(ctx, second.RefreshToken); err == nil {
		t.Fatal("second session must be revoked")
	}
}
