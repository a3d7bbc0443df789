package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/Vinni986/AI-interview-platform/errors"
	authdto "github.com/Vinni986/AI-interview-platform/internal/adapter/dto/auth"
	"github.com/Vinni986/AI-interview-platform/internal/domain/entities"
	"github.com/Vinni986/AI-interview-platform/internal/usecase/auth"
)

// Auth handles the HR authentication endpoints.
type Auth struct {
	service *auth.Service
	logger  *zap.Logger
}

// NewAuth creates the auth handler.
func NewAuth(service *auth.Service, logger *zap.Logger) *Auth {
	return &Auth{service: service, logger: logger}
}

// Signup registers a new HR account and signs it in.
func (h *Auth) Signup(c echo.Context) error {
	var req authdto.SignupRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	user, pair, err := h.service.Signup(c.Request().Context(), req.Email, req.Name, req.Password)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	h.setAuthCookie(c, pair.AccessToken, int(pair.ExpiresIn))
	return HandleSuccess(h.logger, c, &authdto.AuthResponse{
		User:         user.ToPublic(),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	})
}

// Login authenticates an HR account.
func (h *Auth) Login(c echo.Context) error {
	var req authdto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	user, pair, err := h.service.Login(c.Request().Context(), req.Email, req.Password, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	h.setAuthCookie(c, pair.AccessToken, int(pair.ExpiresIn))
	return HandleSuccess(h.logger, c, &authdto.AuthResponse{
		User:         user.ToPublic(),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	})
}

// Refresh exchanges a refresh token for a new pair.
func (h *Auth) Refresh(c echo.Context) error {
	var req authdto.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	user, pair, err := h.service.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	h.setAuthCookie(c, pair.AccessToken, int(pair.ExpiresIn))
	return HandleSuccess(h.logger, c, &authdto.AuthResponse{
		User:         user.ToPublic(),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	})
}

// Logout revokes the session behind the supplied refresh token.
func (h *Auth) Logout(c echo.Context) error {
	var req authdto.LogoutRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("Invalid request body"))
	}

	if err := h.service.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		return HandleError(h.logger, c, err)
	}

	h.clearAuthCookie(c)
	return HandleSuccess(h.logger, c, map[string]string{"status": "logged out"})
}

// LogoutAll revokes every session of the authenticated user, e.g. after a
// suspected credential leak. Requires the auth middleware.
func (h *Auth) LogoutAll(c echo.Context) error {
	user, ok := c.Get("user").(*entities.User)
	if !ok {
		return HandleError(h.logger, c, apperrors.ErrUnauthenticated())
	}

	if err := h.service.LogoutAll(c.Request().Context(), user.ID); err != nil {
		return HandleError(h.logger, c, err)
	}

	h.clearAuthCookie(c)
	return HandleSuccess(h.logger, c, map[string]string{"status": "logged out everywhere"})
}

// Me returns the authenticated user. Requires the auth middleware.
func (h *Auth) Me(c echo.Context) error {
	user, ok := c.Get("user").(*entities.User)
	if !ok {
		return HandleError(h.logger, c, apperrors.ErrUnauthenticated())
	}
	return HandleSuccess(h.logger, c, user.ToPublic())
}

func (h *Auth) setAuthCookie(c echo.Context, token string, maxAge int) {
	c.SetCookie(&http.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *Auth) clearAuthCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:   "access_token",
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}
