package handler

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/Vinni986/AI-interview-platform/errors"
	"github.com/Vinni986/AI-interview-platform/internal/usecase/interview"
)

// Interview handles the candidate waiting-room and live-interview endpoints.
// These are public: candidates authenticate by the (eventId, email) pair in
// their invite link, not by an HR session.
type Interview struct {
	service *interview.Service
	live    *interview.Manager
	logger  *zap.Logger
}

// NewInterview creates the interview handler.
func NewInterview(service *interview.Service, live *interview.Manager, logger *zap.Logger) *Interview {
	return &Interview{service: service, live: live, logger: logger}
}

// GetSession reads the waiting-room state for one interview link.
func (h *Interview) GetSession(c echo.Context) error {
	view, err := h.service.GetSession(
		c.Request().Context(),
		c.QueryParam("eventId"),
		c.QueryParam("email"),
		c.QueryParam("test") == "true",
	)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, view)
}

// WatchSession streams waiting-room updates over SSE: one countdown frame
// per second for a too-early session, then a single refreshed snapshot
// when the countdown expires.
func (h *Interview) WatchSession(c echo.Context) error {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(200)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	err := h.service.Watch(
		c.Request().Context(),
		c.QueryParam("eventId"),
		c.QueryParam("email"),
		c.QueryParam("test") == "true",
		ticker.C,
		func(u interview.WatchUpdate) error {
			payload, err := json.Marshal(u)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(res, "data: %s\n\n", payload); err != nil {
				return err
			}
			res.Flush()
			return nil
		},
	)
	if err != nil && c.Request().Context().Err() == nil {
		h.logger.Warn("session watch ended with error", zap.Error(err))
	}
	return nil
}

type startLiveRequest struct {
	EventID string `json:"eventId" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Name    string `json:"name"`
}

// StartLive dials the voice agent and registers a live session.
func (h *Interview) StartLive(c echo.Context) error {
	var req startLiveRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	name := req.Name
	if name == "" {
		name = req.Email
	}

	view, err := h.live.Start(c.Request().Context(), req.EventID, req.Email, name)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, view)
}

// GetLive returns the current snapshot of one live session.
func (h *Interview) GetLive(c echo.Context) error {
	view, err := h.live.Get(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, view)
}

// GetTranscript returns the transcript accumulated so far.
func (h *Interview) GetTranscript(c echo.Context) error {
	transcript, err := h.live.Transcript(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"transcript": transcript})
}

// EndLive tears down the voice channel after an explicit end action. The
// session and its transcript stay readable.
func (h *Interview) EndLive(c echo.Context) error {
	view, err := h.live.End(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, view)
}

// CompleteLive tears down the channel and discards the session.
func (h *Interview) CompleteLive(c echo.Context) error {
	if err := h.live.Complete(c.Param("id")); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]string{"status": "completed"})
}
