package interview

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/Vinni986/AI-interview-platform/errors"
	"github.com/Vinni986/AI-interview-platform/internal/domain/entities"
	"github.com/Vinni986/AI-interview-platform/pkg/config"
	"github.com/Vinni986/AI-interview-platform/pkg/workflow"
)

// Service owns the candidate waiting-room flow: validating the interview
// link, reading the session from the workflow engine, and driving the
// countdown toward the live interview.
type Service struct {
	workflow *workflow.Client
	features config.FeatureConfig
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates the waiting-room service.
func NewService(wf *workflow.Client, features config.FeatureConfig, logger *zap.Logger) *Service {
	return &Service{
		workflow: wf,
		features: features,
		logger:   logger,
		now:      time.Now,
	}
}

// SessionView is what the waiting room renders. It mirrors the workflow
// envelope so a soft upstream failure reaches the candidate as a message,
// not an error page.
type SessionView struct {
	Success bool                       `json:"success"`
	Message string                     `json:"message,omitempty"`
	Data    *entities.InterviewSession `json:"data,omitempty"`
}

// GetSession reads the interview session for one link. Both eventID and
// email are required; a missing one is a terminal link error and no
// upstream request is made. The test-mode bypass manufactures an active
// session only when the boot flag is set AND the caller asked for it.
func (s *Service) GetSession(ctx context.Context, eventID, email string, testMode bool) (*SessionView, error) {
	if eventID == "" || email == "" {
		return nil, apperrors.ErrInvalidInterviewLink()
	}

	if testMode && s.features.TestModeEnabled {
		s.logger.Info("serving synthetic test-mode session", zap.String("email", email))
		return &SessionView{
			Success: true,
			Data:    entities.SyntheticTestSession(email, s.now()),
		}, nil
	}

	if !s.workflow.Configured() {
		return nil, apperrors.ErrWorkflowUnavailable(errors.New("workflow base URL not configured"))
	}

	env, err := s.workflow.GetInterviewSession(ctx, eventID, email)
	if err != nil {
		var se *workflow.StatusError
		if errors.As(err, &se) {
			return nil, apperrors.ErrWorkflowBadStatus(se.StatusCode)
		}
		return nil, apperrors.ErrWorkflowUnavailable(err)
	}

	return &SessionView{
		Success: env.Success,
		Message: env.Message,
		Data:    env.Data,
	}, nil
}

// WatchUpdate is one event on the waiting-room stream: either a countdown
// tick or a fresh session snapshot.
type WatchUpdate struct {
	Countdown string       `json:"countdown,omitempty"`
	Session   *SessionView `json:"session,omitempty"`
}

// Watch streams countdown ticks for a too-early session and re-fetches the
// session exactly once when the countdown reaches zero. Ticks come from
// the supplied channel so the schedule stays out of this function. Any
// other status ends the stream after the first snapshot.
func (s *Service) Watch(ctx context.Context, eventID, email string, testMode bool, ticks <-chan time.Time, emit func(WatchUpdate) error) error {
	view, err := s.GetSession(ctx, eventID, email, testMode)
	if err != nil {
		return err
	}
	if err := emit(WatchUpdate{Session: view}); err != nil {
		return err
	}

	if !view.Success || view.Data == nil || view.Data.Status != entities.InterviewTooEarly {
		return nil
	}

	cd := NewCountdown(view.Data.TimeUntilStartMs)
	if err := emit(WatchUpdate{Countdown: cd.Display()}); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticks:
			refetch := cd.Tick()
			if err := emit(WatchUpdate{Countdown: cd.Display()}); err != nil {
				return err
			}
			if refetch {
				fresh, err := s.GetSession(ctx, eventID, email, testMode)
				if err != nil {
					return err
				}
				return emit(WatchUpdate{Session: fresh})
			}
		}
	}
}
