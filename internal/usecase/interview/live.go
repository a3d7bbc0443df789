package interview

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/Vinni986/AI-interview-platform/errors"
	"github.com/Vinni986/AI-interview-platform/internal/domain/entities"
	"github.com/Vinni986/AI-interview-platform/internal/infrastructure/external/voice"
)

// LiveState is the lifecycle state of one live interview.
type LiveState string

const (
	StateIdle         LiveState = "idle"
	StateConnecting   LiveState = "connecting"
	StateConnected    LiveState = "connected"
	StateEnded        LiveState = "ended"
	StateDisconnected LiveState = "disconnected_unexpectedly"
)

// LiveSession holds the server-side state of one voice interview. The
// transcript is append-only for the life of the connection and survives an
// explicit end so it can still be read afterward.
type LiveSession struct {
	ID      string
	EventID string
	Email   string

	mu                 sync.Mutex
	state              LiveState
	hasConnected       bool
	conversationActive bool
	transcript         []entities.TranscriptEntry
	currentQuestion    string
	errorKind          ErrorKind
	errorMessage       string
	channel            voice.Channel
	lastEventAt        time.Time
	endedAt            time.Time
}

// LiveSessionView is the snapshot handed to handlers.
type LiveSessionView struct {
	ID              string                     `json:"id"`
	State           LiveState                  `json:"state"`
	CurrentQuestion string                     `json:"current_question,omitempty"`
	Transcript      []entities.TranscriptEntry `json:"transcript"`
	ErrorKind       ErrorKind                  `json:"error_kind,omitempty"`
	ErrorMessage    string                     `json:"error_message,omitempty"`
}

// Manager owns every live interview in flight, keyed by session ID. Ended
// sessions linger briefly for transcript reads and are then reaped.
type Manager struct {
	client  voice.Client
	agentID string
	logger  *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*LiveSession
}

// NewManager creates the live-session manager. An empty agentID marks the
// voice feature as unconfigured: Start refuses without ever dialing.
func NewManager(client voice.Client, agentID string, logger *zap.Logger) *Manager {
	m := &Manager{
		client:   client,
		agentID:  agentID,
		logger:   logger,
		sessions: make(map[string]*LiveSession),
	}
	go m.reapEnded()
	return m
}

// Configured reports whether live interviews can be started at all.
func (m *Manager) Configured() bool {
	return m.agentID != ""
}

// Start dials the voice agent and registers a new live session. The
// connect either fails here, classified for the candidate, or the session
// comes back already connected.
func (m *Manager) Start(ctx context.Context, eventID, email, participantName string) (*LiveSessionView, error) {
	if !m.Configured() {
		return nil, apperrors.ErrVoiceNotConfigured()
	}

	sess := &LiveSession{
		ID:          uuid.New().String(),
		EventID:     eventID,
		Email:       email,
		state:       StateConnecting,
		lastEventAt: time.Now(),
	}

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()

	cb := voice.Callbacks{
		OnConnect: func() {
			sess.mu.Lock()
			sess.state = StateConnected
			sess.hasConnected = true
			sess.conversationActive = true
			sess.lastEventAt = time.Now()
			sess.mu.Unlock()
			m.logger.Info("voice channel connected", zap.String("session_id", sess.ID))
		},
		OnMessage: func(role, text string) {
			sess.mu.Lock()
			sess.transcript = append(sess.transcript, entities.TranscriptEntry{
				Role: entities.TranscriptRole(role),
				Text: text,
			})
			if entities.TranscriptRole(role) == entities.TranscriptAgent {
				sess.currentQuestion = text
			}
			sess.lastEventAt = time.Now()
			sess.mu.Unlock()
		},
		OnDisconnect: func() {
			m.handleDisconnect(sess)
		},
		OnError: func(err error) {
			kind := Classify(err)
			sess.mu.Lock()
			sess.errorKind = kind
			sess.errorMessage = kind.UserMessage()
			sess.mu.Unlock()
			m.logger.Warn("voice channel error",
				zap.String("session_id", sess.ID),
				zap.String("kind", string(kind)),
				zap.Error(err))
		},
	}

	channel, err := m.client.Connect(ctx, voice.SessionOptions{
		SessionID:       sess.ID,
		AgentID:         m.agentID,
		ParticipantName: participantName,
	}, cb)
	if err != nil {
		m.mu.Lock()
		delete(m.sessions, sess.ID)
		m.mu.Unlock()

		kind := Classify(err)
		m.logger.Error("voice connect failed",
			zap.String("event_id", eventID),
			zap.String("kind", string(kind)),
			zap.Error(err))
		return nil, apperrors.ErrVoiceConnectFailed(kind.UserMessage(), err).
			WithDetail("kind", string(kind))
	}

	sess.mu.Lock()
	sess.channel = channel
	view := sess.snapshotLocked()
	sess.mu.Unlock()

	return view, nil
}

// handleDisconnect classifies a channel drop. A drop while the session was
// connected and the conversation still active is unexpected and gets its
// own state and copy; a drop after an explicit end is normal teardown.
func (m *Manager) handleDisconnect(sess *LiveSession) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.state == StateEnded {
		return
	}

	if sess.hasConnected && sess.conversationActive {
		sess.state = StateDisconnected
		sess.conversationActive = false
		sess.errorKind = KindDisconnected
		sess.errorMessage = KindDisconnected.UserMessage()
		sess.endedAt = time.Now()
		m.logger.Warn("unexpected voice disconnect", zap.String("session_id", sess.ID))
		return
	}

	sess.state = StateEnded
	sess.endedAt = time.Now()
}

// Get returns a snapshot of one session.
func (m *Manager) Get(sessionID string) (*LiveSessionView, error) {
	sess, err := m.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.snapshotLocked(), nil
}

// Transcript returns the transcript accumulated so far.
func (m *Manager) Transcript(sessionID string) ([]entities.TranscriptEntry, error) {
	sess, err := m.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	out := make([]entities.TranscriptEntry, len(sess.transcript))
	copy(out, sess.transcript)
	return out, nil
}

// End tears the channel down after an explicit end action. The
// conversation is marked inactive before the channel closes so the
// resulting disconnect is not classified as unexpected. The transcript is
// kept.
func (m *Manager) End(sessionID string) (*LiveSessionView, error) {
	sess, err := m.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	sess.conversationActive = false
	sess.state = StateEnded
	sess.endedAt = time.Now()
	channel := sess.channel
	sess.mu.Unlock()

	if channel != nil {
		if err := channel.End(); err != nil {
			m.logger.Warn("failed to close voice channel", zap.String("session_id", sessionID), zap.Error(err))
		}
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.snapshotLocked(), nil
}

// Complete ends the session and removes it from the registry. Used when
// the candidate confirms the interview is finished.
func (m *Manager) Complete(sessionID string) error {
	if _, err := m.End(sessionID); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
	return nil
}

func (m *Manager) lookup(sessionID string) (*LiveSession, error) {
	m.mu.RLock()
	sess, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if !ok {
		return nil, apperrors.ErrVoiceSessionNotFound(sessionID)
	}
	return sess, nil
}

func (s *LiveSession) snapshotLocked() *LiveSessionView {
	transcript := make([]entities.TranscriptEntry, len(s.transcript))
	copy(transcript, s.transcript)
	return &LiveSessionView{
		ID:              s.ID,
		State:           s.state,
		CurrentQuestion: s.currentQuestion,
		Transcript:      transcript,
		ErrorKind:       s.errorKind,
		ErrorMessage:    s.errorMessage,
	}
}

const (
	reapInterval   = 5 * time.Minute
	endedRetention = time.Hour
	liveIdleLimit  = 30 * time.Minute
)

// reapEnded periodically drops finished sessions and tears down live ones
// that have gone silent, so the registry does not grow without bound.
func (m *Manager) reapEnded() {
	ticker := time.NewTicker(reapInterval)
	defer ticker.Stop()

	for range ticker.C {
		m.reap(time.Now())
	}
}

// reap removes sessions that ended over an hour ago. A session still
// connected but silent past the idle limit means the candidate left
// without ending the interview; its channel is closed before removal so
// the voice resources are released.
func (m *Manager) reap(now time.Time) {
	var abandoned []*LiveSession

	m.mu.Lock()
	for id, sess := range m.sessions {
		sess.mu.Lock()
		var drop bool
		switch sess.state {
		case StateEnded, StateDisconnected:
			drop = !sess.endedAt.IsZero() && sess.endedAt.Before(now.Add(-endedRetention))
		case StateConnecting, StateConnected:
			if sess.lastEventAt.Before(now.Add(-liveIdleLimit)) {
				drop = true
				abandoned = append(abandoned, sess)
			}
		}
		sess.mu.Unlock()
		if drop {
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, sess := range abandoned {
		sess.mu.Lock()
		sess.conversationActive = false
		sess.state = StateEnded
		sess.endedAt = now
		channel := sess.channel
		sess.mu.Unlock()

		if channel != nil {
			if err := channel.End(); err != nil {
				m.logger.Warn("failed to close abandoned voice channel",
					zap.String("session_id", sess.ID), zap.Error(err))
			}
		}
		m.logger.Info("reaped abandoned voice session", zap.String("session_id", sess.ID))
	}
}
