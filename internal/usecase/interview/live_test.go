package interview

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/Vinni986/AI-interview-platform/errors"
	"github.com/Vinni986/AI-interview-platform/internal/infrastructure/external/voice"
	"github.com/Vinni986/AI-interview-platform/pkg/config"
)

// fakeVoiceClient hands the test direct control over channel callbacks.
type fakeVoiceClient struct {
	connectErr error
	cb         voice.Callbacks
	channel    *fakeChannel
}

type fakeChannel struct {
	ended bool
}

func (f *fakeChannel) End() error {
	f.ended = true
	return nil
}

func (f *fakeVoiceClient) Connect(ctx context.Context, opts voice.SessionOptions, cb voice.Callbacks) (voice.Channel, error) {
	if f.connectErr != nil {
		return nil, f.connectErr
	}
	f.cb = cb
	f.channel = &fakeChannel{}
	cb.OnConnect()
	return f.channel, nil
}

func newTestManager(client voice.Client) *Manager {
	return NewManager(client, "agent-123", zap.NewNop())
}

func TestStartRequiresAgentID(t *testing.T) {
	m := NewManager(&fakeVoiceClient{}, "", zap.NewNop())

	_, err := m.Start(context.Background(), "evt-1", "jane@example.com", "Jane")
	var appErr apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrorCode_VOICE_NOT_CONFIGURED {
		t.Fatalf("err = %v, want voice-not-configured", err)
	}
}

func TestStartConnectsAndTracksTranscript(t *testing.T) {
	client := &fakeVoiceClient{}
	m := newTestManager(client)

	view, err := m.Start(context.Background(), "evt-1", "jane@example.com", "Jane")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if view.State != StateConnected {
		t.Fatalf("state = %s, want connected", view.State)
	}

	client.cb.OnMessage("agent", "Tell me about your last project.")
	client.cb.OnMessage("user", "I built a payments service.")
	client.cb.OnMessage("agent", "What was the hardest bug?")

	got, err := m.Get(view.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Transcript) != 3 {
		t.Fatalf("transcript length = %d, want 3", len(got.Transcript))
	}
	if got.CurrentQuestion != "What was the hardest bug?" {
		t.Errorf("current question = %q", got.CurrentQuestion)
	}
}

func TestUnexpectedDisconnect(t *testing.T) {
	client := &fakeVoiceClient{}
	m := newTestManager(client)

	view, err := m.Start(context.Background(), "evt-1", "jane@example.com", "Jane")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	// The channel drops with no explicit end action first.
	client.cb.OnDisconnect()

	got, err := m.Get(view.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.State != StateDisconnected {
		t.Fatalf("state = %s, want disconnected_unexpectedly", got.State)
	}
	if got.ErrorKind != KindDisconnected {
		t.Errorf("error kind = %s, want %s", got.ErrorKind, KindDisconnected)
	}
	if got.ErrorMessage == KindUnknown.UserMessage() {
		t.Error("unexpected-disconnect copy must be distinct from the generic one")
	}
}

func TestExplicitEndIsNotUnexpected(t *testing.T) {
	client := &fakeVoiceClient{}
	m := newTestManager(client)

	view, err := m.Start(context.Background(), "evt-1", "jane@example.com", "Jane")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	client.cb.OnMessage("agent", "First question.")

	ended, err := m.End(view.ID)
	if err != nil {
		t.Fatalf("End: %v", err)
	}
	if !client.channel.ended {
		t.Error("channel must be torn down on explicit end")
	}

	// The teardown-triggered disconnect must not flip the state.
	client.cb.OnDisconnect()

	got, err := m.Get(view.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.State != StateEnded {
		t.Fatalf("state = %s, want ended", got.State)
	}
	if got.ErrorKind != "" {
		t.Errorf("explicit end must not set an error, got %s", got.ErrorKind)
	}
	if len(ended.Transcript) != 1 {
		t.Errorf("transcript must survive an explicit end, got %d entries", len(ended.Transcript))
	}
}

func TestCompleteRemovesSession(t *testing.T) {
	client := &fakeVoiceClient{}
	m := newTestManager(client)

	view, err := m.Start(context.Background(), "evt-1", "jane@example.com", "Jane")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	if err := m.Complete(view.ID); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if !client.channel.ended {
		t.Error("channel must be torn down on complete")
	}

	_, err = m.Get(view.ID)
	var appErr apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrorCode_VOICE_SESSION_NOT_FOUND {
		t.Fatalf("err = %v, want session-not-found", err)
	}
}

func TestConnectFailureIsClassified(t *testing.T) {
	client := &fakeVoiceClient{connectErr: errors.New("insufficient credits on account")}
	m := newTestManager(client)

	_, err := m.Start(context.Background(), "evt-1", "jane@example.com", "Jane")
	var appErr apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("err = %v, want AppError", err)
	}
	if appErr.Details["kind"] != string(KindQuota) {
		t.Errorf("kind = %q, want %s", appErr.Details["kind"], KindQuota)
	}
	if appErr.Message != KindQuota.UserMessage() {
		t.Errorf("message = %q", appErr.Message)
	}
}

func TestMockTransportStartsInterview(t *testing.T) {
	client, err := voice.NewClient(&config.VoiceConfig{}, true)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	m := NewManager(client, "mock-agent", zap.NewNop())

	view, err := m.Start(context.Background(), "evt-1", "jane@example.com", "Jane")
	if err != nil {
		t.Fatalf("Start on the mock transport must work without credentials, got %v", err)
	}
	if view.State != StateConnected {
		t.Fatalf("state = %s, want connected", view.State)
	}

	// The mock agent sends its greeting shortly after connecting.
	deadline := time.Now().Add(2 * time.Second)
	for {
		entries, err := m.Transcript(view.ID)
		if err != nil {
			t.Fatalf("Transcript: %v", err)
		}
		if len(entries) > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("mock agent never spoke")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if _, err := m.End(view.ID); err != nil {
		t.Fatalf("End: %v", err)
	}
}

func TestReapClosesAbandonedChannel(t *testing.T) {
	client := &fakeVoiceClient{}
	m := newTestManager(client)

	view, err := m.Start(context.Background(), "evt-1", "jane@example.com", "Jane")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	// A recent session is left alone.
	m.reap(time.Now())
	if _, err := m.Get(view.ID); err != nil {
		t.Fatalf("fresh session must survive a reap pass: %v", err)
	}

	// Silent past the idle limit: the channel is released and the session
	// removed, as when a candidate navigates away mid-interview.
	m.reap(time.Now().Add(liveIdleLimit + time.Minute))
	if !client.channel.ended {
		t.Error("abandoned channel must be torn down")
	}

	_, err = m.Get(view.ID)
	var appErr apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrorCode_VOICE_SESSION_NOT_FOUND {
		t.Fatalf("err = %v, want session-not-found", err)
	}
}

func TestReapKeepsRecentlyEndedSession(t *testing.T) {
	client := &fakeVoiceClient{}
	m := newTestManager(client)

	view, err := m.Start(context.Background(), "evt-1", "jane@example.com", "Jane")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := m.End(view.ID); err != nil {
		t.Fatalf("End: %v", err)
	}

	// Ended sessions linger for transcript reads until the retention
	// window passes.
	m.reap(time.Now().Add(endedRetention - time.Minute))
	if _, err := m.Get(view.ID); err != nil {
		t.Fatalf("recently ended session must still be readable: %v", err)
	}

	m.reap(time.Now().Add(endedRetention + time.Minute))
	if _, err := m.Get(view.ID); err == nil {
		t.Fatal("expired session must be reaped")
	}
}
