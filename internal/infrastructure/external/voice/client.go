package voice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Vinni986/AI-interview-platform/pkg/config"
)

// Callbacks receive channel lifecycle and conversation events. Any of them
// may be nil. They are invoked from the channel's internal goroutines, so
// implementations must be safe for concurrent use.
type Callbacks struct {
	OnConnect    func()
	OnDisconnect func()
	OnMessage    func(role, text string)
	OnError      func(err error)
}

// SessionOptions identify who is joining which conversation.
type SessionOptions struct {
	SessionID       string
	AgentID         string
	ParticipantName string
}

// Channel is one live conversation with the voice agent. End tears the
// transport down; after End returns no further callbacks fire.
type Channel interface {
	End() error
}

// Client opens conversation channels over the configured transport.
type Client interface {
	Connect(ctx context.Context, opts SessionOptions, cb Callbacks) (Channel, error)
}

// NewClient builds a voice client for the configured connection type.
// The connection type is part of deploy config, so an unrecognized value
// is a boot-time error rather than something to silently default.
func NewClient(cfg *config.VoiceConfig, useMock bool) (Client, error) {
	if useMock {
		return &mockClient{}, nil
	}

	switch cfg.ConnectionType {
	case "webrtc":
		return newWebRTCClient(cfg), nil
	case "websocket":
		return newWebSocketClient(cfg), nil
	default:
		return nil, fmt.Errorf("Unknown connection type: %s", cfg.ConnectionType)
	}
}

// mockClient is an in-memory implementation for tests and local runs
// without voice credentials.
type mockClient struct{}

type mockChannel struct {
	cb    Callbacks
	done  chan struct{}
	ended chan struct{}
}

func (m *mockClient) Connect(ctx context.Context, opts SessionOptions, cb Callbacks) (Channel, error) {
	ch := &mockChannel{
		cb:    cb,
		done:  make(chan struct{}),
		ended: make(chan struct{}),
	}

	if cb.OnConnect != nil {
		cb.OnConnect()
	}

	go func() {
		select {
		case <-time.After(50 * time.Millisecond):
			if cb.OnMessage != nil {
				cb.OnMessage("agent", "Hello! I'm ready to begin the interview. (mock "+uuid.New().String()[:8]+")")
			}
		case <-ch.done:
		}
	}()

	return ch, nil
}

func (c *mockChannel) End() error {
	select {
	case <-c.ended:
		return nil
	default:
	}
	close(c.ended)
	close(c.done)
	if c.cb.OnDisconnect != nil {
		c.cb.OnDisconnect()
	}
	return nil
}
