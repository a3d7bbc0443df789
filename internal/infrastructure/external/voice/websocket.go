package voice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/Vinni986/AI-interview-platform/pkg/config"
)

// webSocketClient carries the conversation over the provider's websocket
// endpoint. Transcript fragments arrive as typed JSON events.
type webSocketClient struct {
	endpoint string
}

func newWebSocketClient(cfg *config.VoiceConfig) *webSocketClient {
	return &webSocketClient{endpoint: cfg.WebSocketURL}
}

type webSocketChannel struct {
	conn *websocket.Conn

	mu    sync.Mutex
	ended bool
}

// wsEvent covers the provider event shapes we care about. Unknown event
// types are ignored so provider additions don't break the session.
type wsEvent struct {
	Type       string `json:"type"`
	Transcript struct {
		Role string `json:"role"`
		Text string `json:"text"`
	} `json:"transcript"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *webSocketClient) Connect(ctx context.Context, opts SessionOptions, cb Callbacks) (Channel, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid websocket endpoint: %w", err)
	}
	q := u.Query()
	q.Set("agent_id", opts.AgentID)
	u.RawQuery = q.Encode()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial voice endpoint: %w", err)
	}

	init := map[string]interface{}{
		"type":             "conversation_initiation",
		"participant_name": opts.ParticipantName,
	}
	if err := conn.WriteJSON(init); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to start conversation: %w", err)
	}

	ch := &webSocketChannel{conn: conn}

	if cb.OnConnect != nil {
		cb.OnConnect()
	}

	go ch.readLoop(cb)

	return ch, nil
}

func (c *webSocketChannel) readLoop(cb Callbacks) {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			ended := c.ended
			c.mu.Unlock()
			if !ended {
				if cb.OnError != nil {
					cb.OnError(err)
				}
				if cb.OnDisconnect != nil {
					cb.OnDisconnect()
				}
			}
			return
		}

		var ev wsEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			continue
		}

		switch ev.Type {
		case "transcript":
			if cb.OnMessage != nil {
				cb.OnMessage(ev.Transcript.Role, ev.Transcript.Text)
			}
		case "error":
			if cb.OnError != nil {
				cb.OnError(fmt.Errorf("%s", ev.Error.Message))
			}
		case "conversation_end":
			if cb.OnDisconnect != nil {
				cb.OnDisconnect()
			}
			return
		}
	}
}

func (c *webSocketChannel) End() error {
	c.mu.Lock()
	if c.ended {
		c.mu.Unlock()
		return nil
	}
	c.ended = true
	c.mu.Unlock()

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session ended")
	_ = c.conn.WriteMessage(websocket.CloseMessage, msg)
	return c.conn.Close()
}
