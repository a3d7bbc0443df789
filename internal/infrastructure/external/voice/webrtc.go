package voice

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	livekit "github.com/livekit/protocol/livekit"
	lksdk "github.com/livekit/server-sdk-go/v2"

	"github.com/Vinni986/AI-interview-platform/pkg/config"
)

// webRTCClient carries the conversation over a LiveKit room. The agent is
// dispatched via room metadata; transcript fragments arrive as data packets.
type webRTCClient struct {
	url        string
	apiKey     string
	apiSecret  string
	roomClient *lksdk.RoomServiceClient
}

func newWebRTCClient(cfg *config.VoiceConfig) *webRTCClient {
	return &webRTCClient{
		url:        cfg.LiveKitURL,
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		roomClient: lksdk.NewRoomServiceClient(cfg.LiveKitURL, cfg.APIKey, cfg.APISecret),
	}
}

type webRTCChannel struct {
	client   *webRTCClient
	room     *lksdk.Room
	roomName string

	mu    sync.Mutex
	ended bool
}

// agentMetadata is embedded in the room so the agent worker picks it up.
type agentMetadata struct {
	AgentID string `json:"agent_id"`
}

// dataMessage is the JSON payload exchanged over the room data channel.
type dataMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

func (c *webRTCClient) Connect(ctx context.Context, opts SessionOptions, cb Callbacks) (Channel, error) {
	roomName := "interview-" + opts.SessionID

	meta, err := json.Marshal(agentMetadata{AgentID: opts.AgentID})
	if err != nil {
		return nil, err
	}

	_, err = c.roomClient.CreateRoom(ctx, &livekit.CreateRoomRequest{
		Name:             roomName,
		MaxParticipants:  2,
		EmptyTimeout:     300,
		DepartureTimeout: 30,
		Metadata:         string(meta),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	ch := &webRTCChannel{client: c, roomName: roomName}

	callback := &lksdk.RoomCallback{
		OnDisconnected: func() {
			if cb.OnDisconnect != nil {
				cb.OnDisconnect()
			}
		},
		ParticipantCallback: lksdk.ParticipantCallback{
			OnDataPacket: func(data lksdk.DataPacket, params lksdk.DataReceiveParams) {
				packet, ok := data.(*lksdk.UserDataPacket)
				if !ok {
					return
				}
				var msg dataMessage
				if err := json.Unmarshal(packet.Payload, &msg); err != nil {
					if cb.OnError != nil {
						cb.OnError(fmt.Errorf("bad data packet: %w", err))
					}
					return
				}
				if cb.OnMessage != nil {
					cb.OnMessage(msg.Role, msg.Text)
				}
			},
		},
	}

	room, err := lksdk.ConnectToRoom(c.url, lksdk.ConnectInfo{
		APIKey:              c.apiKey,
		APISecret:           c.apiSecret,
		RoomName:            roomName,
		ParticipantIdentity: "candidate-" + opts.SessionID,
		ParticipantName:     opts.ParticipantName,
	}, callback)
	if err != nil {
		// The room was created but never joined; reap it now instead of
		// waiting for the empty timeout.
		_, _ = c.roomClient.DeleteRoom(context.Background(), &livekit.DeleteRoomRequest{Room: roomName})
		return nil, fmt.Errorf("failed to connect to room: %w", err)
	}
	ch.room = room

	if cb.OnConnect != nil {
		cb.OnConnect()
	}

	return ch, nil
}

func (c *webRTCChannel) End() error {
	c.mu.Lock()
	if c.ended {
		c.mu.Unlock()
		return nil
	}
	c.ended = true
	c.mu.Unlock()

	c.room.Disconnect()

	_, err := c.client.roomClient.DeleteRoom(context.Background(), &livekit.DeleteRoomRequest{
		Room: c.roomName,
	})
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	return nil
}
