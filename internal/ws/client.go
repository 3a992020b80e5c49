package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/perkola/ty-fighter/internal/game"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = 54 * time.Second
	// Maximum message size allowed from peer.
	maxMessageSize = 4096

	sendBuffer = 64
)

// Client-emitted event names.
const (
	EventCreateRoom     = "create-room"
	EventJoinRoom       = "join-room"
	EventPlayerReady    = "player-ready"
	EventTypingProgress = "typing-progress"
	EventPlayerFinished = "player-finished"
	EventRematchVote    = "rematch-vote"
	EventLeaveRoom      = "leave-room"
)

type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type createRoomRequest struct {
	GuestID string `json:"guestId"`
}

type joinRoomRequest struct {
	RoomCode string `json:"roomCode"`
	GuestID  string `json:"guestId"`
}

type roomRequest struct {
	RoomCode string `json:"roomCode"`
}

type progressRequest struct {
	RoomCode string `json:"roomCode"`
	Progress int    `json:"progress"`
	WPM      int    `json:"wpm"`
}

type finishRequest struct {
	RoomCode string `json:"roomCode"`
	game.PlayerReport
}

// Client is one websocket connection. It implements game.Conn.
type Client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn

	// send is never closed; done signals the write pump to tear the
	// connection down. Room broadcasts may race with the teardown, so Send
	// must stay safe at any point of the client's lifecycle.
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		id:   uuid.NewString(),
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
}

func (c *Client) ID() string {
	return c.id
}

// Send queues one event for delivery. A peer that cannot drain its buffer is
// dropped rather than allowed to block the room; sends to a dropped client
// are silently discarded.
func (c *Client) Send(msg game.Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Error("Failed to encode event", "event", msg.Event, "error", err)
		return
	}
	select {
	case c.send <- payload:
	case <-c.done:
	default:
		log.Warn("Send buffer full, dropping connection", "conn", c.id)
		c.close()
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.close()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Error("Websocket read failed", "conn", c.id, "error", err)
			}
			return
		}
		c.dispatch(raw)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// dispatch decodes one client frame and routes it to the orchestrator.
// Malformed frames are logged and skipped; the connection stays up.
func (c *Client) dispatch(raw []byte) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Warn("Malformed frame", "conn", c.id, "error", err)
		return
	}

	switch env.Event {
	case EventCreateRoom:
		var req createRoomRequest
		if !c.decode(env, &req) {
			return
		}
		c.hub.orchestrator.CreateRoom(c, req.GuestID)
	case EventJoinRoom:
		var req joinRoomRequest
		if !c.decode(env, &req) {
			return
		}
		c.hub.orchestrator.JoinRoom(c, req.RoomCode, req.GuestID)
	case EventPlayerReady:
		var req roomRequest
		if !c.decode(env, &req) {
			return
		}
		c.hub.orchestrator.Ready(c, req.RoomCode)
	case EventTypingProgress:
		var req progressRequest
		if !c.decode(env, &req) {
			return
		}
		c.hub.orchestrator.Progress(c, req.RoomCode, req.Progress, req.WPM)
	case EventPlayerFinished:
		var req finishRequest
		if !c.decode(env, &req) {
			return
		}
		c.hub.orchestrator.Finish(c, req.RoomCode, req.PlayerReport)
	case EventRematchVote:
		var req roomRequest
		if !c.decode(env, &req) {
			return
		}
		c.hub.orchestrator.RematchVote(c, req.RoomCode)
	case EventLeaveRoom:
		var req roomRequest
		if !c.decode(env, &req) {
			return
		}
		c.hub.orchestrator.Leave(c, req.RoomCode)
	default:
		log.Debug("Unknown event", "conn", c.id, "event", env.Event)
	}
}

func (c *Client) decode(env envelope, dst any) bool {
	if err := json.Unmarshal(env.Data, dst); err != nil {
		log.Warn("Malformed payload", "conn", c.id, "event", env.Event, "error", err)
		return false
	}
	return true
}
