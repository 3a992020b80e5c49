package game

// Conn is one player's attachment to the real-time channel. The websocket
// layer implements it; tests substitute recording fakes.
type Conn interface {
	// ID returns the transient connection identifier. Distinct from the
	// durable guest id supplied at room creation/join time.
	ID() string
	// Send delivers one named event to the peer. Best effort: a slow or gone
	// peer must not block the caller.
	Send(msg Message)
}

// Message is one named event on the real-time channel.
type Message struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// Server-emitted event names.
const (
	EventRoomCreated      = "room-created"
	EventRoomJoined       = "room-joined"
	EventRoomReady        = "room-ready"
	EventReadyStatus      = "ready-status"
	EventCountdown        = "countdown"
	EventGameStart        = "game-start"
	EventOpponentProgress = "opponent-progress"
	EventOpponentFinished = "opponent-finished"
	EventRoundFinished    = "round-finished"
	EventPlayerLeft       = "player-left"
	EventError            = "error"
)

// GameState is the room lifecycle phase.
type GameState string

const (
	StateWaiting   GameState = "waiting"
	StateCountdown GameState = "countdown"
	StatePlaying   GameState = "playing"
	StateFinished  GameState = "finished"
)

// PlayerReport is one side's self-reported result for the current round.
type PlayerReport struct {
	WPM          int `json:"wpm"`
	Accuracy     int `json:"accuracy"`
	TimeSeconds  int `json:"time"`
	CorrectChars int `json:"correctChars"`
	TotalChars   int `json:"totalChars"`
}

type roomCreatedPayload struct {
	RoomCode string `json:"roomCode"`
}

type roomJoinedPayload struct {
	RoomCode string `json:"roomCode"`
}

type roomReadyPayload struct {
	Players int `json:"players"`
}

type readyStatusPayload struct {
	ReadyCount   int `json:"readyCount"`
	TotalPlayers int `json:"totalPlayers"`
}

type countdownPayload struct {
	Count int    `json:"count"`
	Text  string `json:"text"`
}

type opponentProgressPayload struct {
	Progress int `json:"progress"`
	WPM      int `json:"wpm"`
}

type roundFinishedPayload struct {
	Winner string         `json:"winner"`
	Stats  PlayerReport   `json:"stats"`
	Scores map[string]int `json:"scores"`
}

type errorPayload struct {
	Message string `json:"message"`
}
