// Package game contains the match orchestration engine: room lifecycle,
// readiness and countdown synchronization, round completion, the rematch
// protocol, and disconnect handling.
package game

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/perkola/ty-fighter/internal/metrics"
	"github.com/perkola/ty-fighter/internal/stats"
	"github.com/perkola/ty-fighter/internal/texts"
)

const readyQuorum = 2

// Orchestrator drives every room's state machine in response to inbound
// events. All mutations of one room happen under that room's lock, so
// handlers for the same room are serialized; handlers for different rooms
// run independently.
type Orchestrator struct {
	rooms   *Store
	texts   texts.Provider
	stats   stats.Store
	metrics metrics.Metrics

	// countdownFrom and tick are fixed in production (11, one second);
	// tests shorten the tick.
	countdownFrom int
	tick          time.Duration
}

// NewOrchestrator wires the orchestrator to its collaborators.
func NewOrchestrator(rooms *Store, textsProvider texts.Provider, statsStore stats.Store, m metrics.Metrics) *Orchestrator {
	return &Orchestrator{
		rooms:         rooms,
		texts:         textsProvider,
		stats:         statsStore,
		metrics:       m,
		countdownFrom: 11,
		tick:          time.Second,
	}
}

// CreateRoom allocates a fresh room with the caller in seat 0 and emits the
// new code to the creator only.
func (o *Orchestrator) CreateRoom(conn Conn, guestID string) {
	room := o.rooms.Create(conn, guestID)
	o.metrics.IncActiveRooms()
	conn.Send(Message{Event: EventRoomCreated, Data: roomCreatedPayload{RoomCode: room.Code}})
	log.Info("Room created", "code", room.Code, "conn", conn.ID())
}

// JoinRoom seats the caller as the second player. The caller alone is told
// about an unknown or full room; the rest of the room is unaffected.
func (o *Orchestrator) JoinRoom(conn Conn, code, guestID string) {
	room, ok := o.rooms.Get(code)
	if !ok {
		conn.Send(Message{Event: EventError, Data: errorPayload{Message: ErrRoomNotFound.Error()}})
		log.Debug("Join rejected", "code", code, "reason", "not found")
		return
	}

	room.mu.Lock()
	if len(room.players) >= 2 {
		room.mu.Unlock()
		conn.Send(Message{Event: EventError, Data: errorPayload{Message: ErrRoomFull.Error()}})
		log.Debug("Join rejected", "code", code, "reason", "full")
		return
	}
	room.players = append(room.players, conn)
	room.guestIDs[conn.ID()] = guestID
	room.scores[conn.ID()] = 0
	conn.Send(Message{Event: EventRoomJoined, Data: roomJoinedPayload{RoomCode: code}})
	room.broadcast(Message{Event: EventRoomReady, Data: roomReadyPayload{Players: len(room.players)}})
	room.mu.Unlock()

	log.Info("Player joined room", "code", code, "conn", conn.ID())
}

// Ready marks the caller ready for the upcoming round. When both players are
// ready the room transitions to countdown and the ready set is cleared so it
// can be reused for the rematch vote.
func (o *Orchestrator) Ready(conn Conn, code string) {
	o.markReady(conn, code)
}

// RematchVote is the identical readiness mechanism applied after a finished
// round; reaching quorum restarts the countdown.
func (o *Orchestrator) RematchVote(conn Conn, code string) {
	o.markReady(conn, code)
}

func (o *Orchestrator) markReady(conn Conn, code string) {
	room, ok := o.rooms.Get(code)
	if !ok {
		return
	}

	room.mu.Lock()
	if _, seated := room.scores[conn.ID()]; !seated {
		room.mu.Unlock()
		return
	}
	// Readiness only means anything between rounds; a repeated ready during
	// the countdown or the race must not arm a second countdown.
	if room.state == StateCountdown || room.state == StatePlaying {
		room.mu.Unlock()
		return
	}
	room.ready[conn.ID()] = struct{}{}
	room.broadcast(Message{Event: EventReadyStatus, Data: readyStatusPayload{
		ReadyCount:   len(room.ready),
		TotalPlayers: len(room.players),
	}})
	start := len(room.ready) == readyQuorum
	if start {
		room.ready = make(map[string]struct{})
	}
	room.mu.Unlock()

	if start {
		o.startCountdown(room)
	}
}

// Progress relays a live progress/speed sample to the opponent only. Nothing
// is recorded; delivery is best effort.
func (o *Orchestrator) Progress(conn Conn, code string, progress, wpm int) {
	room, ok := o.rooms.Get(code)
	if !ok {
		return
	}
	room.mu.Lock()
	room.sendToOthers(conn.ID(), Message{Event: EventOpponentProgress, Data: opponentProgressPayload{
		Progress: progress,
		WPM:      wpm,
	}})
	room.mu.Unlock()
}

// Finish records the caller's self-reported result. The first report of a
// round decides the winner and increments the room score; reports are
// serialized per room, so ties cannot happen. Once both sides have reported,
// the round is persisted and per-round state is cleared for a rematch.
func (o *Orchestrator) Finish(conn Conn, code string, report PlayerReport) {
	room, ok := o.rooms.Get(code)
	if !ok {
		return
	}

	room.mu.Lock()
	if _, seated := room.scores[conn.ID()]; !seated {
		room.mu.Unlock()
		return
	}
	room.matchStats[conn.ID()] = report
	if room.firstFinisher == "" {
		room.firstFinisher = conn.ID()
		room.scores[conn.ID()]++
	}

	room.sendToOthers(conn.ID(), Message{Event: EventOpponentFinished})
	room.broadcast(Message{Event: EventRoundFinished, Data: roundFinishedPayload{
		Winner: room.firstFinisher,
		Stats:  report,
		Scores: room.scoresCopy(),
	}})
	room.state = StateFinished
	room.ready = make(map[string]struct{})

	var (
		rec       *stats.MatchRecord
		selfPlay  bool
		roundDone bool
	)
	if len(room.matchStats) == 2 && len(room.players) == 2 {
		roundDone = true
		p1, p2 := room.players[0], room.players[1]
		g1, g2 := room.guestIDs[p1.ID()], room.guestIDs[p2.ID()]
		if g1 == g2 {
			selfPlay = true
		} else {
			s1, s2 := room.matchStats[p1.ID()], room.matchStats[p2.ID()]
			rec = &stats.MatchRecord{
				Player1GuestID: g1,
				Player2GuestID: g2,
				WinnerGuestID:  room.guestIDs[room.firstFinisher],
				Player1:        sideResult(s1),
				Player2:        sideResult(s2),
				TextID:         room.text.ID,
			}
		}
		room.matchStats = make(map[string]PlayerReport)
		room.firstFinisher = ""
	}
	room.mu.Unlock()

	o.metrics.ObserveRaceDuration(float64(report.TimeSeconds))

	if !roundDone {
		return
	}
	o.metrics.IncRoundsCompleted()
	if selfPlay {
		log.Debug("Self-play round, skipping persistence", "code", code)
		return
	}

	// The round outcome was already broadcast; a failed durable write is
	// logged and never reverts it.
	if err := o.stats.RecordMatch(context.Background(), *rec); err != nil {
		log.Error("Failed to persist match", "code", code, "error", err)
		o.metrics.IncPersistenceFailures()
		return
	}
	o.metrics.IncMatchesPersisted()
}

// Leave removes the caller from the room. An emptied room is destroyed;
// otherwise the remaining player is told the peer left.
func (o *Orchestrator) Leave(conn Conn, code string) {
	room, ok := o.rooms.Get(code)
	if !ok {
		return
	}
	o.removeFromRoom(room, conn.ID())
	log.Info("Player left room", "code", code, "conn", conn.ID())
}

// Disconnect sweeps the caller out of any room it occupies. A disconnected
// participant forfeits; there is no reconnect-with-state.
func (o *Orchestrator) Disconnect(conn Conn) {
	for _, room := range o.rooms.Rooms() {
		o.removeFromRoom(room, conn.ID())
	}
}

func (o *Orchestrator) removeFromRoom(room *Room, connID string) {
	room.mu.Lock()
	if !room.removePlayer(connID) {
		room.mu.Unlock()
		return
	}
	delete(room.matchStats, connID)
	if room.firstFinisher == connID {
		room.firstFinisher = ""
	}
	empty := len(room.players) == 0
	if !empty {
		room.broadcast(Message{Event: EventPlayerLeft})
	}
	room.mu.Unlock()

	if empty {
		o.destroyRoom(room)
	}
}

func (o *Orchestrator) destroyRoom(room *Room) {
	// Remove from the store first: a countdown tick that fires between the
	// delete and the cancel sees the room gone and exits without emitting.
	o.rooms.Delete(room.Code)
	room.cancelCountdown()
	o.metrics.DecActiveRooms()
	log.Info("Room destroyed", "code", room.Code)
}

func (o *Orchestrator) startCountdown(room *Room) {
	text, err := o.texts.Random(context.Background())
	if err != nil {
		text = texts.Text{Content: texts.FallbackText}
	}

	room.mu.Lock()
	room.text = text
	room.state = StateCountdown
	stop := room.armCountdown()
	room.mu.Unlock()

	go o.runCountdown(room, stop)
}

// runCountdown emits one tick per interval carrying the remaining count and
// the chosen text, from countdownFrom down to zero, then a single game-start.
// It re-checks the session store every tick so it can never emit to a room
// that has been destroyed.
func (o *Orchestrator) runCountdown(room *Room, stop <-chan struct{}) {
	ticker := time.NewTicker(o.tick)
	defer ticker.Stop()

	count := o.countdownFrom
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if _, ok := o.rooms.Get(room.Code); !ok {
				return
			}
			room.mu.Lock()
			room.broadcast(Message{Event: EventCountdown, Data: countdownPayload{
				Count: count,
				Text:  room.text.Content,
			}})
			count--
			if count < 0 {
				room.state = StatePlaying
				room.broadcast(Message{Event: EventGameStart})
				room.mu.Unlock()
				room.cancelCountdown()
				return
			}
			room.mu.Unlock()
		}
	}
}

func sideResult(r PlayerReport) stats.SideResult {
	return stats.SideResult{
		WPM:         r.WPM,
		Accuracy:    r.Accuracy,
		TimeSeconds: r.TimeSeconds,
		CharsTyped:  r.TotalChars,
	}
}
