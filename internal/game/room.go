package game

import (
	"sync"

	"github.com/perkola/ty-fighter/internal/texts"
)

// Room pairs up to two players for one or more consecutive rounds. All fields
// are guarded by mu; every orchestrator handler holds the lock for its whole
// duration, so handlers for the same room never interleave. Different rooms
// share nothing.
type Room struct {
	Code string

	mu       sync.Mutex
	players  []Conn
	guestIDs map[string]string
	// ready doubles as the pre-race ready set and the rematch vote; it is
	// cleared at every phase transition so stale readiness cannot leak
	// across rounds.
	ready         map[string]struct{}
	state         GameState
	text          texts.Text
	scores        map[string]int
	matchStats    map[string]PlayerReport
	firstFinisher string

	// stopCountdown cancels the running countdown goroutine; closed at most
	// once per round via stopOnce.
	stopCountdown chan struct{}
	stopOnce      *sync.Once
}

func newRoom(code string, creator Conn, guestID string) *Room {
	return &Room{
		Code:       code,
		players:    []Conn{creator},
		guestIDs:   map[string]string{creator.ID(): guestID},
		ready:      make(map[string]struct{}),
		state:      StateWaiting,
		scores:     map[string]int{creator.ID(): 0},
		matchStats: make(map[string]PlayerReport),
	}
}

// broadcast sends msg to every player in the room. Callers must hold mu.
func (r *Room) broadcast(msg Message) {
	for _, p := range r.players {
		p.Send(msg)
	}
}

// sendToOthers sends msg to everyone except the named connection. Callers
// must hold mu.
func (r *Room) sendToOthers(connID string, msg Message) {
	for _, p := range r.players {
		if p.ID() != connID {
			p.Send(msg)
		}
	}
}

// removePlayer drops a connection from the seat list, scores and ready set.
// It reports whether the connection was present. Callers must hold mu.
func (r *Room) removePlayer(connID string) bool {
	idx := -1
	for i, p := range r.players {
		if p.ID() == connID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false
	}
	r.players = append(r.players[:idx], r.players[idx+1:]...)
	delete(r.scores, connID)
	delete(r.ready, connID)
	delete(r.guestIDs, connID)
	return true
}

// cancelCountdown closes the countdown stop channel at most once. Safe to
// call whether the countdown is still running, already finished, or was
// never started this round. Callers must not hold mu.
func (r *Room) cancelCountdown() {
	r.mu.Lock()
	once, ch := r.stopOnce, r.stopCountdown
	r.mu.Unlock()
	if once != nil {
		once.Do(func() { close(ch) })
	}
}

// armCountdown prepares a fresh stop channel for a new round's countdown.
// Callers must hold mu.
func (r *Room) armCountdown() chan struct{} {
	r.stopCountdown = make(chan struct{})
	r.stopOnce = new(sync.Once)
	return r.stopCountdown
}

func (r *Room) scoresCopy() map[string]int {
	out := make(map[string]int, len(r.scores))
	for k, v := range r.scores {
		out[k] = v
	}
	return out
}

// State returns the current lifecycle phase.
func (r *Room) State() GameState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// PlayerCount returns the number of seated players.
func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}
