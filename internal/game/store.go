package game

import (
	"math/rand"
	"strings"
	"sync"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 6
)

// Store is the session store: the sole source of truth for active rooms,
// keyed by room code. It only guards the map itself; per-room state is
// serialized by each Room's own lock, so rooms never contend with each other.
type Store struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{rooms: make(map[string]*Room)}
}

// Create allocates a room with a fresh unique code and the creator in seat 0.
func (s *Store) Create(creator Conn, guestID string) *Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	code := generateCode()
	for _, taken := s.rooms[code]; taken; _, taken = s.rooms[code] {
		code = generateCode()
	}
	room := newRoom(code, creator, guestID)
	s.rooms[code] = room
	return room
}

// Get looks up a room by code.
func (s *Store) Get(code string) (*Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[code]
	return room, ok
}

// Delete removes a room from the store. Subsequent events referencing its
// code become no-ops, including in-flight countdown ticks.
func (s *Store) Delete(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, code)
}

// Rooms returns a snapshot of all live rooms, for the disconnect sweep.
func (s *Store) Rooms() []*Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		out = append(out, room)
	}
	return out
}

// Len returns the number of live rooms.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}

func generateCode() string {
	var b strings.Builder
	for i := 0; i < codeLength; i++ {
		b.WriteByte(codeAlphabet[rand.Intn(len(codeAlphabet))])
	}
	return b.String()
}
