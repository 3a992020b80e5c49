package game

import "errors"

var (
	// ErrRoomNotFound is surfaced to a caller referencing an unknown room code.
	ErrRoomNotFound = errors.New("room not found")
	// ErrRoomFull is surfaced to a caller joining a room that already has two players.
	ErrRoomFull = errors.New("room is full")
)
