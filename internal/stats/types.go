package stats

import "time"

// SideResult is one participant's final numbers for a round.
type SideResult struct {
	WPM         int
	Accuracy    int
	TimeSeconds int
	CharsTyped  int
}

// MatchRecord is one completed round with two reporting sides. Seat order is
// significant: Player1 is the room's seat 0.
type MatchRecord struct {
	Player1GuestID string
	Player2GuestID string
	WinnerGuestID  string
	Player1        SideResult
	Player2        SideResult
	// TextID references the texts table; 0 means the fallback text was used
	// and is stored as NULL.
	TextID int64
}

// MatchSummary is one history row from the requesting player's point of view.
type MatchSummary struct {
	ID             string    `json:"id"`
	Result         string    `json:"result"` // WIN or LOSS
	Opponent       string    `json:"opponent"`
	PlayerWPM      int       `json:"playerWpm"`
	OpponentWPM    int       `json:"opponentWpm"`
	PlayerAccuracy int       `json:"playerAccuracy"`
	PlayedAt       time.Time `json:"playedAt"`
}

// Aggregate is a player's running career totals.
type Aggregate struct {
	GuestID              string  `json:"guestId"`
	GamesPlayed          int     `json:"gamesPlayed"`
	GamesWon             int     `json:"gamesWon"`
	AvgWPM               float64 `json:"avgWpm"`
	BestWPM              int     `json:"bestWpm"`
	AvgAccuracy          float64 `json:"avgAccuracy"`
	TotalCharactersTyped int64   `json:"totalCharactersTyped"`
}
