package scoring

// WordStatus tracks how far a word has progressed through the race.
type WordStatus string

const (
	StatusPending   WordStatus = "pending"
	StatusCorrect   WordStatus = "correct"
	StatusIncorrect WordStatus = "incorrect"
)

// WordState holds the characters typed for one target word and its sealed status.
// Typed mirrors the live input while the word is current and is frozen by the
// word boundary once the player moves on.
type WordState struct {
	Typed  string
	Status WordStatus
}

// Result is the immutable outcome of one race. A session produces it exactly
// once; replaying the same keystrokes against the same text yields an equal
// Result.
type Result struct {
	WPM          int `json:"wpm"`
	Accuracy     int `json:"accuracy"`
	TimeSeconds  int `json:"time"`
	CorrectChars int `json:"correctChars"`
	TotalChars   int `json:"totalChars"`
}
