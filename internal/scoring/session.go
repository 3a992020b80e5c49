// Package scoring converts a stream of raw keystrokes against a target text
// into a word-level trace and a single race result.
package scoring

import (
	"math"
	"strings"
	"time"
)

// Session scores one race over one target text. It is not safe for concurrent
// use; a race is driven by a single input loop. Once a result has been
// produced the session is inert until replaced with a new one.
type Session struct {
	words []string
	state []WordState
	index int
	input []rune

	started   bool
	startTime time.Time

	totalKeystrokes   int
	correctKeystrokes int

	done   bool
	result Result

	now func() time.Time
}

// NewSession prepares a session for the given race text. The text is split on
// single spaces; the resulting word list is fixed for the whole round.
func NewSession(text string) *Session {
	s := &Session{now: time.Now}
	if strings.TrimSpace(text) == "" {
		return s
	}
	s.words = strings.Split(text, " ")
	s.state = make([]WordState, len(s.words))
	for i := range s.state {
		s.state[i].Status = StatusPending
	}
	return s
}

// Start marks the race as officially started. Keystrokes arriving before Start
// are rejected without any state change.
func (s *Session) Start() {
	s.started = true
}

// Type handles one forward character insertion at the end of the current
// word's input. It returns the race result and true when this keystroke
// completes the race; the result fires at most once per session.
func (s *Session) Type(r rune) (Result, bool) {
	if !s.accepting() {
		return Result{}, false
	}
	if s.startTime.IsZero() {
		s.startTime = s.now()
	}

	pos := len(s.input)
	s.input = append(s.input, r)
	s.state[s.index].Typed = string(s.input)

	// Counters move forward only; deletions never undo them.
	s.totalKeystrokes++
	target := []rune(s.words[s.index])
	if pos < len(target) && target[pos] == r {
		s.correctKeystrokes++
	}

	if s.index == len(s.words)-1 && string(s.input) == s.words[s.index] && s.priorWordsExact() {
		return s.complete(), true
	}
	return Result{}, false
}

// Space handles the word boundary key. An empty input is ignored. Otherwise
// the current word is sealed, the boundary itself counts as one keystroke
// (correct iff the sealed word matched exactly), and the session advances to
// the next word unless the current word is the last one.
func (s *Session) Space() {
	if !s.accepting() {
		return
	}
	typed := string(s.input)
	if strings.TrimSpace(typed) == "" {
		return
	}

	exact := typed == s.words[s.index]
	s.state[s.index] = WordState{Typed: typed, Status: StatusIncorrect}
	if exact {
		s.state[s.index].Status = StatusCorrect
	}

	s.totalKeystrokes++
	if exact {
		s.correctKeystrokes++
	}

	if s.index < len(s.words)-1 {
		s.index++
		s.input = s.input[:0]
	}
}

// Backspace deletes the last character of the current input. When the input
// is already empty it steps back to the previous word, but only if that word
// was not sealed as correct; a correctly completed word is immutable.
func (s *Session) Backspace() {
	if !s.accepting() {
		return
	}
	if len(s.input) > 0 {
		s.input = s.input[:len(s.input)-1]
		s.state[s.index].Typed = string(s.input)
		return
	}
	if s.index == 0 {
		return
	}
	if s.state[s.index-1].Status == StatusCorrect {
		return
	}
	s.index--
	s.input = []rune(s.state[s.index].Typed)
}

// Progress reports how far through the word list the session is, as a
// percentage. Used for the live opponent-progress relay only.
func (s *Session) Progress() int {
	if len(s.words) == 0 {
		return 0
	}
	if s.done {
		return 100
	}
	return s.index * 100 / len(s.words)
}

// Done reports whether the session has already produced its result.
func (s *Session) Done() bool {
	return s.done
}

// Result returns the race result produced by the completing keystroke. It is
// only meaningful once Done reports true.
func (s *Session) Result() Result {
	return s.result
}

// Words exposes the per-word trace, mainly for rendering and tests.
func (s *Session) Words() []WordState {
	out := make([]WordState, len(s.state))
	copy(out, s.state)
	return out
}

func (s *Session) accepting() bool {
	return s.started && !s.done && len(s.words) > 0
}

func (s *Session) priorWordsExact() bool {
	for i := 0; i < s.index; i++ {
		if s.state[i].Typed != s.words[i] {
			return false
		}
	}
	return true
}

func (s *Session) complete() Result {
	// The completing keystroke seals the final word; the seal counts like any
	// other word boundary.
	s.state[s.index] = WordState{Typed: s.words[s.index], Status: StatusCorrect}
	s.totalKeystrokes++
	s.correctKeystrokes++

	elapsed := s.now().Sub(s.startTime)
	ms := elapsed.Milliseconds()

	wpm := 0
	if ms > 0 {
		minutes := float64(ms) / 60000
		wpm = int(math.Round(float64(s.correctKeystrokes) / 5 / minutes))
	}
	accuracy := 0
	if s.totalKeystrokes > 0 {
		accuracy = int(math.Round(100 * float64(s.correctKeystrokes) / float64(s.totalKeystrokes)))
	}

	s.result = Result{
		WPM:          wpm,
		Accuracy:     accuracy,
		TimeSeconds:  int(math.Round(float64(ms) / 1000)),
		CorrectChars: s.correctKeystrokes,
		TotalChars:   s.totalKeystrokes,
	}
	s.done = true
	return s.result
}
