package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedClock returns a clock that advances by step on every call, starting at
// a fixed instant, so replayed sessions observe identical timings.
func fixedClock(step time.Duration) func() time.Time {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	return func() time.Time {
		t := base.Add(time.Duration(calls) * step)
		calls++
		return t
	}
}

func typeWord(s *Session, word string) (res Result, done bool) {
	for _, r := range word {
		res, done = s.Type(r)
	}
	return res, done
}

func TestPerfectRace(t *testing.T) {
	s := NewSession("cat dog")
	s.now = fixedClock(15 * time.Second)
	s.Start()

	_, done := typeWord(s, "cat")
	require.False(t, done)
	s.Space()

	res, done := typeWord(s, "dog")
	require.True(t, done)

	assert.Equal(t, 8, res.CorrectChars)
	assert.Equal(t, 8, res.TotalChars)
	assert.Equal(t, 100, res.Accuracy)
	assert.Equal(t, 15, res.TimeSeconds)
	// 8 correct keystrokes in 15s: (8/5) / (15000/60000) = 6.4 -> 6
	assert.Equal(t, 6, res.WPM)
}

func TestInputRejectedBeforeStart(t *testing.T) {
	s := NewSession("cat dog")

	_, done := typeWord(s, "cat")
	assert.False(t, done)
	s.Space()
	assert.Equal(t, StatusPending, s.Words()[0].Status)
	assert.Empty(t, s.Words()[0].Typed)

	s.Start()
	_, done = typeWord(s, "cat")
	assert.False(t, done)
	assert.Equal(t, "cat", s.Words()[0].Typed)
}

func TestMistakeIsNeverRetroactivelyRemoved(t *testing.T) {
	s := NewSession("cat dog")
	s.now = fixedClock(time.Second)
	s.Start()

	typeWord(s, "cax")
	s.Space()
	assert.Equal(t, StatusIncorrect, s.Words()[0].Status)

	// Back into the incorrect word, drop the x, fix it.
	s.Backspace()
	assert.Equal(t, "cax", s.Words()[0].Typed)
	s.Backspace()
	s.Type('t')
	s.Space()
	assert.Equal(t, StatusCorrect, s.Words()[0].Status)

	res, done := typeWord(s, "dog")
	require.True(t, done)

	// c a x space | backspace t space | d o g + final seal = 10 keystrokes,
	// of which the x and the first (incorrect) seal never become correct.
	assert.Equal(t, 10, res.TotalChars)
	assert.Equal(t, 8, res.CorrectChars)
	assert.Equal(t, 80, res.Accuracy)
}

func TestCompletionGateRequiresAllPriorWordsExact(t *testing.T) {
	s := NewSession("cat dog")
	s.now = fixedClock(time.Second)
	s.Start()

	typeWord(s, "cax")
	s.Space()

	// Last word typed perfectly must not complete the race while an earlier
	// word is still wrong.
	_, done := typeWord(s, "dog")
	require.False(t, done)
	assert.False(t, s.Done())

	// Sealing the last word keeps the session on it without completing.
	s.Space()
	require.False(t, s.Done())

	// Walk back: clear "dog", step into "cax", fix it, retype the last word.
	for range "dog" {
		s.Backspace()
	}
	s.Backspace()
	assert.Equal(t, "cax", s.Words()[0].Typed)
	s.Backspace()
	s.Type('t')
	s.Space()

	_, done = typeWord(s, "dog")
	require.True(t, done)
	assert.True(t, s.Done())
}

func TestCorrectWordIsImmutable(t *testing.T) {
	s := NewSession("cat dog")
	s.now = fixedClock(time.Second)
	s.Start()

	typeWord(s, "cat")
	s.Space()

	// Backspace on an empty input must not re-open a correct word.
	s.Backspace()
	s.Type('d')
	assert.Equal(t, "d", s.Words()[1].Typed)
	assert.Equal(t, "cat", s.Words()[0].Typed)
}

func TestBackspaceAtFirstWordIsNoop(t *testing.T) {
	s := NewSession("cat dog")
	s.now = fixedClock(time.Second)
	s.Start()

	s.Backspace()
	res, done := typeWord(s, "cat")
	assert.False(t, done)
	assert.Zero(t, res)
}

func TestEmptyInputSpaceIgnored(t *testing.T) {
	s := NewSession("cat dog")
	s.now = fixedClock(time.Second)
	s.Start()

	s.Space()
	s.Space()
	typeWord(s, "cat")
	s.Space()
	res, done := typeWord(s, "dog")
	require.True(t, done)
	// The leading spaces must not have counted as keystrokes.
	assert.Equal(t, 8, res.TotalChars)
}

func TestResultFiresExactlyOnce(t *testing.T) {
	s := NewSession("cat dog")
	s.now = fixedClock(time.Second)
	s.Start()

	typeWord(s, "cat")
	s.Space()
	_, done := typeWord(s, "dog")
	require.True(t, done)
	first := s.Result()

	// Any further input is rejected and the stored result is untouched.
	_, done = s.Type('x')
	assert.False(t, done)
	s.Space()
	s.Backspace()
	assert.Equal(t, first, s.Result())
	assert.Equal(t, 100, s.Progress())
}

func TestReplayIsDeterministic(t *testing.T) {
	run := func() Result {
		s := NewSession("the quick brown fox")
		s.now = fixedClock(500 * time.Millisecond)
		s.Start()
		typeWord(s, "thx")
		s.Space()
		s.Backspace()
		s.Backspace()
		s.Type('e')
		s.Space()
		typeWord(s, "quick")
		s.Space()
		typeWord(s, "brown")
		s.Space()
		res, done := typeWord(s, "fox")
		require.True(t, done)
		return res
	}

	assert.Equal(t, run(), run())
}

func TestExtraCharactersCountIncorrect(t *testing.T) {
	s := NewSession("cat dog")
	s.now = fixedClock(time.Second)
	s.Start()

	// Overshoot the word: extra characters are compared past the target end
	// and can never be correct.
	typeWord(s, "catzz")
	s.Space()
	assert.Equal(t, StatusIncorrect, s.Words()[0].Status)

	// One backspace steps back into the overtyped word, five more clear it.
	for i := 0; i < 6; i++ {
		s.Backspace()
	}
	assert.Empty(t, s.Words()[0].Typed)
	typeWord(s, "cat")
	s.Space()
	res, done := typeWord(s, "dog")
	require.True(t, done)

	// catzz + seal + cat + seal + dog + final seal = 14 total,
	// cat(3) + cat(3) + seal + dog(3) + final seal = 11 correct.
	assert.Equal(t, 14, res.TotalChars)
	assert.Equal(t, 11, res.CorrectChars)
}

func TestEmptyTextIsInert(t *testing.T) {
	s := NewSession("   ")
	s.Start()
	_, done := s.Type('a')
	assert.False(t, done)
	assert.Equal(t, 0, s.Progress())
}

func TestProgressAdvancesPerWord(t *testing.T) {
	s := NewSession("a b c d")
	s.now = fixedClock(time.Second)
	s.Start()

	assert.Equal(t, 0, s.Progress())
	s.Type('a')
	s.Space()
	assert.Equal(t, 25, s.Progress())
	s.Type('b')
	s.Space()
	assert.Equal(t, 50, s.Progress())
}
