package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRaceRejectsNonPositiveWPM(t *testing.T) {
	original := raceWPM
	defer func() { raceWPM = original }()

	for _, wpm := range []int{0, -5} {
		raceWPM = wpm
		err := runRace(raceCmd, nil)
		assert.ErrorContains(t, err, "--wpm must be positive")
	}
}
