package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/perkola/ty-fighter/internal/scoring"
)

var (
	raceRoom  string
	raceGuest string
	raceWPM   int
)

func init() {
	raceCmd.Flags().StringVar(&raceRoom, "room", "", "Room code to join (creates a new room when empty)")
	raceCmd.Flags().StringVar(&raceGuest, "guest", "bot", "Guest id to race as")
	raceCmd.Flags().IntVar(&raceWPM, "wpm", 60, "Typing speed of the bot")
}

var raceCmd = &cobra.Command{
	Use:   "race",
	Short: "Run a bot player against the server",
	Long: `Connects to the game websocket, creates or joins a room, readies up and
types the race text at the configured speed. Useful for smoke-testing a
running server without a second human.`,
	RunE: runRace,
}

type wsEnvelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func runRace(cmd *cobra.Command, args []string) error {
	if raceWPM <= 0 {
		return fmt.Errorf("--wpm must be positive, got %d", raceWPM)
	}

	wsURL := strings.Replace(host, "http", "ws", 1) + "/ws"
	fmt.Printf("Dialing %s\n", wsURL)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return fmt.Errorf("failed to dial websocket: %w", err)
	}
	defer conn.Close()

	send := func(event string, data any) error {
		return conn.WriteJSON(map[string]any{"event": event, "data": data})
	}

	if raceRoom == "" {
		if err := send("create-room", map[string]string{"guestId": raceGuest}); err != nil {
			return err
		}
	} else {
		if err := send("join-room", map[string]string{"roomCode": raceRoom, "guestId": raceGuest}); err != nil {
			return err
		}
	}

	var roomCode, text string
	for {
		var env wsEnvelope
		if err := conn.ReadJSON(&env); err != nil {
			return fmt.Errorf("connection lost: %w", err)
		}

		switch env.Event {
		case "room-created", "room-joined":
			var payload struct {
				RoomCode string `json:"roomCode"`
			}
			if err := json.Unmarshal(env.Data, &payload); err != nil {
				return err
			}
			roomCode = payload.RoomCode
			fmt.Printf("In room %s, waiting for opponent...\n", roomCode)
			if err := send("player-ready", map[string]string{"roomCode": roomCode}); err != nil {
				return err
			}
		case "countdown":
			var payload struct {
				Count int    `json:"count"`
				Text  string `json:"text"`
			}
			if err := json.Unmarshal(env.Data, &payload); err != nil {
				return err
			}
			text = payload.Text
			fmt.Printf("Countdown: %d\n", payload.Count)
		case "game-start":
			if err := typeRace(send, roomCode, text); err != nil {
				return err
			}
		case "round-finished":
			fmt.Printf("Round finished: %s\n", string(env.Data))
			return nil
		case "player-left":
			fmt.Println("Opponent left, bailing out")
			return nil
		case "error":
			return fmt.Errorf("server error: %s", string(env.Data))
		}
	}
}

// typeRace replays the race text through a local scoring session at the
// configured speed, reporting progress after every word.
func typeRace(send func(event string, data any) error, roomCode, text string) error {
	fmt.Printf("Typing %d characters at %d WPM\n", len(text), raceWPM)
	session := scoring.NewSession(text)
	session.Start()

	// One keystroke per 1/(5*wpm) minutes, the standard word length.
	delay := time.Minute / time.Duration(5*raceWPM)

	var result scoring.Result
	for _, r := range text {
		time.Sleep(delay)
		var done bool
		if r == ' ' {
			session.Space()
		} else if result, done = session.Type(r); done {
			break
		}

		if r == ' ' {
			if err := send("typing-progress", map[string]any{
				"roomCode": roomCode,
				"progress": session.Progress(),
				"wpm":      raceWPM,
			}); err != nil {
				return err
			}
		}
	}

	return send("player-finished", map[string]any{
		"roomCode":     roomCode,
		"wpm":          result.WPM,
		"accuracy":     result.Accuracy,
		"time":         result.TimeSeconds,
		"correctChars": result.CorrectChars,
		"totalChars":   result.TotalChars,
	})
}
