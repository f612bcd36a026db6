package console

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/they4kman/termsweep/director/random"
	"github.com/they4kman/termsweep/game"
)

// One row of three cells with a single mine, so that revealing the middle
// cell first never ends the game
var strip = game.Difficulty{Width: 3, Height: 1, NumMines: 1}

func testGameConfig() game.GameConfig {
	config := game.NewGameConfig()
	config.Rand = rand.New(rand.NewPCG(1, 2))
	return config
}

// minesAfter replays a first reveal with the same seed as testGameConfig to
// learn where the session's mines will be
func minesAfter(t *testing.T, difficulty game.Difficulty, first game.Coord) []game.Coord {
	t.Helper()

	g, err := game.NewGame(difficulty, testGameConfig())
	require.NoError(t, err)
	_, err = g.Reveal(first)
	require.NoError(t, err)

	var mines []game.Coord
	for _, mine := range g.Snapshot().Mines {
		mines = append(mines, game.Coord{X: mine[0], Y: mine[1]})
	}
	return mines
}

func runSession(t *testing.T, config SessionConfig, input ...string) (*Session, string) {
	t.Helper()

	var out bytes.Buffer
	config.In = strings.NewReader(strings.Join(input, "\n") + "\n")
	config.Out = &out
	config.NoColor = true
	config.NoClear = true
	config.GameConfig = testGameConfig()

	session := NewSession(config)
	require.NoError(t, session.Run(context.Background()))
	return session, out.String()
}

func TestSessionPromptsForDifficulty(t *testing.T) {
	session, out := runSession(t, SessionConfig{}, "hard", "Beginner", "quit")

	assert.Contains(t, out, "Welcome to Minesweeper!")
	assert.Contains(t, out, "Invalid difficulty. Please try again.")
	assert.Contains(t, out, "Type 'help' for a list of commands.")
	assert.Equal(t, game.Beginner, session.Game().Difficulty())
	assert.Equal(t, game.NotStarted, session.Game().State())
}

func TestSessionEndsWithInput(t *testing.T) {
	session, out := runSession(t, SessionConfig{Difficulty: &game.Intermediate}, "f 1 1", "r 8 8")

	assert.True(t, session.Game().MinesPlaced())
	assert.Contains(t, out, " 1  F ", "flag drawn at column 1 of row 1")
	assert.NotEqual(t, game.NotStarted, session.Game().State())
}

func TestSessionRejectsBadInput(t *testing.T) {
	_, out := runSession(t, SessionConfig{Difficulty: &game.Beginner},
		"dig 1 1",
		"r a b",
		"r 10 1",
		"c 1 1",
		"help",
		"quit",
	)

	assert.Contains(t, out, "Unknown command. Type 'help' for guidance.")
	assert.Contains(t, out, "Invalid coordinates. Please try again.")
	assert.Contains(t, out, "Out of bounds coordinates. Please try again.")
	assert.Contains(t, out, "Flag as many neighbours as the number shows before clearing around it.")
	assert.Contains(t, out, "Type 'new game' to start a new game with a different difficulty.")
}

func TestSessionAlreadyRevealed(t *testing.T) {
	session, out := runSession(t, SessionConfig{Difficulty: &strip}, "r 2 1", "r 2 1", "quit")

	assert.Contains(t, out, "Cell is already revealed.")
	assert.Equal(t, game.InProgress, session.Game().State())
}

func TestSessionLoss(t *testing.T) {
	mine := minesAfter(t, strip, game.Coord{X: 1, Y: 0})[0]

	session, out := runSession(t, SessionConfig{Difficulty: &strip},
		"r 2 1",
		fmt.Sprintf("r %d 1", mine.X+1),
		"r 1 1",
		"quit",
	)

	assert.Equal(t, game.Lost, session.Game().State())
	assert.Contains(t, out, fmt.Sprintf("You triggered a mine at (%d, 1)! Game over.", mine.X+1))
	assert.Contains(t, out, "Invalid input. Please try again.", "moves are refused once the game is over")
	assert.Contains(t, out, "Enter 'restart' to restart the game with the same difficulty.")
}

func TestSessionWinThenRestart(t *testing.T) {
	mine := minesAfter(t, strip, game.Coord{X: 1, Y: 0})[0]
	safe := 2 - mine.X

	session, out := runSession(t, SessionConfig{Difficulty: &strip},
		"r 2 1",
		fmt.Sprintf("r %d 1", safe+1),
		"restart",
		"quit",
	)

	assert.Contains(t, out, "You win! Congratulations!")
	assert.Equal(t, game.NotStarted, session.Game().State())
	assert.False(t, session.Game().MinesPlaced())
}

func TestSessionNewGame(t *testing.T) {
	session, out := runSession(t, SessionConfig{Difficulty: &game.Beginner},
		"r 5 5",
		"new game",
		"nope",
		"expert",
		"quit",
	)

	assert.Contains(t, out, "Invalid difficulty. Please try again.")
	assert.Equal(t, game.Expert, session.Game().Difficulty())
	assert.Equal(t, game.NotStarted, session.Game().State())
}

func TestSessionDirector(t *testing.T) {
	session, out := runSession(t, SessionConfig{
		Difficulty: &game.Beginner,
		Director:   random.New(rand.New(rand.NewPCG(5, 6))),
	})

	assert.True(t, session.Game().State().IsOver())
	assert.True(t,
		strings.Contains(out, "You win! Congratulations!") || strings.Contains(out, "Game over."),
		"the director plays until the game ends",
	)
}

func TestSessionCancelled(t *testing.T) {
	in, writer := io.Pipe()
	t.Cleanup(func() { writer.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	session := NewSession(SessionConfig{
		In:         in,
		Out:        io.Discard,
		Difficulty: &game.Beginner,
		GameConfig: testGameConfig(),
	})
	assert.NoError(t, session.Run(ctx))
}

// slowDirector holds its second move until released, giving the player time
// to restart the board it was computed for
type slowDirector struct {
	mu    sync.Mutex
	views []game.View

	holding chan struct{}
	release chan struct{}
	resumed chan struct{}
}

func (director *slowDirector) Act(view game.View) (game.Action, bool) {
	director.mu.Lock()
	director.views = append(director.views, view)
	numViews := len(director.views)
	director.mu.Unlock()

	switch numViews {
	case 1:
		return game.ToggleFlag(game.Coord{X: 0, Y: 0}), true
	case 2:
		close(director.holding)
		<-director.release
		return game.Reveal(game.Coord{X: 8, Y: 8}), true
	case 3:
		close(director.resumed)
	}
	return game.ToggleFlag(game.Coord{X: 1, Y: 0}), true
}

func (director *slowDirector) view(i int) game.View {
	director.mu.Lock()
	defer director.mu.Unlock()
	return director.views[i]
}

func TestSessionDropsMovesForReplacedBoard(t *testing.T) {
	log, hook := test.NewNullLogger()
	gameConfig := testGameConfig()
	gameConfig.Logger = log

	director := &slowDirector{
		holding: make(chan struct{}),
		release: make(chan struct{}),
		resumed: make(chan struct{}),
	}
	in, input := io.Pipe()
	t.Cleanup(func() { input.Close() })

	session := NewSession(SessionConfig{
		In:         in,
		Out:        io.Discard,
		Difficulty: &game.Beginner,
		Director:   director,
		GameConfig: gameConfig,
		Logger:     log,
	})
	done := make(chan error, 1)
	go func() { done <- session.Run(context.Background()) }()

	<-director.holding
	_, err := io.WriteString(input, "restart\n")
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		for _, entry := range hook.AllEntries() {
			if entry.Message == "game restarted" {
				return true
			}
		}
		return false
	}, 5*time.Second, 10*time.Millisecond)
	close(director.release)

	<-director.resumed
	for _, state := range director.view(2).States {
		assert.Equal(t, game.Unrevealed, state, "the restarted board is untouched by the held move")
	}

	_, err = io.WriteString(input, "quit\n")
	require.NoError(t, err)
	require.NoError(t, <-done)
}
