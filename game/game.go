package game

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type GameConfig struct {
	// Source for mine placement; nil uses the process-wide source
	Rand *rand.Rand

	Logger logrus.FieldLogger

	// Called once whenever a board is won or lost
	OnGameEnd func(*Game)
}

func NewGameConfig() GameConfig {
	return GameConfig{
		Rand:      nil,
		Logger:    logrus.StandardLogger(),
		OnGameEnd: nil,
	}
}

// RevealResult describes what a single intent changed
type RevealResult struct {
	// Newly revealed cells, in reveal order
	Revealed []Coord
	State    GameState

	// Set when the intent hit a mine
	Triggered *Coord
	// Every mine in placement order, set when the game was lost
	MineSequence []Coord
}

func (result *RevealResult) merge(other *RevealResult) {
	result.Revealed = append(result.Revealed, other.Revealed...)
	result.State = other.State
	if other.Triggered != nil {
		result.Triggered = other.Triggered
		result.MineSequence = other.MineSequence
	}
}

// Game drives one board at a time through NotStarted, InProgress and
// finally Won or Lost
type Game struct {
	config     GameConfig
	difficulty Difficulty

	id    uuid.UUID
	log   logrus.FieldLogger
	board *Board
	state GameState

	// Mines are placed on the first reveal of each board, away from it
	minesPlaced bool
	mines       []Coord

	triggered *Coord
	preLoss   View
}

func NewGame(difficulty Difficulty, config GameConfig) (*Game, error) {
	if err := difficulty.Validate(); err != nil {
		return nil, err
	}
	if config.Logger == nil {
		config.Logger = logrus.StandardLogger()
	}

	g := &Game{
		config:     config,
		difficulty: difficulty,
	}
	if err := g.resetBoard(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) resetBoard() error {
	board, err := NewBoard(g.difficulty.Width, g.difficulty.Height)
	if err != nil {
		return err
	}

	g.id = uuid.New()
	g.log = g.config.Logger.WithFields(logrus.Fields{
		"game_id":    g.id.String(),
		"difficulty": g.difficulty.Name,
	})
	g.board = board
	g.state = NotStarted
	g.minesPlaced = false
	g.mines = nil
	g.triggered = nil
	g.preLoss = View{}

	g.log.WithField("size", fmt.Sprintf("%dx%d", board.width, board.height)).Debug("board allocated")
	return nil
}

func (g *Game) ID() uuid.UUID {
	return g.id
}

func (g *Game) State() GameState {
	return g.state
}

func (g *Game) Difficulty() Difficulty {
	return g.difficulty
}

func (g *Game) MinesPlaced() bool {
	return g.minesPlaced
}

func (g *Game) NumFlags() int {
	return g.board.NumFlags()
}

// MinesRemaining is the mine count minus the number of flags, and may be
// negative when the player over-flags
func (g *Game) MinesRemaining() int {
	return g.difficulty.NumMines - g.board.NumFlags()
}

func (g *Game) CellState(coord Coord) (CellState, error) {
	cell, err := g.board.CellAt(coord)
	if err != nil {
		return Unrevealed, err
	}
	return cell.State(), nil
}

func (g *Game) View() View {
	return newView(g.board)
}

// MineSequence returns the order in which mines are uncovered after a loss,
// or nil if the game has not been lost
func (g *Game) MineSequence() []Coord {
	if g.state != Lost {
		return nil
	}
	sequence := make([]Coord, len(g.mines))
	copy(sequence, g.mines)
	return sequence
}

// LossFrames replays the loss one mine at a time: frame k shows the first k
// mines of MineSequence over the board as it was when the mine was hit. Two
// more frames follow, one with every mine triggered and one with the whole
// board revealed.
func (g *Game) LossFrames() []View {
	if g.state != Lost {
		return nil
	}

	frames := make([]View, 0, len(g.mines)+2)
	current := g.preLoss.clone()
	for _, mine := range g.mines {
		state := Mine
		if mine == *g.triggered {
			state = MineTriggered
		}
		current.set(mine, state)
		frames = append(frames, current.clone())
	}

	for _, mine := range g.mines {
		current.set(mine, MineTriggered)
	}
	frames = append(frames, current, g.View())
	return frames
}

func (g *Game) Apply(action Action) (*RevealResult, error) {
	switch action.Kind {
	case RevealAction:
		return g.Reveal(action.At)
	case FlagAction:
		if err := g.ToggleFlag(action.At); err != nil {
			return nil, err
		}
		return &RevealResult{State: g.state}, nil
	case ChordAction:
		return g.Chord(action.At)
	default:
		return nil, fmt.Errorf("unknown action kind %d", action.Kind)
	}
}

func (g *Game) Reveal(coord Coord) (*RevealResult, error) {
	if g.state.IsOver() {
		return nil, fmt.Errorf("%w: %s", ErrGameOver, g.state)
	}

	cell, err := g.board.CellAt(coord)
	if err != nil {
		return nil, err
	}
	if cell.isRevealed {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyRevealed, coord)
	}

	if !g.minesPlaced {
		if err := g.placeMines(coord); err != nil {
			return nil, err
		}
	}

	if cell.isMine {
		return g.lose(coord), nil
	}

	revealed, err := g.board.Reveal(coord)
	if err != nil {
		return nil, err
	}
	g.log.WithFields(logrus.Fields{
		"at":       coord.String(),
		"revealed": len(revealed),
	}).Debug("revealed cells")

	if g.board.AllSafeCellsRevealed() {
		g.win()
	}

	return &RevealResult{Revealed: revealed, State: g.state}, nil
}

// ToggleFlag marks or unmarks a hidden cell. Flags never change the state of
// the game and never prevent a reveal.
func (g *Game) ToggleFlag(coord Coord) error {
	if g.state.IsOver() {
		return fmt.Errorf("%w: %s", ErrGameOver, g.state)
	}

	cell, err := g.board.CellAt(coord)
	if err != nil {
		return err
	}
	if cell.isRevealed {
		return fmt.Errorf("%w: %s", ErrAlreadyRevealed, coord)
	}

	cell.toggleFlagged()
	g.log.WithFields(logrus.Fields{
		"at":      coord.String(),
		"flagged": cell.isFlagged,
	}).Debug("toggled flag")
	return nil
}

// Chord reveals every hidden, unflagged neighbour of a revealed number once
// the player has flagged as many neighbours as the number shows
func (g *Game) Chord(coord Coord) (*RevealResult, error) {
	if g.state.IsOver() {
		return nil, fmt.Errorf("%w: %s", ErrGameOver, g.state)
	}

	cell, err := g.board.CellAt(coord)
	if err != nil {
		return nil, err
	}
	if !cell.isRevealed || cell.numMines == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotChordable, coord)
	}

	numFlagged := 0
	for _, neighbor := range g.board.Neighbors(coord) {
		if neighbor.isFlagged {
			numFlagged++
		}
	}
	if numFlagged != cell.numMines {
		return nil, fmt.Errorf("%w: %s has %d flags around %d mines", ErrNotChordable, coord, numFlagged, cell.numMines)
	}

	result := &RevealResult{State: g.state}
	for neighborCoord, neighbor := range g.board.Neighbors(coord) {
		if neighbor.isRevealed || neighbor.isFlagged {
			continue
		}

		neighborResult, err := g.Reveal(neighborCoord)
		if errors.Is(err, ErrAlreadyRevealed) {
			continue
		} else if err != nil {
			return nil, err
		}

		result.merge(neighborResult)
		if g.state.IsOver() {
			break
		}
	}
	return result, nil
}

// Restart discards the board and starts over at the same difficulty
func (g *Game) Restart() error {
	if err := g.resetBoard(); err != nil {
		return err
	}
	g.log.Info("game restarted")
	return nil
}

// NewDifficulty replaces the board with one sized for difficulty
func (g *Game) NewDifficulty(difficulty Difficulty) error {
	if err := difficulty.Validate(); err != nil {
		return err
	}
	g.difficulty = difficulty
	if err := g.resetBoard(); err != nil {
		return err
	}
	g.log.Info("new game")
	return nil
}

func (g *Game) placeMines(firstReveal Coord) error {
	mines, err := PlaceMines(g.board, g.difficulty.NumMines, firstReveal, g.config.Rand)
	if err != nil {
		return err
	}
	g.board.ComputeAdjacencyCounts()

	g.mines = mines
	g.minesPlaced = true
	g.state = InProgress

	g.log.WithField("first_reveal", firstReveal.String()).Info("game started")
	return nil
}

func (g *Game) win() {
	g.state = Won
	g.board.RevealAll()
	g.endGame()
}

func (g *Game) lose(coord Coord) *RevealResult {
	cell := g.board.cellAt(coord)
	cell.trigger()

	g.state = Lost
	g.triggered = &coord
	g.preLoss = newView(g.board)

	for _, mine := range g.mines {
		g.board.cellAt(mine).reveal()
	}
	for _, mine := range g.mines {
		g.board.cellAt(mine).trigger()
	}
	g.board.RevealAll()
	g.endGame()

	return &RevealResult{
		Revealed:     []Coord{coord},
		State:        g.state,
		Triggered:    &coord,
		MineSequence: g.MineSequence(),
	}
}

func (g *Game) endGame() {
	g.log.WithField("state", g.state.String()).Info("game over")

	if g.config.OnGameEnd != nil {
		g.config.OnGameEnd(g)
	}
}
