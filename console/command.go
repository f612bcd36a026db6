package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/they4kman/termsweep/game"
)

var (
	ErrUnknownCommand     = errors.New("unknown command")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

type CommandKind int

const (
	QuitCommand CommandKind = iota
	HelpCommand
	RestartCommand
	NewGameCommand
	RevealCommand
	FlagCommand
	ChordCommand
)

var moveKinds = map[string]CommandKind{
	"r": RevealCommand,
	"f": FlagCommand,
	"c": ChordCommand,
}

// Command is one line of player input. At is zero-based.
type Command struct {
	Kind CommandKind
	At   game.Coord
}

// ParseCommand reads one line of input. Moves take 1-based x and y, e.g.
// "r 3 4" reveals the cell at column 3, row 4.
func ParseCommand(line string) (Command, error) {
	tokens := strings.Fields(strings.ToLower(line))
	switch strings.Join(tokens, " ") {
	case "quit":
		return Command{Kind: QuitCommand}, nil
	case "help":
		return Command{Kind: HelpCommand}, nil
	case "restart":
		return Command{Kind: RestartCommand}, nil
	case "new game":
		return Command{Kind: NewGameCommand}, nil
	}

	if len(tokens) == 0 {
		return Command{}, ErrUnknownCommand
	}
	kind, isMove := moveKinds[tokens[0]]
	if !isMove {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, tokens[0])
	}
	if len(tokens) != 3 {
		return Command{}, fmt.Errorf("%w: expected x and y", ErrInvalidCoordinates)
	}

	x, err := strconv.Atoi(tokens[1])
	if err != nil {
		return Command{}, fmt.Errorf("%w: %q", ErrInvalidCoordinates, tokens[1])
	}
	y, err := strconv.Atoi(tokens[2])
	if err != nil {
		return Command{}, fmt.Errorf("%w: %q", ErrInvalidCoordinates, tokens[2])
	}

	return Command{Kind: kind, At: game.Coord{X: x - 1, Y: y - 1}}, nil
}

// IsMove reports whether the command acts on a cell
func (command Command) IsMove() bool {
	return command.Kind == RevealCommand || command.Kind == FlagCommand || command.Kind == ChordCommand
}

// Action converts a move into a game action
func (command Command) Action() (game.Action, bool) {
	switch command.Kind {
	case RevealCommand:
		return game.Reveal(command.At), true
	case FlagCommand:
		return game.ToggleFlag(command.At), true
	case ChordCommand:
		return game.Chord(command.At), true
	default:
		return game.Action{}, false
	}
}

// ParseDifficulty looks up a preset by name, ignoring case
func ParseDifficulty(name string) (game.Difficulty, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, difficulty := range game.Difficulties {
		if difficulty.Name == name {
			return difficulty, nil
		}
	}
	return game.Difficulty{}, fmt.Errorf("%w: %q", game.ErrInvalidDifficulty, name)
}
