package game

import "fmt"

type ActionKind int

const (
	RevealAction ActionKind = iota
	FlagAction
	ChordAction
)

func (kind ActionKind) String() string {
	switch kind {
	case RevealAction:
		return "reveal"
	case FlagAction:
		return "flag"
	case ChordAction:
		return "chord"
	default:
		return "unknown"
	}
}

// Action is a single player intent against one cell
type Action struct {
	Kind ActionKind
	At   Coord
}

func (action Action) String() string {
	return fmt.Sprintf("%s %s", action.Kind, action.At)
}

func Reveal(coord Coord) Action {
	return Action{Kind: RevealAction, At: coord}
}

func ToggleFlag(coord Coord) Action {
	return Action{Kind: FlagAction, At: coord}
}

func Chord(coord Coord) Action {
	return Action{Kind: ChordAction, At: coord}
}

// Director plays the game in place of a human
type Director interface {
	// Act chooses the next action from what the player can see, returning
	// false when it has nothing left to do
	Act(view View) (Action, bool)
}
