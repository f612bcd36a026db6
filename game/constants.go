package game

type CellState int
type GameState int

const (
	Unrevealed CellState = iota - 1
	Empty
	Number1
	Number2
	Number3
	Number4
	Number5
	Number6
	Number7
	Number8
	Flag
	Mine
	MineTriggered
)

var CellStates = []CellState{
	Unrevealed,
	Empty,
	Number1,
	Number2,
	Number3,
	Number4,
	Number5,
	Number6,
	Number7,
	Number8,
	Flag,
	Mine,
	MineTriggered,
}

var cellStateNames = map[CellState]string{
	Unrevealed:    "unrevealed",
	Empty:         "empty",
	Number1:       "number1",
	Number2:       "number2",
	Number3:       "number3",
	Number4:       "number4",
	Number5:       "number5",
	Number6:       "number6",
	Number7:       "number7",
	Number8:       "number8",
	Flag:          "flag",
	Mine:          "mine",
	MineTriggered: "mine_triggered",
}

func (state CellState) String() string {
	if name, ok := cellStateNames[state]; ok {
		return name
	}
	return "unknown"
}

// IsNumber reports whether state is a revealed cell with at least one
// neighbouring mine
func (state CellState) IsNumber() bool {
	return state >= Number1 && state <= Number8
}

// IsRevealed reports whether state is any revealed cell, mines included
func (state CellState) IsRevealed() bool {
	return state != Unrevealed && state != Flag
}

const (
	NotStarted GameState = iota
	InProgress
	Won
	Lost
)

func (state GameState) String() string {
	switch state {
	case NotStarted:
		return "not_started"
	case InProgress:
		return "in_progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// IsOver reports whether state is terminal
func (state GameState) IsOver() bool {
	return state == Won || state == Lost
}
