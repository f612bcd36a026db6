package game

// View is a read-only copy of what the player can see. Hidden cells never
// reveal whether they hold a mine.
type View struct {
	Width, Height int
	States        []CellState
}

func newView(board *Board) View {
	view := View{
		Width:  board.width,
		Height: board.height,
		States: make([]CellState, len(board.cells)),
	}
	for idx := range board.cells {
		view.States[idx] = board.cells[idx].State()
	}
	return view
}

func (view View) InBounds(coord Coord) bool {
	return coord.X >= 0 && coord.X < view.Width &&
		coord.Y >= 0 && coord.Y < view.Height
}

// At returns the state at coord, or Unrevealed when coord is out of bounds
func (view View) At(coord Coord) CellState {
	if !view.InBounds(coord) {
		return Unrevealed
	}
	return view.States[coord.Y*view.Width+coord.X]
}

func (view View) clone() View {
	states := make([]CellState, len(view.States))
	copy(states, view.States)
	return View{Width: view.Width, Height: view.Height, States: states}
}

func (view View) set(coord Coord, state CellState) {
	view.States[coord.Y*view.Width+coord.X] = state
}
