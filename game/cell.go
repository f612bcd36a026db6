package game

import "fmt"

type Cell struct {
	numMines int

	isMine, isRevealed, isFlagged bool
	isTriggered                   bool
}

func (cell *Cell) String() string {
	return fmt.Sprintf("Cell(%s)", cell.State())
}

// glyph is the single-character form used by Board.String and snapshots
func (cell *Cell) glyph() byte {
	switch {
	case cell.isMine:
		switch {
		case cell.isTriggered:
			return '*'
		case cell.isFlagged:
			return 'F'
		default:
			return 'O'
		}
	case cell.isFlagged:
		return 'f'
	case cell.isRevealed:
		return byte('0' + cell.numMines)
	default:
		return '#'
	}
}

func (cell *Cell) IsMine() bool {
	return cell.isMine
}

func (cell *Cell) IsRevealed() bool {
	return cell.isRevealed
}

func (cell *Cell) IsFlagged() bool {
	return cell.isFlagged
}

func (cell *Cell) IsTriggered() bool {
	return cell.isTriggered
}

// NumAdjacentMines is only meaningful once mines have been placed
func (cell *Cell) NumAdjacentMines() int {
	return cell.numMines
}

func (cell *Cell) HasNoAdjacentMines() bool {
	return cell.numMines == 0
}

// State returns how the cell should be presented to the player
func (cell *Cell) State() CellState {
	switch {
	case !cell.isRevealed && cell.isFlagged:
		return Flag
	case !cell.isRevealed:
		return Unrevealed
	case cell.isMine && cell.isTriggered:
		return MineTriggered
	case cell.isMine:
		return Mine
	default:
		return CellState(cell.numMines)
	}
}

func (cell *Cell) setMine() {
	cell.isMine = true
}

func (cell *Cell) reveal() {
	cell.isRevealed = true
	cell.isFlagged = false
}

func (cell *Cell) toggleFlagged() {
	cell.isFlagged = !cell.isFlagged
}

func (cell *Cell) trigger() {
	cell.isTriggered = true
}
