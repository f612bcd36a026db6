package game

import (
	"fmt"

	"github.com/gammazero/deque"
)

// RevealSingle reveals one cell without cascading
func (board *Board) RevealSingle(coord Coord) error {
	cell, err := board.CellAt(coord)
	if err != nil {
		return err
	}
	if cell.isRevealed {
		return fmt.Errorf("%w: %s", ErrAlreadyRevealed, coord)
	}
	cell.reveal()
	return nil
}

// RevealCascade floods outward from an already-revealed, zero-count origin.
// Every hidden safe cell reachable through zero-count cells is revealed,
// along with the ring of numbered cells bordering that region. Mines are
// never revealed. The newly revealed coordinates are returned in the order
// they were revealed.
func (board *Board) RevealCascade(origin Coord) []Coord {
	if !board.InBounds(origin) {
		return nil
	}
	if start := board.cellAt(origin); !start.isRevealed || start.isMine || start.numMines != 0 {
		return nil
	}

	var revealed []Coord
	var visitQueue deque.Deque[Coord]
	visitQueue.PushBack(origin)

	for visitQueue.Len() > 0 {
		current := visitQueue.PopFront()

		for coord, neighbor := range board.Neighbors(current) {
			if neighbor.isRevealed || neighbor.isMine {
				continue
			}
			neighbor.reveal()
			revealed = append(revealed, coord)

			if neighbor.numMines == 0 {
				visitQueue.PushBack(coord)
			}
		}
	}

	return revealed
}

// Reveal reveals coord and, if it has no neighbouring mines, cascades from
// it. The target is the first coordinate of the returned slice.
func (board *Board) Reveal(coord Coord) ([]Coord, error) {
	if err := board.RevealSingle(coord); err != nil {
		return nil, err
	}

	revealed := []Coord{coord}
	if cell := board.cellAt(coord); !cell.isMine && cell.numMines == 0 {
		revealed = append(revealed, board.RevealCascade(coord)...)
	}
	return revealed, nil
}
