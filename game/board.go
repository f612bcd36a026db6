package game

import (
	"fmt"
	"iter"
	"strings"
)

// Board owns every Cell of a fixed-size grid. Cells are stored row-major in
// a single slice and never handed out beyond the Board's lifetime.
type Board struct {
	width, height int // in number of cells
	cells         []Cell
}

func NewBoard(width, height int) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Board{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}, nil
}

func (board *Board) Width() int {
	return board.width
}

func (board *Board) Height() int {
	return board.height
}

func (board *Board) NumCells() int {
	return board.width * board.height
}

func (board *Board) InBounds(coord Coord) bool {
	return coord.X >= 0 && coord.X < board.width &&
		coord.Y >= 0 && coord.Y < board.height
}

func (board *Board) CellAt(coord Coord) (*Cell, error) {
	if !board.InBounds(coord) {
		return nil, fmt.Errorf("%w: %s on %dx%d board", ErrOutOfBounds, coord, board.width, board.height)
	}
	return board.cellAt(coord), nil
}

// cellAt skips the bounds check; coord must already be validated
func (board *Board) cellAt(coord Coord) *Cell {
	return &board.cells[coord.Y*board.width+coord.X]
}

func (board *Board) coordOf(idx int) Coord {
	return Coord{idx % board.width, idx / board.width}
}

// Cells iterates every cell in row-major order
func (board *Board) Cells() iter.Seq2[Coord, *Cell] {
	return func(yield func(Coord, *Cell) bool) {
		for idx := range board.cells {
			if !yield(board.coordOf(idx), &board.cells[idx]) {
				return
			}
		}
	}
}

// Neighbors iterates the in-bounds neighbours of coord
func (board *Board) Neighbors(coord Coord) iter.Seq2[Coord, *Cell] {
	return func(yield func(Coord, *Cell) bool) {
		for _, neighbor := range coord.Neighbors() {
			if !board.InBounds(neighbor) {
				continue
			}
			if !yield(neighbor, board.cellAt(neighbor)) {
				return
			}
		}
	}
}

// ComputeAdjacencyCounts stores the number of neighbouring mines on every
// cell. It must run once, after mines are placed and before any reveal.
func (board *Board) ComputeAdjacencyCounts() {
	for coord, cell := range board.Cells() {
		numMines := 0
		for _, neighbor := range board.Neighbors(coord) {
			if neighbor.isMine {
				numMines++
			}
		}
		cell.numMines = numMines
	}
}

// AllSafeCellsRevealed is the win predicate: mines may stay hidden
func (board *Board) AllSafeCellsRevealed() bool {
	for _, cell := range board.Cells() {
		if !cell.isMine && !cell.isRevealed {
			return false
		}
	}
	return true
}

// AllCellsRevealed only holds after RevealAll, at the end of a game
func (board *Board) AllCellsRevealed() bool {
	for _, cell := range board.Cells() {
		if !cell.isRevealed {
			return false
		}
	}
	return true
}

func (board *Board) RevealAll() {
	for _, cell := range board.Cells() {
		cell.reveal()
	}
}

// NumFlags counts flagged, unrevealed cells
func (board *Board) NumFlags() int {
	numFlags := 0
	for _, cell := range board.Cells() {
		if cell.isFlagged {
			numFlags++
		}
	}
	return numFlags
}

func (board *Board) String() string {
	var builder strings.Builder
	builder.Grow(board.NumCells() + board.height)
	for y := range board.height {
		if y > 0 {
			builder.WriteByte('\n')
		}
		for x := range board.width {
			builder.WriteByte(board.cellAt(Coord{x, y}).glyph())
		}
	}
	return builder.String()
}
