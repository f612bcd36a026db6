package game

import "errors"

var (
	ErrOutOfBounds       = errors.New("coordinate out of bounds")
	ErrAlreadyRevealed   = errors.New("cell is already revealed")
	ErrGameOver          = errors.New("game is over")
	ErrNotChordable      = errors.New("cell cannot be chorded")
	ErrInvalidDifficulty = errors.New("invalid difficulty")
	ErrInvalidDimensions = errors.New("board dimensions must be positive")
	ErrTooManyMines      = errors.New("mine count must be less than the number of cells")
)
