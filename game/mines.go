package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/they4kman/termsweep/util/collections"
)

// PlaceMines picks count distinct cells uniformly at random, never choosing
// excluded, and marks them as mines. The chosen coordinates are returned in
// the order they were picked. A nil rnd draws from the process-wide source.
func PlaceMines(board *Board, count int, excluded Coord, rnd *rand.Rand) ([]Coord, error) {
	if count < 0 || count >= board.NumCells() {
		return nil, fmt.Errorf("%w: %d mines on %d cells", ErrTooManyMines, count, board.NumCells())
	}
	if !board.InBounds(excluded) {
		return nil, fmt.Errorf("%w: excluded cell %s", ErrOutOfBounds, excluded)
	}

	intN := rand.IntN
	if rnd != nil {
		intN = rnd.IntN
	}

	mines := make([]Coord, 0, count)
	chosen := collections.NewSet[Coord](count)
	for len(mines) < count {
		candidate := Coord{intN(board.width), intN(board.height)}
		if candidate == excluded || !chosen.Add(candidate) {
			continue
		}
		mines = append(mines, candidate)
	}

	for _, coord := range mines {
		board.cellAt(coord).setMine()
	}
	return mines, nil
}
