package game

import "fmt"

// Coord identifies a cell position, zero-based from the top-left corner
type Coord struct {
	X, Y int
}

var neighborOffsets = [8]Coord{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Neighbors returns the eight coordinates surrounding coord. Coordinates
// past the edge of any board are included; callers filter with InBounds.
func (coord Coord) Neighbors() [8]Coord {
	var neighbors [8]Coord
	for i, offset := range neighborOffsets {
		neighbors[i] = Coord{coord.X + offset.X, coord.Y + offset.Y}
	}
	return neighbors
}

func (coord Coord) String() string {
	return fmt.Sprintf("(%d, %d)", coord.X, coord.Y)
}
