package random

import (
	"math/rand/v2"

	"github.com/they4kman/termsweep/game"
)

// Director reveals hidden cells at random. It never flags.
type Director struct {
	rand *rand.Rand
}

// New returns a Director drawing from rnd, or from the process-wide source
// when rnd is nil
func New(rnd *rand.Rand) *Director {
	return &Director{rand: rnd}
}

func (director *Director) intN(n int) int {
	if director.rand == nil {
		return rand.IntN(n)
	}
	return director.rand.IntN(n)
}

func (director *Director) Act(view game.View) (game.Action, bool) {
	unrevealedCells := make([]game.Coord, 0, len(view.States))
	for idx, state := range view.States {
		if state == game.Unrevealed {
			unrevealedCells = append(unrevealedCells, game.Coord{X: idx % view.Width, Y: idx / view.Width})
		}
	}
	if len(unrevealedCells) == 0 {
		return game.Action{}, false
	}

	return game.Reveal(unrevealedCells[director.intN(len(unrevealedCells))]), true
}
