package constraint

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/gammazero/deque"
	"github.com/they4kman/termsweep/director/random"
	"github.com/they4kman/termsweep/game"
	"github.com/they4kman/termsweep/util/collections"
)

// Upper bound on observations derived while simplifying a single view
const maxObservations = 4096

// Director plays from the numbers on the board. It opens in the centre,
// then flags or reveals whatever the numbers prove, then reveals the cell
// least likely to hold a mine, and only guesses blindly when no number
// touches a hidden cell.
type Director struct {
	rand     *rand.Rand
	fallback *random.Director

	// Deductions not yet handed out, in the order they were made, and the
	// size of the board they were made on
	pending       deque.Deque[game.Action]
	width, height int
}

// Observation records that exactly numMines of cells hold mines
type Observation struct {
	origin   game.Coord
	numMines int
	cells    []game.Coord
	members  collections.Set[game.Coord]
}

func newObservation(origin game.Coord, numMines int, cells []game.Coord) *Observation {
	slices.SortFunc(cells, func(a, b game.Coord) int {
		return cmp.Or(cmp.Compare(a.Y, b.Y), cmp.Compare(a.X, b.X))
	})

	members := collections.NewSet[game.Coord](len(cells))
	for _, cell := range cells {
		members.Add(cell)
	}
	return &Observation{
		origin:   origin,
		numMines: numMines,
		cells:    cells,
		members:  members,
	}
}

func (observation *Observation) String() string {
	var cellsRepr strings.Builder
	for i, cell := range observation.cells {
		if i > 0 {
			cellsRepr.WriteString(", ")
		}
		cellsRepr.WriteString(cell.String())
	}
	return fmt.Sprintf("Obs[%8s, %d ε %s]", observation.origin, observation.numMines, cellsRepr.String())
}

func (observation *Observation) MineProbability() float64 {
	return float64(observation.numMines) / float64(len(observation.cells))
}

func (observation *Observation) key() string {
	return fmt.Sprint(observation.cells)
}

// isSubsetOf reports whether every cell of observation is also in other
func (observation *Observation) isSubsetOf(other *Observation) bool {
	if len(observation.cells) >= len(other.cells) {
		return false
	}
	for _, cell := range observation.cells {
		if !other.members.Contains(cell) {
			return false
		}
	}
	return true
}

// New returns a Director whose guesses draw from rnd, or from the
// process-wide source when rnd is nil
func New(rnd *rand.Rand) *Director {
	return &Director{
		rand:     rnd,
		fallback: random.New(rnd),
	}
}

func (director *Director) Act(view game.View) (game.Action, bool) {
	// A fresh or resized board invalidates every earlier deduction
	if !hasRevealedCells(view) || view.Width != director.width || view.Height != director.height {
		director.pending.Clear()
		director.width, director.height = view.Width, view.Height
	}

	for director.pending.Len() > 0 {
		action := director.pending.PopFront()
		if view.InBounds(action.At) && view.At(action.At) == game.Unrevealed {
			return action, true
		}
	}

	if !hasRevealedCells(view) {
		center := game.Coord{X: view.Width / 2, Y: view.Height / 2}
		if view.InBounds(center) && view.At(center) == game.Unrevealed {
			return game.Reveal(center), true
		}
	}

	observations := simplifyObservations(observe(view))

	if director.actDeliberate(observations) {
		return director.pending.PopFront(), true
	}
	if action, ok := director.actLowestProbability(observations); ok {
		return action, true
	}
	return director.fallback.Act(view)
}

// actDeliberate queues every action proven safe by an observation, and
// reports whether anything was queued
func (director *Director) actDeliberate(observations []*Observation) bool {
	queued := collections.NewSet[game.Coord](0)
	for _, observation := range observations {
		var kind game.ActionKind
		switch observation.numMines {
		case 0:
			kind = game.RevealAction
		case len(observation.cells):
			kind = game.FlagAction
		default:
			continue
		}

		for _, cell := range observation.cells {
			if queued.Add(cell) {
				director.pending.PushBack(game.Action{Kind: kind, At: cell})
			}
		}
	}
	return director.pending.Len() > 0
}

// actLowestProbability reveals the constrained cell least likely to hold a
// mine. A cell's risk is the highest probability of any observation it
// appears in.
func (director *Director) actLowestProbability(observations []*Observation) (game.Action, bool) {
	cellProbabilities := make(map[game.Coord]float64)
	var cells []game.Coord
	for _, observation := range observations {
		probability := observation.MineProbability()
		for _, cell := range observation.cells {
			pastProbability, hasPastProbability := cellProbabilities[cell]
			if !hasPastProbability {
				cells = append(cells, cell)
			}
			if !hasPastProbability || probability > pastProbability {
				cellProbabilities[cell] = probability
			}
		}
	}
	if len(cells) == 0 {
		return game.Action{}, false
	}

	lowestProbability := cellProbabilities[cells[0]]
	for _, cell := range cells {
		lowestProbability = min(lowestProbability, cellProbabilities[cell])
	}

	var lowestProbabilityCells []game.Coord
	for _, cell := range cells {
		if cellProbabilities[cell] == lowestProbability {
			lowestProbabilityCells = append(lowestProbabilityCells, cell)
		}
	}
	return game.Reveal(lowestProbabilityCells[director.intN(len(lowestProbabilityCells))]), true
}

func (director *Director) intN(n int) int {
	if director.rand == nil {
		return rand.IntN(n)
	}
	return director.rand.IntN(n)
}

func hasRevealedCells(view game.View) bool {
	for _, state := range view.States {
		if state.IsRevealed() {
			return true
		}
	}
	return false
}

// observe collects one observation per number that still borders hidden
// cells, with its flagged neighbours already subtracted
func observe(view game.View) []*Observation {
	var observations []*Observation
	for idx, state := range view.States {
		if !state.IsNumber() {
			continue
		}

		origin := game.Coord{X: idx % view.Width, Y: idx / view.Width}
		numFlagged := 0
		var hidden []game.Coord
		for _, neighbor := range origin.Neighbors() {
			if !view.InBounds(neighbor) {
				continue
			}
			switch view.At(neighbor) {
			case game.Flag:
				numFlagged++
			case game.Unrevealed:
				hidden = append(hidden, neighbor)
			}
		}

		numMines := int(state) - numFlagged
		if len(hidden) == 0 || numMines < 0 || numMines > len(hidden) {
			continue
		}
		observations = append(observations, newObservation(origin, numMines, hidden))
	}
	return observations
}

// simplifyObservations splits observations that contain one another: when
// every cell of A is in B, the cells of B outside A hold exactly
// B.numMines - A.numMines mines
func simplifyObservations(observations []*Observation) []*Observation {
	seen := collections.NewSet[string](len(observations))
	var unique []*Observation
	var visitQueue deque.Deque[*Observation]
	for _, observation := range observations {
		if seen.Add(observation.key()) {
			unique = append(unique, observation)
			visitQueue.PushBack(observation)
		}
	}

	derive := func(subset, superset *Observation) {
		if !subset.isSubsetOf(superset) {
			return
		}
		var rest []game.Coord
		for _, cell := range superset.cells {
			if !subset.members.Contains(cell) {
				rest = append(rest, cell)
			}
		}
		numMines := superset.numMines - subset.numMines
		if numMines < 0 || numMines > len(rest) {
			return
		}

		derived := newObservation(superset.origin, numMines, rest)
		if seen.Add(derived.key()) {
			unique = append(unique, derived)
			visitQueue.PushBack(derived)
		}
	}

	for visitQueue.Len() > 0 && len(unique) < maxObservations {
		observation := visitQueue.PopFront()
		for _, other := range unique {
			if other == observation {
				continue
			}
			derive(observation, other)
			derive(other, observation)
		}
	}
	return unique
}
