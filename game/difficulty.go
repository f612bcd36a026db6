package game

import "fmt"

// Difficulty fixes the board dimensions and number of mines for a game
type Difficulty struct {
	Name     string
	Width    int
	Height   int
	NumMines int
}

var (
	Beginner     = Difficulty{Name: "beginner", Width: 9, Height: 9, NumMines: 10}
	Intermediate = Difficulty{Name: "intermediate", Width: 16, Height: 16, NumMines: 40}
	Expert       = Difficulty{Name: "expert", Width: 30, Height: 16, NumMines: 99}
)

// Difficulties lists the presets from easiest to hardest
var Difficulties = []Difficulty{Beginner, Intermediate, Expert}

// Validate rejects dimensions and mine counts that mine placement could
// never satisfy
func (difficulty Difficulty) Validate() error {
	if difficulty.Width <= 0 || difficulty.Height <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidDimensions, difficulty)
	}
	if difficulty.NumMines < 0 || difficulty.NumMines >= difficulty.Width*difficulty.Height {
		return fmt.Errorf("%w: %s", ErrTooManyMines, difficulty)
	}
	return nil
}

func (difficulty Difficulty) String() string {
	name := difficulty.Name
	if name == "" {
		name = "custom"
	}
	return fmt.Sprintf("%s %dx%d/%d", name, difficulty.Width, difficulty.Height, difficulty.NumMines)
}
