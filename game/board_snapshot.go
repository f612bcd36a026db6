package game

import (
	"gopkg.in/yaml.v2"
)

// Snapshot is a plain-text record of a board, written to the debug log when
// a game ends. Board rows use the Cell glyphs: '#' hidden, 'f' flagged, a
// digit for a revealed safe cell, 'O' mine, 'F' flagged mine and '*'
// triggered mine. A finished board is fully revealed with its flags
// cleared, so a won board shows every mine as 'O' and a lost one every mine
// as '*'.
type Snapshot struct {
	ID         string  `yaml:"id"`
	Difficulty string  `yaml:"difficulty"`
	State      string  `yaml:"state"`
	Mines      [][]int `yaml:"mines,flow"`
	Board      string  `yaml:"board"`
}

func (snapshot *Snapshot) Serialize() (string, error) {
	out, err := yaml.Marshal(snapshot)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (g *Game) Snapshot() *Snapshot {
	mines := make([][]int, len(g.mines))
	for i, mine := range g.mines {
		mines[i] = []int{mine.X, mine.Y}
	}
	return &Snapshot{
		ID:         g.id.String(),
		Difficulty: g.difficulty.String(),
		State:      g.state.String(),
		Mines:      mines,
		Board:      g.board.String(),
	}
}
