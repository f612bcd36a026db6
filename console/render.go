package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/they4kman/termsweep/game"
)

const clearScreen = "\033[H\033[2J"

var glyphs = map[game.CellState]string{
	game.Unrevealed:    ".",
	game.Empty:         "0",
	game.Flag:          "F",
	game.Mine:          "*",
	game.MineTriggered: "X",
}

// Renderer draws boards and messages as plain text, coloured with lipgloss
// unless NoColor is set
type Renderer struct {
	out     io.Writer
	noColor bool
	noClear bool

	styles map[game.CellState]lipgloss.Style
}

func NewRenderer(out io.Writer, noColor, noClear bool) *Renderer {
	renderer := lipgloss.NewRenderer(out)
	numberColors := []string{"33", "41", "196", "99", "160", "37", "248", "243"}

	styles := map[game.CellState]lipgloss.Style{
		game.Unrevealed:    renderer.NewStyle().Foreground(lipgloss.Color("248")),
		game.Empty:         renderer.NewStyle().Foreground(lipgloss.Color("240")),
		game.Flag:          renderer.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		game.Mine:          renderer.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		game.MineTriggered: renderer.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("9")).Bold(true),
	}
	for i, color := range numberColors {
		styles[game.Number1+game.CellState(i)] = renderer.NewStyle().Foreground(lipgloss.Color(color))
	}

	return &Renderer{
		out:     out,
		noColor: noColor,
		noClear: noClear,
		styles:  styles,
	}
}

func Glyph(state game.CellState) string {
	if state.IsNumber() {
		return strconv.Itoa(int(state))
	}
	if glyph, ok := glyphs[state]; ok {
		return glyph
	}
	return "?"
}

func (renderer *Renderer) cell(state game.CellState) string {
	glyph := Glyph(state)
	if renderer.noColor {
		return glyph
	}
	return renderer.styles[state].Render(glyph)
}

// Board lays out view with 1-based column numbers across the top and row
// numbers down the left, every column as wide as the largest label
func (renderer *Renderer) Board(view game.View) string {
	labelWidth := len(strconv.Itoa(max(view.Width, view.Height)))
	padding := strings.Repeat(" ", labelWidth-1)

	var out strings.Builder
	out.WriteString(strings.Repeat(" ", labelWidth+1))
	for x := range view.Width {
		fmt.Fprintf(&out, "%*d ", labelWidth, x+1)
	}
	out.WriteString("\n")

	for y := range view.Height {
		fmt.Fprintf(&out, "%*d ", labelWidth, y+1)
		for x := range view.Width {
			out.WriteString(padding)
			out.WriteString(renderer.cell(view.At(game.Coord{X: x, Y: y})))
			out.WriteString(" ")
		}
		out.WriteString("\n")
	}
	return out.String()
}

func (renderer *Renderer) Clear() {
	if !renderer.noClear {
		fmt.Fprint(renderer.out, clearScreen)
	}
}

// Draw clears the screen and writes the board followed by the mine counter
func (renderer *Renderer) Draw(view game.View, minesRemaining int) {
	renderer.Clear()
	fmt.Fprint(renderer.out, renderer.Board(view))
	fmt.Fprintf(renderer.out, "Mines remaining: %d\n", minesRemaining)
}

func (renderer *Renderer) Message(format string, args ...any) {
	fmt.Fprintf(renderer.out, format+"\n", args...)
}
