package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"tron/engine"
	"tron/game"
)

const (
	headChar  = "@"
	bodyChar  = "#"
	wallChar  = "X"
	emptyChar = " "
)

// Player colours: red, blue, green, yellow.
var palette = [game.MaxPlayers]lipgloss.Color{"9", "12", "10", "11"}

// Renderer draws frames with the colour support of one output.
type Renderer struct {
	players [game.MaxPlayers]lipgloss.Style
	field   lipgloss.Style
}

// New returns a renderer for the output behind r.
func New(r *lipgloss.Renderer) *Renderer {
	out := &Renderer{field: r.NewStyle().Border(lipgloss.NormalBorder())}
	for i, c := range palette {
		out.players[i] = r.NewStyle().Foreground(c).Bold(true)
	}
	return out
}

var std = New(lipgloss.DefaultRenderer())

// Frame renders the board and one status line per player with the default renderer.
func Frame(g *game.Grid, players []engine.Player, turn int) string {
	return std.Frame(g, players, turn)
}

func (r *Renderer) Frame(g *game.Grid, players []engine.Player, turn int) string {
	var b strings.Builder
	b.WriteString(r.field.Render(r.board(g)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Turn %d:\n", turn)
	for i := range players {
		b.WriteString(r.players[i%game.MaxPlayers].Render(status(&players[i])))
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Renderer) board(g *game.Grid) string {
	rows := make([]string, game.Height)
	var row strings.Builder
	for y := range game.Height {
		row.Reset()
		for x := range game.Width {
			row.WriteString(r.cell(g.Get(x, y)))
		}
		rows[y] = row.String()
	}
	return strings.Join(rows, "\n")
}

func (r *Renderer) cell(c game.Cell) string {
	switch c {
	case game.Empty:
		return emptyChar
	case game.Wall:
		return wallChar
	}
	player, ok := c.Owner()
	if !ok {
		return wallChar
	}
	if c.IsHead() {
		return r.players[player].Render(headChar)
	}
	return r.players[player].Render(bodyChar)
}

func status(p *engine.Player) string {
	stats := fmt.Sprintf("AVG:%.2f MAX:%.2f", millis(p.AvgStepTime()), millis(p.MaxTime))
	title := fmt.Sprintf("%d:%s", p.Number, p.Title)
	if p.Alive {
		return fmt.Sprintf("%s %s MSG:%s", title, stats, p.Message)
	}
	return fmt.Sprintf("%s %s Died at turn %d (MSG:%s)", title, stats, p.DeathTurn, p.Message)
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
