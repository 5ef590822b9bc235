package game

import (
	"fmt"

	"github.com/vovakirdan/rotamaze/internal/core"
	"github.com/vovakirdan/rotamaze/internal/maze"
)

// Tile glyphs.
const (
	glyphWall     = '█'
	glyphBroken   = '░'
	glyphFood     = '·'
	glyphPie      = 'o'
	glyphTeleport = 'T'
	glyphExit     = 'E'
	glyphGhost    = 'G'
	glyphAgent    = 'C'
)

const helpLine = "arrows move · T teleport · M manual · space solve · R reset · esc menu · q quit"

// Render draws the board in its current orientation with a status line
// above and a help line below.
func (g *Game) Render(s *core.Screen) {
	s.Clear()

	geo := g.p.Geometry()
	rot := g.state.Rotation(g.p.Rules())
	f := geo.Frame(rot)

	s.DrawTextCentered(0, fmt.Sprintf("rotamaze · %s", g.level.Name), core.ColorBrightCyan)
	s.DrawTextCentered(1, g.statusLine(), core.ColorWhite)

	area := core.NewRect(0, 3, s.Width(), max(s.Height()-6, 0))
	board := area.Centered(f.Width, f.Height)
	s.DrawBox(core.NewRect(board.X-1, board.Y-1, f.Width+2, f.Height+2), core.ColorGray)

	ghosts := make(map[maze.Coord]bool)
	for _, c := range g.p.Ghosts().Positions(g.steps, rot, g.state.Broken) {
		ghosts[c] = true
	}

	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			p := maze.Coord{X: x, Y: y}
			r, c := g.tile(p, rot, ghosts)
			s.SetColored(board.X+x, board.Y+y, r, c)
		}
	}

	if g.message != "" {
		c := core.ColorYellow
		if g.won {
			c = core.ColorBrightGreen
		}
		s.DrawTextCentered(board.Bottom()+1, g.message, c)
	}
	s.DrawTextCentered(s.Height()-1, helpLine, core.ColorGray)
}

func (g *Game) tile(p maze.Coord, rot int, ghosts map[maze.Coord]bool) (rune, core.Color) {
	geo := g.p.Geometry()
	f := geo.Frame(rot)
	idx := f.Index(p)

	switch {
	case p == g.state.Pos:
		if g.state.PieTimer > 0 {
			return glyphAgent, core.ColorBrightRed
		}
		return glyphAgent, core.ColorBrightYellow
	case ghosts[p]:
		return glyphGhost, core.ColorPink
	case f.Walls.Has(idx):
		if geo.IsWall(p, rot, g.state.Broken) {
			return glyphWall, core.ColorBlue
		}
		return glyphBroken, core.ColorGray
	case g.state.Pies.Has(idx):
		return glyphPie, core.ColorOrange
	case g.state.Food.Has(idx):
		return glyphFood, core.ColorWhite
	case f.IsTeleport(p):
		return glyphTeleport, core.ColorMagenta
	case f.HasExit && p == f.Exit:
		return glyphExit, core.ColorBrightGreen
	}
	return ' ', core.ColorDefault
}

func (g *Game) statusLine() string {
	switch g.mode {
	case ModeManual:
		return fmt.Sprintf("Manual | Steps: %d | Food: %d | Pie: %d | Turn: %d",
			g.steps, g.state.Food.Len(), g.state.PieTimer, g.state.Rotation(g.p.Rules()))
	case ModeSearching:
		return "Finding optimal path..."
	case ModeAnimating:
		return fmt.Sprintf("Auto | Steps: %d/%d | Food: %d", g.steps, g.cost, g.state.Food.Len())
	default:
		return "Press M for manual play or Space for auto search"
	}
}
