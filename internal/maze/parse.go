package maze

import (
	"errors"
	"fmt"
	"strings"
)

// Layout symbols.
const (
	SymWall     = '%'
	SymFood     = '.'
	SymPie      = 'O'
	SymAgent    = 'P'
	SymGhost    = 'G'
	SymExit     = 'E'
	SymTeleport = 'T'
)

// ErrNoAgent is wrapped by the LayoutError returned for a grid without 'P'.
var ErrNoAgent = errors.New("layout has no agent start")

// LayoutError describes why a grid could not be turned into a maze.
type LayoutError struct {
	Code    string
	Message string
	Err     error
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *LayoutError) Unwrap() error {
	return e.Err
}

// Options tunes parsing.
type Options struct {
	// CornerTeleports places teleports on the four interior corners when
	// the layout declares none.
	CornerTeleports bool
}

// DefaultOptions returns the options used by the game.
func DefaultOptions() Options {
	return Options{CornerTeleports: true}
}

// Parse builds the geometry from rows of layout symbols. Rows may be
// ragged; missing cells are floor. Nothing is returned on error.
func Parse(rows []string, opts Options) (*Geometry, error) {
	rows = trimRows(rows)
	if len(rows) == 0 {
		return nil, &LayoutError{Code: "EMPTY", Message: "layout has no rows"}
	}

	w := 0
	for _, r := range rows {
		if n := len([]rune(r)); n > w {
			w = n
		}
	}
	h := len(rows)
	area := w * h

	var (
		walls, food, pies []int
		teleports         []Coord
		ghosts            []Coord
		start, exit       Coord
		starts, exits     int
	)
	for y, row := range rows {
		for x, ch := range []rune(row) {
			c := Coord{X: x, Y: y}
			i := y*w + x
			switch ch {
			case SymWall:
				walls = append(walls, i)
			case SymFood:
				food = append(food, i)
			case SymPie:
				pies = append(pies, i)
			case SymAgent:
				start = c
				starts++
			case SymGhost:
				ghosts = append(ghosts, c)
			case SymExit:
				exit = c
				exits++
			case SymTeleport:
				teleports = append(teleports, c)
			}
		}
	}

	switch {
	case starts == 0:
		return nil, &LayoutError{Code: "NO_AGENT", Message: "layout must contain exactly one 'P'", Err: ErrNoAgent}
	case starts > 1:
		return nil, &LayoutError{Code: "MULTIPLE_AGENTS", Message: fmt.Sprintf("layout contains %d 'P' tiles, want 1", starts)}
	case exits > 1:
		return nil, &LayoutError{Code: "MULTIPLE_EXITS", Message: fmt.Sprintf("layout contains %d 'E' tiles, want at most 1", exits)}
	}

	wallSet := BitsetOf(area, walls...)
	if len(teleports) == 0 && opts.CornerTeleports {
		teleports = cornerTeleports(w, h, wallSet)
	}

	g := &Geometry{
		Width:  w,
		Height: h,
		Start:  start,
		Food:   BitsetOf(area, food...),
		Pies:   BitsetOf(area, pies...),
		Ghosts: ghosts,
	}
	for k := 0; k < Rotations; k++ {
		g.frames[k] = buildFrame(g, k, wallSet, teleports, exit, exits == 1)
	}
	return g, nil
}

// ParseString splits s into rows and parses it.
func ParseString(s string, opts Options) (*Geometry, error) {
	return Parse(strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n"), opts)
}

func buildFrame(g *Geometry, k int, walls Bitset, teleports []Coord, exit Coord, hasExit bool) Frame {
	fw, fh := Dims(k, g.Width, g.Height)
	f := Frame{Width: fw, Height: fh, HasExit: hasExit}

	members := make([]int, 0, walls.Len())
	walls.Each(func(i int) {
		base := Coord{X: i % g.Width, Y: i / g.Width}
		members = append(members, f.Index(g.Rotate(base, k)))
	})
	f.Walls = BitsetOf(g.Area(), members...)

	tp := make([]int, len(teleports))
	for i, t := range teleports {
		tp[i] = f.Index(g.Rotate(t, k))
	}
	f.teleports = BitsetOf(g.Area(), tp...)
	f.Teleports = make([]Coord, 0, len(tp))
	f.teleports.Each(func(i int) { f.Teleports = append(f.Teleports, f.CoordOf(i)) })

	if hasExit {
		f.Exit = g.Rotate(exit, k)
	}
	return f
}

// cornerTeleports returns the interior corners next to the outer wall
// frame, skipping walls and duplicates.
func cornerTeleports(w, h int, walls Bitset) []Coord {
	if w < 3 || h < 3 {
		return nil
	}
	candidates := []Coord{{1, 1}, {w - 2, 1}, {1, h - 2}, {w - 2, h - 2}}
	seen := make(map[Coord]bool, len(candidates))
	var out []Coord
	for _, c := range candidates {
		if seen[c] || walls.Has(c.Y*w+c.X) {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// trimRows drops trailing empty rows left by a final newline.
func trimRows(rows []string) []string {
	for len(rows) > 0 && strings.TrimRight(rows[len(rows)-1], "\r") == "" {
		rows = rows[:len(rows)-1]
	}
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = strings.TrimRight(r, "\r")
	}
	return out
}
