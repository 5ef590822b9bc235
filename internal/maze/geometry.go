package maze

// Frame is the static content of the maze seen in one orientation.
// All coordinates and indices are expressed in that orientation.
type Frame struct {
	Width, Height int
	Walls         Bitset
	Teleports     []Coord // row-major order
	Exit          Coord
	HasExit       bool

	teleports Bitset
}

// InBounds reports whether p lies inside the frame.
func (f *Frame) InBounds(p Coord) bool {
	return p.X >= 0 && p.X < f.Width && p.Y >= 0 && p.Y < f.Height
}

// Index returns the flat index of p (y*width + x).
func (f *Frame) Index(p Coord) int {
	return p.Y*f.Width + p.X
}

// CoordOf is the inverse of Index.
func (f *Frame) CoordOf(i int) Coord {
	return Coord{X: i % f.Width, Y: i / f.Width}
}

// IsTeleport reports whether p is a teleport tile.
func (f *Frame) IsTeleport(p Coord) bool {
	return f.InBounds(p) && f.teleports.Has(f.Index(p))
}

// Geometry is the parsed maze. Sets that change during play (food, pies)
// are stored once in the base orientation; the search state carries its
// own copies. Static sets are precomputed per orientation.
type Geometry struct {
	Width, Height int // base orientation
	Start         Coord
	Food          Bitset
	Pies          Bitset
	Ghosts        []Coord // spawn tiles, base orientation

	frames [Rotations]Frame
}

// Frame returns the static content of orientation k.
func (g *Geometry) Frame(k int) *Frame {
	return &g.frames[norm(k)]
}

// Area is the tile count, identical in every orientation.
func (g *Geometry) Area() int {
	return g.Width * g.Height
}

// Rotate maps a base coordinate into orientation k.
func (g *Geometry) Rotate(p Coord, k int) Coord {
	return Rotate(p, k, g.Width, g.Height)
}

// Inverse maps a coordinate of orientation k back to the base orientation.
func (g *Geometry) Inverse(p Coord, k int) Coord {
	return Inverse(p, k, g.Width, g.Height)
}

// Reframe re-expresses p from orientation from into orientation to.
func (g *Geometry) Reframe(p Coord, from, to int) Coord {
	return Reframe(p, from, to, g.Width, g.Height)
}

// BaseIndex returns the base-orientation index of a coordinate given in
// orientation k. Broken walls are keyed this way.
func (g *Geometry) BaseIndex(p Coord, k int) int {
	b := g.Inverse(p, k)
	return b.Y*g.Width + b.X
}

// IsWall reports whether p is a wall in orientation k once the walls in
// broken (base indices) are removed. Out-of-bounds tiles count as walls.
func (g *Geometry) IsWall(p Coord, k int, broken Bitset) bool {
	f := g.Frame(k)
	if !f.InBounds(p) {
		return true
	}
	if !f.Walls.Has(f.Index(p)) {
		return false
	}
	return !broken.Has(g.BaseIndex(p, k))
}

// Remap re-expresses every member of a tile set from orientation from into
// orientation to.
func (g *Geometry) Remap(set Bitset, from, to int) Bitset {
	if norm(from) == norm(to) {
		return set
	}
	src, dst := g.Frame(from), g.Frame(to)
	members := make([]int, 0, set.Len())
	set.Each(func(i int) {
		members = append(members, dst.Index(g.Reframe(src.CoordOf(i), from, to)))
	})
	return BitsetOf(g.Area(), members...)
}

// Coords lists the members of a set expressed in orientation k.
func (g *Geometry) Coords(set Bitset, k int) []Coord {
	f := g.Frame(k)
	out := make([]Coord, 0, set.Len())
	set.Each(func(i int) { out = append(out, f.CoordOf(i)) })
	return out
}

// SetOf builds a set of orientation-k indices from base coordinates.
func (g *Geometry) SetOf(coords []Coord, k int) Bitset {
	f := g.Frame(k)
	members := make([]int, len(coords))
	for i, c := range coords {
		members[i] = f.Index(g.Rotate(c, k))
	}
	return BitsetOf(g.Area(), members...)
}
