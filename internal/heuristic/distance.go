package heuristic

import (
	"github.com/vovakirdan/rotamaze/internal/maze"
)

// unreachable marks a tile the breadth-first search never reached.
const unreachable = -1

// distKey identifies one single-source distance map. Relaxed maps ignore
// walls, so their broken set is always the zero value.
type distKey struct {
	rot     int
	src     maze.Coord
	broken  maze.Bitset
	relaxed bool
}

// distances returns the memoized map of shortest step counts from src to
// every tile of orientation rot, indexed y*width+x.
func (e *Engine) distances(rot int, src maze.Coord, broken maze.Bitset, relaxed bool) []int {
	if relaxed {
		broken = maze.Bitset{}
	}
	key := distKey{rot: rot, src: src, broken: broken, relaxed: relaxed}
	if d, ok := e.dists[key]; ok {
		return d
	}
	d := e.bfs(rot, src, broken, relaxed)
	e.dists[key] = d
	return d
}

// bfs floods the 4-connected grid plus the teleport clique, every edge
// costing one step.
func (e *Engine) bfs(rot int, src maze.Coord, broken maze.Bitset, relaxed bool) []int {
	f := e.geo.Frame(rot)
	dist := make([]int, f.Width*f.Height)
	for i := range dist {
		dist[i] = unreachable
	}
	if !f.InBounds(src) {
		return dist
	}

	open := func(p maze.Coord) bool {
		if !f.InBounds(p) {
			return false
		}
		return relaxed || !e.geo.IsWall(p, rot, broken)
	}

	queue := []maze.Coord{src}
	dist[f.Index(src)] = 0
	teleportsUsed := false
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		d := dist[f.Index(cur)]

		for _, dir := range maze.Directions {
			n := cur.Add(dir.Delta())
			if !open(n) || dist[f.Index(n)] != unreachable {
				continue
			}
			dist[f.Index(n)] = d + 1
			queue = append(queue, n)
		}

		// The first teleport dequeued reaches every other one in a step;
		// later teleports cannot improve on that.
		if !teleportsUsed && f.IsTeleport(cur) {
			teleportsUsed = true
			for _, t := range f.Teleports {
				if dist[f.Index(t)] != unreachable {
					continue
				}
				dist[f.Index(t)] = d + 1
				queue = append(queue, t)
			}
		}
	}
	return dist
}

// between returns the distance from a to b, or unreachable.
func (e *Engine) between(rot int, a, b maze.Coord, broken maze.Bitset, relaxed bool) int {
	f := e.geo.Frame(rot)
	return e.distances(rot, a, broken, relaxed)[f.Index(b)]
}
