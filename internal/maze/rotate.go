package maze

// Rotations is the number of distinct orientations.
const Rotations = 4

// Dims returns the width and height of a w x h grid after k clockwise
// quarter turns.
func Dims(k, w, h int) (int, int) {
	if norm(k)%2 == 1 {
		return h, w
	}
	return w, h
}

// Rotate maps a base-orientation coordinate of a w x h grid into
// orientation k.
func Rotate(p Coord, k, w, h int) Coord {
	switch norm(k) {
	case 1:
		return Coord{X: p.Y, Y: w - 1 - p.X}
	case 2:
		return Coord{X: w - 1 - p.X, Y: h - 1 - p.Y}
	case 3:
		return Coord{X: h - 1 - p.Y, Y: p.X}
	}
	return p
}

// Inverse maps a coordinate in orientation k back to the base orientation.
// Inverse(Rotate(p, k, w, h), k, w, h) == p for every in-bounds p.
func Inverse(q Coord, k, w, h int) Coord {
	switch norm(k) {
	case 1:
		return Coord{X: w - 1 - q.Y, Y: q.X}
	case 2:
		return Coord{X: w - 1 - q.X, Y: h - 1 - q.Y}
	case 3:
		return Coord{X: q.Y, Y: h - 1 - q.X}
	}
	return q
}

// Reframe re-expresses a coordinate of orientation from in orientation to.
func Reframe(p Coord, from, to, w, h int) Coord {
	if norm(from) == norm(to) {
		return p
	}
	return Rotate(Inverse(p, from, w, h), to, w, h)
}

func norm(k int) int {
	k %= Rotations
	if k < 0 {
		k += Rotations
	}
	return k
}
