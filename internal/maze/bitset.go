package maze

import (
	"math/bits"
	"strings"
)

// Bitset is an immutable set of tile indices. The bits live in a string so
// the value is comparable and can be used directly inside map keys.
// Sets built for the same maze always have the same capacity, so equal
// contents imply equal values.
type Bitset struct {
	data string
}

// NewBitset returns an empty set able to hold indices in [0, n).
func NewBitset(n int) Bitset {
	if n <= 0 {
		return Bitset{}
	}
	return Bitset{data: strings.Repeat("\x00", (n+7)/8)}
}

// Cap returns the number of indices the set can hold.
func (b Bitset) Cap() int {
	return len(b.data) * 8
}

// Has reports whether i is in the set.
func (b Bitset) Has(i int) bool {
	if i < 0 || i/8 >= len(b.data) {
		return false
	}
	return b.data[i/8]&(1<<uint(i%8)) != 0
}

// With returns a copy of the set with i added.
// Indices beyond the capacity grow the set.
func (b Bitset) With(i int) Bitset {
	if i < 0 || b.Has(i) {
		return b
	}
	buf := []byte(b.data)
	for i/8 >= len(buf) {
		buf = append(buf, 0)
	}
	buf[i/8] |= 1 << uint(i%8)
	return Bitset{data: string(buf)}
}

// Without returns a copy of the set with i removed.
func (b Bitset) Without(i int) Bitset {
	if !b.Has(i) {
		return b
	}
	buf := []byte(b.data)
	buf[i/8] &^= 1 << uint(i%8)
	return Bitset{data: string(buf)}
}

// Len returns the number of members.
func (b Bitset) Len() int {
	n := 0
	for i := 0; i < len(b.data); i++ {
		n += bits.OnesCount8(b.data[i])
	}
	return n
}

// Empty reports whether the set has no members.
func (b Bitset) Empty() bool {
	for i := 0; i < len(b.data); i++ {
		if b.data[i] != 0 {
			return false
		}
	}
	return true
}

// Each calls fn for every member in ascending order.
func (b Bitset) Each(fn func(i int)) {
	for byteIdx := 0; byteIdx < len(b.data); byteIdx++ {
		v := b.data[byteIdx]
		for v != 0 {
			bit := bits.TrailingZeros8(v)
			fn(byteIdx*8 + bit)
			v &= v - 1
		}
	}
}

// Members returns all members in ascending order.
func (b Bitset) Members() []int {
	out := make([]int, 0, b.Len())
	b.Each(func(i int) { out = append(out, i) })
	return out
}

// BitsetOf returns a set of capacity n holding the given members.
func BitsetOf(n int, members ...int) Bitset {
	if n <= 0 {
		return Bitset{}
	}
	buf := make([]byte, (n+7)/8)
	for _, i := range members {
		if i >= 0 && i < n {
			buf[i/8] |= 1 << uint(i%8)
		}
	}
	return Bitset{data: string(buf)}
}
