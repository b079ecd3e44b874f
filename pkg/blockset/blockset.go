package blockset

import (
	"strings"

	"github.com/henderiw/blocktable/pkg/block"
)

// Builder accumulates blocks to add and blocks to remove and
// normalizes them into a Set. The zero Builder is ready for use.
type Builder struct {
	in  []block.Block
	out []block.Block
}

// AddBlock adds all points of b to the set under construction.
func (s *Builder) AddBlock(b block.Block) {
	if len(s.out) > 0 {
		s.normalize()
	}
	s.in = append(s.in, b)
}

// RemoveBlock removes all interior points of b from the set under
// construction. Consistent with block.Subtract, a boundary point
// shared with a remaining block is not carved out.
func (s *Builder) RemoveBlock(b block.Block) {
	s.out = append(s.out, b)
}

// AddSet adds all blocks of b to the set under construction.
func (s *Builder) AddSet(b *Set) {
	if b == nil {
		return
	}
	for _, bb := range b.bb {
		s.AddBlock(bb)
	}
}

// normalize normalizes s: s.in becomes the minimal sorted list of
// blocks required to describe s, and s.out becomes empty.
func (s *Builder) normalize() {
	in := block.Merge(s.in)
	out := block.Merge(s.out)

	// in and out are sorted in ascending order and have no overlaps
	// within each other. Run a merge of the two lists in one pass.
	min := make([]block.Block, 0, len(in))
	for len(in) > 0 && len(out) > 0 {
		rin, rout := in[0], out[0]

		switch {
		case rout.End() < rin.Start():
			// "out" is entirely before "in".
			//
			//    out         in
			// f-------t   f-------t
			out = out[1:]
		case rin.End() < rout.Start():
			// "in" is entirely before "out".
			//
			//    in         out
			// f------t   f-------t
			min = append(min, rin)
			in = in[1:]
		case rout.Covers(rin):
			// "out" entirely covers "in".
			//
			//       out
			// f-------------t
			//    f------t
			//       in
			in = in[1:]
		case rin.Surrounds(rout):
			// "in" entirely covers "out".
			//
			//       in
			// f-------------t
			//    f------t
			//       out
			min = append(min, block.New(rin.Start(), rout.Start()))
			// Adjust in[0], not rin, so the trimmed remainder is
			// considered on the next iteration.
			in[0] = rin.TrimFrom(rout.End())
			out = out[1:]
		case rout.Start() <= rin.Start():
			// "out" overlaps the start of "in".
			//
			//   out
			// f------t
			//    f------t
			//       in
			in[0] = rin.TrimFrom(rout.End())
			// Can't move in[0] onto min yet, a later out might trim
			// it further. Just discard out and continue.
			out = out[1:]
		default:
			// "out" overlaps the end of "in".
			//
			//           out
			//        f------t
			//    f------t
			//       in
			min = append(min, block.New(rin.Start(), rout.Start()))
			in = in[1:]
		}
	}
	// Ran out of removals before the end of in.
	min = append(min, in...)

	s.in = min
	s.out = nil
}

// Set returns the set represented by the builder. The builder may
// keep being used after the call.
func (s *Builder) Set() *Set {
	s.normalize()
	return &Set{
		bb: append([]block.Block{}, s.in...),
	}
}

// Set is a normalized collection of blocks: sorted, minimal, with no
// overlapping blocks. The implementation of the methods relies on
// this property.
type Set struct {
	bb []block.Block
}

// Blocks returns the minimal sorted sequence of blocks that covers s.
func (s *Set) Blocks() []block.Block {
	return append([]block.Block{}, s.bb...)
}

// Contains reports whether n falls within any block of s.
func (s *Set) Contains(n int64) bool {
	for _, b := range s.bb {
		if b.Contains(n) {
			return true
		}
	}
	return false
}

// Covers reports whether b lies entirely within a single block of s.
func (s *Set) Covers(b block.Block) bool {
	for _, bb := range s.bb {
		if bb.Covers(b) {
			return true
		}
	}
	return false
}

// Overlaps reports whether b shares at least one point with s.
func (s *Set) Overlaps(b block.Block) bool {
	for _, bb := range s.bb {
		if bb.Overlaps(b) {
			return true
		}
	}
	return false
}

func (s *Set) Equal(other *Set) bool {
	if len(s.bb) != len(other.bb) {
		return false
	}
	for i := range s.bb {
		if s.bb[i] != other.bb[i] {
			return false
		}
	}
	return true
}

func (s *Set) String() string {
	var sb strings.Builder
	for i, b := range s.bb {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(b.String())
	}
	return sb.String()
}

// RemoveFree carves a block of the given length out of s and returns
// it together with a new Set with that block removed.
//
// If no block of s is long enough, RemoveFree returns ok=false and s
// unchanged.
func (s *Set) RemoveFree(length int64) (block.Block, *Set, bool) {
	for _, b := range s.bb {
		if b.Length() < length {
			continue
		}
		carved := block.New(b.Start(), b.Start()+length)

		var bldr Builder
		bldr.AddSet(s)
		bldr.RemoveBlock(carved)
		return carved, bldr.Set(), true
	}
	return block.Block{}, s, false
}
