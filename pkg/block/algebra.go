package block

import "sort"

// Add combines b with other. If the two blocks overlap the result is
// a single block spanning both. If they are disjoint the result is
// both blocks unchanged, other first; no sort order is implied. Use
// Merge for a canonical, sorted, overlap-free combination of many
// blocks.
func (b Block) Add(other Block) []Block {
	if b.Overlaps(other) {
		return []Block{New(min(b.start, other.start), max(b.end, other.end))}
	}
	return []Block{other, b}
}

// Subtract removes the portion of b covered by other and returns
// what remains of b: zero, one or two blocks. A shared boundary
// point is not carved out on its own, so subtracting a block that
// merely touches b leaves b unchanged. If the blocks are disjoint
// the result is both blocks unchanged, other first, mirroring Add.
func (b Block) Subtract(other Block) []Block {
	switch {
	case other.Covers(b):
		// Nothing remains.
		//
		//    other
		// f---------t
		//   f-----t
		//      b
		return nil
	case other.start == b.start:
		// other carves off the top of b, the bottom remains.
		//
		// f-----t
		//  other
		// f---------t
		//      b
		return []Block{New(other.end, b.end)}
	case b.Overlaps(other):
		switch {
		case b.start == other.end || b.end == other.start:
			// Boundary touch only, b is unchanged.
			return []Block{b}
		case b.Surrounds(other):
			// other is strictly inside b, two remainders.
			//
			//    f-----t
			//     other
			// f------------t
			//       b
			return []Block{New(b.start, other.start), New(other.end, b.end)}
		case b.end == other.end:
			// other carves off the bottom of b, the top remains.
			return []Block{New(b.start, other.start)}
		case other.start < b.start:
			// other hangs off the top of b.
			//
			// f------t
			//   other
			//     f--------t
			//         b
			return []Block{New(other.end, b.end)}
		default:
			// other hangs off the bottom of b.
			return []Block{New(b.start, other.start)}
		}
	default:
		return []Block{other, b}
	}
}

// TrimFrom replaces the start bound of b.
func (b Block) TrimFrom(top int64) Block {
	return New(top, b.end)
}

// TrimTo replaces the end bound of b.
func (b Block) TrimTo(bottom int64) Block {
	return New(b.start, bottom)
}

// Limited clamps b to lie within limiter. If b and limiter are
// disjoint the clamped bounds invert and the constructor swap turns
// the result into the block spanning the gap between them; check
// Overlaps first when that is not acceptable.
func (b Block) Limited(limiter Block) Block {
	return New(max(b.start, limiter.start), min(b.end, limiter.end))
}

// Padded expands b outward by the given amounts. Negative padding is
// treated as zero, Padded never shrinks a block.
func (b Block) Padded(top, bottom int64) Block {
	return New(b.start-max(top, 0), b.end+max(bottom, 0))
}

// Split cuts other out of b and returns the two pieces, top piece
// first. No validation is performed: the caller must ensure other
// lies within b.
func (b Block) Split(other Block) []Block {
	return []Block{New(b.start, other.start), New(other.end, b.end)}
}

// Merge returns the minimal sorted sequence of non-overlapping
// blocks covering exactly the union of bb. The input slice is not
// modified.
func Merge(bb []Block) []Block {
	switch len(bb) {
	case 0:
		return nil
	case 1:
		return []Block{bb[0]}
	}

	sorted := make([]Block, len(bb))
	copy(sorted, bb)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })

	out := make([]Block, 1, len(sorted))
	out[0] = sorted[0]
	for _, b := range sorted[1:] {
		prev := &out[len(out)-1]
		switch {
		case !prev.Overlaps(b):
			// No overlap, start a new block.
			//
			//   prev
			// f------t
			//           f------t
			//               b
			out = append(out, b)
		case prev.end < b.end:
			// Partial overlap, extend prev.
			//
			//   prev
			// f------t
			//     f-----t
			//        b
			*prev = New(prev.start, b.end)
		default:
			// b entirely contained in prev, nothing to do.
			//
			//    prev
			// f--------t
			//  f-----t
			//     b
		}
	}
	return out
}

// Gaps returns the pieces of within not covered by any block in bb,
// sorted by start. Adjacent pieces share their boundary points with
// the covering blocks, consistent with Subtract.
func Gaps(within Block, bb []Block) []Block {
	merged := make([]Block, 0, len(bb)+2)
	merged = append(merged, New(within.start, within.start))
	for _, b := range Merge(bb) {
		if !b.Overlaps(within) {
			continue
		}
		merged = append(merged, b.Limited(within))
	}
	merged = append(merged, New(within.end, within.end))

	out := make([]Block, 0, len(merged)-1)
	for _, g := range gapsBetween(merged) {
		if g.Length() == 0 {
			continue
		}
		out = append(out, g)
	}
	return out
}

// gapsBetween returns the gaps separating consecutive elements of an
// ordered, non-overlapping sequence. For a triplet [a, b, c] the
// result is the gap between a and b followed by the gap between b
// and c.
func gapsBetween(bb []Block) []Block {
	if len(bb) < 2 {
		return nil
	}
	out := make([]Block, 0, len(bb)-1)
	for i := 1; i < len(bb); i++ {
		out = append(out, New(bb[i-1].end, bb[i].start))
	}
	return out
}
