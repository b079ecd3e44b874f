package block

import (
	"fmt"
	"strconv"
	"strings"
)

// Block is a closed numeric range: both bounds belong to the block.
// The start bound is also called the top of the block and the end
// bound the bottom (a block of time reads top to bottom on a
// schedule). Blocks are immutable values and safe to copy and to use
// as map keys.
type Block struct {
	start int64
	end   int64
}

// New returns the block spanning a and b. The bounds may be given in
// either order; they are swapped if needed so that start <= end
// always holds. A block with start == end is valid and represents a
// single point.
func New(a, b int64) Block {
	if b < a {
		a, b = b, a
	}
	return Block{start: a, end: b}
}

// Parse parses a block in the form "start-end", e.g. "10-20".
func Parse(s string) (Block, error) {
	var b Block
	h := strings.IndexByte(s, '-')
	if h == -1 {
		return b, fmt.Errorf("no hyphen in block %q", s)
	}
	from, to := s[:h], s[h+1:]
	start, err := strconv.ParseInt(from, 10, 64)
	if err != nil {
		return b, fmt.Errorf("invalid start %q in block %q", from, s)
	}
	end, err := strconv.ParseInt(to, 10, 64)
	if err != nil {
		return b, fmt.Errorf("invalid end %q in block %q", to, s)
	}
	return New(start, end), nil
}

// Start returns the lower bound of b.
func (b Block) Start() int64 { return b.start }

// End returns the upper bound of b.
func (b Block) End() int64 { return b.end }

// Length returns the distance between the bounds. A point block has
// length 0.
func (b Block) Length() int64 { return b.end - b.start }

func (b Block) String() string {
	return fmt.Sprintf("%d-%d", b.start, b.end)
}

func (b Block) IsZero() bool {
	return b == Block{}
}

// Compare orders blocks lexicographically by (start, end). It
// returns -1 if b sorts before other, 0 if the blocks are equal and
// +1 otherwise.
func (b Block) Compare(other Block) int {
	switch {
	case b.start < other.start:
		return -1
	case b.start > other.start:
		return 1
	case b.end < other.end:
		return -1
	case b.end > other.end:
		return 1
	default:
		return 0
	}
}

func (b Block) Less(other Block) bool {
	return b.Compare(other) < 0
}

// Contains reports whether n falls within b, bounds included.
func (b Block) Contains(n int64) bool {
	return b.start <= n && n <= b.end
}

// Covers reports whether other lies entirely within b. The bounds
// may coincide.
func (b Block) Covers(other Block) bool {
	return other.start >= b.start && other.end <= b.end
}

// Surrounds reports whether other lies strictly inside b, touching
// neither bound.
func (b Block) Surrounds(other Block) bool {
	return other.start > b.start && other.end < b.end
}

// Overlaps reports whether b and other share at least one point,
// including a shared boundary value.
func (b Block) Overlaps(other Block) bool {
	return b.Contains(other.start) || other.Contains(b.start)
}

// IntersectsTop reports whether b's start bound falls strictly
// inside other's span.
func (b Block) IntersectsTop(other Block) bool {
	return other.start < b.start && b.start < other.end
}

// IntersectsBottom reports whether b's end bound falls strictly
// inside other's span.
func (b Block) IntersectsBottom(other Block) bool {
	return other.start < b.end && b.end < other.end
}
