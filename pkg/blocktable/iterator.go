package blocktable

import "github.com/henderiw/blocktable/pkg/block"

type Iterator[T1 any] struct {
	current int
	keys    []block.Block
	table   map[block.Block]T1
}

func (r *Iterator[T1]) Value() T1 {
	return r.table[r.keys[r.current]]
}

func (r *Iterator[T1]) Block() block.Block {
	return r.keys[r.current]
}

func (r *Iterator[T1]) Next() bool {
	r.current++
	return r.current < len(r.keys)
}

// IsConsecutive reports whether the current block touches the
// previous one.
func (r *Iterator[T1]) IsConsecutive() bool {
	if r.current < 1 {
		return false
	}
	return r.keys[r.current-1].End() == r.keys[r.current].Start()
}
