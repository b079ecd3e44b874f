package blocktable

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/henderiw/blocktable/pkg/block"
)

type Table[T1 any] interface {
	Get(b block.Block) (T1, error)
	Claim(b block.Block, d T1) error
	ClaimSize(size int64, d T1) (block.Block, error)
	Release(b block.Block) error
	Update(b block.Block, d T1) error

	Iterate() *Iterator[T1]

	Count() int
	Has(b block.Block) bool

	IsFree(b block.Block) bool
	FindFree(size int64) (block.Block, error)
	Free() []block.Block
	Claimed() []block.Block

	GetAll() map[block.Block]T1
}

type ValidationFn func(b block.Block) error

// NewTable returns a claim table over the given span. Claimed blocks
// must lie within the span and may not overlap each other beyond a
// shared boundary point.
func NewTable[T1 any](span block.Block, initEntries map[block.Block]T1, v ValidationFn) (Table[T1], error) {
	r := &table[T1]{
		m:          new(sync.RWMutex),
		table:      map[block.Block]T1{},
		span:       span,
		validateFn: v,
	}

	var errm error
	for b, d := range initEntries {
		if err := r.add(b, d, true); err != nil {
			errm = errors.Join(errm, err)
		}
	}

	return r, errm
}

type table[T1 any] struct {
	m          *sync.RWMutex
	table      map[block.Block]T1
	span       block.Block
	validateFn ValidationFn
}

func (r *table[T1]) validate(b block.Block, init bool) error {
	if !r.span.Covers(b) {
		return fmt.Errorf("block %s is outside the span: %s", b, r.span)
	}
	if r.validateFn != nil && !init {
		if err := r.validateFn(b); err != nil {
			return err
		}
	}
	return nil
}

// conflict returns a claimed block sharing more than a boundary
// point with b.
func (r *table[T1]) conflict(b block.Block) (block.Block, bool) {
	for k := range r.table {
		if k.Overlaps(b) && k.Limited(b).Length() > 0 {
			return k, true
		}
	}
	return block.Block{}, false
}

func (r *table[T1]) add(b block.Block, d T1, init bool) error {
	if err := r.validate(b, init); err != nil {
		return err
	}
	if _, ok := r.table[b]; ok {
		return fmt.Errorf("block %s is already claimed", b)
	}
	if k, ok := r.conflict(b); ok {
		return fmt.Errorf("block %s overlaps claimed block %s", b, k)
	}
	r.table[b] = d
	return nil
}

func (r *table[T1]) Get(b block.Block) (T1, error) {
	r.m.RLock()
	defer r.m.RUnlock()
	var d T1

	d, ok := r.table[b]
	if !ok {
		return d, fmt.Errorf("no match found for: %v", b)
	}
	return d, nil
}

func (r *table[T1]) Claim(b block.Block, d T1) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.add(b, d, false)
}

func (r *table[T1]) ClaimSize(size int64, d T1) (block.Block, error) {
	r.m.Lock()
	defer r.m.Unlock()

	b, err := r.findFree(size)
	if err != nil {
		return block.Block{}, err
	}
	if err := r.add(b, d, false); err != nil {
		return block.Block{}, err
	}
	return b, nil
}

func (r *table[T1]) Release(b block.Block) error {
	r.m.Lock()
	defer r.m.Unlock()

	if _, ok := r.table[b]; !ok {
		return fmt.Errorf("block %s is not claimed", b)
	}
	delete(r.table, b)
	return nil
}

func (r *table[T1]) Update(b block.Block, d T1) error {
	r.m.Lock()
	defer r.m.Unlock()

	if _, ok := r.table[b]; !ok {
		return fmt.Errorf("block %s is not claimed", b)
	}
	r.table[b] = d
	return nil
}

func (r *table[T1]) Iterate() *Iterator[T1] {
	r.m.RLock()
	defer r.m.RUnlock()

	return &Iterator[T1]{current: -1, keys: r.claimed(), table: r.table}
}

func (r *table[T1]) Count() int {
	r.m.RLock()
	defer r.m.RUnlock()

	return len(r.table)
}

func (r *table[T1]) Has(b block.Block) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	_, ok := r.table[b]
	return ok
}

// IsFree reports whether no claimed block shares more than a
// boundary point with b.
func (r *table[T1]) IsFree(b block.Block) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	if !r.span.Covers(b) {
		return false
	}
	_, ok := r.conflict(b)
	return !ok
}

func (r *table[T1]) FindFree(size int64) (block.Block, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.findFree(size)
}

func (r *table[T1]) findFree(size int64) (block.Block, error) {
	for _, g := range r.free() {
		if g.Length() < size {
			continue
		}
		return block.New(g.Start(), g.Start()+size), nil
	}
	return block.Block{}, fmt.Errorf("no free block of size %d found", size)
}

func (r *table[T1]) Free() []block.Block {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.free()
}

func (r *table[T1]) free() []block.Block {
	return block.Gaps(r.span, r.claimed())
}

func (r *table[T1]) Claimed() []block.Block {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.claimed()
}

func (r *table[T1]) claimed() []block.Block {
	keys := make([]block.Block, 0, len(r.table))
	for key := range r.table {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i int, j int) bool {
		return keys[i].Less(keys[j])
	})
	return keys
}

func (r *table[T1]) GetAll() map[block.Block]T1 {
	r.m.RLock()
	defer r.m.RUnlock()

	entries := make(map[block.Block]T1, len(r.table))
	for b, d := range r.table {
		entries[b] = d
	}
	return entries
}
