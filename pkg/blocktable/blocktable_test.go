package blocktable

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/henderiw/blocktable/pkg/block"
	"github.com/stretchr/testify/assert"
	"k8s.io/apimachinery/pkg/labels"
)

var day = block.New(0, 1440)

var initEntries = map[block.Block]labels.Set{
	block.New(0, 480):     map[string]string{"status": "reserved", "reason": "night"},
	block.New(1320, 1440): map[string]string{"status": "reserved", "reason": "night"},
}

func TestNewTable(t *testing.T) {
	cases := map[string]struct {
		span            block.Block
		initEntries     map[block.Block]labels.Set
		validation      ValidationFn
		expectedEntries int
		expectedErr     bool
	}{
		"NewWithoutInitEntries": {
			span:            day,
			initEntries:     nil,
			expectedEntries: 0,
		},
		"NewWithInitEntries": {
			span:            day,
			initEntries:     initEntries,
			validation:      func(b block.Block) error { return nil },
			expectedEntries: 2,
		},
		"NewErrorOutsideSpan": {
			span:        block.New(0, 1000),
			initEntries: initEntries,
			expectedErr: true,
		},
		"NewErrorOverlap": {
			span: day,
			initEntries: map[block.Block]labels.Set{
				block.New(0, 480):   map[string]string{},
				block.New(400, 600): map[string]string{},
			},
			expectedErr: true,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := NewTable[labels.Set](tc.span, tc.initEntries, tc.validation)
			if tc.expectedErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			if r.Count() != tc.expectedEntries {
				t.Errorf("%s: -want %d, +got: %d\n", name, tc.expectedEntries, r.Count())
			}
		})
	}
}

func TestClaim(t *testing.T) {
	cases := map[string]struct {
		initEntries       map[block.Block]labels.Set
		newSuccessEntries map[block.Block]labels.Set
		newFailedEntries  map[block.Block]labels.Set
		expectedEntries   int
	}{
		"Normal": {
			initEntries: initEntries,
			newSuccessEntries: map[block.Block]labels.Set{
				block.New(540, 600): map[string]string{"title": "standup"},
				block.New(600, 660): map[string]string{"title": "review"},
			},
			newFailedEntries: map[block.Block]labels.Set{
				block.New(450, 510):   map[string]string{"title": "overlaps reserved"},
				block.New(1400, 1500): map[string]string{"title": "outside span"},
			},
			expectedEntries: 4,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := NewTable[labels.Set](day, tc.initEntries, nil)
			assert.NoError(t, err)

			for b, d := range tc.newSuccessEntries {
				err := r.Claim(b, d)
				assert.NoError(t, err)
			}
			for b, d := range tc.newFailedEntries {
				err := r.Claim(b, d)
				assert.Error(t, err)
			}
			// check table
			for b := range tc.initEntries {
				if !r.Has(b) {
					t.Errorf("%s expecting initEntry: %v\n", name, b)
				}
			}
			for b := range tc.newSuccessEntries {
				if !r.Has(b) {
					t.Errorf("%s expecting success claim entry: %v\n", name, b)
				}
			}
			for b := range tc.newFailedEntries {
				if r.Has(b) {
					t.Errorf("%s no expecting failed claim entry: %v\n", name, b)
				}
			}
			if r.Count() != tc.expectedEntries {
				t.Errorf("%s: -want %d, +got: %d\n", name, tc.expectedEntries, r.Count())
			}
		})
	}
}

func TestClaimTouching(t *testing.T) {
	r, err := NewTable[string](day, nil, nil)
	assert.NoError(t, err)

	assert.NoError(t, r.Claim(block.New(540, 600), "standup"))
	// A shared boundary point is not a conflict.
	assert.NoError(t, r.Claim(block.New(600, 660), "review"))
	// Sharing interior points is.
	assert.Error(t, r.Claim(block.New(650, 700), "retro"))
	// Claiming the same block twice is.
	assert.Error(t, r.Claim(block.New(540, 600), "again"))
}

func TestValidation(t *testing.T) {
	v := func(b block.Block) error {
		if b.Length() < 15 {
			return errors.New("blocks shorter than 15 are not claimable")
		}
		return nil
	}
	r, err := NewTable[string](day, map[block.Block]string{block.New(0, 5): "init"}, v)
	// init entries bypass validation so reserved blocks can be seeded.
	assert.NoError(t, err)

	assert.Error(t, r.Claim(block.New(100, 110), "too short"))
	assert.NoError(t, r.Claim(block.New(100, 120), "long enough"))
}

func TestGetUpdateRelease(t *testing.T) {
	r, err := NewTable[labels.Set](day, initEntries, nil)
	assert.NoError(t, err)

	b := block.New(540, 600)
	assert.NoError(t, r.Claim(b, labels.Set{"title": "standup"}))

	d, err := r.Get(b)
	assert.NoError(t, err)
	assert.Equal(t, "standup", d["title"])

	_, err = r.Get(block.New(540, 601))
	assert.Error(t, err)

	assert.NoError(t, r.Update(b, labels.Set{"title": "sync"}))
	d, err = r.Get(b)
	assert.NoError(t, err)
	assert.Equal(t, "sync", d["title"])

	assert.Error(t, r.Update(block.New(0, 1), labels.Set{}))

	assert.NoError(t, r.Release(b))
	assert.Error(t, r.Release(b))
	if r.Has(b) {
		t.Errorf("expected block %v to be released", b)
	}
}

func TestFree(t *testing.T) {
	cmpBlocks := cmp.AllowUnexported(block.Block{})

	r, err := NewTable[labels.Set](day, initEntries, nil)
	assert.NoError(t, err)

	expected := []block.Block{block.New(480, 1320)}
	if diff := cmp.Diff(expected, r.Free(), cmpBlocks); diff != "" {
		t.Errorf("free: -want, +got:\n%s", diff)
	}

	assert.NoError(t, r.Claim(block.New(540, 600), map[string]string{"title": "standup"}))
	expected = []block.Block{block.New(480, 540), block.New(600, 1320)}
	if diff := cmp.Diff(expected, r.Free(), cmpBlocks); diff != "" {
		t.Errorf("free after claim: -want, +got:\n%s", diff)
	}

	expectedClaimed := []block.Block{block.New(0, 480), block.New(540, 600), block.New(1320, 1440)}
	if diff := cmp.Diff(expectedClaimed, r.Claimed(), cmpBlocks); diff != "" {
		t.Errorf("claimed: -want, +got:\n%s", diff)
	}
}

func TestClaimSize(t *testing.T) {
	r, err := NewTable[string](day, nil, nil)
	assert.NoError(t, err)

	b, err := r.ClaimSize(60, "first")
	assert.NoError(t, err)
	assert.Equal(t, block.New(0, 60), b)

	b, err = r.ClaimSize(30, "second")
	assert.NoError(t, err)
	assert.Equal(t, block.New(60, 90), b)

	_, err = r.ClaimSize(2000, "too big")
	assert.Error(t, err)

	b, err = r.FindFree(60)
	assert.NoError(t, err)
	assert.Equal(t, block.New(90, 150), b)
}

func TestIterate(t *testing.T) {
	r, err := NewTable[string](day, nil, nil)
	assert.NoError(t, err)

	assert.NoError(t, r.Claim(block.New(600, 660), "b"))
	assert.NoError(t, r.Claim(block.New(540, 600), "a"))
	assert.NoError(t, r.Claim(block.New(720, 780), "c"))

	var got []string
	var consecutive []bool
	iter := r.Iterate()
	for iter.Next() {
		got = append(got, iter.Value())
		consecutive = append(consecutive, iter.IsConsecutive())
	}
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, []bool{false, true, false}, consecutive)
}

func TestIsFree(t *testing.T) {
	r, err := NewTable[string](day, nil, nil)
	assert.NoError(t, err)
	assert.NoError(t, r.Claim(block.New(540, 600), "standup"))

	cases := map[string]struct {
		b        block.Block
		expected bool
	}{
		"Free":        {b: block.New(600, 660), expected: true},
		"Claimed":     {b: block.New(540, 600), expected: false},
		"Overlapping": {b: block.New(500, 550), expected: false},
		"OutsideSpan": {b: block.New(1400, 1500), expected: false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := r.IsFree(tc.b); got != tc.expected {
				t.Errorf("%s: -want %v, +got: %v\n", name, tc.expected, got)
			}
		})
	}
}
