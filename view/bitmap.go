package view

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// Bitmap is a roaring-bitmap backed row-set view. Rows are yielded in
// ascending order, each at most once.
// It wraps the official roaring implementation.
type Bitmap struct {
	rb *roaring.Bitmap
}

// NewBitmap creates a bitmap view of the given rows.
func NewBitmap(rows ...int) *Bitmap {
	b := &Bitmap{rb: roaring.New()}
	for _, row := range rows {
		b.rb.Add(uint32(row))
	}
	return b
}

// FromRoaring wraps an existing bitmap. The bitmap is borrowed; callers
// must not mutate it while the view is in use.
func FromRoaring(rb *roaring.Bitmap) *Bitmap {
	return &Bitmap{rb: rb}
}

// Add adds a row to the set.
func (b *Bitmap) Add(row int) {
	b.rb.Add(uint32(row))
}

// Contains checks if a row is in the set.
func (b *Bitmap) Contains(row int) bool {
	return b.rb.Contains(uint32(row))
}

// Len returns the number of rows in the set.
func (b *Bitmap) Len() int {
	return int(b.rb.GetCardinality())
}

// Rows yields the rows in ascending order.
func (b *Bitmap) Rows() iter.Seq[int] {
	return func(yield func(int) bool) {
		it := b.rb.Iterator()
		for it.HasNext() {
			if !yield(int(it.Next())) {
				return
			}
		}
	}
}

// Union returns a new view containing rows present in either set.
func (b *Bitmap) Union(other *Bitmap) *Bitmap {
	return &Bitmap{rb: roaring.Or(b.rb, other.rb)}
}

// Intersect returns a new view containing rows present in both sets.
func (b *Bitmap) Intersect(other *Bitmap) *Bitmap {
	return &Bitmap{rb: roaring.And(b.rb, other.rb)}
}

// Complement returns a new view of the rows in [0, n) absent from the set.
// For a tree's bootstrap sample this is exactly the out-of-bag view.
func (b *Bitmap) Complement(n int) *Bitmap {
	return &Bitmap{rb: roaring.Flip(b.rb, 0, uint64(n))}
}

// Clone returns a deep copy of the view.
func (b *Bitmap) Clone() *Bitmap {
	return &Bitmap{rb: b.rb.Clone()}
}
