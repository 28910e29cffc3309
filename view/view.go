// Package view provides index-view implementations: finite, restartable
// sequences of exemplar row indices used to build and score leaf
// summaries.
//
// Range and Slice cover the common cases; Bitmap is a roaring-bitmap
// backed set view whose Complement yields out-of-bag rows; Bootstrap draws
// a sample-with-replacement view together with its out-of-bag complement.
package view

import "iter"

// Range is the view of all rows in [0, n).
type Range int

// Len returns n.
func (r Range) Len() int { return int(r) }

// Rows yields 0 through n-1.
func (r Range) Rows() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < int(r); i++ {
			if !yield(i) {
				return
			}
		}
	}
}

// Slice is an explicit row list. Duplicates are allowed; bootstrap
// resampling produces them.
type Slice []int

// Len returns the number of rows.
func (s Slice) Len() int { return len(s) }

// Rows yields the rows in list order.
func (s Slice) Rows() iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, row := range s {
			if !yield(row) {
				return
			}
		}
	}
}
