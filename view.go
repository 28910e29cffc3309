package forestsum

import "iter"

// IndexView is a finite, restartable sequence of exemplar row indices.
// Rows may be ranged over any number of times; each range restarts the
// sequence. Implementations live in the view subpackage, but any type
// satisfying the contract works.
type IndexView interface {
	// Len returns the number of rows the sequence yields.
	Len() int
	// Rows returns the row index sequence.
	Rows() iter.Seq[int]
}
