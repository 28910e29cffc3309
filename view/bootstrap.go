package view

import "math/rand"

// Bootstrap draws a sample-with-replacement of n rows from [0, n) and
// returns it together with its out-of-bag complement: the rows the sample
// never touched. The in-bag view keeps duplicates; the out-of-bag view is
// the error-estimation input for the tree trained on the sample.
func Bootstrap(rng *rand.Rand, n int) (inBag Slice, outOfBag *Bitmap) {
	inBag = make(Slice, n)
	seen := NewBitmap()
	for i := range inBag {
		row := rng.Intn(n)
		inBag[i] = row
		seen.Add(row)
	}
	return inBag, seen.Complement(n)
}
