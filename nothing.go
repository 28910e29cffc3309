package forestsum

// NothingSummary carries no state. Its error is always zero and its payload
// is empty. It exists to fill feature slots consumed by a neighboring
// BiGaussianSummary.
type NothingSummary struct{}

// Kind returns KindNothing.
func (NothingSummary) Kind() Kind { return KindNothing }

// Weight returns 0.
func (NothingSummary) Weight() int { return 0 }

// Error returns 0 for any view.
func (NothingSummary) Error(DataMatrix, IndexView, int) float64 { return 0 }

// Size returns the encoded length: the tag byte only.
func (NothingSummary) Size() int { return 1 }

// AppendBinary appends the tag byte.
func (NothingSummary) AppendBinary(buf []byte) []byte {
	return append(buf, KindNothing.Code())
}
