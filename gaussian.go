package forestsum

import (
	"encoding/binary"
	"fmt"
	"math"
)

// GaussianSummary holds the count, mean, and population variance of a
// continuous feature. Variance uses the population (MLE) convention so that
// moment-matched merging is exact; it is floored at a small positive
// constant when fewer than two exemplars were observed.
type GaussianSummary struct {
	count    uint32
	mean     float64
	variance float64
}

func newGaussianSummary(dm DataMatrix, view IndexView, feature int) *GaussianSummary {
	var (
		n          uint32
		sum, sumSq float64
	)
	for row := range view.Rows() {
		v := dm.Value(row, feature)
		n++
		sum += v
		sumSq += v * v
	}

	s := &GaussianSummary{count: n}
	if n > 0 {
		s.mean = sum / float64(n)
	}
	if n < 2 {
		s.variance = minVariance
	} else {
		s.variance = math.Max(sumSq/float64(n)-s.mean*s.mean, 0)
	}
	return s
}

// Kind returns KindGaussian.
func (s *GaussianSummary) Kind() Kind { return KindGaussian }

// Weight returns the number of exemplars.
func (s *GaussianSummary) Weight() int { return int(s.count) }

// Mean returns the fitted mean.
func (s *GaussianSummary) Mean() float64 { return s.mean }

// Variance returns the fitted population variance.
func (s *GaussianSummary) Variance() float64 { return s.variance }

// Error sums the squared residual (x - mean)^2 over the view's exemplars.
func (s *GaussianSummary) Error(dm DataMatrix, view IndexView, feature int) float64 {
	var sum float64
	for row := range view.Rows() {
		d := dm.Value(row, feature) - s.mean
		sum += d * d
	}
	return sum
}

// Size returns the encoded length: tag, fixed-width count, IEEE-754 mean,
// IEEE-754 variance.
func (s *GaussianSummary) Size() int { return 1 + 4 + 8 + 8 }

// AppendBinary appends the tag, count, mean, and variance. The field order
// is the persisted on-disk format.
func (s *GaussianSummary) AppendBinary(buf []byte) []byte {
	buf = append(buf, KindGaussian.Code())
	buf = binary.LittleEndian.AppendUint32(buf, s.count)
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(s.mean))
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(s.variance))
	return buf
}

func decodeGaussian(data []byte) (*GaussianSummary, int, error) {
	const need = 4 + 8 + 8
	if len(data) < need {
		return nil, 0, fmt.Errorf("%w: gaussian payload needs %d bytes, have %d",
			ErrTruncatedData, need, len(data))
	}
	return &GaussianSummary{
		count:    binary.LittleEndian.Uint32(data),
		mean:     math.Float64frombits(binary.LittleEndian.Uint64(data[4:])),
		variance: math.Float64frombits(binary.LittleEndian.Uint64(data[12:])),
	}, need, nil
}

// mergeGaussian moment-matches K Gaussians: the merged mean is the
// count-weighted mean, and the merged variance recovers the second moment
// from each variance and mean before recentering. Zero-count inputs
// contribute no weight.
func mergeGaussian(summaries []Summary) GaussianPrediction {
	var (
		n         float64
		sumMean   float64
		sumSecond float64
	)
	for _, raw := range summaries {
		s := raw.(*GaussianSummary)
		if s.count == 0 {
			continue
		}
		w := float64(s.count)
		n += w
		sumMean += w * s.mean
		sumSecond += w * (s.variance + s.mean*s.mean)
	}

	if n == 0 {
		return GaussianPrediction{Mean: 0, Variance: minVariance}
	}
	mean := sumMean / n
	return GaussianPrediction{
		Mean:     mean,
		Variance: math.Max(sumSecond/n-mean*mean, 0),
	}
}
