package forestsum

import (
	"encoding/binary"
	"fmt"
	"math"
)

// BiGaussianSummary holds the count, 2-vector mean, and 2x2 population
// covariance of a feature pair: the summarized feature and the one
// following it. It must not occupy the last feature slot of a set.
//
// Only the upper triangle is persisted; the covariance is symmetric.
type BiGaussianSummary struct {
	count uint32
	mean  [2]float64
	cov   [2][2]float64
}

func newBiGaussianSummary(dm DataMatrix, view IndexView, feature int) *BiGaussianSummary {
	var (
		n                uint32
		sum0, sum1       float64
		sq00, sq01, sq11 float64
	)
	for row := range view.Rows() {
		x := dm.Value(row, feature)
		y := dm.Value(row, feature+1)
		n++
		sum0 += x
		sum1 += y
		sq00 += x * x
		sq01 += x * y
		sq11 += y * y
	}

	s := &BiGaussianSummary{count: n}
	if n > 0 {
		s.mean[0] = sum0 / float64(n)
		s.mean[1] = sum1 / float64(n)
	}
	if n < 2 {
		s.cov[0][0] = minVariance
		s.cov[1][1] = minVariance
	} else {
		w := float64(n)
		s.cov[0][0] = math.Max(sq00/w-s.mean[0]*s.mean[0], 0)
		s.cov[1][1] = math.Max(sq11/w-s.mean[1]*s.mean[1], 0)
		s.cov[0][1] = sq01/w - s.mean[0]*s.mean[1]
		s.cov[1][0] = s.cov[0][1]
	}
	return s
}

// Kind returns KindBiGaussian.
func (s *BiGaussianSummary) Kind() Kind { return KindBiGaussian }

// Weight returns the number of exemplars.
func (s *BiGaussianSummary) Weight() int { return int(s.count) }

// Mean returns the fitted mean vector.
func (s *BiGaussianSummary) Mean() [2]float64 { return s.mean }

// Cov returns the fitted population covariance matrix.
func (s *BiGaussianSummary) Cov() [2][2]float64 { return s.cov }

// Error sums the squared residual over both components for each exemplar in
// the view.
func (s *BiGaussianSummary) Error(dm DataMatrix, view IndexView, feature int) float64 {
	var sum float64
	for row := range view.Rows() {
		d0 := dm.Value(row, feature) - s.mean[0]
		d1 := dm.Value(row, feature+1) - s.mean[1]
		sum += d0*d0 + d1*d1
	}
	return sum
}

// Size returns the encoded length: tag, fixed-width count, two IEEE-754
// means, and the three distinct covariance entries.
func (s *BiGaussianSummary) Size() int { return 1 + 4 + 5*8 }

// AppendBinary appends the tag, count, mean vector, and the covariance
// upper triangle (c00, c01, c11). The field order is the persisted on-disk
// format.
func (s *BiGaussianSummary) AppendBinary(buf []byte) []byte {
	buf = append(buf, KindBiGaussian.Code())
	buf = binary.LittleEndian.AppendUint32(buf, s.count)
	for _, f := range [...]float64{s.mean[0], s.mean[1], s.cov[0][0], s.cov[0][1], s.cov[1][1]} {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(f))
	}
	return buf
}

func decodeBiGaussian(data []byte) (*BiGaussianSummary, int, error) {
	const need = 4 + 5*8
	if len(data) < need {
		return nil, 0, fmt.Errorf("%w: bigaussian payload needs %d bytes, have %d",
			ErrTruncatedData, need, len(data))
	}

	s := &BiGaussianSummary{count: binary.LittleEndian.Uint32(data)}
	var f [5]float64
	for i := range f {
		f[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[4+8*i:]))
	}
	s.mean[0], s.mean[1] = f[0], f[1]
	s.cov[0][0], s.cov[0][1], s.cov[1][1] = f[2], f[3], f[4]
	s.cov[1][0] = s.cov[0][1]
	return s, need, nil
}

// mergeBiGaussian applies the same moment matching as the univariate merge
// to the mean vector and covariance matrix. Zero-count inputs contribute no
// weight.
func mergeBiGaussian(summaries []Summary) BiGaussianPrediction {
	var (
		n       float64
		sumMean [2]float64
		sumSec  [2][2]float64
	)
	for _, raw := range summaries {
		s := raw.(*BiGaussianSummary)
		if s.count == 0 {
			continue
		}
		w := float64(s.count)
		n += w
		for i := 0; i < 2; i++ {
			sumMean[i] += w * s.mean[i]
			for j := 0; j < 2; j++ {
				sumSec[i][j] += w * (s.cov[i][j] + s.mean[i]*s.mean[j])
			}
		}
	}

	if n == 0 {
		return BiGaussianPrediction{
			Cov: [2][2]float64{{minVariance, 0}, {0, minVariance}},
		}
	}

	var p BiGaussianPrediction
	for i := 0; i < 2; i++ {
		p.Mean[i] = sumMean[i] / n
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			p.Cov[i][j] = sumSec[i][j]/n - p.Mean[i]*p.Mean[j]
		}
		p.Cov[i][i] = math.Max(p.Cov[i][i], 0)
	}
	return p
}
