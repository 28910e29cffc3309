package forestsum

import (
	"encoding/binary"
	"fmt"
	"math"
)

// CategoricalSummary is a histogram over a feature's declared category
// range. Values outside [0, CategoryCount) are ignored during construction.
type CategoricalSummary struct {
	counts []uint32
	total  uint64
}

func newCategoricalSummary(dm DataMatrix, view IndexView, feature int) *CategoricalSummary {
	s := &CategoricalSummary{
		counts: make([]uint32, dm.CategoryCount(feature)),
	}
	for row := range view.Rows() {
		cat := int(dm.Value(row, feature))
		if cat >= 0 && cat < len(s.counts) {
			s.counts[cat]++
			s.total++
		}
	}
	return s
}

// Kind returns KindCategorical.
func (s *CategoricalSummary) Kind() Kind { return KindCategorical }

// Weight returns the number of counted exemplars.
func (s *CategoricalSummary) Weight() int { return int(s.total) }

// Categories returns the declared category range.
func (s *CategoricalSummary) Categories() int { return len(s.counts) }

// Count returns the histogram count for one category.
func (s *CategoricalSummary) Count(category int) int { return int(s.counts[category]) }

// Prob returns the estimated probability of a category. Out-of-range
// categories and empty histograms estimate zero.
func (s *CategoricalSummary) Prob(category int) float64 {
	if s.total == 0 || category < 0 || category >= len(s.counts) {
		return 0
	}
	return float64(s.counts[category]) / float64(s.total)
}

// Error sums the negative log probability of each exemplar's actual
// category, with probabilities floored at epsilon so the sum stays finite.
func (s *CategoricalSummary) Error(dm DataMatrix, view IndexView, feature int) float64 {
	var sum float64
	for row := range view.Rows() {
		p := s.Prob(int(dm.Value(row, feature)))
		sum += -math.Log(math.Max(p, probEpsilon))
	}
	return sum
}

// Size returns the encoded length: tag, category count, and one fixed-width
// count per category.
func (s *CategoricalSummary) Size() int {
	return 1 + 4 + 4*len(s.counts)
}

// AppendBinary appends the tag, the category count, and the histogram
// counts, all little-endian.
func (s *CategoricalSummary) AppendBinary(buf []byte) []byte {
	buf = append(buf, KindCategorical.Code())
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(s.counts)))
	for _, c := range s.counts {
		buf = binary.LittleEndian.AppendUint32(buf, c)
	}
	return buf
}

func decodeCategorical(data []byte) (*CategoricalSummary, int, error) {
	if len(data) < 4 {
		return nil, 0, fmt.Errorf("%w: categorical category count", ErrTruncatedData)
	}
	ncat := int(binary.LittleEndian.Uint32(data))
	need := 4 + 4*ncat
	if len(data) < need {
		return nil, 0, fmt.Errorf("%w: categorical histogram needs %d bytes, have %d",
			ErrTruncatedData, need, len(data))
	}

	s := &CategoricalSummary{counts: make([]uint32, ncat)}
	for i := range s.counts {
		s.counts[i] = binary.LittleEndian.Uint32(data[4+4*i:])
		s.total += uint64(s.counts[i])
	}
	return s, need, nil
}

// mergeCategorical sums histograms per category across trees and
// normalizes to a probability vector. An all-empty merge yields the uniform
// vector. Category ranges must agree across inputs.
func mergeCategorical(summaries []Summary) (CategoricalPrediction, error) {
	first := summaries[0].(*CategoricalSummary)
	ncat := len(first.counts)

	sums := make([]float64, ncat)
	var total float64
	for i, raw := range summaries {
		s := raw.(*CategoricalSummary)
		if len(s.counts) != ncat {
			return CategoricalPrediction{}, fmt.Errorf("%w: %d categories at input 0 vs %d at input %d",
				ErrInvalidFeatureLayout, ncat, len(s.counts), i)
		}
		for cat, c := range s.counts {
			sums[cat] += float64(c)
			total += float64(c)
		}
	}

	if total == 0 {
		for cat := range sums {
			sums[cat] = 1 / float64(ncat)
		}
		return CategoricalPrediction{Probs: sums}, nil
	}
	for cat := range sums {
		sums[cat] /= total
	}
	return CategoricalPrediction{Probs: sums}, nil
}
