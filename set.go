package forestsum

import (
	"encoding/binary"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// SummarySet is a leaf's full multivariate summary: one Summary per output
// feature, each independently typed. The feature count is fixed at
// construction and the set is immutable afterwards.
type SummarySet struct {
	summaries []Summary
}

// NewSummarySet builds one summary per feature from the exemplars in view.
// codes selects the kind per feature by its one-character code; features
// beyond the end of codes fall back to Categorical for discrete columns and
// Gaussian for continuous ones. An unregistered code yields
// ErrUnknownSummaryType and no set.
func NewSummarySet(dm DataMatrix, view IndexView, codes string) (*SummarySet, error) {
	features := dm.Features()
	summaries := make([]Summary, features)
	for i := 0; i < features; i++ {
		kind := DefaultKind(dm, i)
		if i < len(codes) {
			k, ok := KindFromCode(codes[i])
			if !ok {
				return nil, &ErrUnknownSummaryType{Code: codes[i]}
			}
			kind = k
		}

		s, err := newSummary(kind, dm, view, i)
		if err != nil {
			return nil, err
		}
		summaries[i] = s
	}
	return &SummarySet{summaries: summaries}, nil
}

// Features returns the number of summarized features.
func (ss *SummarySet) Features() int { return len(ss.summaries) }

// Summary returns the summary for one feature.
func (ss *SummarySet) Summary(feature int) Summary { return ss.summaries[feature] }

// AddError accumulates each feature's error over the view into out, which
// must have one slot per feature. Values are added to what is already
// there, so error can be gathered across many trees and views without
// reallocation; callers weight the per-feature totals as they see fit.
func (ss *SummarySet) AddError(dm DataMatrix, view IndexView, out []float64) error {
	if len(out) != len(ss.summaries) {
		return fmt.Errorf("%w: error output has %d slots, set has %d features",
			ErrInvalidFeatureLayout, len(out), len(ss.summaries))
	}
	for i, s := range ss.summaries {
		out[i] += s.Error(dm, view, i)
	}
	return nil
}

// MergeSets merges the summary sets gathered from the leaves one exemplar
// reaches across trees into one Prediction per feature. Every set must
// share the same feature count and per-feature kind at each position; the
// first disagreement yields ErrInvalidFeatureLayout.
func MergeSets(sets []*SummarySet) ([]Prediction, error) {
	if len(sets) == 0 {
		return nil, fmt.Errorf("%w: no summary sets to merge", ErrInvalidFeatureLayout)
	}
	features := sets[0].Features()
	for i, set := range sets {
		if set.Features() != features {
			return nil, fmt.Errorf("%w: %d features at set 0 vs %d at set %d",
				ErrInvalidFeatureLayout, features, set.Features(), i)
		}
	}

	preds := make([]Prediction, features)
	column := make([]Summary, len(sets))
	for f := 0; f < features; f++ {
		for t, set := range sets {
			column[t] = set.summaries[f]
		}
		p, err := Merge(column)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", f, err)
		}
		preds[f] = p
	}
	return preds, nil
}

// MergeSetsMany is the batched form of MergeSets over an exemplars x trees
// grid of summary sets, laid out row-major by exemplar. It produces one
// prediction slice per exemplar. Rows are independent, so they are merged
// in parallel.
func MergeSetsMany(exemplars, trees int, sets []*SummarySet) ([][]Prediction, error) {
	if len(sets) != exemplars*trees {
		return nil, fmt.Errorf("%w: grid of %d exemplars x %d trees needs %d sets, have %d",
			ErrInvalidFeatureLayout, exemplars, trees, exemplars*trees, len(sets))
	}

	out := make([][]Prediction, exemplars)

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for e := 0; e < exemplars; e++ {
		g.Go(func() error {
			preds, err := MergeSets(sets[e*trees : (e+1)*trees])
			if err != nil {
				return fmt.Errorf("exemplar %d: %w", e, err)
			}
			out[e] = preds
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Size returns the encoded length of the set: a fixed-width feature count
// followed by each summary's bytes.
func (ss *SummarySet) Size() int {
	size := 4
	for _, s := range ss.summaries {
		size += s.Size()
	}
	return size
}

// AppendBinary appends the feature count and each summary in feature order.
// Summaries are self-describing, so no separate type table is written.
func (ss *SummarySet) AppendBinary(buf []byte) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(ss.summaries)))
	for _, s := range ss.summaries {
		buf = s.AppendBinary(buf)
	}
	return buf
}

// DecodeSummarySet decodes one summary set from the front of data and
// reports how many bytes it consumed. On any error no partial set is
// returned.
func DecodeSummarySet(data []byte) (*SummarySet, int, error) {
	if len(data) < 4 {
		return nil, 0, fmt.Errorf("%w: summary set feature count", ErrTruncatedData)
	}
	// Every summary occupies at least its tag byte; a feature count the
	// remaining buffer cannot hold is corrupt, so reject it before sizing
	// any allocation from it.
	count := binary.LittleEndian.Uint32(data)
	if uint64(count) > uint64(len(data)-4) {
		return nil, 0, fmt.Errorf("%w: %d features in %d remaining bytes",
			ErrTruncatedData, count, len(data)-4)
	}
	features := int(count)
	consumed := 4

	summaries := make([]Summary, features)
	for i := 0; i < features; i++ {
		s, n, err := DecodeSummary(data[consumed:])
		if err != nil {
			return nil, 0, fmt.Errorf("feature %d: %w", i, err)
		}
		if s.Kind() == KindBiGaussian && i == features-1 {
			return nil, 0, fmt.Errorf("%w: bivariate summary in last feature slot %d",
				ErrInvalidFeatureLayout, i)
		}
		summaries[i] = s
		consumed += n
	}
	return &SummarySet{summaries: summaries}, consumed, nil
}
