package forestsum

import "fmt"

const (
	// probEpsilon floors estimated probabilities before taking logarithms,
	// keeping error sums finite on zero-count edge cases.
	probEpsilon = 1e-6

	// minVariance floors fitted variances when fewer than two exemplars
	// were observed.
	minVariance = 1e-6
)

// Summary is a single-feature distributional statistic built from the
// exemplars of one leaf. Summaries are immutable after construction; Error
// and encoding never mutate the receiver.
//
// Dispatch is by Kind only. The concrete types are the closed set
// NothingSummary, CategoricalSummary, GaussianSummary, and
// BiGaussianSummary.
type Summary interface {
	// Kind returns the summary's registered kind.
	Kind() Kind
	// Weight returns the number of exemplars the summary was built from.
	Weight() int
	// Error returns the summed error of the view's exemplars against this
	// summary. It is non-negative and finite for every well-formed input.
	Error(dm DataMatrix, view IndexView, feature int) float64
	// Size returns the encoded length in bytes, tag included.
	Size() int
	// AppendBinary appends the encoded form (tag byte, then the
	// kind-specific payload) and returns the extended slice.
	AppendBinary(buf []byte) []byte
}

// NewSummary builds a summary of the kind selected by code from the
// exemplars in view, read from the given feature column.
func NewSummary(code byte, dm DataMatrix, view IndexView, feature int) (Summary, error) {
	kind, ok := KindFromCode(code)
	if !ok {
		return nil, &ErrUnknownSummaryType{Code: code}
	}
	return newSummary(kind, dm, view, feature)
}

func newSummary(kind Kind, dm DataMatrix, view IndexView, feature int) (Summary, error) {
	switch kind {
	case KindNothing:
		return NothingSummary{}, nil
	case KindCategorical:
		return newCategoricalSummary(dm, view, feature), nil
	case KindGaussian:
		return newGaussianSummary(dm, view, feature), nil
	case KindBiGaussian:
		if feature+1 >= dm.Features() {
			return nil, fmt.Errorf("%w: bivariate summary needs feature %d+1, matrix has %d features",
				ErrInvalidFeatureLayout, feature, dm.Features())
		}
		return newBiGaussianSummary(dm, view, feature), nil
	default:
		return nil, &ErrUnknownSummaryType{Code: kind.Code()}
	}
}

// DecodeSummary decodes one summary from the front of data and reports how
// many bytes it consumed. An unrecognized tag byte yields
// ErrUnknownSummaryType; a buffer shorter than the payload requires yields
// ErrTruncatedData. On error no partial summary is returned.
func DecodeSummary(data []byte) (Summary, int, error) {
	if len(data) < 1 {
		return nil, 0, fmt.Errorf("%w: missing type tag", ErrTruncatedData)
	}
	kind, ok := KindFromCode(data[0])
	if !ok {
		return nil, 0, &ErrUnknownSummaryType{Code: data[0]}
	}

	var (
		s   Summary
		n   int
		err error
	)
	payload := data[1:]
	switch kind {
	case KindNothing:
		s, n, err = NothingSummary{}, 0, nil
	case KindCategorical:
		s, n, err = decodeCategorical(payload)
	case KindGaussian:
		s, n, err = decodeGaussian(payload)
	case KindBiGaussian:
		s, n, err = decodeBiGaussian(payload)
	}
	if err != nil {
		return nil, 0, err
	}
	return s, 1 + n, nil
}

// Merge combines summaries of one kind, gathered for a single feature from
// the leaves an exemplar reaches across trees, into a consolidated
// Prediction. The inputs are read-only operands; all must share one kind.
func Merge(summaries []Summary) (Prediction, error) {
	if len(summaries) == 0 {
		return nil, fmt.Errorf("%w: no summaries to merge", ErrInvalidFeatureLayout)
	}
	kind := summaries[0].Kind()
	for i, s := range summaries {
		if s.Kind() != kind {
			return nil, fmt.Errorf("%w: kind %s at input 0 vs %s at input %d",
				ErrInvalidFeatureLayout, kind, s.Kind(), i)
		}
	}

	switch kind {
	case KindNothing:
		return NothingPrediction{}, nil
	case KindCategorical:
		return mergeCategorical(summaries)
	case KindGaussian:
		return mergeGaussian(summaries), nil
	case KindBiGaussian:
		return mergeBiGaussian(summaries), nil
	default:
		return nil, &ErrUnknownSummaryType{Code: kind.Code()}
	}
}
