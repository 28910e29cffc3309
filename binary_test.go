package forestsum_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/forestsum"
	"github.com/hupe1980/forestsum/view"
)

// buildEachKind returns one summary per registered kind, constructed from
// real data.
func buildEachKind(t *testing.T) []forestsum.Summary {
	t.Helper()

	dm := forestsum.NewDense(4, 3)
	dm.MarkDiscrete(0, 3)
	dm.SetRow(0, 0, 1.5, 3.0)
	dm.SetRow(1, 1, 2.5, -1.0)
	dm.SetRow(2, 1, 0.5, 0.25)
	dm.SetRow(3, 2, -2.5, 7.5)

	var summaries []forestsum.Summary
	for _, tc := range []struct {
		code    byte
		feature int
	}{
		{'N', 0},
		{'C', 0},
		{'G', 1},
		{'B', 1},
	} {
		s, err := forestsum.NewSummary(tc.code, dm, view.Range(4), tc.feature)
		require.NoError(t, err)
		summaries = append(summaries, s)
	}
	return summaries
}

func TestSummaryRoundTrip(t *testing.T) {
	for _, s := range buildEachKind(t) {
		t.Run(s.Kind().String(), func(t *testing.T) {
			encoded := s.AppendBinary(nil)
			require.Equal(t, s.Size(), len(encoded))

			decoded, consumed, err := forestsum.DecodeSummary(encoded)
			require.NoError(t, err)

			// Bytes consumed on decode equal bytes produced on encode, and
			// re-encoding reproduces the parameters exactly.
			assert.Equal(t, len(encoded), consumed)
			assert.Equal(t, s.Kind(), decoded.Kind())
			assert.Equal(t, s.Weight(), decoded.Weight())
			assert.Equal(t, encoded, decoded.AppendBinary(nil))
		})
	}
}

func TestSummaryDecodeTrailingData(t *testing.T) {
	for _, s := range buildEachKind(t) {
		encoded := s.AppendBinary(nil)
		withTail := append(encoded, 0xde, 0xad, 0xbe, 0xef)

		_, consumed, err := forestsum.DecodeSummary(withTail)
		require.NoError(t, err)
		assert.Equal(t, len(encoded), consumed, "kind %s", s.Kind())
	}
}

func TestSummaryDecodeUnknownTag(t *testing.T) {
	_, _, err := forestsum.DecodeSummary([]byte{'Z', 1, 2, 3})
	require.Error(t, err)
	assert.True(t, forestsum.IsUnknownSummaryType(err))
}

func TestSummaryDecodeTruncated(t *testing.T) {
	_, _, err := forestsum.DecodeSummary(nil)
	require.ErrorIs(t, err, forestsum.ErrTruncatedData)

	for _, s := range buildEachKind(t) {
		if s.Kind() == forestsum.KindNothing {
			continue // Tag-only encoding cannot be truncated further.
		}
		encoded := s.AppendBinary(nil)
		for _, cut := range []int{1, len(encoded) / 2, len(encoded) - 1} {
			_, _, err := forestsum.DecodeSummary(encoded[:cut])
			require.ErrorIs(t, err, forestsum.ErrTruncatedData,
				"kind %s cut at %d", s.Kind(), cut)
		}
	}
}

func TestSummarySetRoundTrip(t *testing.T) {
	dm := forestsum.NewDense(5, 4)
	dm.MarkDiscrete(0, 2)
	for row := 0; row < 5; row++ {
		dm.SetRow(row, float64(row%2), float64(row), float64(row)*2, float64(row)*3)
	}

	set, err := forestsum.NewSummarySet(dm, view.Range(5), "CGBN")
	require.NoError(t, err)

	encoded := set.AppendBinary(nil)
	require.Equal(t, set.Size(), len(encoded))

	decoded, consumed, err := forestsum.DecodeSummarySet(encoded)
	require.NoError(t, err)
	assert.Equal(t, len(encoded), consumed)
	assert.Equal(t, set.Features(), decoded.Features())
	for f := 0; f < set.Features(); f++ {
		assert.Equal(t, set.Summary(f).Kind(), decoded.Summary(f).Kind())
	}
	assert.Equal(t, encoded, decoded.AppendBinary(nil))
}

func TestSummarySetDecodeTruncated(t *testing.T) {
	dm := forestsum.NewDense(3, 2)
	set, err := forestsum.NewSummarySet(dm, view.Range(3), "GG")
	require.NoError(t, err)

	encoded := set.AppendBinary(nil)
	for _, cut := range []int{0, 3, 4, len(encoded) - 1} {
		_, _, err := forestsum.DecodeSummarySet(encoded[:cut])
		require.ErrorIs(t, err, forestsum.ErrTruncatedData, "cut at %d", cut)
	}
}

func TestSummarySetDecodeOversizedFeatureCount(t *testing.T) {
	// A corrupt feature count far beyond what the buffer can hold must be
	// rejected outright, not used to size an allocation.
	corrupt := []byte{0xff, 0xff, 0xff, 0xff, 'N', 'N'}

	_, _, err := forestsum.DecodeSummarySet(corrupt)
	require.ErrorIs(t, err, forestsum.ErrTruncatedData)

	// A count that overstates the payload by one byte is equally corrupt.
	_, _, err = forestsum.DecodeSummarySet([]byte{3, 0, 0, 0, 'N', 'N'})
	require.ErrorIs(t, err, forestsum.ErrTruncatedData)
}

func TestSummarySetDecodeBiGaussianLastSlot(t *testing.T) {
	dm := forestsum.NewDense(3, 2)
	set, err := forestsum.NewSummarySet(dm, view.Range(3), "BN")
	require.NoError(t, err)

	// Craft a one-feature set whose only summary is the bivariate one;
	// construction forbids this layout, so decode must as well.
	bi := set.Summary(0)
	var corrupt []byte
	corrupt = append(corrupt, 1, 0, 0, 0)
	corrupt = bi.AppendBinary(corrupt)

	_, _, err = forestsum.DecodeSummarySet(corrupt)
	require.ErrorIs(t, err, forestsum.ErrInvalidFeatureLayout)
}
