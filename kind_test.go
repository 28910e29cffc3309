package forestsum_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/forestsum"
)

func TestKindCodes(t *testing.T) {
	tests := []struct {
		kind forestsum.Kind
		code byte
		name string
	}{
		{forestsum.KindNothing, 'N', "nothing"},
		{forestsum.KindCategorical, 'C', "categorical"},
		{forestsum.KindGaussian, 'G', "gaussian"},
		{forestsum.KindBiGaussian, 'B', "bigaussian"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.kind.Code())
			assert.Equal(t, tt.name, tt.kind.String())
			assert.NotEmpty(t, tt.kind.Description())

			got, ok := forestsum.KindFromCode(tt.code)
			require.True(t, ok)
			assert.Equal(t, tt.kind, got)
		})
	}
}

func TestKindFromCodeUnknown(t *testing.T) {
	for _, code := range []byte{'Z', 'n', 'c', 0, ' '} {
		_, ok := forestsum.KindFromCode(code)
		assert.False(t, ok, "code %q", code)
	}
}

func TestKindsCatalog(t *testing.T) {
	kinds := forestsum.Kinds()
	require.Len(t, kinds, 4)

	seen := make(map[byte]bool)
	for _, k := range kinds {
		assert.False(t, seen[k.Code()], "duplicate code %q", k.Code())
		seen[k.Code()] = true
	}
}

func TestDefaultKind(t *testing.T) {
	dm := forestsum.NewDense(1, 2)
	dm.MarkDiscrete(0, 3)

	assert.Equal(t, forestsum.KindCategorical, forestsum.DefaultKind(dm, 0))
	assert.Equal(t, forestsum.KindGaussian, forestsum.DefaultKind(dm, 1))
}
