package forestsum

// Kind identifies the concrete distribution stored in a Summary.
type Kind uint8

const (
	// KindNothing carries no state. Useful as a placeholder for feature
	// slots consumed by a neighboring KindBiGaussian.
	KindNothing Kind = iota
	// KindCategorical is a histogram over a declared category range.
	// The default for discrete features.
	KindCategorical
	// KindGaussian is a univariate Gaussian (count, mean, variance).
	// The default for continuous features.
	KindGaussian
	// KindBiGaussian is a bivariate Gaussian over a feature and the one
	// following it.
	KindBiGaussian
)

// kindInfo is the fixed catalog of summary kinds. Built once, read-only for
// the process lifetime; codes are the persisted type tags and must remain
// stable.
var kindInfo = [...]struct {
	code        byte
	name        string
	description string
}{
	KindNothing:     {'N', "nothing", "stateless placeholder summary"},
	KindCategorical: {'C', "categorical", "histogram over the declared category range"},
	KindGaussian:    {'G', "gaussian", "univariate Gaussian of count, mean, and variance"},
	KindBiGaussian:  {'B', "bigaussian", "bivariate Gaussian over a feature and its successor"},
}

// Code returns the one-character type code used in code strings and as the
// serialization tag.
func (k Kind) Code() byte {
	if int(k) >= len(kindInfo) {
		return 0
	}
	return kindInfo[k].code
}

// String returns the kind's name.
func (k Kind) String() string {
	if int(k) >= len(kindInfo) {
		return "invalid"
	}
	return kindInfo[k].name
}

// Description returns a human-readable description of the kind.
func (k Kind) Description() string {
	if int(k) >= len(kindInfo) {
		return ""
	}
	return kindInfo[k].description
}

// KindFromCode resolves a one-character type code to its Kind.
func KindFromCode(code byte) (Kind, bool) {
	switch code {
	case 'N':
		return KindNothing, true
	case 'C':
		return KindCategorical, true
	case 'G':
		return KindGaussian, true
	case 'B':
		return KindBiGaussian, true
	default:
		return 0, false
	}
}

// Kinds returns all registered kinds, in tag order.
func Kinds() []Kind {
	return []Kind{KindNothing, KindCategorical, KindGaussian, KindBiGaussian}
}

// DefaultKind returns the kind used for a feature when no code is supplied:
// Categorical for discrete columns, Gaussian for continuous ones.
func DefaultKind(dm DataMatrix, feature int) Kind {
	if dm.IsDiscrete(feature) {
		return KindCategorical
	}
	return KindGaussian
}
