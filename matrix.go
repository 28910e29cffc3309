package forestsum

// DataMatrix is the read accessor contract for exemplar data. Rows are
// exemplars, columns are output features. Implementations are borrowed and
// never mutated by this package.
type DataMatrix interface {
	// Features returns the number of feature columns.
	Features() int
	// Value returns the value at (row, feature). Discrete features store
	// the category id as a float64.
	Value(row, feature int) float64
	// IsDiscrete reports whether the feature column is categorical.
	IsDiscrete(feature int) bool
	// CategoryCount returns the number of declared categories for a
	// discrete feature; it is unspecified for continuous features.
	CategoryCount(feature int) int
}

// Dense is an in-memory row-major DataMatrix.
//
// Columns default to continuous; MarkDiscrete declares a categorical column
// with its category range.
type Dense struct {
	rows       int
	features   int
	values     []float64
	discrete   []bool
	categories []int
}

// NewDense creates a zero-filled rows x features matrix with all columns
// continuous.
func NewDense(rows, features int) *Dense {
	return &Dense{
		rows:       rows,
		features:   features,
		values:     make([]float64, rows*features),
		discrete:   make([]bool, features),
		categories: make([]int, features),
	}
}

// Rows returns the number of exemplar rows.
func (d *Dense) Rows() int { return d.rows }

// Features returns the number of feature columns.
func (d *Dense) Features() int { return d.features }

// Value returns the value at (row, feature).
func (d *Dense) Value(row, feature int) float64 {
	return d.values[row*d.features+feature]
}

// Set stores a value at (row, feature).
func (d *Dense) Set(row, feature int, v float64) {
	d.values[row*d.features+feature] = v
}

// SetRow stores a whole exemplar row.
func (d *Dense) SetRow(row int, values ...float64) {
	copy(d.values[row*d.features:(row+1)*d.features], values)
}

// MarkDiscrete declares a column categorical with the given category range.
func (d *Dense) MarkDiscrete(feature, categories int) {
	d.discrete[feature] = true
	d.categories[feature] = categories
}

// IsDiscrete reports whether the column is categorical.
func (d *Dense) IsDiscrete(feature int) bool { return d.discrete[feature] }

// CategoryCount returns the declared category range of a column.
func (d *Dense) CategoryCount(feature int) int { return d.categories[feature] }
