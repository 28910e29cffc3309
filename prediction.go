package forestsum

// Prediction is the consolidated output for one feature after merging the
// leaf summaries an exemplar reaches across a forest. Concrete types carry
// a point estimate and its uncertainty without exposing the summaries'
// internal representation.
type Prediction interface {
	// Kind returns the summary kind the prediction was merged from.
	Kind() Kind
}

// NothingPrediction is the empty placeholder produced by merging Nothing
// summaries.
type NothingPrediction struct{}

// Kind returns KindNothing.
func (NothingPrediction) Kind() Kind { return KindNothing }

// CategoricalPrediction is a probability vector over the feature's declared
// category range.
type CategoricalPrediction struct {
	Probs []float64
}

// Kind returns KindCategorical.
func (CategoricalPrediction) Kind() Kind { return KindCategorical }

// Best returns the most probable category, or -1 for an empty vector.
func (p CategoricalPrediction) Best() int {
	best := -1
	var bestProb float64
	for cat, prob := range p.Probs {
		if best == -1 || prob > bestProb {
			best, bestProb = cat, prob
		}
	}
	return best
}

// GaussianPrediction is a merged mean and variance.
type GaussianPrediction struct {
	Mean     float64
	Variance float64
}

// Kind returns KindGaussian.
func (GaussianPrediction) Kind() Kind { return KindGaussian }

// BiGaussianPrediction is a merged mean vector and covariance matrix over a
// feature pair.
type BiGaussianPrediction struct {
	Mean [2]float64
	Cov  [2][2]float64
}

// Kind returns KindBiGaussian.
func (BiGaussianPrediction) Kind() Kind { return KindBiGaussian }
