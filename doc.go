// Package forestsum computes, merges, and serializes per-leaf statistical
// summaries for random-forest predictors.
//
// A decision tree leaf is described by a SummarySet: one Summary per output
// feature, each a compact distributional statistic (categorical histogram,
// Gaussian, or bivariate Gaussian). Summaries support three things:
//
//   - an out-of-bag error metric, accumulated per feature across trees
//   - merging the leaf summaries an exemplar reaches across a forest into a
//     single consolidated Prediction per feature
//   - exact binary serialization, so a trained forest's leaves can be
//     persisted and reloaded with no other collaborator
//
// # Quick Start
//
// Build a leaf summary from a data matrix and an exemplar view:
//
//	set, _ := forestsum.NewSummarySet(matrix, leafRows, "CGG")
//
// Merge the leaves an exemplar falls into across trees:
//
//	preds, _ := forestsum.MergeSets(leafSets)
//	switch p := preds[0].(type) {
//	case forestsum.CategoricalPrediction:
//	    fmt.Println(p.Best(), p.Probs)
//	case forestsum.GaussianPrediction:
//	    fmt.Println(p.Mean, p.Variance)
//	}
//
// Accumulate out-of-bag error, one slot per output feature:
//
//	loss := make([]float64, matrix.Features())
//	_ = set.AddError(matrix, oobRows, loss)
//
// # Summary Types
//
// Types are selected per feature by a one-character code:
//
//	'N'  Nothing      no state; placeholder for slots consumed by 'B'
//	'C'  Categorical  histogram over the declared category range
//	'G'  Gaussian     count, mean, variance
//	'B'  BiGaussian   2-vector mean and 2x2 covariance over the feature
//	                  and the one after it ('B' is invalid in the last slot)
//
// A code string shorter than the feature count falls back to 'C' for
// discrete columns and 'G' for continuous ones.
//
// # Immutability
//
// The data matrix and index views are borrowed, read-only inputs. Summaries
// and SummarySets are immutable after construction: Error and Merge never
// mutate an operand, so independent leaves may be built, scored, and merged
// concurrently without locking.
//
// Persistence of whole forests lives in the store and blobstore
// subpackages; index-view implementations (bootstrap samples, out-of-bag
// complements) live in the view subpackage.
package forestsum
