// Package lifetime implements probabilistic survival models for dynamic
// stock modeling.
//
// A model answers one question: what fraction of a unit cohort that
// entered the stock at time step i is still present at time step j. The
// answers are precomputed into a [Table] over the model's full dimension
// space and cached until the parameters change.
//
// Five distributions are available: [Fixed], [Normal], [FoldedNormal],
// [LogNormal] and [Weibull]. Parameters are labeled arrays (or scalars)
// broadcastable over the non-time dimensions, so lifetimes may vary by
// region, product, cohort year and so on.
//
// Time steps may be unevenly spaced; the [Grid] derives interval lengths
// from midpoint bounds, and inflows can be placed at the start, middle or
// end of an interval, or spread over quadrature sub-points.
package lifetime
