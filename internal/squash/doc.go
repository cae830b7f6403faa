// Package squash computes the log-probability of tanh-squashed Gaussian
// actions in two ways.
//
// The tensor backend applies the hand-derived correction
// 2 * (ln 2 - x - softplus(-2x)) to a per-element normal log-density. The
// bijector backend chains squash, shift and scale bijectors over a diagonal
// multivariate normal and lets the transformed distribution derive the
// correction. Both are exposed as benchmark cases.
package squash
