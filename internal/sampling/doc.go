// Package sampling builds and serializes the one-dimensional numeric axes
// that transmission-spectrum calculations sample physical quantities on.
//
// A [Grid] is constructed once and never mutated afterwards:
//
//   - [New]: hinted construction, preferring caller values over a reference
//     and reporting defaulted boundaries through [Flags]
//   - [NewFromReference]: strict construction from a reference spec alone
//   - [Read] / [Grid.WriteTo]: flat binary snapshot round-trip
//
// # Oversampling
//
// An oversample factor k subdivides each nominal spacing interval into k
// parts without moving the boundaries, so a grid of n nominal points holds
// (n-1)*k+1 values. The non-oversampled grid over the same range is an
// exact every-k-th subsequence of the oversampled one, which downstream
// resampling relies on (see [Divisors]).
package sampling
