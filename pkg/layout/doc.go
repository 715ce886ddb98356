// Package layout partitions a form's ordered fields into rows and sizes each
// cell proportionally. Group sizes share a common denominator, the least
// common multiple of every group size, so rows of different lengths can be
// laid out on one grid without fractional column spans.
package layout
