// Package conv provides checked conversions from Go lengths to the
// fixed-width integers used in on-disk record headers.
package conv
