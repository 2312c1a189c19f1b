// Package core holds the small numeric helpers shared by the filter,
// measurement and command packages: level conversions between linear and
// decibel scales, and clamping.
package core
