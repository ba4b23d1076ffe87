// SPDX-License-Identifier: EPL-2.0

package utils

// Lerp returns the linear interpolation between a and b.
// t is the fractional position between a and b (0 <= t <= 1).
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
