// SPDX-License-Identifier: EPL-2.0

package audiotest

import "math"

// Sine returns n samples of a sine wave at frequency Hz for the given rate.
func Sine(n, sampleRate int, frequency float64, amplitude float32) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = amplitude * sineAt(i, sampleRate, frequency)
	}
	return out
}

func sineAt(i, sampleRate int, frequency float64) float32 {
	t := float64(i) / float64(sampleRate)
	return float32(math.Sin(2 * math.Pi * frequency * t))
}

// Constant returns a buffer of n copies of v.
func Constant(n int, v float32) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// Ramp returns n samples rising linearly from -1 to 1.
func Ramp(n int) []float32 {
	out := make([]float32, n)
	if n == 1 {
		return out
	}
	for i := range out {
		out[i] = -1 + 2*float32(i)/float32(n-1)
	}
	return out
}
