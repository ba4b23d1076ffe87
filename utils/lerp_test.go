// SPDX-License-Identifier: EPL-2.0

package utils

import "testing"

func TestLerp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		a, b, t float64
		want    float64
	}{
		{"start", -1, 1, 0, -1},
		{"end", -1, 1, 1, 1},
		{"midpoint", 0, 0.5, 0.5, 0.25},
		{"equal endpoints", 0.3, 0.3, 0.7, 0.3},
		{"descending", 1, 0, 0.25, 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Lerp(tt.a, tt.b, tt.t); got != tt.want {
				t.Errorf("Lerp(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.t, got, tt.want)
			}
		})
	}
}
