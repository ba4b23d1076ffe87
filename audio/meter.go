// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"math"

	"github.com/ik5/wavkit/utils"
)

const (
	// Mean absolute 16-bit amplitude below which the meter is linear.
	linearLevelLimit = 1251
	linearLevelScale = 1250.0
	// Mean absolute amplitude that reads as level 100.
	fullScalePower = 10000.0
)

// Level computes a 0..100 loudness reading for a short analysis window.
//
// Channels are mixed to mono, quantized to 16-bit PCM, and the mean absolute
// amplitude is mapped linearly below 1251 (so quiet input still moves the
// meter) and logarithmically above. Channels must have equal length.
func Level(frame [][]float32) (int, error) {
	mono, err := MixDown(frame)
	if err != nil {
		return 0, err
	}

	return monoLevel(mono), nil
}

func monoLevel(mono []float32) int {
	if len(mono) == 0 {
		return 0
	}

	var absSum int64
	for _, s := range mono {
		v := int64(utils.FloatToInt16(s))
		if v < 0 {
			v = -v
		}
		absSum += v
	}

	power := float64(absSum) / float64(len(mono))

	var level float64
	if power < linearLevelLimit {
		level = math.Round(power / linearLevelScale * 10)
	} else {
		level = math.Round(clampLevel((1 + math.Log10(power/fullScalePower)) * 100))
	}

	return int(clampLevel(level))
}

func clampLevel(v float64) float64 {
	return min(max(v, 0), 100)
}
