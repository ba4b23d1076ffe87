// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"

	"github.com/ik5/wavkit/utils"
)

// Resample converts one channel from inputRate to outputRate using linear
// interpolation. Samples are treated as normalized floats; no scaling is
// applied.
//
// The output holds round(len(input)*outputRate/inputRate) samples. Output
// sample 0 is always input sample 0, and the last output sample lands on the
// last input sample. When both rates are equal the input is returned as is.
//
// Resample fails with ErrInvalidArgument when input is nil or a rate is not
// greater than 1.
func Resample(input []float32, inputRate, outputRate int) ([]float32, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: nil input buffer", ErrInvalidArgument)
	}
	if inputRate <= 1 || outputRate <= 1 {
		return nil, fmt.Errorf("%w: sample rates must be greater than 1, got %d -> %d",
			ErrInvalidArgument, inputRate, outputRate)
	}
	if inputRate == outputRate {
		return input, nil
	}

	inLen := len(input)
	outLen := int(math.Round(float64(inLen) * float64(outputRate) / float64(inputRate)))

	out := make([]float32, outLen)
	if outLen == 0 {
		return out, nil
	}

	out[0] = input[0]
	if outLen == 1 {
		return out, nil
	}

	// ratio maps an output index onto the input index space
	ratio := float64(inLen-1) / float64(outLen-1)
	last := inLen - 1

	for n := 1; n < outLen; n++ {
		pos := ratio * float64(n)
		ceilIdx := int(math.Ceil(pos))
		floorIdx := int(math.Floor(pos))

		if ceilIdx > last {
			if floorIdx > last {
				floorIdx = last
			}
			ceilIdx = floorIdx
		}

		out[n] = float32(utils.Lerp(
			float64(input[floorIdx]),
			float64(input[ceilIdx]),
			pos-float64(floorIdx),
		))
	}

	return out, nil
}

// ResampleClip resamples every channel of c to outputRate.
func ResampleClip(c Clip, outputRate int) (Clip, error) {
	out := Clip{
		SampleRate: outputRate,
		Channels:   make([][]float32, len(c.Channels)),
	}

	for i, ch := range c.Channels {
		resampled, err := Resample(ch, c.SampleRate, outputRate)
		if err != nil {
			return Clip{}, fmt.Errorf("channel %d: %w", i, err)
		}
		out.Channels[i] = resampled
	}

	return out, nil
}
