// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// MixDown averages equal-length channels sample by sample into one mono
// buffer. A single channel is returned unchanged.
func MixDown(channels [][]float32) ([]float32, error) {
	if len(channels) == 0 {
		return nil, fmt.Errorf("%w: no channels to mix", ErrInvalidArgument)
	}

	frames := len(channels[0])
	for i, ch := range channels[1:] {
		if len(ch) != frames {
			return nil, fmt.Errorf("%w: channel %d has %d samples, channel 0 has %d",
				ErrInvalidArgument, i+1, len(ch), frames)
		}
	}

	if len(channels) == 1 {
		return channels[0], nil
	}

	dst := make([]float32, frames)

	// Unrolled loop for common cases
	switch len(channels) {
	case 2:
		left, right := channels[0], channels[1]
		for f := range frames {
			dst[f] = (left[f] + right[f]) * 0.5
		}
	case 4:
		c0, c1, c2, c3 := channels[0], channels[1], channels[2], channels[3]
		for f := range frames {
			dst[f] = (c0[f] + c1[f] + c2[f] + c3[f]) * 0.25
		}
	default:
		invChannels := float32(1.0) / float32(len(channels))
		for f := range frames {
			sum := float32(0)
			for _, ch := range channels {
				sum += ch[f]
			}
			dst[f] = sum * invChannels
		}
	}

	return dst, nil
}
