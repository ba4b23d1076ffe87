// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Interleave merges per-channel buffers into one buffer laid out frame by
// frame: out[i*n+j] is sample i of channel j. The longest channel sets the
// frame count and shorter channels are zero padded. A single channel is
// returned unchanged.
func Interleave(channels [][]float32) []float32 {
	n := len(channels)
	switch n {
	case 0:
		return []float32{}
	case 1:
		return channels[0]
	}

	frames := 0
	for _, ch := range channels {
		frames = max(frames, len(ch))
	}

	out := make([]float32, frames*n)

	if n == 2 {
		left, right := channels[0], channels[1]
		for i := range frames {
			idx := i << 1
			if i < len(left) {
				out[idx] = left[i]
			}
			if i < len(right) {
				out[idx+1] = right[i]
			}
		}

		return out
	}

	for j, ch := range channels {
		// Samples past len(ch) stay zero.
		for i, s := range ch {
			out[i*n+j] = s
		}
	}

	return out
}

// Deinterleave splits an interleaved buffer into one buffer per channel.
// A trailing partial frame is zero padded. With a single channel the input
// is returned as the only buffer.
func Deinterleave(buf []float32, channels int) ([][]float32, error) {
	if channels < 1 {
		return nil, fmt.Errorf("%w: channel count %d", ErrInvalidArgument, channels)
	}
	if channels == 1 {
		return [][]float32{buf}, nil
	}

	frames := (len(buf) + channels - 1) / channels
	out := make([][]float32, channels)
	for j := range out {
		out[j] = make([]float32, frames)
	}

	for i, s := range buf {
		out[i%channels][i/channels] = s
	}

	return out, nil
}
