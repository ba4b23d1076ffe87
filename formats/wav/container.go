// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ik5/wavkit/audio"
	"github.com/ik5/wavkit/utils"
)

// Container is a parsed WAV file: its header and the raw PCM payload.
type Container struct {
	Header Header
	Data   []byte
}

// Decode parses and validates a canonical WAV file. Bytes after the data
// chunk are ignored.
func Decode(data []byte) (*Container, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	payload := data[HeaderSize:]
	if uint64(len(payload)) < uint64(h.DataLength) {
		return nil, fmt.Errorf("%w: header declares %d data bytes, %d present",
			ErrTruncatedData, h.DataLength, len(payload))
	}
	if int(h.DataLength)%h.BlockAlign() != 0 {
		return nil, fmt.Errorf("%w: %d data bytes is not a whole number of %d-byte frames",
			ErrCorruptContainer, h.DataLength, h.BlockAlign())
	}

	return &Container{
		Header: h,
		Data:   bytes.Clone(payload[:h.DataLength]),
	}, nil
}

// Samples returns the payload as interleaved normalized samples.
func (c *Container) Samples() []float32 {
	order := c.Header.byteOrder()

	if c.Header.BitDepth == 8 {
		out := make([]float32, len(c.Data))
		for i, b := range c.Data {
			out[i] = utils.Uint8ToFloat(b)
		}
		return out
	}

	out := make([]float32, len(c.Data)/2)
	for i := range out {
		out[i] = utils.Int16ToFloat(int16(order.Uint16(c.Data[2*i : 2*i+2])))
	}
	return out
}

// Clip returns the payload split into one buffer per channel.
func (c *Container) Clip() (audio.Clip, error) {
	channels, err := audio.Deinterleave(c.Samples(), c.Header.Channels)
	if err != nil {
		return audio.Clip{}, err
	}

	return audio.Clip{SampleRate: c.Header.SampleRate, Channels: channels}, nil
}

// Bytes serializes the container back to a WAV file.
func (c *Container) Bytes() ([]byte, error) {
	h := c.Header
	h.DataLength = uint32(len(c.Data))

	header, err := h.MarshalBinary()
	if err != nil {
		return nil, err
	}

	return append(header, c.Data...), nil
}

// Merge decodes every container, resamples all of their channels to
// outputRate and encodes them as one little-endian file. Channel counts add
// up: merging a mono and a stereo file gives three channels, in input order.
func Merge(containers [][]byte, outputRate, bitDepth int) ([]byte, error) {
	if bitDepth != 8 && bitDepth != 16 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
	if len(containers) == 0 {
		return nil, fmt.Errorf("%w: nothing to merge", audio.ErrInvalidArgument)
	}

	clips := make([]audio.Clip, 0, len(containers))
	for i, data := range containers {
		c, err := Decode(data)
		if err != nil {
			return nil, fmt.Errorf("container %d: %w", i, err)
		}

		clip, err := c.Clip()
		if err != nil {
			return nil, fmt.Errorf("container %d: %w", i, err)
		}
		clips = append(clips, clip)
	}

	return MergeClips(clips, outputRate, bitDepth)
}

// MergeClips resamples and concatenates the channels of clips, then encodes
// the result. Channels are resampled concurrently; the output keeps input
// order.
func MergeClips(clips []audio.Clip, outputRate, bitDepth int) ([]byte, error) {
	if bitDepth != 8 && bitDepth != 16 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
	if len(clips) == 0 {
		return nil, fmt.Errorf("%w: nothing to merge", audio.ErrInvalidArgument)
	}

	total := 0
	for _, clip := range clips {
		total += clip.NumChannels()
	}
	merged := make([][]float32, total)

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	slot := 0
	for i, clip := range clips {
		for c, samples := range clip.Channels {
			dst := slot
			slot++

			g.Go(func() error {
				resampled, err := audio.Resample(samples, clip.SampleRate, outputRate)
				if err != nil {
					return fmt.Errorf("clip %d channel %d: %w", i, c, err)
				}
				merged[dst] = resampled
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return EncodeClip(audio.Clip{SampleRate: outputRate, Channels: merged}, bitDepth, nil)
}

// Split decodes data and encodes each channel as its own mono file with the
// original sample rate, bit depth and byte order.
func Split(data []byte) ([][]byte, error) {
	c, err := Decode(data)
	if err != nil {
		return nil, err
	}

	clip, err := c.Clip()
	if err != nil {
		return nil, err
	}

	out := make([][]byte, len(clip.Channels))
	for i, ch := range clip.Channels {
		out[i], err = EncodeOrder(ch, 1, clip.SampleRate, c.Header.BitDepth, c.Header.Order)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", i, err)
		}
	}

	return out, nil
}
