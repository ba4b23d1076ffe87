// SPDX-License-Identifier: EPL-2.0

package wavkit

import (
	"encoding/binary"
	"fmt"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ik5/wavkit/audio"
	"github.com/ik5/wavkit/formats/wav"
)

// DefaultBitDepth is used when ExportOptions.BitDepth is zero.
const DefaultBitDepth = 16

// ExportOptions controls the WAV output of the export functions. The zero
// value keeps the input rate and writes 16-bit little-endian PCM.
type ExportOptions struct {
	// OutputRate in Hz; 0 keeps the input rate.
	OutputRate int
	// BitDepth is 8 or 16; 0 means 16.
	BitDepth int
	// Order of the header and payload integers; nil means little-endian.
	Order binary.ByteOrder
}

func (o ExportOptions) resolve(sampleRate int) (ExportOptions, error) {
	if o.OutputRate == 0 {
		o.OutputRate = sampleRate
	}
	if o.BitDepth == 0 {
		o.BitDepth = DefaultBitDepth
	}
	if o.Order == nil {
		o.Order = binary.LittleEndian
	}

	if o.BitDepth != 8 && o.BitDepth != 16 {
		return o, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, o.BitDepth)
	}
	return o, nil
}

// Accumulate concatenates the chunks of one channel in arrival order.
func Accumulate(chunks ...[]float32) []float32 {
	return audio.Concat(chunks...)
}

// ExportSingleWav resamples every channel buffer from sampleRate to
// opts.OutputRate and encodes them, interleaved, as one WAV file. Shorter
// channels are padded with silence up to the longest one.
func ExportSingleWav(buffers [][]float32, sampleRate int, opts ExportOptions) ([]byte, error) {
	opts, err := opts.resolve(sampleRate)
	if err != nil {
		return nil, err
	}

	channels, err := resampleAll(buffers, sampleRate, opts.OutputRate)
	if err != nil {
		return nil, err
	}

	clip := audio.Clip{SampleRate: opts.OutputRate, Channels: channels}
	return wav.EncodeClip(clip, opts.BitDepth, opts.Order)
}

// ExportPerChannelWav is ExportSingleWav with one mono file per channel,
// in channel order.
func ExportPerChannelWav(buffers [][]float32, sampleRate int, opts ExportOptions) ([][]byte, error) {
	opts, err := opts.resolve(sampleRate)
	if err != nil {
		return nil, err
	}
	if len(buffers) == 0 {
		return nil, fmt.Errorf("%w: no channel buffers", ErrInvalidArgument)
	}

	out := make([][]byte, len(buffers))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, buf := range buffers {
		g.Go(func() error {
			resampled, err := audio.Resample(buf, sampleRate, opts.OutputRate)
			if err != nil {
				return fmt.Errorf("channel %d: %w", i, err)
			}

			data, err := wav.EncodeOrder(resampled, 1, opts.OutputRate, opts.BitDepth, opts.Order)
			if err != nil {
				return fmt.Errorf("channel %d: %w", i, err)
			}

			out[i] = data
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// DecodeWav parses a canonical WAV file into one buffer per channel.
func DecodeWav(data []byte) (audio.Clip, error) {
	c, err := wav.Decode(data)
	if err != nil {
		return audio.Clip{}, err
	}

	return c.Clip()
}

// DecodeWith decodes r with dec and drains the result into a Clip. Use it
// for containers DecodeWav does not read (MP3, Ogg Vorbis, AIFF, WAV files
// with extra chunks).
func DecodeWith(dec audio.Decoder, r io.Reader) (audio.Clip, error) {
	if dec == nil {
		return audio.Clip{}, fmt.Errorf("%w: nil decoder", ErrInvalidArgument)
	}

	src, err := dec.Decode(r)
	if err != nil {
		return audio.Clip{}, fmt.Errorf("decode: %w", err)
	}
	defer src.Close()

	return audio.ReadAll(src)
}

// MergeWav decodes every container, resamples all of their channels to
// outputRate and writes them as one little-endian file. Channel counts add
// up across inputs, in input order.
func MergeWav(containers [][]byte, outputRate, bitDepth int) ([]byte, error) {
	return wav.Merge(containers, outputRate, bitDepth)
}

// MergeClips is MergeWav for already decoded audio, such as the output of
// DecodeWith.
func MergeClips(clips []audio.Clip, outputRate, bitDepth int) ([]byte, error) {
	return wav.MergeClips(clips, outputRate, bitDepth)
}

// SplitWav writes each channel of a WAV file to its own mono file with the
// same rate, bit depth and byte order.
func SplitWav(data []byte) ([][]byte, error) {
	return wav.Split(data)
}

// VolumeLevel returns the 0-100 loudness of one analysis window.
func VolumeLevel(frame [][]float32) (int, error) {
	return audio.Level(frame)
}

// resampleAll converts every channel concurrently. Output order matches
// input order.
func resampleAll(buffers [][]float32, inputRate, outputRate int) ([][]float32, error) {
	if len(buffers) == 0 {
		return nil, fmt.Errorf("%w: no channel buffers", ErrInvalidArgument)
	}

	out := make([][]float32, len(buffers))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, buf := range buffers {
		g.Go(func() error {
			resampled, err := audio.Resample(buf, inputRate, outputRate)
			if err != nil {
				return fmt.Errorf("channel %d: %w", i, err)
			}
			out[i] = resampled
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
