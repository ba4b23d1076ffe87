// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/ik5/wavkit/audio"
	"github.com/ik5/wavkit/utils"
)

// samples converted per write
const chunkSize = 8192

// Write quantizes interleaved samples and writes a complete WAV stream to w.
// h.DataLength is ignored and derived from len(samples). The sample count
// must be a multiple of h.Channels.
func Write(w io.Writer, samples []float32, h Header) error {
	if err := h.validate(); err != nil {
		return err
	}
	if len(samples)%h.Channels != 0 {
		return fmt.Errorf("%w: %d samples do not fill %d-channel frames",
			audio.ErrInvalidArgument, len(samples), h.Channels)
	}

	dataSize := uint64(len(samples)) * uint64(h.BytesPerSample())
	if dataSize > math.MaxUint32-36 {
		return fmt.Errorf("%w: %d bytes of PCM data do not fit a WAV file", audio.ErrInvalidArgument, dataSize)
	}
	h.DataLength = uint32(dataSize)

	if _, err := h.WriteTo(w); err != nil {
		return err
	}

	if len(samples) == 0 {
		return nil
	}

	order := h.byteOrder()
	bps := h.BytesPerSample()
	buf := make([]byte, min(len(samples), chunkSize)*bps)

	for i := 0; i < len(samples); i += chunkSize {
		chunk := samples[i:min(i+chunkSize, len(samples))]
		buf = buf[:len(chunk)*bps]

		if bps == 1 {
			for j, s := range chunk {
				buf[j] = utils.FloatToUint8(s)
			}
		} else {
			for j, s := range chunk {
				order.PutUint16(buf[j*2:j*2+2], uint16(utils.FloatToInt16(s)))
			}
		}

		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

// Encode builds a little-endian WAV file from interleaved samples.
func Encode(samples []float32, channels, sampleRate, bitDepth int) ([]byte, error) {
	return EncodeOrder(samples, channels, sampleRate, bitDepth, binary.LittleEndian)
}

// EncodeOrder is Encode with an explicit byte order.
func EncodeOrder(samples []float32, channels, sampleRate, bitDepth int, order binary.ByteOrder) ([]byte, error) {
	h := Header{
		SampleRate: sampleRate,
		Channels:   channels,
		BitDepth:   bitDepth,
		Order:      order,
	}

	out := bytes.NewBuffer(make([]byte, 0, HeaderSize+len(samples)*max(bitDepth/8, 1)))
	if err := Write(out, samples, h); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// EncodeClip interleaves the channels of c and encodes them at c.SampleRate.
func EncodeClip(c audio.Clip, bitDepth int, order binary.ByteOrder) ([]byte, error) {
	if c.NumChannels() == 0 {
		return nil, fmt.Errorf("%w: clip has no channels", audio.ErrInvalidArgument)
	}

	return EncodeOrder(audio.Interleave(c.Channels), c.NumChannels(), c.SampleRate, bitDepth, order)
}
