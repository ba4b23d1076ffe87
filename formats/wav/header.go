// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/wavkit/audio"
)

// HeaderSize is the size of the canonical WAV header.
const HeaderSize = 44

const (
	fmtChunkSize = 16
	formatPCM    = 1
)

// Header describes a canonical PCM WAV header. Chunk sizes, byte rate and
// block align are derived from the other fields.
type Header struct {
	SampleRate int
	Channels   int
	BitDepth   int // 8 or 16
	DataLength uint32
	// Order of every multi-byte integer in the header and payload.
	// nil means little-endian.
	Order binary.ByteOrder
}

func (h Header) byteOrder() binary.ByteOrder {
	if h.Order == nil {
		return binary.LittleEndian
	}
	return h.Order
}

// BigEndian reports whether the header uses big-endian integers.
func (h Header) BigEndian() bool { return h.byteOrder() == binary.BigEndian }

func (h Header) BytesPerSample() int { return h.BitDepth / 8 }
func (h Header) BlockAlign() int     { return h.Channels * h.BitDepth / 8 }
func (h Header) ByteRate() int       { return h.SampleRate * h.Channels * h.BitDepth / 8 }
func (h Header) ChunkSize() uint32   { return 36 + h.DataLength }

// Frames returns how many sample frames the payload holds.
func (h Header) Frames() int {
	if h.BlockAlign() == 0 {
		return 0
	}
	return int(h.DataLength) / h.BlockAlign()
}

func (h Header) validate() error {
	if h.BitDepth != 8 && h.BitDepth != 16 {
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, h.BitDepth)
	}
	if h.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", audio.ErrInvalidArgument, h.SampleRate)
	}
	if h.Channels < 1 || h.Channels > 0xFFFF {
		return fmt.Errorf("%w: channel count %d", audio.ErrInvalidArgument, h.Channels)
	}
	return nil
}

// MarshalBinary returns the 44 header bytes.
func (h Header) MarshalBinary() ([]byte, error) {
	if err := h.validate(); err != nil {
		return nil, err
	}

	order := h.byteOrder()
	header := make([]byte, HeaderSize)

	// RIFF header (12 bytes)
	copy(header[0:4], "RIFF")
	order.PutUint32(header[4:8], h.ChunkSize())
	copy(header[8:12], "WAVE")

	// fmt chunk (24 bytes)
	copy(header[12:16], "fmt ")
	order.PutUint32(header[16:20], fmtChunkSize)
	order.PutUint16(header[20:22], formatPCM)
	order.PutUint16(header[22:24], uint16(h.Channels))
	order.PutUint32(header[24:28], uint32(h.SampleRate))
	order.PutUint32(header[28:32], uint32(h.ByteRate()))
	order.PutUint16(header[32:34], uint16(h.BlockAlign()))
	order.PutUint16(header[34:36], uint16(h.BitDepth))

	// data chunk header (8 bytes)
	copy(header[36:40], "data")
	order.PutUint32(header[40:44], h.DataLength)

	return header, nil
}

// WriteTo writes the header to w.
func (h Header) WriteTo(w io.Writer) (int64, error) {
	header, err := h.MarshalBinary()
	if err != nil {
		return 0, err
	}

	n, err := w.Write(header)
	if err != nil {
		return int64(n), fmt.Errorf("%w", err)
	}
	return int64(n), nil
}

// WriteHeader writes a 44-byte header for length payload bytes.
// A nil order writes little-endian.
func WriteHeader(w io.Writer, length uint32, sampleRate, channels, bitDepth int, order binary.ByteOrder) error {
	h := Header{
		SampleRate: sampleRate,
		Channels:   channels,
		BitDepth:   bitDepth,
		DataLength: length,
		Order:      order,
	}

	_, err := h.WriteTo(w)
	return err
}

// ParseHeader reads and validates a canonical 44-byte header.
//
// The byte order is detected from the fmt chunk size, which is always 16 in
// a canonical header; a "RIFX" marker forces big-endian.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes, need %d", ErrTruncatedData, len(b), HeaderSize)
	}

	var order binary.ByteOrder
	switch {
	case bytes.Equal(b[0:4], []byte("RIFX")):
		order = binary.BigEndian
	case !bytes.Equal(b[0:4], []byte("RIFF")):
		return Header{}, ErrNotWavFile
	case binary.LittleEndian.Uint32(b[16:20]) == fmtChunkSize:
		order = binary.LittleEndian
	case binary.BigEndian.Uint32(b[16:20]) == fmtChunkSize:
		order = binary.BigEndian
	}

	if !bytes.Equal(b[8:12], []byte("WAVE")) {
		return Header{}, ErrNotWavFile
	}
	if !bytes.Equal(b[12:16], []byte("fmt ")) || order == nil || order.Uint32(b[16:20]) != fmtChunkSize {
		return Header{}, ErrUnsupportedWavLayout
	}
	if order.Uint16(b[20:22]) != formatPCM {
		return Header{}, fmt.Errorf("%w: audio format %d is not PCM", ErrUnsupportedWavLayout, order.Uint16(b[20:22]))
	}
	if !bytes.Equal(b[36:40], []byte("data")) {
		return Header{}, ErrUnsupportedWavChunks
	}

	h := Header{
		Channels:   int(order.Uint16(b[22:24])),
		SampleRate: int(order.Uint32(b[24:28])),
		BitDepth:   int(order.Uint16(b[34:36])),
		DataLength: order.Uint32(b[40:44]),
		Order:      order,
	}

	if h.BitDepth != 8 && h.BitDepth != 16 {
		return Header{}, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, h.BitDepth)
	}
	if h.Channels < 1 || h.SampleRate < 1 {
		return Header{}, fmt.Errorf("%w: %d channels at %d Hz", ErrCorruptContainer, h.Channels, h.SampleRate)
	}

	byteRate := order.Uint32(b[28:32])
	blockAlign := order.Uint16(b[32:34])
	if int(byteRate) != h.ByteRate() || int(blockAlign) != h.BlockAlign() {
		return Header{}, fmt.Errorf("%w: byte rate %d / block align %d do not match the format",
			ErrCorruptContainer, byteRate, blockAlign)
	}

	if riffSize := order.Uint32(b[4:8]); uint64(riffSize) < 36+uint64(h.DataLength) {
		return Header{}, fmt.Errorf("%w: RIFF size %d is smaller than the data chunk", ErrCorruptContainer, riffSize)
	}

	return h, nil
}
