// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/wavkit/audio"
	"github.com/ik5/wavkit/utils"
)

// go-mp3 always decodes to interleaved stereo
const channels = 2

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	buf        []byte
	// odd trailing byte from the previous read
	carry    byte
	hasCarry bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / 2 }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	// 16-bit little-endian PCM, two bytes per sample
	need := len(dst) * 2
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	off := 0
	if s.hasCarry {
		s.buf[0] = s.carry
		s.hasCarry = false
		off = 1
	}

	n, err := s.dec.Read(s.buf[off:])
	n += off

	samples := n / 2
	for i := range samples {
		dst[i] = utils.Int16ToFloat(int16(binary.LittleEndian.Uint16(s.buf[2*i:])))
	}
	if n%2 == 1 {
		s.carry = s.buf[n-1]
		s.hasCarry = true
	}

	if err != nil {
		if err == io.EOF {
			return samples, io.EOF
		}
		return samples, fmt.Errorf("%w", err)
	}
	return samples, nil
}

// Decoder decodes MPEG-1/2 layer III streams through go-mp3. The source is
// always stereo; mono files are duplicated on both channels.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("decoding mp3: %w", err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, 8192),
	}, nil
}
