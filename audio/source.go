// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

const defaultBufSize = 4096

// maxEmptyReads bounds how many (0, nil) reads ReadAll tolerates in a row.
const maxEmptyReads = 64

// BufferSource streams a Clip as interleaved samples. Shorter channels are
// zero padded up to the longest one.
type BufferSource struct {
	clip  Clip
	pos   int // frames already read
	total int
}

// NewBufferSource wraps c. The channel buffers are read, never modified.
func NewBufferSource(c Clip) *BufferSource {
	return &BufferSource{
		clip:  c,
		total: c.Frames(),
	}
}

func (s *BufferSource) SampleRate() int { return s.clip.SampleRate }
func (s *BufferSource) Channels() int   { return s.clip.NumChannels() }
func (s *BufferSource) BufSize() int    { return defaultBufSize }
func (s *BufferSource) Close() error    { return nil }

// Reset rewinds the source to the first frame.
func (s *BufferSource) Reset() { s.pos = 0 }

func (s *BufferSource) ReadSamples(dst []float32) (int, error) {
	channels := s.Channels()
	if channels == 0 || s.pos >= s.total {
		return 0, io.EOF
	}
	if len(dst)%channels != 0 {
		return 0, ErrInvalidDstSize
	}

	frames := min(len(dst)/channels, s.total-s.pos)
	for f := range frames {
		idx := s.pos + f
		for c, ch := range s.clip.Channels {
			var v float32
			if idx < len(ch) {
				v = ch[idx]
			}
			dst[f*channels+c] = v
		}
	}

	s.pos += frames
	if s.pos >= s.total {
		return frames * channels, io.EOF
	}

	return frames * channels, nil
}

// ReadAll drains src into a Clip, one buffer per channel. It does not
// close src.
func ReadAll(src Source) (Clip, error) {
	channels := src.Channels()
	if channels < 1 {
		return Clip{}, fmt.Errorf("%w: source reports %d channels", ErrInvalidArgument, channels)
	}

	// Round the read size down to whole frames.
	size := src.BufSize()
	if size < channels {
		size = defaultBufSize
	}
	size -= size % channels
	if size == 0 {
		size = channels
	}

	var interleaved []float32
	buf := make([]float32, size)
	empty := 0

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			interleaved = append(interleaved, buf[:n]...)
			empty = 0
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return Clip{}, fmt.Errorf("%w", err)
		}

		if n == 0 {
			empty++
			if empty >= maxEmptyReads {
				return Clip{}, ErrNoProgress
			}
		}
	}

	if interleaved == nil {
		interleaved = []float32{}
	}

	bufs, err := Deinterleave(interleaved, channels)
	if err != nil {
		return Clip{}, err
	}

	return Clip{SampleRate: src.SampleRate(), Channels: bufs}, nil
}
