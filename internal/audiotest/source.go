// SPDX-License-Identifier: EPL-2.0

package audiotest

import "io"

// Waveform returns the value of channel ch at frame i.
type Waveform func(i, ch int) float32

// Source generates interleaved frames from a Waveform. It satisfies
// audio.Source without importing the audio package, so the audio package's
// own tests can use it.
type Source struct {
	rate     int
	channels int
	frames   int
	pos      int
	bufSize  int
	wave     Waveform
}

// NewSource returns a source of frames frames per channel.
func NewSource(sampleRate, channels, frames int, wave Waveform) *Source {
	return &Source{rate: sampleRate, channels: channels, frames: frames, wave: wave}
}

// NewSineSource plays the same full-scale sine on every channel.
func NewSineSource(sampleRate, channels, frames int, frequency float64) *Source {
	return NewSource(sampleRate, channels, frames, func(i, _ int) float32 {
		return sineAt(i, sampleRate, frequency)
	})
}

// NewConstantSource holds every channel at v.
func NewConstantSource(sampleRate, channels, frames int, v float32) *Source {
	return NewSource(sampleRate, channels, frames, func(int, int) float32 { return v })
}

func (s *Source) SampleRate() int { return s.rate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) Close() error    { return nil }

// BufSize returns the size set by WithBufSize, or 4096 rounded down to
// whole frames.
func (s *Source) BufSize() int {
	if s.bufSize > 0 {
		return s.bufSize
	}
	return 4096 - 4096%max(s.channels, 1)
}

// WithBufSize makes BufSize report n, which need not be a whole number of
// frames.
func (s *Source) WithBufSize(n int) *Source {
	s.bufSize = n
	return s
}

// Reset rewinds to the first frame.
func (s *Source) Reset() { s.pos = 0 }

// ReadSamples fills dst with whole frames and reports io.EOF together with
// the last of them.
func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.pos >= s.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/s.channels, s.frames-s.pos)
	for f := range n {
		base := f * s.channels
		for ch := range s.channels {
			dst[base+ch] = s.wave(s.pos+f, ch)
		}
	}
	s.pos += n

	if s.pos >= s.frames {
		return n * s.channels, io.EOF
	}
	return n * s.channels, nil
}
