// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files into audio sources.
//
// It wraps github.com/jfreymuth/oggvorbis. The decoder output is already
// floating point; values that overshoot [-1, 1] after synthesis are
// clamped. Reads always return whole frames, so a destination buffer
// shorter than one frame yields no samples.
//
//	src, err := vorbis.Decoder{}.Decode(f)
//	clip, err := audio.ReadAll(src)
package vorbis
