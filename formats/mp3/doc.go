// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files into audio sources.
//
// Decoding is done by github.com/hajimehoshi/go-mp3, which always produces
// interleaved 16-bit stereo; mono files come out with the same signal on
// both channels. Samples are normalized with the same asymmetric scale the
// WAV encoder uses, so a decode and re-encode to 16-bit WAV is lossless.
//
//	src, err := mp3.Decoder{}.Decode(f)
//	clip, err := audio.ReadAll(src)
//
// Register the decoder with an audio.Registry under "mp3" to have it picked
// by file extension.
package mp3
