// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes PCM WAV containers.
//
// Two readers are provided. Decode is a strict parser for the canonical
// 44-byte layout produced by this package: RIFF header, a 16-byte fmt chunk
// and the data chunk, with 8-bit unsigned or 16-bit signed samples. The
// byte order of the header and payload is detected, so big-endian files
// written with EncodeOrder decode as well. Decoder wraps
// github.com/go-audio/wav and accepts files with extra chunks and 24/32-bit
// PCM; it implements audio.Decoder for use in an audio.Registry.
//
// # Writing
//
//	data, err := wav.Encode(samples, channels, 16000, 16)
//
// Samples are interleaved floats in [-1, 1]. Values outside the range are
// clamped. 16-bit output scales negative values by 32768 and positive ones
// by 32767; 8-bit output is unsigned with 128 as silence. Write streams the
// same encoding to an io.Writer in fixed-size blocks.
//
// # Reading
//
//	c, err := wav.Decode(data)
//	clip, err := c.Clip()
//
// Malformed input returns an error wrapping ErrCorruptContainer. A bit
// depth other than 8 or 16 returns ErrUnsupportedBitDepth.
//
// # Merge and split
//
// Merge resamples every channel of several files to one rate and writes
// them side by side; channel counts add up. Split writes each channel of a
// file to its own mono file.
//
// # File Format
//
//	offset size  field
//	0      4     "RIFF" ("RIFX" is read as big-endian, never written)
//	4      4     36 + data length
//	8      4     "WAVE"
//	12     4     "fmt "
//	16     4     16
//	20     2     1 (PCM)
//	22     2     channels
//	24     4     sample rate
//	28     4     byte rate
//	32     2     block align
//	34     2     bits per sample
//	36     4     "data"
//	40     4     data length
package wav
