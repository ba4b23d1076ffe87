// SPDX-License-Identifier: EPL-2.0

// Package wavkit turns captured multi-channel float audio into WAV files.
//
// Captured chunks are concatenated per channel, optionally resampled with
// linear interpolation, quantized to 8 or 16-bit PCM and written behind a
// canonical 44-byte header. The same building blocks split a WAV file into
// mono files and merge several files into one multi-channel file.
//
// # Quick Start
//
//	left := wavkit.Accumulate(chunksL...)
//	right := wavkit.Accumulate(chunksR...)
//
//	data, err := wavkit.ExportSingleWav([][]float32{left, right}, 48000,
//		wavkit.ExportOptions{OutputRate: 16000})
//
// The zero ExportOptions keeps the input rate and writes 16-bit
// little-endian PCM.
//
// # Decoding
//
// DecodeWav reads files in the canonical layout. Other containers are read
// through a decoder the caller supplies, so this package never picks one on
// its own:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//	reg.Register("mp3", mp3.Decoder{})
//	reg.Register("ogg", vorbis.Decoder{})
//	reg.Register("aiff", aiff.Decoder{})
//
//	dec, ok := reg.ForPath(name)
//	clip, err := wavkit.DecodeWith(dec, f)
//
// # Recording
//
// The capture package holds a recording session: it accumulates chunks from
// a capture callback, tracks elapsed time and exports through this package.
//
// # Subpackages
//
//   - utils: sample quantization
//   - audio: buffers, interleaving, resampling, mixdown and the volume meter
//   - formats/wav: header, encoder, strict parser, merge and split
//   - formats/mp3, formats/vorbis, formats/aiff: decoders for other inputs
//   - capture: recording session
//   - cmd/wavtool: command line front end for all of the above
//
// Errors from every layer wrap the sentinels re-exported here; match them
// with errors.Is.
package wavkit
