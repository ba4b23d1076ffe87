// SPDX-License-Identifier: EPL-2.0

// Package audio provides the buffer-level audio primitives.
//
// This package contains the core building blocks:
//   - Concat for accumulating capture chunks
//   - Interleave and Deinterleave for channel merging and splitting
//   - Resample for linear-interpolation sample rate conversion
//   - MixDown and Level for the volume meter
//   - Source, Decoder and Registry for pluggable container decoding
//
// # Sample Format
//
// Audio samples are represented as float32 in the range [-1.0, 1.0]:
//   - 0.0 represents silence
//   - 1.0 represents maximum positive amplitude
//   - -1.0 represents maximum negative amplitude
//
// A channel buffer is a plain []float32. A Clip groups the channel buffers of
// one recording with their sample rate.
//
// # Resampling
//
// Resample converts one channel at a time:
//
//	out, err := audio.Resample(buf, 48000, 16000)
//
// The first output sample is the first input sample, the last output sample
// lands on the last input sample, and everything in between is linearly
// interpolated. Equal rates return the input unchanged.
//
// # Channel Layout
//
// Interleave lays channels out frame by frame ([L0 R0 L1 R1 ...]). The longest
// channel sets the frame count; shorter channels are zero padded.
//
//	stereo := audio.Interleave([][]float32{left, right})
//	channels, err := audio.Deinterleave(stereo, 2)
//
// # Volume Meter
//
// Level maps a short window to 0..100:
//
//	level, err := audio.Level([][]float32{left, right})
//
// # Decoders
//
// Decoders turn container bytes into a Source. They are values the caller
// constructs and passes around, optionally through a Registry:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, _ := registry.ForPath("take.wav")
//	src, _ := decoder.Decode(file)
//	clip, err := audio.ReadAll(src)
//
// # Concurrency
//
// All functions are pure: they never keep references to their arguments and
// never modify them. Independent channels can be processed concurrently by
// the caller. Registry is safe for concurrent use.
//
// # Error Handling
//
// Invalid input is reported with ErrInvalidArgument, wrapped with context.
// Use errors.Is to test for it.
package audio
