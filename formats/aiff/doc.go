// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files into audio sources.
//
// It wraps github.com/go-audio/aiff and accepts signed PCM at 8, 16, 24 and
// 32 bits. Readers that cannot seek are buffered into memory first, since
// the underlying decoder needs an io.ReadSeeker.
//
// # Errors
//
//   - ErrNotAiffFile: the input has no valid FORM/COMM header
//   - ErrUnsupportedBitDepth: the sample size is not 8, 16, 24 or 32 bits
//   - ErrUnsupportedAiffLayout: no usable format description
package aiff
