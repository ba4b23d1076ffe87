// SPDX-License-Identifier: EPL-2.0

// Package utils holds the PCM quantizer and small numeric helpers shared by
// the audio and format packages.
//
// 16-bit PCM is signed and asymmetric: negative samples scale by 32768,
// positive ones by 32767. 8-bit PCM is unsigned with 128 as silence.
package utils
