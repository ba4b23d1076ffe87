// SPDX-License-Identifier: EPL-2.0

package wavkit

import (
	"github.com/ik5/wavkit/audio"
	"github.com/ik5/wavkit/formats/wav"
)

// Error taxonomy of the module, re-exported so callers of this package can
// match errors without importing the sub-packages.
var (
	ErrInvalidArgument     = audio.ErrInvalidArgument
	ErrUnsupportedBitDepth = wav.ErrUnsupportedBitDepth
	ErrCorruptContainer    = wav.ErrCorruptContainer
	ErrTruncatedData       = wav.ErrTruncatedData
	ErrNotWavFile          = wav.ErrNotWavFile
)
