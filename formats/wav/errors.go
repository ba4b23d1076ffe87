// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
)

var (
	// ErrCorruptContainer is the parent of every malformed-container error.
	ErrCorruptContainer = errors.New("corrupt WAV container")

	ErrNotWavFile           = fmt.Errorf("%w: not a WAV file", ErrCorruptContainer)
	ErrUnsupportedWavLayout = fmt.Errorf("%w: unsupported WAV layout", ErrCorruptContainer)
	ErrUnsupportedWavChunks = fmt.Errorf("%w: unsupported WAV chunks", ErrCorruptContainer)
	ErrTruncatedData        = fmt.Errorf("%w: truncated data", ErrCorruptContainer)

	ErrUnsupportedBitDepth = errors.New("unsupported bit depth")
)
