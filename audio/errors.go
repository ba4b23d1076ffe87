// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize  = errors.New("dst size must be multiple of channels")
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNoProgress is returned by ReadAll when a source keeps returning
	// zero samples without an error.
	ErrNoProgress = errors.New("source returned no samples")
)
