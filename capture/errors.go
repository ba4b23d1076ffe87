// SPDX-License-Identifier: EPL-2.0

package capture

import "errors"

var (
	// ErrInvalidState is returned when an operation is not allowed in the
	// current session state.
	ErrInvalidState = errors.New("invalid session state")

	// ErrInvalidConfig wraps every configuration validation failure.
	ErrInvalidConfig = errors.New("invalid capture config")
)
