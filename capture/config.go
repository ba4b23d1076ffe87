// SPDX-License-Identifier: EPL-2.0

package capture

import (
	"errors"
	"fmt"

	"github.com/ik5/wavkit"
)

// Config describes what the capture source delivers and how a session
// exports it. Every field except Export is required.
type Config struct {
	// Channels delivered by each capture callback.
	Channels int
	// SampleRate of the captured chunks, in Hz.
	SampleRate int
	// Export settings; the zero value keeps the capture rate and writes
	// 16-bit little-endian PCM.
	Export wavkit.ExportOptions
}

// Validate returns an error wrapping ErrInvalidConfig that lists every
// invalid field, or nil.
func (c Config) Validate() error {
	var errs []error

	if c.Channels < 1 || c.Channels > 0xFFFF {
		errs = append(errs, fmt.Errorf("channels %d is out of range [1, 65535]", c.Channels))
	}
	if c.SampleRate <= 1 {
		errs = append(errs, fmt.Errorf("sample rate %d must be greater than 1", c.SampleRate))
	}
	if r := c.Export.OutputRate; r != 0 && r <= 1 {
		errs = append(errs, fmt.Errorf("output rate %d must be 0 or greater than 1", r))
	}
	if d := c.Export.BitDepth; d != 0 && d != 8 && d != 16 {
		errs = append(errs, fmt.Errorf("bit depth %d: %w", d, wavkit.ErrUnsupportedBitDepth))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}
