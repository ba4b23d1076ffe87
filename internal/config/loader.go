// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path and returns a validated
// [Config] with defaults applied.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r, applies defaults and
// validates the result. Unknown keys are rejected. An empty document yields
// the defaults.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}

	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Capture.Channels < 1 || cfg.Capture.Channels > 0xFFFF {
		errs = append(errs, fmt.Errorf("capture.channels %d is out of range [1, 65535]", cfg.Capture.Channels))
	}
	if cfg.Capture.SampleRate <= 1 {
		errs = append(errs, fmt.Errorf("capture.sample_rate %d must be greater than 1", cfg.Capture.SampleRate))
	}

	if cfg.Output.SampleRate != 0 && cfg.Output.SampleRate <= 1 {
		errs = append(errs, fmt.Errorf("output.sample_rate %d must be 0 or greater than 1", cfg.Output.SampleRate))
	}
	if cfg.Output.BitDepth != 8 && cfg.Output.BitDepth != 16 {
		errs = append(errs, fmt.Errorf("output.bit_depth %d is invalid; valid values: 8, 16", cfg.Output.BitDepth))
	}
	if !cfg.Output.ByteOrder.IsValid() {
		errs = append(errs, fmt.Errorf("output.byte_order %q is invalid; valid values: little, big", cfg.Output.ByteOrder))
	}

	if !cfg.Log.Level.IsValid() {
		errs = append(errs, fmt.Errorf("log.level %q is invalid; valid values: debug, info, warn, error", cfg.Log.Level))
	}
	if !cfg.Log.Format.IsValid() {
		errs = append(errs, fmt.Errorf("log.format %q is invalid; valid values: json, console", cfg.Log.Format))
	}

	return errors.Join(errs...)
}
