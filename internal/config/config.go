// SPDX-License-Identifier: EPL-2.0

// Package config loads the YAML configuration of the wavtool command and
// turns it into the settings the capture and export code take.
package config

import (
	"encoding/binary"

	"github.com/ik5/wavkit"
	"github.com/ik5/wavkit/capture"
)

// LogLevel is the minimum zap level to emit.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is one of the known levels.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// LogFormat selects the zap encoder.
type LogFormat string

const (
	FormatJSON    LogFormat = "json"
	FormatConsole LogFormat = "console"
)

func (f LogFormat) IsValid() bool { return f == FormatJSON || f == FormatConsole }

// ByteOrder of the WAV output.
type ByteOrder string

const (
	LittleEndian ByteOrder = "little"
	BigEndian    ByteOrder = "big"
)

func (o ByteOrder) IsValid() bool { return o == LittleEndian || o == BigEndian }

// Binary returns the encoding/binary order for o.
func (o ByteOrder) Binary() binary.ByteOrder {
	if o == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Config is the root configuration.
type Config struct {
	Capture CaptureConfig `yaml:"capture"`
	Output  OutputConfig  `yaml:"output"`
	Log     LogConfig     `yaml:"log"`
}

// CaptureConfig describes the audio the capture source delivers.
type CaptureConfig struct {
	Channels   int `yaml:"channels"`
	SampleRate int `yaml:"sample_rate"`
}

// OutputConfig describes the WAV files to produce. A zero SampleRate keeps
// the capture rate.
type OutputConfig struct {
	SampleRate int       `yaml:"sample_rate"`
	BitDepth   int       `yaml:"bit_depth"`
	ByteOrder  ByteOrder `yaml:"byte_order"`
	PerChannel bool      `yaml:"per_channel"`
}

type LogConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Capture.Channels == 0 {
		cfg.Capture.Channels = 1
	}
	if cfg.Capture.SampleRate == 0 {
		cfg.Capture.SampleRate = 48000
	}
	if cfg.Output.BitDepth == 0 {
		cfg.Output.BitDepth = wavkit.DefaultBitDepth
	}
	if cfg.Output.ByteOrder == "" {
		cfg.Output.ByteOrder = LittleEndian
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = LogInfo
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = FormatConsole
	}
}

// ExportOptions returns the export settings of the output section.
func (c *Config) ExportOptions() wavkit.ExportOptions {
	return wavkit.ExportOptions{
		OutputRate: c.Output.SampleRate,
		BitDepth:   c.Output.BitDepth,
		Order:      c.Output.ByteOrder.Binary(),
	}
}

// SessionConfig returns the recording session settings.
func (c *Config) SessionConfig() capture.Config {
	return capture.Config{
		Channels:   c.Capture.Channels,
		SampleRate: c.Capture.SampleRate,
		Export:     c.ExportOptions(),
	}
}
