// SPDX-License-Identifier: EPL-2.0

package config_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ik5/wavkit/internal/config"
)

func TestLoadFromReader_Full(t *testing.T) {
	t.Parallel()
	yaml := `
capture:
  channels: 2
  sample_rate: 44100
output:
  sample_rate: 16000
  bit_depth: 8
  byte_order: big
  per_channel: true
log:
  level: debug
  format: json
`
	cfg, err := config.LoadFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}

	if cfg.Capture.Channels != 2 || cfg.Capture.SampleRate != 44100 {
		t.Errorf("capture = %+v", cfg.Capture)
	}
	if cfg.Output.SampleRate != 16000 || cfg.Output.BitDepth != 8 || !cfg.Output.PerChannel {
		t.Errorf("output = %+v", cfg.Output)
	}
	if cfg.Output.ByteOrder.Binary() != binary.BigEndian {
		t.Error("byte_order big should map to binary.BigEndian")
	}
	if cfg.Log.Level != config.LogDebug || cfg.Log.Format != config.FormatJSON {
		t.Errorf("log = %+v", cfg.Log)
	}

	opts := cfg.ExportOptions()
	if opts.OutputRate != 16000 || opts.BitDepth != 8 || opts.Order != binary.BigEndian {
		t.Errorf("ExportOptions() = %+v", opts)
	}

	sc := cfg.SessionConfig()
	if sc.Channels != 2 || sc.SampleRate != 44100 || sc.Export != opts {
		t.Errorf("SessionConfig() = %+v", sc)
	}
}

func TestLoadFromReader_Defaults(t *testing.T) {
	t.Parallel()

	for _, doc := range []string{"", "capture:\n  channels: 1\n"} {
		cfg, err := config.LoadFromReader(strings.NewReader(doc))
		if err != nil {
			t.Fatalf("LoadFromReader(%q): %v", doc, err)
		}

		if *cfg != *config.Default() {
			t.Errorf("LoadFromReader(%q) = %+v, want defaults %+v", doc, cfg, config.Default())
		}
	}

	def := config.Default()
	if def.Capture.SampleRate != 48000 || def.Output.BitDepth != 16 || def.Output.ByteOrder != config.LittleEndian {
		t.Errorf("Default() = %+v", def)
	}
	if def.Output.SampleRate != 0 {
		t.Error("output sample rate should default to the capture rate (0)")
	}
}

func TestLoadFromReader_UnknownField(t *testing.T) {
	t.Parallel()
	yaml := `
output:
  bitdepth: 16
`
	if _, err := config.LoadFromReader(strings.NewReader(yaml)); err == nil {
		t.Fatal("expected error for unknown field, got nil")
	}
}

func TestValidate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
		want []string
	}{
		{
			name: "bit depth",
			yaml: "output:\n  bit_depth: 24\n",
			want: []string{"output.bit_depth 24"},
		},
		{
			name: "byte order",
			yaml: "output:\n  byte_order: middle\n",
			want: []string{"output.byte_order \"middle\""},
		},
		{
			name: "rates",
			yaml: "capture:\n  sample_rate: 1\noutput:\n  sample_rate: -5\n",
			want: []string{"capture.sample_rate 1", "output.sample_rate -5"},
		},
		{
			name: "channels and log",
			yaml: "capture:\n  channels: -1\nlog:\n  level: loud\n  format: xml\n",
			want: []string{"capture.channels -1", "log.level \"loud\"", "log.format \"xml\""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.LoadFromReader(strings.NewReader(tt.yaml))
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			for _, w := range tt.want {
				if !strings.Contains(err.Error(), w) {
					t.Errorf("error should mention %q, got: %v", w, err)
				}
			}
		})
	}
}

func TestLoad_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "wavtool.yaml")
	if err := os.WriteFile(path, []byte("capture:\n  channels: 4\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Capture.Channels != 4 {
		t.Errorf("channels = %d, want 4", cfg.Capture.Channels)
	}

	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
