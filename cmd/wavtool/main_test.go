// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ik5/wavkit"
	"github.com/ik5/wavkit/audio"
	"github.com/ik5/wavkit/formats/wav"
	"github.com/ik5/wavkit/internal/audiotest"
)

// writeWav writes a 16-bit WAV of the given channels to dir/name.
func writeWav(t *testing.T, dir, name string, rate int, order binary.ByteOrder, channels ...[]float32) string {
	t.Helper()
	data, err := wav.EncodeClip(audio.Clip{SampleRate: rate, Channels: channels}, 16, order)
	if err != nil {
		t.Fatalf("EncodeClip() error = %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runTool(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func readClip(t *testing.T, path string) audio.Clip {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	clip, err := wavkit.DecodeWav(data)
	if err != nil {
		t.Fatalf("DecodeWav(%s) error = %v", path, err)
	}
	return clip
}

func TestRun_Usage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no command", nil, exitUsage},
		{"unknown command", []string{"play"}, exitUsage},
		{"bad global flag", []string{"-nope"}, exitUsage},
		{"info without files", []string{"info"}, exitUsage},
		{"convert one arg", []string{"convert", "in.wav"}, exitUsage},
		{"merge without output", []string{"merge", "a.wav"}, exitUsage},
		{"missing config", []string{"-config", "/does/not/exist.yaml", "info", "x.wav"}, exitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if code, _, _ := runTool(t, tt.args...); code != tt.want {
				t.Errorf("exit code = %d, want %d", code, tt.want)
			}
		})
	}
}

func TestRun_Info(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	le := writeWav(t, dir, "le.wav", 8000, binary.LittleEndian, audiotest.Constant(800, 0.5), audiotest.Constant(800, -0.5))
	be := writeWav(t, dir, "be.wav", 16000, binary.BigEndian, audiotest.Constant(1600, 0.5))

	code, out, errOut := runTool(t, "info", le, be)
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr = %s", code, errOut)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), out)
	}
	if want := "le.wav: 8000 Hz, 2 channels, 800 frames, 100ms, 16-bit little-endian"; !strings.HasSuffix(lines[0], want) {
		t.Errorf("line 0 = %q, want suffix %q", lines[0], want)
	}
	if want := "be.wav: 16000 Hz, 1 channels, 1600 frames, 100ms, 16-bit big-endian"; !strings.HasSuffix(lines[1], want) {
		t.Errorf("line 1 = %q, want suffix %q", lines[1], want)
	}
}

func TestRun_InfoErrors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	notWav := filepath.Join(dir, "text.wav")
	if err := os.WriteFile(notWav, []byte("definitely not audio, just some text"), 0o644); err != nil {
		t.Fatal(err)
	}
	unknown := filepath.Join(dir, "song.flac")
	if err := os.WriteFile(unknown, []byte("fLaC"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{notWav, unknown, filepath.Join(dir, "missing.wav")} {
		code, _, errOut := runTool(t, "info", path)
		if code != exitError {
			t.Errorf("%s: exit code = %d, want %d", path, code, exitError)
		}
		if !strings.Contains(errOut, "command failed") {
			t.Errorf("%s: stderr = %q, want a logged failure", path, errOut)
		}
	}
}

func TestRun_Convert(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	in := writeWav(t, dir, "in.wav", 48000, binary.LittleEndian,
		audiotest.Sine(4800, 48000, 440, 0.5), audiotest.Sine(4800, 48000, 880, 0.5))

	tests := []struct {
		name       string
		args       []string
		wantRate   int
		wantCh     int
		wantFrames int
		wantBits   int
		wantBE     bool
	}{
		{"keep rate", nil, 48000, 2, 4800, 16, false},
		{"downsample", []string{"-rate", "16000"}, 16000, 2, 1600, 16, false},
		{"8-bit big-endian", []string{"-bits", "8", "-order", "big"}, 48000, 2, 4800, 8, true},
		{"mono", []string{"-mono", "-rate", "8000"}, 8000, 1, 800, 16, false},
	}

	for i, tt := range tests {
		out := filepath.Join(dir, "out"+string(rune('a'+i))+".wav")
		args := append([]string{"convert"}, tt.args...)
		args = append(args, in, out)

		code, stdout, errOut := runTool(t, args...)
		if code != exitOK {
			t.Fatalf("%s: exit code = %d, stderr = %s", tt.name, code, errOut)
		}
		if !strings.Contains(stdout, "wrote "+out) {
			t.Errorf("%s: stdout = %q", tt.name, stdout)
		}

		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}
		c, err := wav.Decode(data)
		if err != nil {
			t.Fatalf("%s: Decode() error = %v", tt.name, err)
		}
		h := c.Header
		if h.SampleRate != tt.wantRate || h.Channels != tt.wantCh || h.Frames() != tt.wantFrames ||
			h.BitDepth != tt.wantBits || h.BigEndian() != tt.wantBE {
			t.Errorf("%s: header = %+v", tt.name, h)
		}
	}

	if code, _, _ := runTool(t, "convert", "-order", "middle", in, filepath.Join(dir, "x.wav")); code != exitError {
		t.Errorf("bad byte order: exit code = %d, want %d", code, exitError)
	}
	if code, _, _ := runTool(t, "convert", "-bits", "24", in, filepath.Join(dir, "y.wav")); code != exitError {
		t.Errorf("bad bit depth: exit code = %d, want %d", code, exitError)
	}
}

func TestRun_MergeAndSplit(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	a := writeWav(t, dir, "a.wav", 8000, binary.LittleEndian, audiotest.Constant(80, 0.25))
	b := writeWav(t, dir, "b.wav", 16000, binary.BigEndian, audiotest.Constant(160, -0.25), audiotest.Constant(160, 0.5))
	merged := filepath.Join(dir, "merged.wav")

	code, _, errOut := runTool(t, "merge", "-o", merged, a, b)
	if code != exitOK {
		t.Fatalf("merge exit code = %d, stderr = %s", code, errOut)
	}

	clip := readClip(t, merged)
	if clip.SampleRate != 8000 || clip.NumChannels() != 3 || clip.Frames() != 80 {
		t.Errorf("merged = %d Hz, %d ch, %d frames", clip.SampleRate, clip.NumChannels(), clip.Frames())
	}

	code, stdout, errOut := runTool(t, "split", merged, filepath.Join(dir, "part"))
	if code != exitOK {
		t.Fatalf("split exit code = %d, stderr = %s", code, errOut)
	}
	if n := strings.Count(stdout, "wrote"); n != 3 {
		t.Errorf("split wrote %d files, want 3", n)
	}

	for i, want := range []float32{0.25, -0.25, 0.5} {
		part := readClip(t, filepath.Join(dir, "part_ch"+string(rune('0'+i))+".wav"))
		if part.NumChannels() != 1 || part.Frames() != 80 {
			t.Fatalf("part %d = %d ch, %d frames", i, part.NumChannels(), part.Frames())
		}
		if got := part.Channels[0][40]; got < want-0.001 || got > want+0.001 {
			t.Errorf("part %d sample = %v, want %v", i, got, want)
		}
	}
}

func TestRun_Level(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	loud := audiotest.Constant(800, 1)
	quiet := audiotest.Constant(800, 0.01)
	in := writeWav(t, dir, "level.wav", 8000, binary.LittleEndian, audio.Concat(quiet, loud))

	code, out, errOut := runTool(t, "level", in)
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr = %s", code, errOut)
	}

	want := "0s\t3\n100ms\t100\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestRun_Record(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	in := writeWav(t, dir, "take.wav", 16000, binary.LittleEndian,
		audiotest.Sine(1605, 16000, 440, 0.5), audiotest.Sine(1605, 16000, 220, 0.5))

	cfgPath := filepath.Join(dir, "wavkit.yaml")
	cfg := "output:\n  sample_rate: 8000\nlog:\n  level: debug\n  format: json\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "rec.wav")
	code, _, errOut := runTool(t, "-config", cfgPath, "record", in, out)
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr = %s", code, errOut)
	}
	if !strings.Contains(errOut, `"msg":"exported recording"`) {
		t.Errorf("stderr lacks the JSON export entry: %s", errOut)
	}

	clip := readClip(t, out)
	// round(1605 * 8000 / 16000)
	if clip.SampleRate != 8000 || clip.NumChannels() != 2 || clip.Frames() != 803 {
		t.Errorf("recording = %d Hz, %d ch, %d frames", clip.SampleRate, clip.NumChannels(), clip.Frames())
	}

	code, _, errOut = runTool(t, "record", "-per-channel", in, filepath.Join(dir, "rec2.wav"))
	if code != exitOK {
		t.Fatalf("per-channel exit code = %d, stderr = %s", code, errOut)
	}
	for i := range 2 {
		part := readClip(t, filepath.Join(dir, "rec2_ch"+string(rune('0'+i))+".wav"))
		if part.SampleRate != 16000 || part.Frames() != 1605 {
			t.Errorf("channel %d = %d Hz, %d frames", i, part.SampleRate, part.Frames())
		}
	}
}

func TestChannelPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		base string
		n    int
		want string
	}{
		{"out.wav", 0, "out_ch0.wav"},
		{"dir/take.WAV", 3, "dir/take_ch3.wav"},
		{"noext", 1, "noext_ch1.wav"},
	}
	for _, tt := range tests {
		if got := channelPath(tt.base, tt.n); got != tt.want {
			t.Errorf("channelPath(%q, %d) = %q, want %q", tt.base, tt.n, got, tt.want)
		}
	}
}

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	reg := newRegistry()
	for _, path := range []string{"a.wav", "b.MP3", "c.ogg", "d.aif", "e.aiff"} {
		if _, ok := reg.ForPath(path); !ok {
			t.Errorf("ForPath(%q) found no decoder", path)
		}
	}
	if _, ok := reg.ForPath("f.flac"); ok {
		t.Error("ForPath(flac) found a decoder")
	}
}
