// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"slices"
	"testing"

	"github.com/ik5/wavkit/internal/audiotest"
)

func TestBufferSource_Metadata(t *testing.T) {
	t.Parallel()

	src := NewBufferSource(Clip{SampleRate: 22050, Channels: [][]float32{{0}, {0}, {0}}})

	if src.SampleRate() != 22050 {
		t.Errorf("SampleRate() = %d, want 22050", src.SampleRate())
	}
	if src.Channels() != 3 {
		t.Errorf("Channels() = %d, want 3", src.Channels())
	}
	if src.Close() != nil {
		t.Error("Close() returned an error")
	}
}

func TestBufferSource_InterleavesAndPads(t *testing.T) {
	t.Parallel()

	src := NewBufferSource(Clip{
		SampleRate: 8000,
		Channels:   [][]float32{{1, 2, 3}, {10, 20}},
	})

	buf := make([]float32, 4)
	n, err := src.ReadSamples(buf)
	if err != nil {
		t.Fatalf("first ReadSamples() error = %v", err)
	}
	if n != 4 || !slices.Equal(buf, []float32{1, 10, 2, 20}) {
		t.Errorf("first read = %v (n=%d), want [1 10 2 20]", buf[:n], n)
	}

	n, err = src.ReadSamples(buf)
	if err != io.EOF {
		t.Errorf("second ReadSamples() error = %v, want io.EOF", err)
	}
	if n != 2 || !slices.Equal(buf[:n], []float32{3, 0}) {
		t.Errorf("second read = %v (n=%d), want [3 0]", buf[:n], n)
	}

	n, err = src.ReadSamples(buf)
	if n != 0 || err != io.EOF {
		t.Errorf("read after end = (%d, %v), want (0, io.EOF)", n, err)
	}

	src.Reset()
	if n, _ := src.ReadSamples(buf); n != 4 {
		t.Errorf("read after Reset() n = %d, want 4", n)
	}
}

func TestBufferSource_MisalignedDst(t *testing.T) {
	t.Parallel()

	src := NewBufferSource(Clip{SampleRate: 8000, Channels: [][]float32{{1, 2}, {3, 4}}})

	if _, err := src.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestReadAll_RoundTripsBufferSource(t *testing.T) {
	t.Parallel()

	want := Clip{
		SampleRate: 16000,
		Channels:   [][]float32{audiotest.Sine(5000, 16000, 440, 0.5), audiotest.Sine(5000, 16000, 660, 0.25)},
	}

	got, err := ReadAll(NewBufferSource(want))
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	if got.SampleRate != want.SampleRate {
		t.Errorf("SampleRate = %d, want %d", got.SampleRate, want.SampleRate)
	}
	if got.NumChannels() != 2 {
		t.Fatalf("NumChannels() = %d, want 2", got.NumChannels())
	}
	for i := range want.Channels {
		if !slices.Equal(got.Channels[i], want.Channels[i]) {
			t.Errorf("channel %d differs after ReadAll()", i)
		}
	}
}

func TestReadAll_OddBufSize(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(8000, 3, 1000, 0.25).WithBufSize(100) // not a multiple of 3

	got, err := ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	if got.Frames() != 1000 {
		t.Errorf("Frames() = %d, want 1000", got.Frames())
	}
	for c, ch := range got.Channels {
		for i, s := range ch {
			if s != 0.25 {
				t.Fatalf("channel %d sample %d = %v, want 0.25", c, i, s)
			}
		}
	}
}

func TestReadAll_EmptySource(t *testing.T) {
	t.Parallel()

	got, err := ReadAll(audiotest.NewConstantSource(8000, 2, 0, 0))
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if got.NumChannels() != 2 || got.Frames() != 0 {
		t.Errorf("ReadAll() = %d channels, %d frames; want 2, 0", got.NumChannels(), got.Frames())
	}
}

func TestReadAll_Errors(t *testing.T) {
	t.Parallel()

	if _, err := ReadAll(stallSource{}); !errors.Is(err, ErrNoProgress) {
		t.Errorf("ReadAll(stall) error = %v, want ErrNoProgress", err)
	}
	if _, err := ReadAll(brokenSource{}); !errors.Is(err, errBroken) {
		t.Errorf("ReadAll(broken) error = %v, want errBroken", err)
	}
	if _, err := ReadAll(audiotest.NewConstantSource(8000, 0, 10, 0)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("ReadAll(0 channels) error = %v, want ErrInvalidArgument", err)
	}
}
