// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ik5/wavkit"
	"github.com/ik5/wavkit/audio"
	"github.com/ik5/wavkit/capture"
	"github.com/ik5/wavkit/formats/aiff"
	"github.com/ik5/wavkit/formats/mp3"
	"github.com/ik5/wavkit/formats/vorbis"
	"github.com/ik5/wavkit/formats/wav"
	"github.com/ik5/wavkit/internal/config"
	"github.com/ik5/wavkit/internal/observe"
)

var (
	errUsage         = errors.New("usage error")
	errUnknownFormat = errors.New("no decoder for format")
)

type command func(ctx context.Context, args []string) error

type app struct {
	cfg     *config.Config
	log     *zap.Logger
	metrics *observe.Metrics
	reg     *audio.Registry
	stdout  io.Writer
	stderr  io.Writer
}

func (a *app) commands() map[string]command {
	return map[string]command{
		"info":    a.info,
		"convert": a.convert,
		"merge":   a.merge,
		"split":   a.split,
		"level":   a.level,
		"record":  a.record,
	}
}

func newRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	return reg
}

func (a *app) flagSet(name, args string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.Usage = func() {
		fmt.Fprintf(a.stderr, "usage: wavtool %s [flags] %s\n", name, args)
		fs.PrintDefaults()
	}
	return fs
}

func isWav(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return true
	}
	return false
}

// load decodes the audio file at path. WAV files go through the strict
// container parser first, which keeps big-endian files readable, and fall
// back to the registered decoder for layouts it rejects.
func (a *app) load(path string) (audio.Clip, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return audio.Clip{}, err
	}

	if isWav(path) {
		clip, err := wavkit.DecodeWav(data)
		if err == nil {
			return clip, nil
		}
		if errors.Is(err, wav.ErrNotWavFile) || errors.Is(err, wav.ErrTruncatedData) {
			return audio.Clip{}, fmt.Errorf("%s: %w", path, err)
		}
		a.log.Debug("strict WAV parse failed, using tolerant decoder",
			zap.String("path", path), zap.Error(err))
	}

	dec, ok := a.reg.ForPath(path)
	if !ok {
		return audio.Clip{}, fmt.Errorf("%s: %w %q", path, errUnknownFormat, filepath.Ext(path))
	}

	clip, err := wavkit.DecodeWith(dec, bytes.NewReader(data))
	if err != nil {
		return audio.Clip{}, fmt.Errorf("%s: %w", path, err)
	}
	return clip, nil
}

func (a *app) write(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	a.log.Debug("wrote file", zap.String("path", path), zap.Int("bytes", len(data)))
	fmt.Fprintln(a.stdout, "wrote", path)
	return nil
}

// channelPath returns base_chN.wav for channel n of base.
func channelPath(base string, n int) string {
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%s_ch%d.wav", base, n)
}

func (a *app) info(_ context.Context, args []string) error {
	fs := a.flagSet("info", "file...")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}

	for _, path := range fs.Args() {
		clip, err := a.load(path)
		if err != nil {
			return err
		}

		fmt.Fprintf(a.stdout, "%s: %d Hz, %d channels, %d frames, %s",
			path, clip.SampleRate, clip.NumChannels(), clip.Frames(), clip.Duration())

		if isWav(path) {
			if hdr, err := readHeader(path); err == nil {
				order := "little-endian"
				if hdr.BigEndian() {
					order = "big-endian"
				}
				fmt.Fprintf(a.stdout, ", %d-bit %s", hdr.BitDepth, order)
			}
		}
		fmt.Fprintln(a.stdout)
	}
	return nil
}

func readHeader(path string) (wav.Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return wav.Header{}, err
	}
	defer f.Close()

	b := make([]byte, wav.HeaderSize)
	if _, err := io.ReadFull(f, b); err != nil {
		return wav.Header{}, err
	}
	return wav.ParseHeader(b)
}

// exportFlags registers the output flags shared by convert and merge,
// defaulting to the output section of the configuration.
func (a *app) exportFlags(fs *flag.FlagSet) (rate, bits *int, order *string) {
	rate = fs.Int("rate", a.cfg.Output.SampleRate, "output sample rate in Hz, 0 keeps the input rate")
	bits = fs.Int("bits", a.cfg.Output.BitDepth, "output bit depth, 8 or 16")
	order = fs.String("order", string(a.cfg.Output.ByteOrder), "output byte order, little or big")
	return rate, bits, order
}

func parseOrder(s string) (config.ByteOrder, error) {
	o := config.ByteOrder(s)
	if !o.IsValid() {
		return "", fmt.Errorf("%w: byte order %q", wavkit.ErrInvalidArgument, s)
	}
	return o, nil
}

func (a *app) convert(ctx context.Context, args []string) error {
	fs := a.flagSet("convert", "input output.wav")
	rate, bits, orderFlag := a.exportFlags(fs)
	mono := fs.Bool("mono", false, "mix all channels down to one")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return errUsage
	}
	order, err := parseOrder(*orderFlag)
	if err != nil {
		return err
	}

	in, out := fs.Arg(0), fs.Arg(1)
	clip, err := a.load(in)
	if err != nil {
		return err
	}

	opts := wavkit.ExportOptions{OutputRate: *rate, BitDepth: *bits, Order: order.Binary()}

	start := time.Now()
	var data []byte
	if *mono {
		target := *rate
		if target == 0 {
			target = clip.SampleRate
		}
		var samples []float32
		samples, err = wavkit.ResampleToMono(audio.NewBufferSource(clip), target)
		if err == nil {
			opts.OutputRate = 0
			data, err = wavkit.ExportSingleWav([][]float32{samples}, target, opts)
		}
	} else {
		data, err = wavkit.ExportSingleWav(clip.Channels, clip.SampleRate, opts)
	}
	a.metrics.RecordExport(ctx, observe.KindConvert, len(data), time.Since(start), err)
	if err != nil {
		return fmt.Errorf("convert %s: %w", in, err)
	}

	a.log.Info("converted",
		zap.String("input", in),
		zap.Int("input_rate", clip.SampleRate),
		zap.Int("channels", clip.NumChannels()),
		zap.Bool("mono", *mono),
		zap.Duration("took", time.Since(start)),
	)
	return a.write(out, data)
}

func (a *app) merge(ctx context.Context, args []string) error {
	fs := a.flagSet("merge", "-o output.wav input...")
	rate := fs.Int("rate", a.cfg.Output.SampleRate, "output sample rate in Hz, 0 uses the first input's rate")
	bits := fs.Int("bits", a.cfg.Output.BitDepth, "output bit depth, 8 or 16")
	out := fs.String("o", "", "output file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" || fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}

	clips := make([]audio.Clip, 0, fs.NArg())
	for _, path := range fs.Args() {
		clip, err := a.load(path)
		if err != nil {
			return err
		}
		clips = append(clips, clip)
	}

	outputRate := *rate
	if outputRate == 0 {
		outputRate = clips[0].SampleRate
	}

	start := time.Now()
	data, err := wavkit.MergeClips(clips, outputRate, *bits)
	a.metrics.RecordExport(ctx, observe.KindMerge, len(data), time.Since(start), err)
	if err != nil {
		return fmt.Errorf("merge: %w", err)
	}

	a.log.Info("merged", zap.Int("inputs", len(clips)), zap.Int("rate", outputRate))
	return a.write(*out, data)
}

func (a *app) split(ctx context.Context, args []string) error {
	fs := a.flagSet("split", "input.wav [output-base]")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		return errUsage
	}

	in := fs.Arg(0)
	base := in
	if fs.NArg() == 2 {
		base = fs.Arg(1)
	}

	data, err := os.ReadFile(in)
	if err != nil {
		return err
	}

	start := time.Now()
	parts, err := wavkit.SplitWav(data)
	size := 0
	for _, p := range parts {
		size += len(p)
	}
	a.metrics.RecordExport(ctx, observe.KindSplit, size, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("split %s: %w", in, err)
	}

	for i, p := range parts {
		if err := a.write(channelPath(base, i), p); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) level(ctx context.Context, args []string) error {
	fs := a.flagSet("level", "input")
	window := fs.Duration("window", 100*time.Millisecond, "analysis window")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}

	clip, err := a.load(fs.Arg(0))
	if err != nil {
		return err
	}

	size := int(window.Seconds() * float64(clip.SampleRate))
	if size < 1 {
		return fmt.Errorf("%w: window %s is shorter than one frame", wavkit.ErrInvalidArgument, *window)
	}

	for start := 0; start < clip.Frames(); start += size {
		if err := ctx.Err(); err != nil {
			return err
		}

		end := min(start+size, clip.Frames())
		frame := make([][]float32, clip.NumChannels())
		for c, ch := range clip.Channels {
			frame[c] = ch[start:end]
		}

		lvl, err := wavkit.VolumeLevel(frame)
		if err != nil {
			return err
		}

		offset := time.Duration(start) * time.Second / time.Duration(clip.SampleRate)
		fmt.Fprintf(a.stdout, "%s\t%d\n", offset, lvl)
	}
	return nil
}

// record feeds a file through a capture session in callback-sized frames,
// the way a live driver would, and exports what the session accumulated.
func (a *app) record(ctx context.Context, args []string) error {
	fs := a.flagSet("record", "input output.wav")
	frameDur := fs.Duration("frame", 10*time.Millisecond, "capture callback period")
	perChannel := fs.Bool("per-channel", a.cfg.Output.PerChannel, "write one mono file per channel")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return errUsage
	}

	in, out := fs.Arg(0), fs.Arg(1)
	clip, err := a.load(in)
	if err != nil {
		return err
	}

	cfg := a.cfg.SessionConfig()
	cfg.Channels = clip.NumChannels()
	cfg.SampleRate = clip.SampleRate

	s, err := capture.New(cfg, capture.WithLogger(a.log))
	if err != nil {
		return err
	}
	if err := s.Start(); err != nil {
		return err
	}

	size := max(1, int(frameDur.Seconds()*float64(clip.SampleRate)))
	peak := 0
	for start := 0; start < clip.Frames(); start += size {
		if err := ctx.Err(); err != nil {
			_ = s.Stop()
			return err
		}

		end := min(start+size, clip.Frames())
		frame := make([][]float32, clip.NumChannels())
		for c, ch := range clip.Channels {
			frame[c] = ch[start:end]
		}

		lvl, err := s.AccumulateFrame(frame)
		if err != nil {
			return err
		}
		peak = max(peak, lvl)
	}

	if err := s.Stop(); err != nil {
		return err
	}
	a.log.Info("recording stopped", zap.Duration("elapsed", s.Elapsed()), zap.Int("peak_level", peak))

	if *perChannel {
		files, err := s.ExportPerChannel(ctx)
		if err != nil {
			return err
		}
		for i, f := range files {
			if err := a.write(channelPath(out, i), f); err != nil {
				return err
			}
		}
		return nil
	}

	data, err := s.ExportSingle(ctx)
	if err != nil {
		return err
	}
	return a.write(out, data)
}
