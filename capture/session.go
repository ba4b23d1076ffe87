// SPDX-License-Identifier: EPL-2.0

package capture

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/ik5/wavkit"
	"github.com/ik5/wavkit/audio"
	"github.com/ik5/wavkit/internal/observe"
)

// Session accumulates the chunks of one recording and exports them as WAV.
//
// Capture callbacks and export calls may come from different goroutines;
// every method is safe for concurrent use.
type Session struct {
	cfg     Config
	log     *zap.Logger
	metrics *observe.Metrics
	mp      metric.MeterProvider

	mu    sync.Mutex
	state State
	// chunks[c] holds the chunks of channel c in arrival order
	chunks  [][][]float32
	samples []int
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMeterProvider records session metrics through mp instead of the
// global provider. If its instruments cannot be created the session logs a
// warning and uses the global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(s *Session) { s.mp = mp }
}

// New returns an idle session for cfg.
func New(cfg Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		cfg: cfg,
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.mp != nil {
		m, err := observe.NewMetrics(s.mp)
		if err != nil {
			s.log.Warn("falling back to default metrics", zap.Error(err))
		}
		s.metrics = m
	}
	if s.metrics == nil {
		s.metrics = observe.DefaultMetrics()
	}

	s.log = s.log.With(zap.Int("channels", cfg.Channels), zap.Int("sample_rate", cfg.SampleRate))
	s.clear()

	return s, nil
}

// Config returns the session configuration.
func (s *Session) Config() Config { return s.cfg }

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

func (s *Session) clear() {
	s.chunks = make([][][]float32, s.cfg.Channels)
	s.samples = make([]int, s.cfg.Channels)
}

// transition moves to next if the current state is one of from. The
// caller holds s.mu.
func (s *Session) transition(next State, from ...State) error {
	if !slices.Contains(from, s.state) {
		return fmt.Errorf("%w: cannot go from %s to %s", ErrInvalidState, s.state, next)
	}

	ctx := context.Background()
	if s.state == Capturing && next != Capturing {
		s.metrics.ActiveSessions.Add(ctx, -1)
	} else if s.state != Capturing && next == Capturing {
		s.metrics.ActiveSessions.Add(ctx, 1)
	}

	s.log.Debug("session state changed",
		zap.Stringer("from", s.state),
		zap.Stringer("to", next),
	)
	s.state = next
	return nil
}

// Start begins a new recording from Idle or Stopped. Buffers of a previous
// recording are discarded.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.transition(Capturing, Idle, Stopped); err != nil {
		return err
	}
	s.clear()
	return nil
}

// Pause stops accepting chunks until Resume. Chunks delivered while paused
// are dropped.
func (s *Session) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.transition(Paused, Capturing)
}

// Resume continues a paused recording.
func (s *Session) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.transition(Capturing, Paused)
}

// Stop ends the recording. The buffers stay available for export until the
// next Start or Reset.
func (s *Session) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.transition(Stopped, Capturing, Paused)
}

// Reset discards all buffers and returns to Idle from any state.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.transition(Idle, Idle, Capturing, Paused, Stopped)
	s.clear()
}

// Accumulate appends a copy of chunk to channel. It fails with
// ErrInvalidState unless the session is capturing or paused; while paused
// the chunk is dropped.
func (s *Session) Accumulate(channel int, chunk []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.accumulate(channel, chunk)
}

func (s *Session) accumulate(channel int, chunk []float32) error {
	switch s.state {
	case Capturing:
	case Paused:
		return nil
	default:
		return fmt.Errorf("%w: cannot accumulate while %s", ErrInvalidState, s.state)
	}

	if channel < 0 || channel >= s.cfg.Channels {
		return fmt.Errorf("%w: channel %d of %d", wavkit.ErrInvalidArgument, channel, s.cfg.Channels)
	}
	if chunk == nil {
		return fmt.Errorf("%w: nil chunk", wavkit.ErrInvalidArgument)
	}
	if len(chunk) == 0 {
		return nil
	}

	// capture drivers reuse their buffers
	s.chunks[channel] = append(s.chunks[channel], slices.Clone(chunk))
	s.samples[channel] += len(chunk)
	s.metrics.RecordCapture(context.Background(), channel, len(chunk))

	return nil
}

// AccumulateFrame appends one capture callback's worth of audio, one chunk
// per channel, and returns its volume level (0-100). The level is computed
// while paused too, so a meter keeps moving.
func (s *Session) AccumulateFrame(frame [][]float32) (int, error) {
	if len(frame) != s.cfg.Channels {
		return 0, fmt.Errorf("%w: frame has %d channels, session has %d",
			wavkit.ErrInvalidArgument, len(frame), s.cfg.Channels)
	}

	level, err := wavkit.VolumeLevel(frame)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for c, chunk := range frame {
		if err := s.accumulate(c, chunk); err != nil {
			return 0, err
		}
	}

	return level, nil
}

// Elapsed returns the recorded duration, based on the longest channel.
func (s *Session) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.elapsed()
}

func (s *Session) elapsed() time.Duration {
	longest := 0
	if len(s.samples) > 0 {
		longest = slices.Max(s.samples)
	}
	return time.Duration(longest) * time.Second / time.Duration(s.cfg.SampleRate)
}

// Buffers returns one contiguous buffer per channel. The buffers are
// copies and may be modified by the caller.
func (s *Session) Buffers() [][]float32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.buffers()
}

func (s *Session) buffers() [][]float32 {
	out := make([][]float32, len(s.chunks))
	for c, chunks := range s.chunks {
		if len(chunks) == 1 {
			// Concat would return the stored chunk itself
			out[c] = slices.Clone(chunks[0])
			continue
		}
		out[c] = audio.Concat(chunks...)
	}
	return out
}

// exportable snapshots the buffers if the session may be exported. Exports
// are allowed once capture is paused or stopped.
func (s *Session) exportable() ([][]float32, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Paused && s.state != Stopped {
		return nil, 0, fmt.Errorf("%w: cannot export while %s", ErrInvalidState, s.state)
	}
	return s.buffers(), s.elapsed(), nil
}

// ExportSingle encodes the recording as one interleaved WAV file.
func (s *Session) ExportSingle(ctx context.Context) ([]byte, error) {
	buffers, elapsed, err := s.exportable()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	data, err := wavkit.ExportSingleWav(buffers, s.cfg.SampleRate, s.cfg.Export)
	s.metrics.RecordExport(ctx, observe.KindSingle, len(data), time.Since(start), err)
	if err != nil {
		s.log.Error("export failed", zap.String("kind", observe.KindSingle), zap.Error(err))
		return nil, fmt.Errorf("export: %w", err)
	}

	s.log.Info("exported recording",
		zap.String("kind", observe.KindSingle),
		zap.Duration("recorded", elapsed),
		zap.Int("bytes", len(data)),
		zap.Duration("took", time.Since(start)),
	)
	return data, nil
}

// ExportPerChannel encodes every channel of the recording as its own mono
// WAV file, in channel order.
func (s *Session) ExportPerChannel(ctx context.Context) ([][]byte, error) {
	buffers, elapsed, err := s.exportable()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	files, err := wavkit.ExportPerChannelWav(buffers, s.cfg.SampleRate, s.cfg.Export)

	size := 0
	for _, f := range files {
		size += len(f)
	}
	s.metrics.RecordExport(ctx, observe.KindPerChannel, size, time.Since(start), err)
	if err != nil {
		s.log.Error("export failed", zap.String("kind", observe.KindPerChannel), zap.Error(err))
		return nil, fmt.Errorf("export: %w", err)
	}

	s.log.Info("exported recording",
		zap.String("kind", observe.KindPerChannel),
		zap.Duration("recorded", elapsed),
		zap.Int("files", len(files)),
		zap.Int("bytes", size),
		zap.Duration("took", time.Since(start)),
	)
	return files, nil
}
