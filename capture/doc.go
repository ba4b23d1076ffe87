// SPDX-License-Identifier: EPL-2.0

// Package capture keeps the per-channel buffers of a live recording.
//
// A capture driver calls [Session.Accumulate] (or [Session.AccumulateFrame])
// from its callback with chunks of normalized samples. Chunks are copied,
// so the driver may reuse its buffers. Once the recording is paused or
// stopped, [Session.ExportSingle] and [Session.ExportPerChannel] encode the
// accumulated audio as WAV using the session's export options.
//
//	s, err := capture.New(capture.Config{Channels: 2, SampleRate: 48000},
//		capture.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	_ = s.Start()
//	// from the capture callback:
//	level, err := s.AccumulateFrame(frame)
//	// later:
//	_ = s.Stop()
//	data, err := s.ExportSingle(ctx)
//
// A Session is safe for concurrent use.
package capture
