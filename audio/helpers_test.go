// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

// stallSource never produces samples and never reports EOF.
type stallSource struct{}

func (stallSource) SampleRate() int                    { return 8000 }
func (stallSource) Channels() int                      { return 1 }
func (stallSource) BufSize() int                       { return 16 }
func (stallSource) Close() error                       { return nil }
func (stallSource) ReadSamples([]float32) (int, error) { return 0, nil }

var errBroken = errors.New("broken source")

// brokenSource fails on the first read.
type brokenSource struct{ stallSource }

func (brokenSource) ReadSamples([]float32) (int, error) { return 0, errBroken }
