// SPDX-License-Identifier: EPL-2.0

package wavkit

import (
	"github.com/ik5/wavkit/audio"
	"github.com/ik5/wavkit/utils"
)

// ResampleToMono drains src, averages its channels and resamples the result
// to targetRate. src is not closed.
//
//	src, _ := mp3.Decoder{}.Decode(f)
//	mono, err := wavkit.ResampleToMono(src, 16000)
func ResampleToMono(src audio.Source, targetRate int) ([]float32, error) {
	clip, err := audio.ReadAll(src)
	if err != nil {
		return nil, err
	}

	mono, err := audio.MixDown(clip.Channels)
	if err != nil {
		return nil, err
	}

	return audio.Resample(mono, clip.SampleRate, targetRate)
}

// ResampleToMono16 is ResampleToMono followed by 16-bit quantization.
func ResampleToMono16(src audio.Source, targetRate int) ([]int16, error) {
	mono, err := ResampleToMono(src, targetRate)
	if err != nil {
		return nil, err
	}

	pcm16 := make([]int16, len(mono))
	for i, x := range mono {
		pcm16[i] = utils.FloatToInt16(x)
	}

	return pcm16, nil
}
