// SPDX-License-Identifier: EPL-2.0

package mp3_test

import (
	"fmt"
	"log"
	"os"

	"github.com/ik5/wavkit/audio"
	"github.com/ik5/wavkit/formats/mp3"
	"github.com/ik5/wavkit/formats/wav"
)

// ExampleDecoder_Decode shows how to decode an MP3 file.
func ExampleDecoder_Decode() {
	f, err := os.Open("input.mp3")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	src, err := mp3.Decoder{}.Decode(f)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Decoded MP3: %d Hz, %d channels\n", src.SampleRate(), src.Channels())
}

// ExampleDecoder_Decode_convertToWav converts an MP3 file to 16 kHz mono WAV.
func ExampleDecoder_Decode_convertToWav() {
	f, err := os.Open("input.mp3")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	src, err := mp3.Decoder{}.Decode(f)
	if err != nil {
		log.Fatal(err)
	}

	clip, err := audio.ReadAll(src)
	if err != nil {
		log.Fatal(err)
	}

	mono, err := audio.MixDown(clip.Channels)
	if err != nil {
		log.Fatal(err)
	}

	resampled, err := audio.Resample(mono, clip.SampleRate, 16000)
	if err != nil {
		log.Fatal(err)
	}

	data, err := wav.Encode(resampled, 1, 16000, 16)
	if err != nil {
		log.Fatal(err)
	}

	if err := os.WriteFile("output.wav", data, 0o644); err != nil {
		log.Fatal(err)
	}
}
