// Package audio decodes the narration service's compact sample format into
// playback-ready floating samples.
package audio

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"time"
)

// DefaultSampleRate is the narration service's fixed output rate.
const DefaultSampleRate = 24000

// Clip is decoded audio: per-channel float32 samples in [-1,1].
type Clip struct {
	SampleRate int
	Channels   [][]float32
}

// Frames is the number of samples per channel.
func (c *Clip) Frames() int {
	if len(c.Channels) == 0 {
		return 0
	}
	return len(c.Channels[0])
}

// Duration is the clip's playback length.
func (c *Clip) Duration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	return time.Duration(c.Frames()) * time.Second / time.Duration(c.SampleRate)
}

// DecodeBase64 decodes the wire form into raw PCM bytes.
func DecodeBase64(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode audio payload: %w", err)
	}
	return b, nil
}

// DecodePCM16 converts little-endian signed 16-bit PCM into float samples
// in [-1,1]. Each sample is divided by exactly 32768.0; channels are
// interleaved in the input.
func DecodePCM16(data []byte, sampleRate, channels int) (*Clip, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("invalid channel count %d", channels)
	}
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("pcm16 payload has odd length %d", len(data))
	}
	samples := len(data) / 2
	if samples%channels != 0 {
		return nil, fmt.Errorf("pcm16 payload of %d samples not divisible by %d channels", samples, channels)
	}
	frames := samples / channels

	clip := &Clip{SampleRate: sampleRate, Channels: make([][]float32, channels)}
	for ch := range clip.Channels {
		clip.Channels[ch] = make([]float32, frames)
	}
	for i := 0; i < samples; i++ {
		v := int16(binary.LittleEndian.Uint16(data[i*2:]))
		clip.Channels[i%channels][i/channels] = float32(v) / 32768.0
	}
	return clip, nil
}
