package ui

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SoundType identifies a sound effect.
type SoundType int

const (
	SoundMove SoundType = iota
	SoundCapture
	SoundInvalid
	SoundGameEnd
)

const sampleRate = 44100

// envelope shapes amplitude over progress in [0,1].
type envelope func(progress, seconds float64) float64

func percussive(_, seconds float64) float64 { return math.Exp(-seconds * 30) }
func fadeOut(progress, _ float64) float64   { return 1 - progress }
func swell(progress, _ float64) float64 {
	switch {
	case progress < 0.1:
		return progress / 0.1
	case progress > 0.7:
		return (1 - progress) / 0.3
	}
	return 1
}

// tone describes a synthesised effect: the partials are mixed with equal
// weight, then shaped by env.
type tone struct {
	partials []float64
	seconds  float64
	gain     float64
	env      envelope
	grit     bool // adds a little non-harmonic noise
}

var tones = map[SoundType]tone{
	SoundMove:    {partials: []float64{440}, seconds: 0.08, gain: 0.3, env: percussive, grit: true},
	SoundCapture: {partials: []float64{330}, seconds: 0.12, gain: 0.5, env: percussive, grit: true},
	SoundInvalid: {partials: []float64{150, 300}, seconds: 0.1, gain: 0.15, env: fadeOut},
	SoundGameEnd: {partials: []float64{261.63, 329.63, 392.00}, seconds: 0.4, gain: 0.5, env: swell},
}

// synth renders t as 16-bit little-endian stereo PCM.
func synth(t tone) []byte {
	n := int(sampleRate * t.seconds)
	pcm := make([]byte, n*4)
	for i := 0; i < n; i++ {
		secs := float64(i) / sampleRate
		var v float64
		for _, f := range t.partials {
			v += math.Sin(2 * math.Pi * f * secs)
		}
		v /= float64(len(t.partials))
		if t.grit {
			v += (math.Sin(float64(i)*0.3) + math.Sin(float64(i)*0.7)) * 0.3
		}
		s := int16(v * t.env(float64(i)/float64(n), secs) * t.gain * 32767)
		pcm[i*4], pcm[i*4+1] = byte(s), byte(s>>8)
		pcm[i*4+2], pcm[i*4+3] = byte(s), byte(s>>8)
	}
	return pcm
}

// AudioManager plays the effects through one ebiten audio context.
type AudioManager struct {
	context *audio.Context
	pcm     map[SoundType][]byte
	enabled bool
	volume  float64
}

// NewAudioManager renders all effects up front.
func NewAudioManager(enabled bool) *AudioManager {
	am := &AudioManager{
		context: audio.NewContext(sampleRate),
		pcm:     make(map[SoundType][]byte, len(tones)),
		enabled: enabled,
		volume:  0.5,
	}
	for s, t := range tones {
		am.pcm[s] = synth(t)
	}
	return am
}

// Play starts sound on its own player so effects can overlap.
func (am *AudioManager) Play(sound SoundType) {
	if !am.enabled {
		return
	}
	pcm, ok := am.pcm[sound]
	if !ok {
		return
	}
	p := am.context.NewPlayerFromBytes(pcm)
	p.SetVolume(am.volume)
	p.Play()
}

func (am *AudioManager) SetEnabled(enabled bool) { am.enabled = enabled }
func (am *AudioManager) IsEnabled() bool         { return am.enabled }
