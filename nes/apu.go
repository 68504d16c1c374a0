package nes

import "math"

// APU models only the host-facing edges of the audio unit: every
// register read returns 0 and every register write is swallowed by the
// bus (see cpubus.go), with cycle-accurate channel synthesis left
// unimplemented. It still drives a cosmetic sample generator so a host
// renderer has something to stream to an audio device, rather than
// emitting silence.
type APU struct {
	out    chan float32
	sample int
}

const apuSampleRate = 44100

// NewAPU creates an APU stub with no audio sink attached.
func NewAPU() *APU {
	return &APU{}
}

// readStatus implements the $4015 APU status stub: always 0.
func (a *APU) readStatus() byte {
	return 0
}

// Step advances the cosmetic waveform generator by one CPU cycle and, if
// an output channel is attached, offers the next stereo sample pair.
func (a *APU) Step() {
	if a.out == nil {
		return
	}
	x := float32(math.Sin(2.0 * math.Pi * 440 * float64(a.sample) / float64(apuSampleRate)))
	select {
	case a.out <- x: // left
	default:
	}
	select {
	case a.out <- x: // right
	default:
	}
	a.sample++
	if a.sample >= apuSampleRate*10 {
		a.sample = 0
	}
}

// SetAudioOut attaches the channel the host drains for playback.
func (a *APU) SetAudioOut(c chan float32) {
	a.out = c
}
