package main

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

const sampleRate = 44100

// audioOutput drains Console's APU sample channel through a portaudio
// callback stream, running on portaudio's own OS thread per its contract.
type audioOutput struct {
	stream  *portaudio.Stream
	channel chan float32
}

func newAudioOutput() (*audioOutput, error) {
	a := &audioOutput{channel: make(chan float32, sampleRate)}
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("nesgo: initializing portaudio: %w", err)
	}
	cb := func(out []float32) {
		for i := range out {
			select {
			case x := <-a.channel:
				out[i] = x * 0.05
			default:
				out[i] = 0
			}
		}
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, sampleRate, 0, cb)
	if err != nil {
		return nil, fmt.Errorf("nesgo: opening audio stream: %w", err)
	}
	a.stream = stream
	if err := stream.Start(); err != nil {
		return nil, fmt.Errorf("nesgo: starting audio stream: %w", err)
	}
	return a, nil
}

func (a *audioOutput) terminate() {
	a.stream.Close()
	portaudio.Terminate()
}
