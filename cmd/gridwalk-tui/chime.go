package main

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)
	chimeFreq  = 880.0
	chimeLen   = 180 * time.Millisecond
)

// Chime plays a short bell on every pickup. A Chime whose speaker failed to
// open stays silent.
type Chime struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	enabled bool
}

func NewChime() *Chime {
	return &Chime{mixer: &beep.Mixer{}}
}

func (c *Chime) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.enabled {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(c.mixer)
	c.enabled = true
	return nil
}

// Ring queues one chime per collected item, each a fifth above the last.
func (c *Chime) Ring(count int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled || count <= 0 {
		return
	}
	freq := chimeFreq
	speaker.Lock()
	for i := 0; i < count; i++ {
		c.mixer.Add(beep.Take(sampleRate.N(chimeLen), NewBellGenerator(sampleRate, freq)))
		freq *= 1.5
	}
	speaker.Unlock()
}

func (c *Chime) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled {
		return
	}
	speaker.Clear()
	speaker.Close()
	c.enabled = false
}

// BellGenerator is a sine with a fast exponential decay.
type BellGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

func NewBellGenerator(sr beep.SampleRate, freq float64) *BellGenerator {
	return &BellGenerator{sr: sr, freq: freq}
}

func (g *BellGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		sample := 0.6*math.Sin(2*math.Pi*g.freq*t) + 0.2*math.Sin(2*math.Pi*g.freq*2*t)
		sample *= math.Exp(-t*18) * 0.4

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BellGenerator) Err() error {
	return nil
}
