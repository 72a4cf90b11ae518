// Package apu implements the console's audio processing unit: two pulse
// channels and a triangle channel synthesized per elapsed CPU cycle, mixed
// with the hardware's non-linear formula and handed off to a real-time
// consumer through a SampleBuffer.
//
// Known limitations, carried over deliberately from the modeled hardware
// subset: the noise and DMC channels are not synthesized (their mixer terms
// stay zero), and the pulse channels have no envelope, sweep or length
// counter. The corresponding registers are accepted and ignored.
package apu

import (
	"famicore/emu/log"
)

// CPUFreq is the NTSC CPU clock rate in Hz. It converts cycle counts to
// seconds and is part of the external contract.
const CPUFreq = 1789773

const cpuFreq = float64(CPUFreq)

// Linear approximation of the APU DAC's non-linear mixing, from
// https://www.nesdev.org/wiki/APU_Mixer:
//
//	output = 0.00752*(square1+square2) + 0.00851*triangle + 0.00494*noise + 0.00335*dmc
const (
	pulseGain    = 0.00752
	triangleGain = 0.00851
	noiseGain    = 0.00494 // no noise synthesis: term stays zero
	dmcGain      = 0.00335 // no DMC synthesis: term stays zero
)

// APU owns the oscillators and drives time-to-sample conversion. All state
// changes go through WriteRegister and ToggleChannel; RunUntilCycle forces
// synthesis to catch up with the bus clock, normally once per rendered
// frame.
type APU struct {
	out *SampleBuffer // nil when no audio device is attached

	square1  squareWave
	square2  squareWave
	triangle triangleWave

	guestMask ChannelMask // channels the program enabled via $4015
	hostMask  ChannelMask // user override; effective enablement is the AND

	sq1buf []float32
	sq2buf []float32
	tribuf []float32
	mixbuf []float32

	// lastCycles is the audio watermark: the cycle through which samples
	// have been synthesized. Advanced only by RunUntilCycle, never rewound.
	lastCycles uint64
}

// New creates an APU with every channel allowed by the host and none yet
// enabled by the guest.
func New() *APU {
	return &APU{
		hostMask: AllChannels,
		square1:  newSquareWave(),
		square2:  newSquareWave(),
	}
}

// AttachOutput binds the sample buffer that receives mixed samples. Passing
// nil detaches the output; synthesis bookkeeping still advances so a later
// attach doesn't replay the past.
func (a *APU) AttachOutput(buf *SampleBuffer) {
	a.out = buf
}

// Watermark returns the cycle through which audio has been synthesized.
func (a *APU) Watermark() uint64 {
	return a.lastCycles
}

// RunUntilCycle synthesizes and flushes all audio owed up to endCycle.
// The number of samples is floor(rate*elapsed/CPUFreq), so repeated calls
// with the same target produce nothing new.
func (a *APU) RunUntilCycle(endCycle uint64) {
	if endCycle < a.lastCycles {
		// The watermark never rewinds.
		return
	}
	start := a.lastCycles
	a.lastCycles = endCycle

	rate := 0
	if a.out != nil {
		rate = a.out.SampleRate()
	}

	startS := float64(start) / cpuFreq
	durationS := float64(endCycle-start) / cpuFreq
	nsamples := int(float64(rate) * durationS)
	if nsamples == 0 {
		return
	}

	a.sq1buf = resize(a.sq1buf, nsamples)
	a.sq2buf = resize(a.sq2buf, nsamples)
	a.tribuf = resize(a.tribuf, nsamples)
	a.mixbuf = resize(a.mixbuf, nsamples)

	enabled := a.hostMask & a.guestMask
	if enabled.Contains(Square1) {
		a.square1.fill(a.sq1buf, startS, durationS)
	} else {
		clear(a.sq1buf)
	}
	if enabled.Contains(Square2) {
		a.square2.fill(a.sq2buf, startS, durationS)
	} else {
		clear(a.sq2buf)
	}
	if enabled.Contains(Triangle) {
		a.triangle.fill(a.tribuf, startS, durationS)
	} else {
		clear(a.tribuf)
	}

	for i := range a.mixbuf {
		pulseOut := pulseGain * (a.sq1buf[i] + a.sq2buf[i])
		tndOut := triangleGain * a.tribuf[i]
		a.mixbuf[i] = pulseOut + tndOut
	}

	if a.out != nil {
		a.out.WriteSamples(a.mixbuf)
	}
}

// WriteRegister applies a program write to an APU register. Audio owed to
// the old parameters is flushed up to cpuCycle first, keeping a clean
// boundary between old and new timbre. Addresses outside the map below are
// ignored.
func (a *APU) WriteRegister(addr uint16, val uint8, cpuCycle uint64) {
	a.RunUntilCycle(cpuCycle)

	log.ModAPU.DebugZ("write register").
		Hex16("addr", addr).
		Hex8("val", val).
		Uint64("cycle", cpuCycle).
		End()

	switch addr {
	case 0x4000:
		a.square1.writeControl(val)
	case 0x4001:
		a.square1.writeSweep(val)
	case 0x4002:
		a.square1.writePeriodLo(val)
	case 0x4003:
		a.square1.writePeriodHi(val)

	case 0x4004:
		a.square2.writeControl(val)
	case 0x4005:
		a.square2.writeSweep(val)
	case 0x4006:
		a.square2.writePeriodLo(val)
	case 0x4007:
		a.square2.writePeriodHi(val)

	case 0x4008:
		a.triangle.writeControl(val)
	case 0x400A:
		a.triangle.writePeriodLo(val)
	case 0x400B:
		a.triangle.writePeriodHi(val)

	case 0x4015:
		a.guestMask = ChannelMask(val) & AllChannels
		log.ModAPU.InfoZ("write channel enable").
			Hex8("val", val).
			Stringer("guest", a.guestMask).
			End()
	}
}

// ToggleChannel flips one channel in the host mask. The guest mask is
// untouched; a channel plays only when both masks contain it.
func (a *APU) ToggleChannel(ch Channel) {
	a.hostMask.Toggle(ch)

	state := "off"
	if a.hostMask.Contains(ch) {
		state = "on"
	}
	log.ModAPU.InfoZ("toggled channel").
		Stringer("channel", ch).
		String("state", state).
		End()
}

// resize returns s with length n, reusing its backing array when possible.
// Contents are unspecified; callers overwrite or clear.
func resize(s []float32, n int) []float32 {
	if cap(s) < n {
		return make([]float32, n)
	}
	return s[:n]
}
