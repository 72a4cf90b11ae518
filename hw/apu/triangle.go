package apu

import "math"

// triangleWave holds the triangle channel's 11-bit period. The linear
// counter and length counter are not implemented; the wave plays whenever
// the channel is enabled.
type triangleWave struct {
	period uint32
}

// fill synthesizes the window [start, start+duration) seconds into out.
// Disabling the channel below period 2 removes the "pops" caused by
// ultrasonic frequencies.
//
// One period spans four quadrants: 0 ramps 0->1, 1 ramps 1->0, 2 ramps
// 0->-1, 3 ramps -1->0, a continuous symmetric triangle in [-1, 1].
func (tw *triangleWave) fill(out []float32, start, duration float64) {
	if len(out) == 0 {
		return
	}
	if tw.period < 2 {
		clear(out)
		return
	}

	periodS := float64(32*(tw.period+1)) / cpuFreq
	dt := duration / float64(len(out))
	for i := range out {
		now := start + dt*float64(i)
		scaled := now / periodS * 4
		quadrant := int64(scaled) % 4
		offset := float32(math.Mod(scaled, 1))

		switch quadrant {
		case 0:
			out[i] = offset
		case 1:
			out[i] = 1 - offset
		case 2:
			out[i] = -offset
		case 3:
			out[i] = -1 + offset
		}
	}
}

// $4008: linear counter control, not implemented.
func (tw *triangleWave) writeControl(val uint8) {}

// $400A: period low 8 bits.
func (tw *triangleWave) writePeriodLo(val uint8) {
	tw.period = tw.period&0x0700 | uint32(val)
}

// $400B: period high 3 bits.
func (tw *triangleWave) writePeriodHi(val uint8) {
	tw.period = tw.period&0x00FF | uint32(val&0x07)<<8
}
