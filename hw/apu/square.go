package apu

import "math"

// squareWave is one of the two pulse channels, stripped to the parts the
// mixer contract models: an 11-bit period and a duty cycle. Envelope and
// sweep hardware are not implemented; volume stays constant at 1.
type squareWave struct {
	volume float32
	duty   float64
	period uint32 // 11 bits, assembled from two register writes
}

func newSquareWave() squareWave {
	return squareWave{
		volume: 1.0,
		duty:   0.5,
	}
}

var dutyTable = [4]float64{0.125, 0.25, 0.5, 0.75}

// fill synthesizes the window [start, start+duration) seconds into out, one
// sample per element. Periods below 8 would pulse above 12.4 kHz, where the
// hardware mutes the channel; emitting zeros there also avoids the
// division-by-near-zero artifacts of a degenerate period.
func (sq *squareWave) fill(out []float32, start, duration float64) {
	if len(out) == 0 {
		return
	}
	if sq.period < 8 {
		clear(out)
		return
	}

	periodS := float64(16*(sq.period+1)) / cpuFreq
	dt := duration / float64(len(out))
	for i := range out {
		now := start + dt*float64(i)
		phase := math.Mod(now/periodS, 1.0)
		if phase <= sq.duty {
			out[i] = sq.volume
		} else {
			out[i] = -sq.volume
		}
	}
}

// $4000/$4004: duty cycle from the top 2 bits. The volume/envelope bits are
// accepted and ignored.
func (sq *squareWave) writeControl(val uint8) {
	sq.duty = dutyTable[val>>6]
}

// $4001/$4005: sweep unit, not implemented.
func (sq *squareWave) writeSweep(val uint8) {}

// $4002/$4006: period low 8 bits.
func (sq *squareWave) writePeriodLo(val uint8) {
	sq.period = sq.period&0x0700 | uint32(val)
}

// $4003/$4007: period high 3 bits. The length counter load in the top bits
// is not implemented.
func (sq *squareWave) writePeriodHi(val uint8) {
	sq.period = sq.period&0x00FF | uint32(val&0x07)<<8
}
