package apu

import (
	"sync"

	"famicore/emu/log"
)

// DefaultBufferSeconds caps the sample queue at this much queued audio.
// When the simulation outruns the audio device for longer than this, the
// oldest samples are dropped; playback skips instead of drifting further
// and further behind real time.
const DefaultBufferSeconds = 4

// SampleBuffer hands mixed samples from the simulation loop to the
// real-time audio consumer. The producer side appends whole mixed windows;
// the consumer side drains fixed-size chunks on the audio subsystem's own
// cadence and never blocks: a deficit is padded with silence.
//
// A single mutex guards the queue. Critical sections are bounded by the
// number of samples transferred, never by simulation work, so the real-time
// thread's blocking window stays small and predictable. Share a buffer by
// sharing the pointer; all handles observe the same queue.
type SampleBuffer struct {
	mu      sync.Mutex
	queue   []float32 // queue[head:] are the pending samples
	head    int
	dropped uint64

	rate  int // immutable after creation
	limit int // max pending samples, 0 means DefaultBufferSeconds*rate
}

// NewSampleBuffer creates a buffer for a device running at rate samples per
// second. The rate is fixed for the buffer's lifetime; the buffer itself may
// be cleared and rebound to a fresh emulation session without being
// recreated.
func NewSampleBuffer(rate int) *SampleBuffer {
	return &SampleBuffer{
		rate:  rate,
		limit: DefaultBufferSeconds * rate,
	}
}

// SampleRate returns the device sample rate the buffer was created for.
func (b *SampleBuffer) SampleRate() int {
	return b.rate
}

// SetLimit caps the number of pending samples. n <= 0 restores the default.
func (b *SampleBuffer) SetLimit(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if n <= 0 {
		n = DefaultBufferSeconds * b.rate
	}
	b.limit = n
}

// WriteSamples appends samples to the queue. If the queue would exceed its
// limit, the oldest samples are discarded first.
func (b *SampleBuffer) WriteSamples(samples []float32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Compact before growing so the backing array doesn't creep.
	if b.head > 0 {
		n := copy(b.queue, b.queue[b.head:])
		b.queue = b.queue[:n]
		b.head = 0
	}
	b.queue = append(b.queue, samples...)

	if excess := len(b.queue) - b.limit; excess > 0 {
		b.head = excess
		b.dropped += uint64(excess)
		log.ModAudio.DebugZ("sample queue overrun, dropping oldest").
			Int("excess", excess).
			Uint64("total dropped", b.dropped).
			End()
	}
}

// OutputSamples pops up to len(out) samples in FIFO order. If fewer are
// pending, the deficit is padded with silence; the caller runs on a
// real-time audio callback and must never wait for more data.
func (b *SampleBuffer) OutputSamples(out []float32) {
	b.mu.Lock()
	pending := len(b.queue) - b.head
	n := copy(out, b.queue[b.head:])
	b.head += n
	b.mu.Unlock()

	if n < len(out) {
		clear(out[n:])
		log.ModAudio.WarnZ("not enough samples in buffer").
			Int("need", len(out)).
			Int("have", pending).
			End()
	}
}

// Len returns the number of pending samples.
func (b *SampleBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue) - b.head
}

// Dropped returns how many samples have been discarded to enforce the
// queue limit.
func (b *SampleBuffer) Dropped() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

// Clear drops all pending samples. Used when rebinding the buffer to a new
// emulation session, so no stale audio from the previous one plays.
func (b *SampleBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queue = b.queue[:0]
	b.head = 0
}
