package hw

import "famicore/hw/apu"

// AudioBackend owns an audio output device and the SampleBuffer created for
// it. The backend drains the buffer on its own cadence once started;
// everything upstream only ever sees the buffer.
//
// Rebinding order matters: on a new session, clear the buffer, hand it to
// the freshly built APU, and only then Start the backend. Starting earlier
// can transiently play stale or empty audio.
type AudioBackend interface {
	// Buffer returns the backend's sample buffer. The same buffer is
	// returned for the backend's whole lifetime.
	Buffer() *apu.SampleBuffer

	// Start begins playback.
	Start() error

	// Close stops playback and releases the device.
	Close() error
}

// HeadlessBackend is an AudioBackend with no device behind it: samples
// accumulate in the buffer until something drains it. Used by tests and by
// offline rendering.
type HeadlessBackend struct {
	buf *apu.SampleBuffer
}

func NewHeadlessBackend(sampleRate int) *HeadlessBackend {
	return &HeadlessBackend{buf: apu.NewSampleBuffer(sampleRate)}
}

func (b *HeadlessBackend) Buffer() *apu.SampleBuffer { return b.buf }
func (b *HeadlessBackend) Start() error              { return nil }
func (b *HeadlessBackend) Close() error              { return nil }
