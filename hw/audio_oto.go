package hw

import (
	"encoding/binary"
	"math"

	"github.com/ebitengine/oto/v3"

	"famicore/emu/log"
	"famicore/hw/apu"
)

// OtoBackend plays the sample buffer through the platform audio device. The
// oto player pulls: Read runs on the audio subsystem's own schedule and
// drains whatever is queued, padded with silence on underrun, so it returns
// promptly no matter what the simulation loop is doing.
type OtoBackend struct {
	ctx     *oto.Context
	player  *oto.Player
	buf     *apu.SampleBuffer
	scratch []float32
}

// NewOtoBackend opens the platform audio device at the given sample rate,
// mono float32. Playback does not begin until Start.
func NewOtoBackend(sampleRate int) (*OtoBackend, error) {
	opts := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}
	ctx, ready, err := oto.NewContext(opts)
	if err != nil {
		return nil, err
	}
	<-ready

	b := &OtoBackend{
		ctx: ctx,
		buf: apu.NewSampleBuffer(sampleRate),
	}
	b.player = ctx.NewPlayer(b)

	log.ModAudio.InfoZ("audio device ready").
		Int("rate", sampleRate).
		End()
	return b, nil
}

func (b *OtoBackend) Buffer() *apu.SampleBuffer { return b.buf }

func (b *OtoBackend) Start() error {
	b.player.Play()
	return nil
}

func (b *OtoBackend) Close() error {
	return b.player.Close()
}

// Read implements io.Reader for the oto player, 4 bytes per float32 sample.
func (b *OtoBackend) Read(p []byte) (int, error) {
	n := len(p) / 4
	if cap(b.scratch) < n {
		b.scratch = make([]float32, n)
	}
	samples := b.scratch[:n]
	b.buf.OutputSamples(samples)

	for i, s := range samples {
		binary.LittleEndian.PutUint32(p[4*i:], math.Float32bits(s))
	}
	return n * 4, nil
}
