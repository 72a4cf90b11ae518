package apu

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBufferFIFOOrder(t *testing.T) {
	buf := NewSampleBuffer(testRate)

	buf.WriteSamples([]float32{1, 2, 3})
	buf.WriteSamples([]float32{4, 5})

	out := make([]float32, 5)
	buf.OutputSamples(out)
	if diff := cmp.Diff([]float32{1, 2, 3, 4, 5}, out); diff != "" {
		t.Errorf("samples out of order (-want +got):\n%s", diff)
	}
	if buf.Len() != 0 {
		t.Errorf("Len = %d after drain, want 0", buf.Len())
	}
}

func TestBufferUnderrunPadsWithSilence(t *testing.T) {
	buf := NewSampleBuffer(testRate)

	buf.WriteSamples([]float32{1, 2})

	out := []float32{9, 9, 9, 9}
	buf.OutputSamples(out) // must not block, must not panic
	if diff := cmp.Diff([]float32{1, 2, 0, 0}, out); diff != "" {
		t.Errorf("underrun not padded (-want +got):\n%s", diff)
	}

	// Draining an empty buffer yields pure silence.
	out = []float32{9, 9}
	buf.OutputSamples(out)
	if out[0] != 0 || out[1] != 0 {
		t.Errorf("empty drain = %v, want zeros", out)
	}
}

func TestBufferClear(t *testing.T) {
	buf := NewSampleBuffer(testRate)

	buf.WriteSamples(make([]float32, 100))
	buf.Clear()
	if buf.Len() != 0 {
		t.Errorf("Len = %d after Clear, want 0", buf.Len())
	}
}

func TestBufferSharedHandles(t *testing.T) {
	buf := NewSampleBuffer(testRate)

	// Producer and consumer hold the same buffer: writes through one
	// handle are visible through the other.
	producer, consumer := buf, buf
	producer.WriteSamples([]float32{7})

	out := make([]float32, 1)
	consumer.OutputSamples(out)
	if out[0] != 7 {
		t.Errorf("got %v through shared handle, want 7", out[0])
	}
}

func TestBufferDropOldest(t *testing.T) {
	buf := NewSampleBuffer(testRate)
	buf.SetLimit(4)

	buf.WriteSamples([]float32{1, 2, 3, 4})
	buf.WriteSamples([]float32{5, 6})

	if buf.Len() != 4 {
		t.Fatalf("Len = %d, want 4 (limit enforced)", buf.Len())
	}
	if buf.Dropped() != 2 {
		t.Errorf("Dropped = %d, want 2", buf.Dropped())
	}

	out := make([]float32, 4)
	buf.OutputSamples(out)
	if diff := cmp.Diff([]float32{3, 4, 5, 6}, out); diff != "" {
		t.Errorf("oldest samples not the ones dropped (-want +got):\n%s", diff)
	}
}

// One goroutine writes a monotonic ramp while another drains small chunks:
// every drained sample must appear exactly once, in order, with silence
// padding allowed only on underruns.
func TestBufferConcurrentStress(t *testing.T) {
	const (
		iterations = 10000
		chunk      = 7
	)

	buf := NewSampleBuffer(testRate)
	buf.SetLimit(iterations * chunk) // no drops during the stress run

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		next := float32(1)
		for range iterations {
			samples := make([]float32, 3)
			for i := range samples {
				samples[i] = next
				next++
			}
			buf.WriteSamples(samples)
		}
	}()

	want := float32(1)
	drained := 0
	out := make([]float32, chunk)
	for drained < iterations*3 {
		buf.OutputSamples(out)
		for _, s := range out {
			if s == 0 {
				continue // underrun padding
			}
			if s != want {
				t.Fatalf("got sample %v, want %v (duplicated or reordered)", s, want)
			}
			want++
			drained++
		}
	}
	wg.Wait()

	if buf.Len() != 0 {
		t.Errorf("Len = %d after full drain, want 0", buf.Len())
	}
}
