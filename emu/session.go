package emu

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"famicore/emu/log"
	"famicore/hw"
	"famicore/hw/apu"
)

// FatalError marks a failure that tore down the running session. The host
// process survives it: the session's audio buffer has been cleared and
// detached, and a fresh session can be started on the same backend.
type FatalError struct {
	Cause error
}

func (e *FatalError) Error() string { return "session failed: " + e.Cause.Error() }
func (e *FatalError) Unwrap() error { return e.Cause }

// Session binds one emulation run to an audio backend.
type Session struct {
	CPU *hw.CPU
	APU *apu.APU

	backend hw.AudioBackend

	// Accessed concurrently by the frame loop and the host.
	quit   atomic.Bool
	paused atomic.Bool
}

// NewSession wires a fresh CPU/APU pair to the backend's sample buffer.
// The buffer is cleared before the new APU receives the handle, so no stale
// audio from a previous session plays, and playback starts only once the
// handle is attached.
func NewSession(backend hw.AudioBackend) (*Session, error) {
	s := &Session{
		CPU:     hw.NewCPU(),
		APU:     apu.New(),
		backend: backend,
	}
	s.CPU.APU = s.APU

	if backend != nil {
		buf := backend.Buffer()
		buf.Clear()
		s.APU.AttachOutput(buf)
		if err := backend.Start(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Stop makes the frame loop exit at the next frame boundary.
func (s *Session) Stop() {
	s.quit.Store(true)
}

// SetPaused suspends or resumes the frame loop. While paused, no cycles
// elapse and no audio is produced.
func (s *Session) SetPaused(paused bool) {
	s.paused.Store(paused)
}

type RunOptions struct {
	// Realtime paces the loop to wall-clock frame duration. Off, the
	// loop runs as fast as it can (offline rendering).
	Realtime bool
}

// frameCycles is one output frame's worth of CPU cycles at 60 fps.
const frameCycles = apu.CPUFreq / 60

// RunScript replays a register script through the APU, flushing audio once
// per frame boundary, until the script is exhausted or the context is
// canceled. An internal panic tears the session down and surfaces as a
// *FatalError.
func (s *Session) RunScript(ctx context.Context, script *Script, opts RunOptions) error {
	g, ctx := errgroup.WithContext(ctx)
	done := make(chan struct{})

	g.Go(func() error {
		defer close(done)
		return s.guard(func() error {
			s.replay(script, opts)
			return nil
		})
	})
	g.Go(func() error {
		select {
		case <-ctx.Done():
			s.quit.Store(true)
			return ctx.Err()
		case <-done:
			return nil
		}
	})

	return g.Wait()
}

func (s *Session) replay(script *Script, opts RunOptions) {
	frameDur := time.Second / 60
	end := script.EndCycle()

	idx := 0
	cycle := uint64(0)
	next := time.Now()
	for cycle < end || idx < len(script.Writes) {
		if s.quit.Load() {
			break
		}
		if s.paused.Load() {
			time.Sleep(frameDur)
			next = time.Now()
			continue
		}

		frameEnd := cycle + frameCycles
		for idx < len(script.Writes) && script.Writes[idx].Cycle <= frameEnd {
			w := script.Writes[idx]
			s.APU.WriteRegister(w.Addr, w.Val, w.Cycle)
			idx++
		}
		s.APU.RunUntilCycle(frameEnd)
		cycle = frameEnd

		if opts.Realtime {
			next = next.Add(frameDur)
			time.Sleep(time.Until(next))
		}
	}
}

// guard runs fn, converting a panic into a *FatalError after tearing the
// session down, so the host stays alive and can load a new session.
func (s *Session) guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.ModEmu.ErrorZ("session panic").
				String("cause", fmt.Sprint(r)).
				End()
			s.teardown()
			err = &FatalError{Cause: fmt.Errorf("internal error: %v", r)}
		}
	}()
	return fn()
}

// teardown releases the session's hold on the audio path: pending samples
// are dropped and the APU loses its output handle. The backend itself stays
// open for the next session.
func (s *Session) teardown() {
	if s.backend != nil {
		s.backend.Buffer().Clear()
	}
	s.APU.AttachOutput(nil)
}
