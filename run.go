package main

import (
	"context"
	"os"
	"time"

	"famicore/emu"
	"famicore/emu/log"
	"famicore/hw"
	"famicore/hw/apu"
)

func runPlay(cmd Play) error {
	cfg := emu.LoadConfigOrDefault()
	rate := cfg.Audio.SampleRate

	data, err := os.ReadFile(cmd.ScriptPath)
	if err != nil {
		return err
	}
	script, err := emu.ParseScript(data)
	if err != nil {
		return err
	}

	var backend hw.AudioBackend
	realtime := true
	if cmd.WavOut != "" || cfg.Audio.DisableAudio {
		hb := hw.NewHeadlessBackend(rate)
		// Offline render, nothing drains while the script runs: size the
		// queue for the whole script.
		total := int(float64(rate) * float64(script.EndCycle()) / float64(apu.CPUFreq))
		hb.Buffer().SetLimit(total + rate)
		backend = hb
		realtime = false
	} else {
		ob, err := hw.NewOtoBackend(rate)
		if err != nil {
			return err
		}
		if cfg.Audio.BufferSeconds > 0 {
			ob.Buffer().SetLimit(cfg.Audio.BufferSeconds * rate)
		}
		backend = ob
	}
	defer backend.Close()

	sess, err := emu.NewSession(backend)
	if err != nil {
		return err
	}
	for _, ch := range cfg.Audio.MutedChannels() {
		sess.APU.ToggleChannel(ch)
	}

	log.ModEmu.InfoZ("replaying script").
		String("path", cmd.ScriptPath).
		Int("writes", len(script.Writes)).
		Uint64("cycles", script.EndCycle()).
		End()

	opts := emu.RunOptions{Realtime: realtime}
	if err := sess.RunScript(context.Background(), script, opts); err != nil {
		return err
	}

	if cmd.WavOut != "" {
		buf := backend.Buffer()
		samples := make([]float32, buf.Len())
		buf.OutputSamples(samples)
		log.ModEmu.InfoZ("writing wav").
			String("path", cmd.WavOut).
			Int("samples", len(samples)).
			End()
		return emu.WriteWAV(cmd.WavOut, rate, samples)
	}

	// Let the queued tail play out before closing the device.
	for backend.Buffer().Len() > 0 {
		time.Sleep(50 * time.Millisecond)
	}
	return nil
}
