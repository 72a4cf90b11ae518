package emu

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/kirsle/configdir"

	"famicore/emu/log"
	"famicore/hw/apu"
)

type Config struct {
	Audio AudioConfig `toml:"audio"`
}

type AudioConfig struct {
	// SampleRate of the output device, in Hz.
	SampleRate int `toml:"sample_rate"`

	// BufferSeconds caps the sample queue at this much queued audio
	// before the oldest samples get dropped. 0 keeps the default.
	BufferSeconds int `toml:"buffer_seconds"`

	// Muted lists channels muted at the host level on startup
	// ("square1", "square2", "triangle", "noise", "dmc").
	Muted []string `toml:"muted"`

	DisableAudio bool `toml:"disable_audio"`
}

func defaultConfig() Config {
	return Config{
		Audio: AudioConfig{
			SampleRate: 48000,
		},
	}
}

// MutedChannels resolves the configured channel names. Unknown names are
// logged and skipped.
func (ac AudioConfig) MutedChannels() []apu.Channel {
	var muted []apu.Channel
	for _, name := range ac.Muted {
		found := false
		for c := apu.Square1; c <= apu.DMC; c++ {
			if c.String() == name {
				muted = append(muted, c)
				found = true
				break
			}
		}
		if !found {
			log.ModEmu.Warnf("unknown channel name %q in config", name)
		}
	}
	return muted
}

var ConfigDir string = sync.OnceValue(func() string {
	dir := configdir.LocalConfig("famicore")
	if err := configdir.MakePath(dir); err != nil {
		log.ModEmu.Fatalf("failed to create directory %s: %v", dir, err)
	}
	return dir
})()

const cfgFilename = "config.toml"

// LoadConfigOrDefault loads the configuration from the famicore config
// directory, or provides a default one.
func LoadConfigOrDefault() Config {
	var cfg Config
	_, err := toml.DecodeFile(filepath.Join(ConfigDir, cfgFilename), &cfg)
	if err != nil {
		return defaultConfig()
	}
	if cfg.Audio.SampleRate <= 0 {
		cfg.Audio.SampleRate = defaultConfig().Audio.SampleRate
	}
	return cfg
}

// SaveConfig into the famicore config directory.
func SaveConfig(cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(ConfigDir, cfgFilename), buf, 0644)
}
