package emu

import (
	"os"
	"testing"

	"famicore/emu/log"
)

func TestMain(m *testing.M) {
	// The fatal-teardown paths exercised here log on purpose; keep the
	// test output readable.
	log.Disable()
	os.Exit(m.Run())
}
