package log

import "testing"

func TestModuleByName(t *testing.T) {
	mod, ok := ModuleByName("apu")
	if !ok || mod != ModAPU {
		t.Errorf("ModuleByName(apu) = %v, %v", mod, ok)
	}
	if _, ok := ModuleByName("nosuchmodule"); ok {
		t.Error("unknown module name resolved")
	}
}

func TestModuleGating(t *testing.T) {
	defer DisableDebugModules(ModuleMaskAll)

	// Warnings and above always pass; info/debug need the module enabled.
	if !ModAPU.Enabled(WarnLevel) || !ModAPU.Enabled(ErrorLevel) {
		t.Error("warn/error must always be enabled")
	}
	if ModAPU.Enabled(DebugLevel) {
		t.Error("debug enabled before EnableDebugModules")
	}

	EnableDebugModules(ModAPU.Mask())
	if !ModAPU.Enabled(DebugLevel) {
		t.Error("debug not enabled after EnableDebugModules")
	}
	if ModCPU.Enabled(DebugLevel) {
		t.Error("enabling one module leaked into another")
	}
}

func TestNilEntryIsSafe(t *testing.T) {
	// A disabled module hands out nil entries; field calls and End must
	// be no-ops rather than crashes.
	e := ModCPU.DebugZ("never printed")
	if e != nil {
		t.Fatal("expected nil entry for disabled module")
	}
	e.Hex16("addr", 0x4015).Int("n", 3).End()
}
