package hw

import (
	"testing"

	"famicore/hw/apu"
)

func TestRAMMirroring(t *testing.T) {
	c := NewCPU()

	c.Write8(0x0000, 0xAB)
	for _, addr := range []uint16{0x0000, 0x0800, 0x1000, 0x1800} {
		if got := c.Read8(addr); got != 0xAB {
			t.Errorf("$%04X = %02X, want AB", addr, got)
		}
	}

	c.Write8(0x1FFF, 0xCD)
	if got := c.Read8(0x07FF); got != 0xCD {
		t.Errorf("$07FF = %02X, want CD", got)
	}
}

func TestCycleCounting(t *testing.T) {
	c := NewCPU()

	c.Write8(0x0010, 1) // 1 cycle
	c.Read8(0x0010)     // 1 cycle
	c.Read16(0x0010)    // 2 cycles
	c.Write16(0x0020, 0xBEEF)
	if c.Cycles != 6 {
		t.Errorf("got %d cycles, want 6", c.Cycles)
	}

	// Unmapped accesses still cost one cycle each.
	c.Read8(0x5000)
	c.Write8(0x5000, 0xFF)
	if c.Cycles != 8 {
		t.Errorf("got %d cycles, want 8", c.Cycles)
	}
}

func TestUnmappedAccess(t *testing.T) {
	c := NewCPU()

	if got := c.Read8(0x8000); got != 0 {
		t.Errorf("unmapped read = %02X, want 00", got)
	}
	// Unmapped write is a no-op, not a crash.
	c.Write8(0x8000, 0xFF)
}

func TestReadWrite16(t *testing.T) {
	c := NewCPU()

	c.Write16(0x0040, 0x1234)
	if got := c.Read8(0x0040); got != 0x34 {
		t.Errorf("low byte = %02X, want 34", got)
	}
	if got := c.Read8(0x0041); got != 0x12 {
		t.Errorf("high byte = %02X, want 12", got)
	}
	if got := c.Read16(0x0040); got != 0x1234 {
		t.Errorf("Read16 = %04X, want 1234", got)
	}
}

func TestCodeFetch(t *testing.T) {
	c := NewCPU()

	c.Write8(0x0100, 0xA9)
	c.Write8(0x0101, 0x42)
	c.PC = 0x0100
	if got := c.ReadCode(); got != 0xA9 {
		t.Errorf("ReadCode = %02X, want A9", got)
	}
	if c.PC != 0x0101 {
		t.Errorf("PC = %04X, want 0101", c.PC)
	}

	c.Write8(0x0200, 0xCD)
	c.Write8(0x0201, 0xAB)
	c.PC = 0x0200
	if got := c.ReadCodeAddr(); got != 0xABCD {
		t.Errorf("ReadCodeAddr = %04X, want ABCD", got)
	}

	// PC wraps at the end of the address space.
	c.PC = 0xFFFF
	c.ReadCode()
	if c.PC != 0x0000 {
		t.Errorf("PC = %04X, want 0000", c.PC)
	}
}

func TestStack(t *testing.T) {
	c := NewCPU()

	sp := c.SP
	c.Push16(0x1234)
	if got := c.Pull16(); got != 0x1234 {
		t.Errorf("Pull16 = %04X, want 1234", got)
	}
	if c.SP != sp {
		t.Errorf("SP = %02X, want %02X", c.SP, sp)
	}
}

func TestStackWraparound(t *testing.T) {
	c := NewCPU()

	sp := c.SP
	for i := 0; i < 256; i++ {
		c.Push8(uint8(i))
	}
	if c.SP != sp {
		t.Errorf("SP = %02X after 256 pushes, want %02X", c.SP, sp)
	}

	// Pushed values live in the stack page.
	if got := c.Read8(stackBase + uint16(sp)); got != 0 {
		t.Errorf("top of stack = %02X, want 00", got)
	}
}

func TestReset(t *testing.T) {
	c := NewCPU()
	if c.SP != 0xFD {
		t.Errorf("power-on SP = %02X, want FD", c.SP)
	}

	c.SP = 0x10
	c.Reset()
	if c.SP != 0xFD {
		t.Errorf("SP = %02X after reset, want FD", c.SP)
	}
}

func TestStatusAccessors(t *testing.T) {
	c := NewCPU()

	c.SetStatus(0xFF)
	if got := c.Status(); got != 0xEF {
		t.Errorf("Status = %02X, want EF", got)
	}
	c.SetStatus(0x00)
	if got := c.Status(); got != 0x20 {
		t.Errorf("Status = %02X, want 20", got)
	}
}

// APU register writes are routed with the cycle of the access, so the APU
// flushes audio owed to the old parameters first.
func TestAPURouting(t *testing.T) {
	c := NewCPU()
	c.APU = apu.New()

	c.Read8(0x0000)
	c.Read8(0x0000)
	c.Write8(0x4015, 0x1F)

	if got := c.APU.Watermark(); got != 3 {
		t.Errorf("APU watermark = %d, want 3", got)
	}
	if c.Cycles != 3 {
		t.Errorf("got %d cycles, want 3", c.Cycles)
	}
}

type ramMapper struct {
	mem map[uint16]uint8
}

func (m *ramMapper) ReadMem(addr uint16) (uint8, bool) {
	v, ok := m.mem[addr]
	return v, ok
}

func (m *ramMapper) WriteMem(addr uint16, val uint8) bool {
	m.mem[addr] = val
	return true
}

func TestMapperRouting(t *testing.T) {
	c := NewCPU()
	c.Mapper = &ramMapper{mem: map[uint16]uint8{0xFFFC: 0x00, 0xFFFD: 0x80}}

	if got := c.Read16(ResetVector); got != 0x8000 {
		t.Errorf("reset vector = %04X, want 8000", got)
	}

	c.Write8(0x8123, 0x7F)
	if got := c.Read8(0x8123); got != 0x7F {
		t.Errorf("$8123 = %02X, want 7F", got)
	}
}
