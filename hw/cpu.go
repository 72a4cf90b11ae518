package hw

import (
	"famicore/emu/log"
	"famicore/hw/apu"
)

// Locations reserved for vector pointers.
const (
	NMIVector   = uint16(0xFFFA) // Non-Maskable Interrupt
	ResetVector = uint16(0xFFFC) // Reset
	IRQVector   = uint16(0xFFFE) // Interrupt Request
)

const (
	ramSize = 0x800  // internal RAM, 2 KiB
	ramEnd  = 0x2000 // RAM window, mirrored every 2 KiB

	apuRegStart = uint16(0x4000)
	apuRegEnd   = uint16(0x4015)

	stackBase = uint16(0x0100)
	resetSP   = uint8(0xFD)
)

// CPU owns the processor architectural state and the system bus: registers,
// the internal mirrored RAM and the cycle counter. Every bus access costs
// exactly one cycle; the counter is the sole time reference for audio
// synthesis downstream.
//
// Instruction decoding and execution live outside the core. Any execution
// unit drives the processor through the Read/Write/fetch/stack primitives
// below.
type CPU struct {
	A, X, Y, SP uint8
	PC          uint16
	P           P

	// Cycles increments by one per bus access and never decreases.
	Cycles uint64

	RAM [ramSize]uint8

	// APU receives register writes in the $4000-$4015 range, tagged with
	// the cycle of the access. Nil when the system runs without sound.
	APU *apu.APU

	// Mapper handles everything the core doesn't own. Nil is valid: the
	// bus then logs the access and reads back 0 / drops the write.
	Mapper Mapper
}

// NewCPU creates a new CPU at power-up state.
func NewCPU() *CPU {
	return &CPU{SP: resetSP}
}

// Reset puts the stack pointer back to its power-on value.
func (c *CPU) Reset() {
	c.SP = resetSP
}

func (c *CPU) Read8(addr uint16) uint8 {
	c.Cycles++
	if addr < ramEnd {
		return c.RAM[addr%ramSize]
	}
	if c.Mapper != nil {
		if val, ok := c.Mapper.ReadMem(addr); ok {
			return val
		}
	}
	log.ModCPU.DebugZ("out of bounds read").Hex16("addr", addr).End()
	return 0
}

func (c *CPU) Write8(addr uint16, val uint8) {
	c.Cycles++
	if addr < ramEnd {
		c.RAM[addr%ramSize] = val
		return
	}
	if addr >= apuRegStart && addr <= apuRegEnd && c.APU != nil {
		c.APU.WriteRegister(addr, val, c.Cycles)
		return
	}
	if c.Mapper != nil && c.Mapper.WriteMem(addr, val) {
		return
	}
	log.ModCPU.DebugZ("out of bounds write").
		Hex16("addr", addr).
		Hex8("val", val).
		End()
}

// Read16 reads a little-endian word, low byte first.
func (c *CPU) Read16(addr uint16) uint16 {
	lo := c.Read8(addr)
	hi := c.Read8(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// Write16 writes a little-endian word, low byte first.
func (c *CPU) Write16(addr uint16, val uint16) {
	c.Write8(addr, uint8(val&0xFF))
	c.Write8(addr+1, uint8(val>>8))
}

// ReadCode reads the byte at PC and advances PC, wrapping at the end of the
// address space.
func (c *CPU) ReadCode() uint8 {
	val := c.Read8(c.PC)
	c.PC++
	return val
}

// ReadCodeAddr fetches a little-endian word at PC.
func (c *CPU) ReadCodeAddr() uint16 {
	lo := c.ReadCode()
	hi := c.ReadCode()
	return uint16(hi)<<8 | uint16(lo)
}

// SetStatus unpacks val into the status register.
func (c *CPU) SetStatus(val uint8) {
	c.P.SetFromByte(val)
}

// Status packs the status register into its byte layout.
func (c *CPU) Status() uint8 {
	return c.P.ToByte()
}

/* stack operations */

// The stack lives in $0100-$01FF and grows downwards; SP points to the next
// free location and wraps modulo 256, which is the hardware behavior, not an
// error.

func (c *CPU) Push8(val uint8) {
	c.Write8(stackBase+uint16(c.SP), val)
	c.SP--
}

func (c *CPU) Pull8() uint8 {
	c.SP++
	return c.Read8(stackBase + uint16(c.SP))
}

// Push16 pushes the high byte first so that Pull16 reassembles the value.
func (c *CPU) Push16(val uint16) {
	c.Push8(uint8(val >> 8))
	c.Push8(uint8(val & 0xFF))
}

func (c *CPU) Pull16() uint16 {
	lo := c.Pull8()
	hi := c.Pull8()
	return uint16(hi)<<8 | uint16(lo)
}
