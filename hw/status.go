package hw

// P is the processor status register.
type P uint8

const (
	Carry P = 1 << iota
	Zero
	IntDisable
	Decimal
	Break
	Unused
	Overflow
	Negative
)

// ToByte packs the status flags into their architectural byte layout. The
// unused bit (5) always reads as set and the break bit (4) is not part of
// the register proper, so it packs as clear.
func (p P) ToByte() uint8 {
	return uint8(p&^Break | Unused)
}

// SetFromByte unpacks val into the six architectural flags. Bits 4 and 5
// have no storage and are ignored.
func (p *P) SetFromByte(val uint8) {
	*p = P(val) &^ (Break | Unused)
}

func (p P) hasFlag(flag P) bool {
	return p&flag == flag
}

func (p *P) setFlag(flag P, on bool) {
	if on {
		*p |= flag
	} else {
		*p &^= flag
	}
}

func (p *P) SetCarry(on bool)      { p.setFlag(Carry, on) }
func (p *P) SetZero(on bool)       { p.setFlag(Zero, on) }
func (p *P) SetIntDisable(on bool) { p.setFlag(IntDisable, on) }
func (p *P) SetDecimal(on bool)    { p.setFlag(Decimal, on) }
func (p *P) SetOverflow(on bool)   { p.setFlag(Overflow, on) }
func (p *P) SetNegative(on bool)   { p.setFlag(Negative, on) }

func (p P) Carry() bool      { return p.hasFlag(Carry) }
func (p P) Zero() bool       { return p.hasFlag(Zero) }
func (p P) IntDisable() bool { return p.hasFlag(IntDisable) }
func (p P) Decimal() bool    { return p.hasFlag(Decimal) }
func (p P) Overflow() bool   { return p.hasFlag(Overflow) }
func (p P) Negative() bool   { return p.hasFlag(Negative) }

// sets N flag if bit 7 of v is set, clears it otherwise.
// sets Z flag if v == 0, clears it otherwise.
func (p *P) CheckNZ(v uint8) {
	p.setFlag(Negative, v&0x80 != 0)
	p.setFlag(Zero, v == 0)
}

func (p P) String() string {
	const bits = "nvubdizcNVUBDIZC"

	s := make([]byte, 8)
	for i := 0; i < 8; i++ {
		ibit := (uint8(p) & (1 << (7 - i))) >> (7 - i)
		s[i] = bits[i+int(8*ibit)]
	}
	return string(s)
}
