package emu

import (
	"fmt"

	"github.com/go-faster/jx"
)

// RegisterWrite is one APU register write captured from a run: which
// address got which value, at which CPU cycle.
type RegisterWrite struct {
	Cycle uint64
	Addr  uint16
	Val   uint8
}

// Script is a cycle-ordered sequence of register writes, the input to
// Session.RunScript. The on-disk format is a JSON array of objects:
//
//	[{"cycle": 0, "addr": 16389, "val": 8}, ...]
type Script struct {
	Writes []RegisterWrite
}

// EndCycle returns the cycle of the last write, 0 for an empty script.
func (s *Script) EndCycle() uint64 {
	if len(s.Writes) == 0 {
		return 0
	}
	return s.Writes[len(s.Writes)-1].Cycle
}

// ParseScript decodes a register script. Events must be in non-decreasing
// cycle order; the audio watermark cannot rewind to honor an earlier write.
func ParseScript(data []byte) (*Script, error) {
	d := jx.DecodeBytes(data)

	var s Script
	if err := d.Arr(func(d *jx.Decoder) error {
		w, err := decodeWrite(d)
		if err != nil {
			return err
		}
		s.Writes = append(s.Writes, w)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}

	for i := 1; i < len(s.Writes); i++ {
		if s.Writes[i].Cycle < s.Writes[i-1].Cycle {
			return nil, fmt.Errorf("script event %d out of cycle order (%d after %d)",
				i, s.Writes[i].Cycle, s.Writes[i-1].Cycle)
		}
	}
	return &s, nil
}

func decodeWrite(d *jx.Decoder) (RegisterWrite, error) {
	var w RegisterWrite
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "cycle":
			v, err := d.UInt64()
			if err != nil {
				return err
			}
			w.Cycle = v
		case "addr":
			v, err := d.UInt64()
			if err != nil {
				return err
			}
			if v > 0xFFFF {
				return fmt.Errorf("addr %d out of range", v)
			}
			w.Addr = uint16(v)
		case "val":
			v, err := d.UInt64()
			if err != nil {
				return err
			}
			if v > 0xFF {
				return fmt.Errorf("val %d out of range", v)
			}
			w.Val = uint8(v)
		default:
			return d.Skip()
		}
		return nil
	})
	return w, err
}
