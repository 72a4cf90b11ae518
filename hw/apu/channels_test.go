package apu

import "testing"

func TestChannelMask(t *testing.T) {
	var m ChannelMask

	for c := Square1; c <= DMC; c++ {
		if m.Contains(c) {
			t.Fatalf("empty mask contains %s", c)
		}
	}

	m.Insert(Triangle)
	if !m.Contains(Triangle) {
		t.Error("mask should contain triangle")
	}
	if m.Contains(Square1) {
		t.Error("mask should not contain square1")
	}

	m.Toggle(Triangle)
	if m.Contains(Triangle) {
		t.Error("toggle should have removed triangle")
	}
	m.Toggle(Noise)
	if !m.Contains(Noise) {
		t.Error("toggle should have added noise")
	}

	m.Remove(Noise)
	if m != 0 {
		t.Errorf("mask = %s, want empty", m)
	}
}

func TestChannelMaskAll(t *testing.T) {
	m := AllChannels
	for c := Square1; c <= DMC; c++ {
		if !m.Contains(c) {
			t.Errorf("AllChannels should contain %s", c)
		}
	}
	if MaskOf(Square1, Square2, Triangle, Noise, DMC) != AllChannels {
		t.Error("MaskOf all channels != AllChannels")
	}
}

func TestChannelMaskString(t *testing.T) {
	m := MaskOf(Square1, Triangle)
	if got := m.String(); got != "{square1,triangle}" {
		t.Errorf("mask = %s, want {square1,triangle}", got)
	}
}
