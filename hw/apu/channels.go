package apu

import "strings"

// Channel identifies one of the five APU sound channels.
type Channel uint8

const (
	Square1 Channel = iota
	Square2
	Triangle
	Noise
	DMC

	numChannels
)

var channelNames = [numChannels]string{
	"square1", "square2", "triangle", "noise", "dmc",
}

func (c Channel) String() string {
	if c >= numChannels {
		return "<invalid>"
	}
	return channelNames[c]
}

// ChannelMask is a fixed-size set of channels. The zero value is the empty
// set.
//
// Two independent masks drive channel enablement: the guest mask, written by
// the emulated program through $4015, and the host mask, toggled by the
// user. A channel produces output only when present in both.
type ChannelMask uint8

// AllChannels is the set containing the five channels.
const AllChannels = ChannelMask(1<<numChannels - 1)

// MaskOf builds the set containing the given channels.
func MaskOf(channels ...Channel) ChannelMask {
	var m ChannelMask
	for _, c := range channels {
		m.Insert(c)
	}
	return m
}

func (m ChannelMask) Contains(c Channel) bool {
	return m&(1<<c) != 0
}

func (m *ChannelMask) Insert(c Channel) {
	*m |= 1 << c
}

func (m *ChannelMask) Remove(c Channel) {
	*m &^= 1 << c
}

func (m *ChannelMask) Toggle(c Channel) {
	*m ^= 1 << c
}

func (m ChannelMask) String() string {
	names := make([]string, 0, numChannels)
	for c := Square1; c < numChannels; c++ {
		if m.Contains(c) {
			names = append(names, c.String())
		}
	}
	return "{" + strings.Join(names, ",") + "}"
}
