package hw

// Mapper routes bus accesses falling outside the address ranges the core
// owns (internal RAM, APU registers). Cartridge hardware decides what, if
// anything, responds there. The ok return reports whether the mapper claimed
// the access; unclaimed accesses fall back to the bus default (log, read 0,
// drop write).
type Mapper interface {
	ReadMem(addr uint16) (val uint8, ok bool)
	WriteMem(addr uint16, val uint8) (ok bool)
}
