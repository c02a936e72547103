package cpu

// MaxMemory is the upper bound on the tape size of an extended machine.
// Addresses beyond it are rejected rather than allocated.
const MaxMemory = 1 << 26

// Memory defines the machine's tape.
type Memory []int64

// Clone returns an independent copy of the tape.
func (m Memory) Clone() Memory {
	c := make(Memory, len(m))
	copy(c, m)
	return c
}

// valid returns true if addr lies within the tape.
func (m Memory) valid(addr int64) bool {
	return addr >= 0 && addr < int64(len(m))
}

// ensure grows the tape with zeroes until addr is a valid address.
// Returns false if addr is negative or exceeds MaxMemory.
func (m *Memory) ensure(addr int64) bool {
	if addr < 0 || addr >= MaxMemory {
		return false
	}

	if addr < int64(len(*m)) {
		return true
	}

	size := int64(cap(*m))
	for size <= addr {
		size = size*2 + 1
	}
	if size > MaxMemory {
		size = MaxMemory
	}

	grown := make(Memory, addr+1, size)
	copy(grown, *m)
	*m = grown
	return true
}
