package arch

// AddressMode defines instruction operand address modes.
type AddressMode int

// Known address modes.
const (
	Position  AddressMode = 0 // x = mem[123]
	Immediate AddressMode = 1 // x = 123
	Relative  AddressMode = 2 // x = mem[rb+123]
)

// Valid returns true if the mode is a known address mode.
// The relative mode is only valid when extended is set.
func (m AddressMode) Valid(extended bool) bool {
	switch m {
	case Position, Immediate:
		return true
	case Relative:
		return extended
	}
	return false
}

func (m AddressMode) String() string {
	switch m {
	case Position:
		return "position"
	case Immediate:
		return "immediate"
	case Relative:
		return "relative"
	}
	return "unknown"
}
