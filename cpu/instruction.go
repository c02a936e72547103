package cpu

import (
	"github.com/hexaflex/intcode/arch"
)

// Instruction defines decoded instruction data.
type Instruction struct {
	IP     int64      // Instruction address.
	Word   int64      // Packed opcode word.
	Opcode int        // Instruction opcode.
	Argc   int        // Number of operands in use.
	Args   [3]Operand // Operand A, B and C.
}

// Operand defines decoded instruction operand data.
type Operand struct {
	Word    int64            // Raw parameter word.
	Address int64            // Effective address. -1 for immediate reads.
	Value   int64            // Dereferenced value. Not resolved for write operands.
	Mode    arch.AddressMode // Address mode.
}

// decode decodes the instruction at the current instruction pointer.
// Read operands are resolved to values; write operands only to addresses.
func (c *CPU) decode(i *Instruction) error {
	i.IP = c.ip
	i.Word = 0
	i.Opcode = 0
	i.Argc = 0

	word, err := c.load(i, c.ip)
	if err != nil {
		return err
	}

	i.Word = word
	i.Opcode = int(word % 100)

	argc := arch.Argc(i.Opcode)
	if argc < 0 || (arch.Extended(i.Opcode) && !c.extended) {
		return NewError(i, DecodeError, "unknown opcode %02d", i.Opcode)
	}

	i.Argc = argc
	modes := word / 100
	out := arch.Writes(i.Opcode)

	for j := 0; j < argc; j++ {
		op := &i.Args[j]
		op.Mode = arch.AddressMode(modes % 10)
		modes /= 10

		if !op.Mode.Valid(c.extended) {
			return NewError(i, DecodeError, "invalid mode %d for operand %d", op.Mode, j)
		}

		op.Word, err = c.load(i, c.ip+int64(j)+1)
		if err != nil {
			return err
		}

		if j == out {
			// Write operands are addresses regardless of an immediate mode digit.
			op.Address = op.Word
			if op.Mode == arch.Relative {
				op.Address += c.rb
			}
			continue
		}

		if err := c.resolve(i, op); err != nil {
			return err
		}
	}

	return nil
}

// resolve resolves a read operand to its value.
func (c *CPU) resolve(i *Instruction, op *Operand) (err error) {
	switch op.Mode {
	case arch.Immediate:
		op.Address = -1
		op.Value = op.Word
		return nil
	case arch.Relative:
		op.Address = c.rb + op.Word
	default:
		op.Address = op.Word
	}

	op.Value, err = c.load(i, op.Address)
	return err
}
