// Package arch defines the machine's instruction set along with
// some related helper functions.
package arch

import "strings"

// Known opcodes.
const (
	ADD  = 1
	MUL  = 2
	IN   = 3
	OUT  = 4
	JNZ  = 5
	JEZ  = 6
	CLT  = 7
	CEQ  = 8
	ARB  = 9
	HALT = 99
)

// Opcode returns the opcode for the given instruction name.
// Returns false if the name is not recognized.
func Opcode(name string) (int, bool) {
	switch strings.ToUpper(name) {
	case "ADD":
		return ADD, true
	case "MUL":
		return MUL, true
	case "IN":
		return IN, true
	case "OUT":
		return OUT, true
	case "JNZ":
		return JNZ, true
	case "JEZ":
		return JEZ, true
	case "CLT":
		return CLT, true
	case "CEQ":
		return CEQ, true
	case "ARB":
		return ARB, true
	case "HALT":
		return HALT, true
	}

	return 0, false
}

// Name returns the name for the given opcode.
// Returns false if the opcode is not recognized.
func Name(opcode int) (string, bool) {
	switch opcode {
	case ADD:
		return "ADD", true
	case MUL:
		return "MUL", true
	case IN:
		return "IN", true
	case OUT:
		return "OUT", true
	case JNZ:
		return "JNZ", true
	case JEZ:
		return "JEZ", true
	case CLT:
		return "CLT", true
	case CEQ:
		return "CEQ", true
	case ARB:
		return "ARB", true
	case HALT:
		return "HALT", true
	}

	return "", false
}

// Argc returns the number of arguments the given instruction requires.
// Returns -1 if the opcode is not recognized.
func Argc(opcode int) int {
	switch opcode {
	case ADD, MUL, CLT, CEQ:
		return 3
	case JNZ, JEZ:
		return 2
	case IN, OUT, ARB:
		return 1
	case HALT:
		return 0
	}
	return -1
}

// Width returns the number of tape cells occupied by the instruction,
// including the opcode word itself. Returns -1 if the opcode is not recognized.
func Width(opcode int) int {
	argc := Argc(opcode)
	if argc < 0 {
		return -1
	}
	return argc + 1
}

// Writes returns the index of the operand the instruction writes its result to.
// Returns -1 if the instruction does not write to the tape.
func Writes(opcode int) int {
	switch opcode {
	case ADD, MUL, CLT, CEQ:
		return 2
	case IN:
		return 0
	}
	return -1
}

// Extended returns true if the opcode is only available on machines with the
// relative base extension enabled.
func Extended(opcode int) bool {
	return opcode == ARB
}
