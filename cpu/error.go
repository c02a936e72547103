package cpu

import "fmt"

// ErrorKind classifies runtime errors.
type ErrorKind int

// Known error kinds.
const (
	ProgramError ErrorKind = iota // Semantically impossible machine state.
	DecodeError                   // Unknown opcode or malformed mode digit.
	AddressError                  // Out-of-range tape access.
	IOError                       // Input or output on a closed pipe.
)

func (k ErrorKind) String() string {
	switch k {
	case DecodeError:
		return "decode error"
	case AddressError:
		return "address error"
	case IOError:
		return "i/o error"
	}
	return "program error"
}

// Error defines a runtime error.
type Error struct {
	Instruction           // Instruction being executed when the fault occurred.
	Kind        ErrorKind // Error classification.
	Msg         string    // Human readable description.
	Err         error     // Optional underlying error.
}

// NewError creates a new, formatted error message for the given instruction.
func NewError(instr *Instruction, kind ErrorKind, f string, argv ...interface{}) *Error {
	e := &Error{
		Kind: kind,
		Msg:  fmt.Sprintf(f, argv...),
	}
	if instr != nil {
		e.Instruction = *instr
	}
	return e
}

// wrapError creates a new error of the given kind with err as its cause.
func wrapError(instr *Instruction, kind ErrorKind, err error, f string, argv ...interface{}) *Error {
	e := NewError(instr, kind, f, argv...)
	e.Err = err
	return e
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%04d: %s: %s: %v", e.IP, e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%04d: %s: %s", e.IP, e.Kind, e.Msg)
}

// Unwrap returns the underlying error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}
