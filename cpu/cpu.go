// Package cpu implements the Intcode machine.
//
// A machine owns a tape, an instruction pointer and one endpoint of two
// pipes: it receives input from a pipe.Receiver and sends output through a
// pipe.Sender. Machines share nothing else, so any number of them can run
// in parallel, wired together through their pipes.
package cpu

import (
	"io"
	"log"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/hexaflex/intcode/arch"
	"github.com/hexaflex/intcode/pipe"
)

// TraceFunc represents a callback handler for debug trace output.
type TraceFunc func(*Instruction)

// State defines the lifecycle state of a machine.
type State int32

// Known machine states.
const (
	Loaded State = iota
	Running
	Halted
	Faulted
)

func (s State) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Running:
		return "running"
	case Halted:
		return "halted"
	case Faulted:
		return "faulted"
	}
	return "unknown"
}

// CPU implements the runtime.
type CPU struct {
	cycles   uint64         // Number of instructions executed. First for 64-bit alignment.
	mu       sync.Mutex     // Guards memory, ip and rb.
	id       uuid.UUID      // Instance id used in log output.
	memory   Memory         // Program tape.
	ip       int64          // Instruction pointer.
	rb       int64          // Relative base register.
	in       *pipe.Receiver // Input pipe.
	out      *pipe.Sender   // Output pipe.
	instr    Instruction    // Decoded instruction data.
	trace    TraceFunc      // Handler for debug trace output.
	log      *log.Logger    // Lifecycle log output.
	extended bool           // Are relative addressing and tape growth enabled?
	state    int32          // Current State.
	err      error          // Fault which stopped the machine.
}

// ID returns the machine's instance id.
func (c *CPU) ID() uuid.UUID {
	return c.id
}

// State returns the machine's current lifecycle state.
func (c *CPU) State() State {
	return State(atomic.LoadInt32(&c.state))
}

// Err returns the error which faulted the machine, if any.
func (c *CPU) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Memory returns a snapshot of the machine's tape.
// The snapshot is not affected by further execution.
func (c *CPU) Memory() Memory {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.memory.Clone()
}

// IP returns the current instruction pointer.
func (c *CPU) IP() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ip
}

// RelativeBase returns the current value of the relative base register.
func (c *CPU) RelativeBase() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rb
}

// Cycles returns the number of instructions executed so far.
func (c *CPU) Cycles() uint64 {
	return atomic.LoadUint64(&c.cycles)
}

// Run executes the program until it halts or faults.
// The output pipe is closed when Run returns, which signals the end of the
// stream to the downstream consumer. Halting is not an error.
func (c *CPU) Run() error {
	if !atomic.CompareAndSwapInt32(&c.state, int32(Loaded), int32(Running)) {
		return NewError(nil, ProgramError, "machine is %s", c.State())
	}

	defer c.out.Close()
	c.log.Println(c.id, "startup")

	for {
		err := c.Step()
		if err == nil {
			continue
		}

		if err == io.EOF {
			c.log.Println(c.id, "halt")
			return nil
		}

		c.log.Println(c.id, "fault:", err)
		return err
	}
}

// Shutdown closes both of the machine's pipe endpoints.
// A machine blocked on input fails with an I/O error.
func (c *CPU) Shutdown() {
	c.in.Close()
	c.out.Close()
}

// Step performs a single execution step.
// Returns io.EOF if the program has reached a halt instruction.
// A loaded machine moves to the running state on its first step; halted
// and faulted machines can not be stepped.
func (c *CPU) Step() error {
	if !atomic.CompareAndSwapInt32(&c.state, int32(Loaded), int32(Running)) {
		if s := c.State(); s != Running {
			return NewError(nil, ProgramError, "machine is %s", s)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.step()
	switch {
	case err == io.EOF:
		atomic.StoreInt32(&c.state, int32(Halted))
	case err != nil:
		c.err = err
		atomic.StoreInt32(&c.state, int32(Faulted))
	}
	return err
}

// step executes the instruction at the current instruction pointer.
// The caller holds c.mu.
func (c *CPU) step() error {
	instr := &c.instr
	args := instr.Args[:]

	if err := c.decode(instr); err != nil {
		return err
	}

	c.trace(instr)
	atomic.AddUint64(&c.cycles, 1)

	jumped := false

	switch instr.Opcode {
	case arch.ADD:
		if err := c.store(instr, args[2].Address, args[0].Value+args[1].Value); err != nil {
			return err
		}
	case arch.MUL:
		if err := c.store(instr, args[2].Address, args[0].Value*args[1].Value); err != nil {
			return err
		}
	case arch.CLT:
		if err := c.store(instr, args[2].Address, _bool(args[0].Value < args[1].Value)); err != nil {
			return err
		}
	case arch.CEQ:
		if err := c.store(instr, args[2].Address, _bool(args[0].Value == args[1].Value)); err != nil {
			return err
		}

	case arch.IN:
		// Don't hold the lock while waiting, so the tape can still be inspected.
		c.mu.Unlock()
		v, err := c.in.Receive()
		c.mu.Lock()

		if err != nil {
			return wrapError(instr, IOError, err, "input")
		}
		if err := c.store(instr, args[0].Address, v); err != nil {
			return err
		}
	case arch.OUT:
		if err := c.out.Send(args[0].Value); err != nil {
			return wrapError(instr, IOError, err, "output")
		}

	case arch.JNZ:
		if args[0].Value != 0 {
			c.ip = args[1].Value
			jumped = true
		}
	case arch.JEZ:
		if args[0].Value == 0 {
			c.ip = args[1].Value
			jumped = true
		}

	case arch.ARB:
		c.rb += args[0].Value

	case arch.HALT:
		return io.EOF
	}

	if !jumped {
		c.ip += int64(instr.Argc + 1)
	}

	return nil
}

// load returns the value at the given address.
func (c *CPU) load(instr *Instruction, addr int64) (int64, error) {
	if !c.memory.valid(addr) && !(c.extended && c.memory.ensure(addr)) {
		return 0, NewError(instr, AddressError, "read from invalid address %d", addr)
	}
	return c.memory[addr], nil
}

// store sets the value at the given address.
func (c *CPU) store(instr *Instruction, addr, value int64) error {
	if !c.memory.valid(addr) && !(c.extended && c.memory.ensure(addr)) {
		return NewError(instr, AddressError, "write to invalid address %d", addr)
	}
	c.memory[addr] = value
	return nil
}

func _bool(v bool) int64 {
	if v {
		return 1
	}
	return 0
}
