package cpu

import (
	"io"
	"log"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/hexaflex/intcode/image"
	"github.com/hexaflex/intcode/pipe"
)

// Option configures a machine.
type Option func(*CPU)

// Extended enables the relative base register, the relative address mode,
// the ARB instruction and automatic tape growth.
func Extended() Option {
	return func(c *CPU) { c.extended = true }
}

// Trace sets the debug trace handler.
func Trace(fn TraceFunc) Option {
	return func(c *CPU) {
		if fn != nil {
			c.trace = fn
		}
	}
}

// Logger sets the logger which receives lifecycle messages.
// Machines are silent by default.
func Logger(l *log.Logger) Option {
	return func(c *CPU) {
		if l != nil {
			c.log = l
		}
	}
}

// Builder holds a parsed program image from which any number of
// machines can be created.
type Builder struct {
	image image.Image
}

// Load parses the given program text into a Builder.
func Load(text string) (*Builder, error) {
	img, err := image.Parse(text)
	if err != nil {
		return nil, errors.Wrap(err, "load program")
	}
	return &Builder{image: img}, nil
}

// LoadFile reads and parses the given program file into a Builder.
func LoadFile(file string) (*Builder, error) {
	img, err := image.Load(file)
	if err != nil {
		return nil, err
	}
	return &Builder{image: img}, nil
}

// NewBuilder creates a builder for a copy of the given image.
func NewBuilder(img image.Image) *Builder {
	return &Builder{image: img.Clone()}
}

// Image returns a copy of the builder's program image.
func (b *Builder) Image() image.Image {
	return b.image.Clone()
}

// Patch overwrites the value at the given address of the builder's image.
// Machines bound afterwards see the patched value.
func (b *Builder) Patch(addr int, value int64) error {
	if addr < 0 || addr >= len(b.image) {
		return errors.Errorf("patch: address %d out of range [0, %d)", addr, len(b.image))
	}
	b.image[addr] = value
	return nil
}

// Bind creates a new machine running a private copy of the image,
// reading input from in and writing output to out.
func (b *Builder) Bind(in *pipe.Receiver, out *pipe.Sender, opts ...Option) *CPU {
	c := &CPU{
		id:     uuid.New(),
		memory: Memory(b.image.Clone()),
		in:     in,
		out:    out,
		trace:  func(*Instruction) { /* nop */ },
		log:    log.New(io.Discard, "", 0),
		state:  int32(Loaded),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}
