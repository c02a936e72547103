// Package arcade implements a breakout arcade cabinet.
//
// The machine draws the screen by writing x, y, tile triples. The triple
// -1, 0, n sets the score display to n. With autoplay enabled, the cabinet
// moves the joystick towards the ball once per frame.
package arcade

import (
	"github.com/pkg/errors"

	"github.com/hexaflex/intcode/devices"
	"github.com/hexaflex/intcode/pipe"
)

// Known tiles.
const (
	Empty = iota
	Wall
	Block
	Paddle
	Ball
)

// QuarterAddress is the tape address which enables free play when set to 2.
const QuarterAddress = 0

// Cabinet defines the cabinet state.
type Cabinet struct {
	screen   map[devices.Point]int64 // Tile per screen position.
	score    int64                   // Last score displayed.
	ball     devices.Point           // Last ball position.
	paddle   devices.Point           // Last paddle position.
	seen     bool                    // Has the paddle been drawn?
	pending  bool                    // Is a joystick move owed to the machine?
	autoplay bool                    // Drive the joystick?
}

var _ devices.Device = &Cabinet{}

// New creates a new cabinet.
func New(autoplay bool) *Cabinet {
	return &Cabinet{
		screen:   make(map[devices.Point]int64),
		autoplay: autoplay,
	}
}

// ID returns the cabinet's device id.
func (c *Cabinet) ID() devices.ID {
	return devices.NewID(0xfffe, 0x0013)
}

// Serve draws the machine's output until it stops.
func (c *Cabinet) Serve(in *pipe.Sender, out *pipe.Receiver) error {
	for {
		x, err := out.Receive()
		if err == pipe.ErrClosed {
			return nil
		}
		if err != nil {
			return err
		}

		y, err := out.Receive()
		if err != nil {
			return errors.Wrap(err, "incomplete draw instruction")
		}

		v, err := out.Receive()
		if err != nil {
			return errors.Wrap(err, "incomplete draw instruction")
		}

		if err := c.draw(in, x, y, v); err != nil {
			return err
		}
	}
}

// draw applies a single draw instruction.
func (c *Cabinet) draw(in *pipe.Sender, x, y, v int64) error {
	if x == -1 && y == 0 {
		c.score = v
		return nil
	}

	if v < Empty || v > Ball {
		return errors.Errorf("invalid tile %d at %d,%d", v, x, y)
	}

	p := devices.Point{X: int(x), Y: int(y)}
	c.screen[p] = v

	switch v {
	case Paddle:
		c.paddle = p
		c.seen = true
		if c.pending {
			c.pending = false
			return c.joystick(in)
		}
	case Ball:
		c.ball = p
		if !c.autoplay {
			return nil
		}
		if !c.seen {
			c.pending = true
			return nil
		}
		return c.joystick(in)
	}

	return nil
}

// joystick sends a joystick move towards the ball.
func (c *Cabinet) joystick(in *pipe.Sender) error {
	var tilt int64
	switch {
	case c.ball.X < c.paddle.X:
		tilt = -1
	case c.ball.X > c.paddle.X:
		tilt = 1
	}
	return errors.Wrap(in.Send(tilt), "joystick")
}

// Blocks returns the number of block tiles on screen.
func (c *Cabinet) Blocks() int {
	var n int
	for _, v := range c.screen {
		if v == Block {
			n++
		}
	}
	return n
}

// Score returns the last displayed score.
func (c *Cabinet) Score() int64 {
	return c.score
}

// Render draws the screen.
func (c *Cabinet) Render() string {
	return devices.Render(c.screen, func(v int64) byte {
		return " |#=o"[v]
	})
}
