// Package robot implements a hull painting robot.
//
// The robot reports the colour of the panel below it to the machine, then
// expects two values back: the colour to paint the panel (0 black, 1 white)
// and the direction to turn (0 left, 1 right), after which it moves forward
// by one panel.
package robot

import (
	"github.com/pkg/errors"

	"github.com/hexaflex/intcode/devices"
	"github.com/hexaflex/intcode/pipe"
)

// Known panel colours.
const (
	Black = 0
	White = 1
)

// headings in clockwise order, starting with up.
var headings = [...]devices.Point{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}}

// Robot defines the robot state.
type Robot struct {
	panels  map[devices.Point]int64 // Panel colours.
	painted map[devices.Point]bool  // Panels painted at least once.
	pos     devices.Point           // Current position.
	heading int                     // Index into headings.
}

var _ devices.Device = &Robot{}

// New creates a robot standing on a panel of the given colour,
// facing up. All other panels are black.
func New(start int64) *Robot {
	return &Robot{
		panels:  map[devices.Point]int64{{}: start},
		painted: make(map[devices.Point]bool),
	}
}

// ID returns the robot's device id.
func (r *Robot) ID() devices.ID {
	return devices.NewID(0xfffe, 0x0011)
}

// Serve runs the robot until the machine stops producing instructions.
func (r *Robot) Serve(in *pipe.Sender, out *pipe.Receiver) error {
	for {
		if err := in.Send(r.panels[r.pos]); err != nil {
			return errors.Wrap(err, "camera")
		}

		color, err := out.Receive()
		if err == pipe.ErrClosed {
			return nil
		}
		if err != nil {
			return err
		}

		turn, err := out.Receive()
		if err != nil {
			return errors.Wrap(err, "missing turn instruction")
		}

		if err := r.step(color, turn); err != nil {
			return err
		}
	}
}

// step paints the current panel, turns and moves forward.
func (r *Robot) step(color, turn int64) error {
	if color != Black && color != White {
		return errors.Errorf("invalid colour %d", color)
	}

	r.panels[r.pos] = color
	r.painted[r.pos] = true

	switch turn {
	case 0:
		r.heading = (r.heading + 3) % 4
	case 1:
		r.heading = (r.heading + 1) % 4
	default:
		return errors.Errorf("invalid turn %d", turn)
	}

	r.pos = r.pos.Add(headings[r.heading])
	return nil
}

// Position returns the robot's current position.
func (r *Robot) Position() devices.Point {
	return r.pos
}

// Painted returns the number of panels painted at least once.
func (r *Robot) Painted() int {
	return len(r.painted)
}

// Render draws the white panels.
func (r *Robot) Render() string {
	return devices.Render(r.panels, func(v int64) byte {
		if v == White {
			return '#'
		}
		return ' '
	})
}
