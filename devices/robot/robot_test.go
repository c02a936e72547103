package robot

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexaflex/intcode/cpu"
	"github.com/hexaflex/intcode/devices"
	"github.com/hexaflex/intcode/pipe"
)

// example is the sequence of paint/turn instructions from the robot's manual.
var example = [][2]int64{{1, 0}, {0, 0}, {1, 0}, {1, 0}, {0, 1}, {1, 0}, {1, 0}}

// program returns an Intcode program which reads one camera value before
// writing each instruction pair, ignoring what it reads.
func program(pairs [][2]int64) string {
	var words []string
	for _, p := range pairs {
		words = append(words, "3,SCRATCH", fmt.Sprintf("104,%d,104,%d", p[0], p[1]))
	}
	words = append(words, "99", "0")

	prog := strings.Join(words, ",")
	scratch := strings.Count(prog, ",")
	return strings.ReplaceAll(prog, "SCRATCH", fmt.Sprint(scratch))
}

func TestServe(t *testing.T) {
	assert := assert.New(t)

	tx, rx := pipe.New()
	camera, cameraRx := pipe.New()

	for _, p := range example {
		tx.Send(p[0])
		tx.Send(p[1])
	}
	tx.Close()

	r := New(Black)
	require.NoError(t, r.Serve(camera, rx))

	assert.Equal(6, r.Painted())
	assert.Equal(devices.Point{X: 0, Y: -1}, r.Position())

	// One camera reading per instruction pair plus the final one.
	assert.Equal([]int64{0, 0, 0, 0, 1, 0, 0, 0}, cameraRx.Drain())
}

func TestAttach(t *testing.T) {
	b, err := cpu.Load(program(example))
	require.NoError(t, err)

	r := New(Black)
	require.NoError(t, devices.Attach(context.Background(), b, r))
	assert.Equal(t, 6, r.Painted())
	assert.Equal(t, "  #\n  #\n##", r.Render())
}

func TestStartOnWhite(t *testing.T) {
	r := New(White)
	assert.Equal(t, "#", r.Render())
	assert.Equal(t, 0, r.Painted())
}

func TestInvalidInstructions(t *testing.T) {
	for _, pair := range [][]int64{{2, 0}, {1, 5}, {1}} {
		tx, rx := pipe.New()
		camera, _ := pipe.New()

		for _, v := range pair {
			tx.Send(v)
		}
		tx.Close()

		assert.Error(t, New(Black).Serve(camera, rx), "pair %v", pair)
	}
}
