package devices

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexaflex/intcode/cpu"
	"github.com/hexaflex/intcode/pipe"
)

// echo sends its values to the machine and records everything the machine
// writes back.
type echo struct {
	values []int64
	got    []int64
	fail   error
}

func (e *echo) ID() ID { return NewID(0xc0, 0xffee) }

func (e *echo) Serve(in *pipe.Sender, out *pipe.Receiver) error {
	for _, v := range e.values {
		if err := in.Send(v); err != nil {
			return err
		}
	}

	if e.fail != nil {
		return e.fail
	}

	e.got = out.Collect()
	return nil
}

func TestAttach(t *testing.T) {
	// Reads two values and writes their sum and product.
	b, err := cpu.Load("3,17,3,18,1,17,18,19,4,19,2,17,18,19,4,19,99,0,0,0")
	require.NoError(t, err)

	dev := &echo{values: []int64{6, 7}}
	require.NoError(t, Attach(context.Background(), b, dev))
	assert.Equal(t, []int64{13, 42}, dev.got)
}

func TestAttachMachineFault(t *testing.T) {
	b, err := cpu.Load("104,1,42")
	require.NoError(t, err)

	dev := &echo{}
	err = Attach(context.Background(), b, dev)
	require.Error(t, err)

	var cerr *cpu.Error
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, cpu.DecodeError, cerr.Kind)
	assert.Equal(t, []int64{1}, dev.got)
}

func TestAttachDeviceFault(t *testing.T) {
	// The machine waits for a second input the device never sends.
	b, err := cpu.Load("3,0,3,0,99")
	require.NoError(t, err)

	boom := errors.New("boom")
	dev := &echo{values: []int64{1}, fail: boom}

	done := make(chan error, 1)
	go func() { done <- Attach(context.Background(), b, dev) }()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, boom)

		var set ErrorSet
		require.True(t, errors.As(err, &set))
		assert.Equal(t, 2, set.Len())
	case <-time.After(5 * time.Second):
		t.Fatalf("Attach did not return")
	}
}

func TestAttachCancel(t *testing.T) {
	b, err := cpu.Load("3,0,99")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	// Blocks collecting output until the context is cancelled.
	err = Attach(ctx, b, &echo{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestID(t *testing.T) {
	id := NewID(0xfffe, 0x0011)
	assert.Equal(t, 0xfffe, id.Manufacturer())
	assert.Equal(t, 0x0011, id.Serial())
	assert.Equal(t, "fffe:0011", id.String())
}

func TestRender(t *testing.T) {
	grid := map[Point]int64{
		{-1, -1}: 1,
		{1, -1}:  1,
		{0, 0}:   1,
		{5, 5}:   0,
	}

	have := Render(grid, func(v int64) byte {
		if v == 1 {
			return '#'
		}
		return ' '
	})

	assert.Equal(t, "# #\n #", have)
	assert.Equal(t, "", Render(nil, func(int64) byte { return ' ' }))
}
