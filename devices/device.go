// Package devices connects peripherals to a machine.
//
// A peripheral sees the machine only through its pipes: it sends values to
// the machine's input and receives whatever the machine writes to its output.
package devices

import (
	"context"
	"log"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/hexaflex/intcode/cpu"
	"github.com/hexaflex/intcode/pipe"
)

// Device represents a peripheral device.
type Device interface {
	// ID yields the manufacturer and serial number for the device.
	ID() ID

	// Serve drives the device until the machine's output is exhausted.
	// Values sent to in are delivered to the machine's input. out yields the
	// machine's output and reports pipe.ErrClosed once the machine has
	// stopped.
	Serve(in *pipe.Sender, out *pipe.Receiver) error
}

// Attach creates a machine from b, connects dev to it and runs both until
// the machine has stopped and the device has returned.
//
// If either side fails, the other one is shut down. All errors are
// returned as an ErrorSet.
func Attach(ctx context.Context, b *cpu.Builder, dev Device, opts ...cpu.Option) error {
	inTx, inRx := pipe.New()
	outTx, outRx := pipe.New()
	m := b.Bind(inRx, outTx, opts...)

	stop := make(chan struct{})
	defer close(stop)

	go func() {
		select {
		case <-ctx.Done():
			m.Shutdown()
			outRx.Close()
		case <-stop:
		}
	}()

	log.Println(dev.ID(), "startup")

	var (
		g              errgroup.Group
		cpuErr, devErr error
	)

	g.Go(func() error {
		cpuErr = m.Run()
		return nil
	})

	g.Go(func() error {
		defer inTx.Close()

		devErr = dev.Serve(inTx, outRx)
		if devErr != nil {
			m.Shutdown()
		}
		return nil
	})

	g.Wait()
	log.Println(dev.ID(), "shutdown")

	var errorset ErrorSet

	if err := ctx.Err(); err != nil {
		errorset.Append(err)
	} else {
		if cpuErr != nil {
			errorset.Append(errors.Wrapf(cpuErr, "%s", m.ID()))
		}
		if devErr != nil {
			errorset.Append(errors.Wrapf(devErr, "%s", dev.ID()))
		}
	}

	if errorset.Len() == 0 {
		return nil
	}

	return errorset
}
