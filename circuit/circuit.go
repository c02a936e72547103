// Package circuit wires several machines together through pipes.
//
// Two topologies are supported. In a pipeline, machine k feeds machine k+1
// and the output of the last machine is collected by the caller. In a loop,
// the last machine feeds the first one again.
//
// Each machine owns exactly one receiver and one sender. The circuit keeps
// an extra sender for every machine input, so callers can seed values before
// the machines are started.
package circuit

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/hexaflex/intcode/cpu"
	"github.com/hexaflex/intcode/pipe"
)

// Circuit holds a set of machines and the pipes connecting them.
type Circuit struct {
	cpus  []*cpu.CPU
	seeds []*pipe.Sender // Caller-held sender for each machine's input.
	out   *pipe.Receiver // Terminal pipe.
	once  sync.Once
}

// Pipeline creates n machines from b where machine k feeds machine k+1.
// The output of the last machine is available through Output.
func Pipeline(b *cpu.Builder, n int, opts ...cpu.Option) *Circuit {
	tx, rx := pipes(n + 1)
	c := &Circuit{out: rx[n]}

	for k := 0; k < n; k++ {
		if k == 0 {
			c.seeds = append(c.seeds, tx[0])
		} else {
			c.seeds = append(c.seeds, tx[k].Clone())
		}
		c.cpus = append(c.cpus, b.Bind(rx[k], tx[k+1], opts...))
	}

	return c
}

// Loop creates n machines from b where machine k feeds machine k+1
// and the last machine feeds the first. The values left in the first
// machine's input after all machines have halted are available
// through Output.
func Loop(b *cpu.Builder, n int, opts ...cpu.Option) *Circuit {
	tx, rx := pipes(n)
	c := &Circuit{out: rx[0]}

	for k := 0; k < n; k++ {
		c.seeds = append(c.seeds, tx[k].Clone())
		c.cpus = append(c.cpus, b.Bind(rx[k], tx[(k+1)%n], opts...))
	}

	return c
}

// pipes allocates n pipes.
func pipes(n int) ([]*pipe.Sender, []*pipe.Receiver) {
	tx := make([]*pipe.Sender, n)
	rx := make([]*pipe.Receiver, n)
	for i := range tx {
		tx[i], rx[i] = pipe.New()
	}
	return tx, rx
}

// Len returns the number of machines in the circuit.
func (c *Circuit) Len() int {
	return len(c.cpus)
}

// Machine returns the machine with the given index.
func (c *Circuit) Machine(k int) *cpu.CPU {
	return c.cpus[k]
}

// Seed sends v to the input of machine k. Seeding is only possible
// before Run is called.
func (c *Circuit) Seed(k int, v int64) error {
	if k < 0 || k >= len(c.seeds) {
		return errors.Errorf("seed: machine %d out of range [0, %d)", k, len(c.seeds))
	}
	return errors.Wrapf(c.seeds[k].Send(v), "seed machine %d", k)
}

// Output returns the circuit's terminal pipe.
func (c *Circuit) Output() *pipe.Receiver {
	return c.out
}

// Run starts every machine on its own goroutine and waits for all of
// them to terminate. The circuit's seed senders are closed first.
//
// If a machine faults, or ctx is cancelled, every machine is shut down so
// that machines blocked on input terminate as well. The first fault is
// returned.
func (c *Circuit) Run(ctx context.Context) error {
	for _, s := range c.seeds {
		s.Close()
	}

	stop := make(chan struct{})
	defer close(stop)

	go func() {
		select {
		case <-ctx.Done():
			c.shutdown()
		case <-stop:
		}
	}()

	var g errgroup.Group

	for k, m := range c.cpus {
		k, m := k, m
		g.Go(func() error {
			if err := m.Run(); err != nil {
				c.shutdown()
				return errors.Wrapf(err, "machine %d", k)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}

	return ctx.Err()
}

// shutdown closes the pipe endpoints of every machine.
func (c *Circuit) shutdown() {
	c.once.Do(func() {
		for _, m := range c.cpus {
			m.Shutdown()
		}
	})
}
