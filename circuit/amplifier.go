package circuit

import (
	"context"

	"github.com/pkg/errors"

	"github.com/hexaflex/intcode/cpu"
)

// Signal builds a circuit with one machine per phase setting, seeds every
// machine with its phase, sends input to the first machine and returns the
// last value left on the terminal pipe. If loop is set, the machines are
// connected in a feedback loop, otherwise as a pipeline.
func Signal(ctx context.Context, b *cpu.Builder, phases []int64, input int64, loop bool, opts ...cpu.Option) (int64, error) {
	var c *Circuit
	if loop {
		c = Loop(b, len(phases), opts...)
	} else {
		c = Pipeline(b, len(phases), opts...)
	}

	for k, p := range phases {
		if err := c.Seed(k, p); err != nil {
			return 0, err
		}
	}

	if err := c.Seed(0, input); err != nil {
		return 0, err
	}

	if err := c.Run(ctx); err != nil {
		return 0, err
	}

	values := c.Output().Drain()
	if len(values) == 0 {
		return 0, errors.Errorf("phases %v: no output signal", phases)
	}

	return values[len(values)-1], nil
}

// MaxSignal tries every ordering of the given phase settings and returns
// the highest signal along with the ordering which produced it.
func MaxSignal(ctx context.Context, b *cpu.Builder, phases []int64, loop bool, opts ...cpu.Option) (int64, []int64, error) {
	var (
		best  int64
		order []int64
	)

	for _, p := range Permutations(phases) {
		v, err := Signal(ctx, b, p, 0, loop, opts...)
		if err != nil {
			return 0, nil, err
		}

		if order == nil || v > best {
			best, order = v, p
		}
	}

	return best, order, nil
}

// Permutations returns every ordering of values.
func Permutations(values []int64) [][]int64 {
	a := make([]int64, len(values))
	copy(a, values)

	var out [][]int64
	var permute func(int)

	permute = func(k int) {
		if k == len(a) {
			p := make([]int64, len(a))
			copy(p, a)
			out = append(out, p)
			return
		}

		for i := k; i < len(a); i++ {
			a[k], a[i] = a[i], a[k]
			permute(k + 1)
			a[k], a[i] = a[i], a[k]
		}
	}

	permute(0)
	return out
}
