package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/hexaflex/intcode/circuit"
	"github.com/hexaflex/intcode/cpu"
	"github.com/hexaflex/intcode/devices"
	"github.com/hexaflex/intcode/devices/arcade"
	"github.com/hexaflex/intcode/devices/robot"
)

// solver solves one part of a puzzle for the given program.
type solver func(*App, *cpu.Builder) (string, error)

// day holds the solvers for both parts of a puzzle.
type day struct {
	part1, part2 solver
}

// days maps puzzle days to their solvers.
var days = map[int]day{
	2:  {day2a, day2b},
	5:  {day5a, day5b},
	7:  {day7a, day7b},
	9:  {day9a, day9b},
	11: {day11a, day11b},
	13: {day13a, day13b},
}

// gravityAssist runs the program with the given noun and verb patched in
// and returns the value left at address 0.
func gravityAssist(a *App, b *cpu.Builder, noun, verb int64) (int64, error) {
	b = cpu.NewBuilder(b.Image())
	if err := b.Patch(1, noun); err != nil {
		return 0, err
	}
	if err := b.Patch(2, verb); err != nil {
		return 0, err
	}

	mem, _, err := a.exec(b, nil)
	if err != nil {
		return 0, err
	}
	return mem[0], nil
}

func day2a(a *App, b *cpu.Builder) (string, error) {
	v, err := gravityAssist(a, b, 12, 2)
	return strconv.FormatInt(v, 10), err
}

func day2b(a *App, b *cpu.Builder) (string, error) {
	const want = 19690720

	for noun := int64(0); noun < 100; noun++ {
		for verb := int64(0); verb < 100; verb++ {
			v, err := gravityAssist(a, b, noun, verb)
			if err != nil {
				// Some combinations address past the end of the tape.
				continue
			}
			if v == want {
				return strconv.FormatInt(100*noun+verb, 10), nil
			}
		}
	}

	return "", errors.Errorf("no noun/verb pair produces %d", want)
}

// diagnostics runs the program with the given system id. Every output but
// the last is a test result which must be zero; the last is the
// diagnostic code.
func diagnostics(a *App, b *cpu.Builder, id int64, opts ...cpu.Option) (string, error) {
	_, out, err := a.exec(b, []int64{id}, opts...)
	if err != nil {
		return "", err
	}

	if len(out) == 0 {
		return "", errors.New("no diagnostic output")
	}

	for i, v := range out[:len(out)-1] {
		if v != 0 {
			return "", errors.Errorf("test %d failed with %d", i, v)
		}
	}

	return strconv.FormatInt(out[len(out)-1], 10), nil
}

func day5a(a *App, b *cpu.Builder) (string, error) { return diagnostics(a, b, 1) }
func day5b(a *App, b *cpu.Builder) (string, error) { return diagnostics(a, b, 5) }

func amplifiers(a *App, b *cpu.Builder, phases []int64, loop bool) (string, error) {
	v, order, err := circuit.MaxSignal(a.ctx(), b, phases, loop, a.options()...)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d (phases %v)", v, order), nil
}

func day7a(a *App, b *cpu.Builder) (string, error) {
	return amplifiers(a, b, []int64{0, 1, 2, 3, 4}, false)
}

func day7b(a *App, b *cpu.Builder) (string, error) {
	return amplifiers(a, b, []int64{5, 6, 7, 8, 9}, true)
}

func boost(a *App, b *cpu.Builder, mode int64) (string, error) {
	_, out, err := a.exec(b, []int64{mode}, cpu.Extended())
	if err != nil {
		return "", err
	}

	if len(out) != 1 {
		// More than one value means the BOOST self-test found broken opcodes.
		return "", errors.Errorf("BOOST self-test failed: %v", out)
	}

	return strconv.FormatInt(out[0], 10), nil
}

func day9a(a *App, b *cpu.Builder) (string, error) { return boost(a, b, 1) }
func day9b(a *App, b *cpu.Builder) (string, error) { return boost(a, b, 2) }

func day11a(a *App, b *cpu.Builder) (string, error) {
	r := robot.New(robot.Black)
	if err := devices.Attach(a.ctx(), b, r, a.options(cpu.Extended())...); err != nil {
		return "", err
	}
	return strconv.Itoa(r.Painted()), nil
}

func day11b(a *App, b *cpu.Builder) (string, error) {
	r := robot.New(robot.White)
	if err := devices.Attach(a.ctx(), b, r, a.options(cpu.Extended())...); err != nil {
		return "", err
	}
	return "\n" + r.Render(), nil
}

func day13a(a *App, b *cpu.Builder) (string, error) {
	c := arcade.New(false)
	if err := devices.Attach(a.ctx(), b, c, a.options(cpu.Extended())...); err != nil {
		return "", err
	}
	return strconv.Itoa(c.Blocks()), nil
}

func day13b(a *App, b *cpu.Builder) (string, error) {
	b = cpu.NewBuilder(b.Image())
	if err := b.Patch(arcade.QuarterAddress, 2); err != nil {
		return "", err
	}

	c := arcade.New(true)
	if err := devices.Attach(a.ctx(), b, c, a.options(cpu.Extended())...); err != nil {
		return "", err
	}

	if n := c.Blocks(); n > 0 {
		return "", errors.Errorf("game over with %d blocks left:\n%s", n, strings.TrimRight(c.Render(), "\n"))
	}

	return strconv.FormatInt(c.Score(), 10), nil
}
