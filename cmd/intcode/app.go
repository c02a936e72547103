package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/hexaflex/intcode/arch"
	"github.com/hexaflex/intcode/cpu"
	"github.com/hexaflex/intcode/pipe"
)

// App defines application context.
type App struct {
	config  *Config         // Application configuration.
	cycles  uint64          // Instructions executed by single-machine puzzles.
	start   time.Time       // Time the puzzle was started.
	trace   *log.Logger     // Trace output.
	opts    []cpu.Option    // Options applied to every machine.
	context context.Context // Cancelled on interrupt.
}

// NewApp creates a new application instance using the given configuration.
func NewApp(config *Config) *App {
	var a App
	a.config = config
	a.trace = log.New(os.Stdout, "", 0)

	if config.Trace {
		a.opts = append(a.opts, cpu.Trace(a.printTrace))
	}

	if config.Verbose {
		a.opts = append(a.opts, cpu.Logger(log.New(os.Stderr, "", log.LstdFlags)))
	}

	return &a
}

// Run loads the configured program and solves the selected puzzle part.
func (a *App) Run() (string, error) {
	file, err := a.config.programFor()
	if err != nil {
		return "", err
	}

	b, err := cpu.LoadFile(file)
	if err != nil {
		return "", err
	}

	if a.config.Verbose {
		log.Println(Version())
		log.Println("loaded", file)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	a.context = ctx

	a.start = time.Now()
	day := days[a.config.Day]

	solve := day.part1
	if a.config.Part == 2 {
		solve = day.part2
	}

	result, err := solve(a, b)
	if err != nil {
		return "", err
	}

	if a.config.Verbose {
		elapsed := time.Since(a.start)
		log.Printf("%d instructions in %v (%s)", a.cycles, elapsed, prettyFrequency(float64(a.cycles)/elapsed.Seconds()))
	}

	return result, nil
}

// options returns the machine options for this run, followed by extra.
func (a *App) options(extra ...cpu.Option) []cpu.Option {
	opts := make([]cpu.Option, 0, len(a.opts)+len(extra))
	opts = append(opts, a.opts...)
	return append(opts, extra...)
}

// exec runs a single machine from b, feeding it the given input.
// Returns the final tape and every value the machine wrote.
func (a *App) exec(b *cpu.Builder, input []int64, opts ...cpu.Option) (cpu.Memory, []int64, error) {
	tx, rx := pipe.New()
	m := b.Bind(pipe.FromSlice(input...), tx, a.options(opts...)...)

	err := m.Run()
	a.cycles += m.Cycles()
	if err != nil {
		return m.Memory(), nil, err
	}

	return m.Memory(), rx.Drain(), nil
}

// ctx returns the context puzzles run under. It is cancelled on interrupt.
func (a *App) ctx() context.Context {
	if a.context == nil {
		return context.Background()
	}
	return a.context
}

// printTrace prints instruction trace data.
func (a *App) printTrace(i *cpu.Instruction) {
	var sb strings.Builder
	sb.Grow(80)

	name, ok := arch.Name(i.Opcode)
	if !ok {
		name = fmt.Sprintf("%02d", i.Opcode)
	}

	out := arch.Writes(i.Opcode)

	for j := 0; j < i.Argc; j++ {
		argv := i.Args[j]

		switch {
		case j == out:
			fmt.Fprintf(&sb, "[%d]", argv.Address)
		case argv.Mode == arch.Immediate:
			fmt.Fprintf(&sb, "%d", argv.Value)
		default:
			fmt.Fprintf(&sb, "[%d] %d", argv.Address, argv.Value)
		}

		if j < i.Argc-1 {
			sb.WriteString(", ")
		}
	}

	a.trace.Printf("%06d %5d  %-4s %s", i.IP, i.Word, name, sb.String())
}

// prettyFrequency returns a human-readable version of the given clock frequency in herz.
func prettyFrequency(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.2f GHz", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2f MHz", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.2f KHz", v/1e3)
	default:
		return fmt.Sprintf("%.2f Hz", v)
	}
}
