package main

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	file := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(file, []byte(data), 0644))
	return file
}

func parse(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	fs := flag.NewFlagSet("intcode", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return parseFlags(fs, args)
}

func TestParseFlags(t *testing.T) {
	c, err := parse(t, "-day", "5", "-part", "2", "-trace", "prog.txt")
	require.NoError(t, err)
	assert.Equal(t, 5, c.Day)
	assert.Equal(t, 2, c.Part)
	assert.True(t, c.Trace)
	assert.Equal(t, "prog.txt", c.Program)

	c, err = parse(t, "-version")
	assert.NoError(t, err)
	assert.Nil(t, c)

	_, err = parse(t, "-day", "5", "-part", "3")
	assert.Error(t, err)

	_, err = parse(t, "-day", "4")
	assert.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "intcode.toml", `
trace = true
verbose = true

[programs]
5 = "day05.txt"
9 = "/abs/day09.txt"
`)

	c, err := parse(t, "-config", file, "-day", "5", "-trace=false")
	require.NoError(t, err)
	assert.False(t, c.Trace)
	assert.True(t, c.Verbose)

	path, err := c.programFor()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "day05.txt"), path)
	assert.Equal(t, "/abs/day09.txt", c.Programs["9"])

	c.Day = 2
	_, err = c.programFor()
	assert.Error(t, err)

	_, err = parse(t, "-config", filepath.Join(dir, "missing.toml"), "-day", "5")
	assert.Error(t, err)
}

func TestRunDays(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		day, part int
		program   string
		want      string
	}{
		{
			day: 5, part: 1,
			program: "3,21,1008,21,8,20,1005,20,22,107,8,21,20,1006,20,31,1106,0,36,98,0,0,1002,21,125,20,4,20,1105,1,46,104,999,1105,1,46,1101,1000,1,20,4,20,1105,1,46,98,99",
			want:    "999",
		},
		{
			day: 5, part: 2,
			program: "3,21,1008,21,8,20,1005,20,22,107,8,21,20,1006,20,31,1106,0,36,98,0,0,1002,21,125,20,4,20,1105,1,46,104,999,1105,1,46,1101,1000,1,20,4,20,1105,1,46,98,99",
			want:    "999",
		},
		{
			day: 7, part: 1,
			program: "3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0",
			want:    "43210",
		},
		{
			day: 7, part: 2,
			program: "3,26,1001,26,-4,26,3,27,1002,27,2,27,1,27,26,27,4,27,1001,28,-1,28,1005,28,6,99,0,0,5",
			want:    "139629729",
		},
		{
			day: 9, part: 1,
			program: "104,1125899906842624,99",
			want:    "1125899906842624",
		},
		{
			// Noun 12, verb 2: [0] = [12] + [2] = 28 + 2.
			day: 2, part: 1,
			program: "1,0,0,0,99,0,0,0,0,0,0,0,28",
			want:    "30",
		},
	}

	for _, test := range tests {
		file := writeFile(t, dir, "prog.txt", test.program+"\n")

		have, err := NewApp(&Config{Day: test.day, Part: test.part, Program: file}).Run()
		require.NoError(t, err, "day %d part %d", test.day, test.part)

		if test.day == 7 {
			// Drop the phase ordering.
			have = strings.Fields(have)[0]
		}
		assert.Equal(t, test.want, have, "day %d part %d", test.day, test.part)
	}
}

func TestRunDay5FailedTest(t *testing.T) {
	file := writeFile(t, t.TempDir(), "prog.txt", "104,1,104,2,99")

	_, err := NewApp(&Config{Day: 5, Part: 1, Program: file}).Run()
	assert.Error(t, err)
}

func TestPrettyFrequency(t *testing.T) {
	assert.Equal(t, "1.50 GHz", prettyFrequency(1.5e9))
	assert.Equal(t, "2.00 MHz", prettyFrequency(2e6))
	assert.Equal(t, "3.00 KHz", prettyFrequency(3e3))
	assert.Equal(t, "4.00 Hz", prettyFrequency(4))
}
