package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config defines program configuration.
type Config struct {
	Day      int               `toml:"-"`        // Puzzle day to run.
	Part     int               `toml:"-"`        // Puzzle part to run: 1 or 2.
	Program  string            `toml:"-"`        // Path to the program image to load.
	Trace    bool              `toml:"trace"`    // Print instruction trace data?
	Verbose  bool              `toml:"verbose"`  // Log machine lifecycle events?
	Programs map[string]string `toml:"programs"` // Program image path per day.
}

// loadConfig decodes the TOML configuration file at the given path into c.
// Relative program paths are resolved against the file's directory.
func loadConfig(file string, c *Config) error {
	if _, err := toml.DecodeFile(file, c); err != nil {
		return errors.Wrapf(err, "config %s", file)
	}

	dir := filepath.Dir(file)
	for day, path := range c.Programs {
		if !filepath.IsAbs(path) {
			c.Programs[day] = filepath.Join(dir, path)
		}
	}

	return nil
}

// programFor returns the program path configured for the current day.
func (c *Config) programFor() (string, error) {
	if c.Program != "" {
		return c.Program, nil
	}

	if path, ok := c.Programs[strconv.Itoa(c.Day)]; ok {
		return path, nil
	}

	return "", errors.Errorf("no program image for day %d", c.Day)
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	c, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err == flag.ErrHelp {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if c == nil {
		fmt.Println(Version())
		os.Exit(0)
	}

	return c
}

// parseFlags parses args into a new Config.
// Returns a nil Config if version information was requested.
func parseFlags(fs *flag.FlagSet, args []string) (*Config, error) {
	var c Config
	c.Part = 1

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "%s [options] [program file]\n", AppName)
		fs.PrintDefaults()
	}

	configFile := fs.String("config", "", "Load settings from the given TOML `file`.")
	trace := fs.Bool("trace", false, "Print instruction trace data.")
	verbose := fs.Bool("verbose", false, "Log machine lifecycle events.")
	version := fs.Bool("version", false, "Display version information.")
	fs.IntVar(&c.Day, "day", c.Day, "Puzzle day to run.")
	fs.IntVar(&c.Part, "part", c.Part, "Puzzle part to run (1 or 2).")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *version {
		return nil, nil
	}

	if *configFile != "" {
		if err := loadConfig(*configFile, &c); err != nil {
			return nil, err
		}
	}

	// Flags given on the command line override the configuration file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "trace":
			c.Trace = *trace
		case "verbose":
			c.Verbose = *verbose
		}
	})

	if fs.NArg() > 0 {
		c.Program = fs.Arg(0)
	}

	if c.Part != 1 && c.Part != 2 {
		return nil, errors.Errorf("invalid part %d", c.Part)
	}

	if _, ok := days[c.Day]; !ok {
		return nil, errors.Errorf("unsupported day %d", c.Day)
	}

	return &c, nil
}
