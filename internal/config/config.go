package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/mattn/go-isatty"

	"github.com/junsooki/xshot/internal/encoder"
	"github.com/junsooki/xshot/internal/geometry"
	"github.com/junsooki/xshot/internal/sink"
)

// Config holds all runtime configuration for xshot.
type Config struct {
	Display     string
	Target      geometry.Target // nil captures every monitor
	Format      encoder.Format
	Compression encoder.Compression
	Opaque      bool
	Output      string // file path, "-" or a ws:// URL
	Preview     bool
	Verbose     bool
}

// File is the optional TOML defaults file. Flags override every field.
type File struct {
	Display     string `toml:"display"`
	Format      string `toml:"format"`
	Compression string `toml:"compression"`
	Opaque      bool   `toml:"opaque"`
	OutputDir   string `toml:"output_dir"`
}

var (
	stdoutIsTerminal = func() bool {
		fd := os.Stdout.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	now = time.Now
)

// DefaultPath returns $XDG_CONFIG_HOME/xshot/config.toml, or "" when no
// config directory is known.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "xshot", "config.toml")
}

// LoadFile reads a defaults file. An empty path yields zero defaults; a
// missing file is an error wrapping os.ErrNotExist.
func LoadFile(path string) (*File, error) {
	f := &File{}
	if path == "" {
		return f, nil
	}
	if _, err := toml.DecodeFile(path, f); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return f, nil
}

// Parse parses command line arguments (without the program name). It
// returns flag.ErrHelp when -h is given.
func Parse(args []string, stderr io.Writer) (*Config, error) {
	fs := flag.NewFlagSet("xshot", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: xshot [options] [file | - | ws://host/path]\n")
		fs.PrintDefaults()
	}

	var (
		id          = fs.String("id", "", "Window to capture (decimal, 0x hex, 0o octal or 0b binary)")
		geom        = fs.String("geometry", "", "Area to capture, WxH+X+Y relative to the root window")
		format      = fs.String("format", "png", "Output format: png or pam")
		compression = fs.String("compression", "default", "PNG compression: default, speed, best or none")
		opaque      = fs.Bool("opaque", false, "Drop the alpha channel; areas outside monitors become black")
		display     = fs.String("display", "", "X display to connect to (default $DISPLAY)")
		preview     = fs.Bool("preview", false, "Show the capture in a window before writing it")
		verbose     = fs.Bool("v", false, "Log capture details to stderr")
		configPath  = fs.String("config", DefaultPath(), "Defaults file")
	)
	fs.StringVar(geom, "g", "", "Shorthand for -geometry")
	fs.StringVar(id, "i", "", "Shorthand for -id")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return nil, errors.New("too many arguments")
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	// only the default file may be absent
	file, err := LoadFile(*configPath)
	if errors.Is(err, os.ErrNotExist) && !set["config"] {
		file, err = &File{}, nil
	}
	if err != nil {
		return nil, err
	}
	pick := func(name, flagValue, fileValue string) string {
		if set[name] || fileValue == "" {
			return flagValue
		}
		return fileValue
	}

	cfg := &Config{
		Display: pick("display", *display, file.Display),
		Opaque:  *opaque || (!set["opaque"] && file.Opaque),
		Preview: *preview,
		Verbose: *verbose,
	}
	if cfg.Format, err = encoder.ParseFormat(pick("format", *format, file.Format)); err != nil {
		return nil, err
	}
	if cfg.Compression, err = encoder.ParseCompression(pick("compression", *compression, file.Compression)); err != nil {
		return nil, err
	}
	if cfg.Target, err = parseTarget(*id, *geom); err != nil {
		return nil, err
	}

	cfg.Output = fs.Arg(0)
	if cfg.Output == "" {
		cfg.Output = DefaultOutput(cfg.Format, file.OutputDir)
	}
	return cfg, nil
}

func parseTarget(id, geom string) (geometry.Target, error) {
	switch {
	case id != "" && geom != "":
		return nil, errors.New("-id and -geometry are mutually exclusive")
	case id != "":
		w, err := geometry.ParseWindowID(id)
		if err != nil {
			return nil, err
		}
		return geometry.ByID{Window: w}, nil
	case geom != "":
		r, err := geometry.ParseGeometry(geom)
		if err != nil {
			return nil, err
		}
		return geometry.ByGeometry{Rect: r}, nil
	}
	return nil, nil
}

// DefaultOutput writes to stdout when it is not a terminal, otherwise to a
// file named after the current unix time.
func DefaultOutput(f encoder.Format, dir string) string {
	if !stdoutIsTerminal() {
		return sink.Stdout
	}
	name := fmt.Sprintf("%d%s", now().Unix(), f.Ext())
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}
