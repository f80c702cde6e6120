package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/junsooki/xshot/internal/config"
	"github.com/junsooki/xshot/internal/display"
	"github.com/junsooki/xshot/internal/encoder"
	"github.com/junsooki/xshot/internal/geometry"
	"github.com/junsooki/xshot/internal/pixel"
	"github.com/junsooki/xshot/internal/shot"
	"github.com/junsooki/xshot/internal/sink"
	"github.com/junsooki/xshot/internal/xconn"
)

func main() {
	cfg, err := config.Parse(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fatal(err)
	}

	log.SetFlags(0)
	log.SetPrefix("xshot: ")
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
	}
	if err := run(cfg); err != nil {
		if errors.Is(err, display.ErrDiscarded) {
			log.Printf("preview discarded, nothing written")
			return
		}
		fatal(err)
	}
}

func run(cfg *config.Config) error {
	conn, err := xconn.Open(cfg.Display)
	if err != nil {
		return err
	}
	defer conn.Close()
	log.Printf("root window 0x%x %s", conn.RootWindow(), geometry.FormatGeometry(conn.Root()))
	if cfg.Target != nil {
		log.Printf("target %v", cfg.Target)
	}

	enc, err := encoder.New(cfg.Format, encoder.Options{Compression: cfg.Compression})
	if err != nil {
		return err
	}

	req := shot.Request{Target: cfg.Target, Encoder: enc, Opaque: cfg.Opaque}
	if cfg.Preview {
		req.Review = func(px *pixel.Canonical) error {
			return display.NewEbitenDisplay("xshot", px).Run()
		}
	}

	out, err := sink.Open(cfg.Output)
	if err != nil {
		return err
	}
	res, err := shot.Run(conn, req, out)
	if cerr := out.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close output: %w", cerr)
	}
	if err != nil {
		return err
	}
	log.Printf("%s: wrote %d bytes to %s", res.ID[:8], res.Size, cfg.Output)
	return nil
}

// fatal prints one diagnostic regardless of -v and exits.
func fatal(err error) {
	fmt.Fprintf(os.Stderr, "xshot: %v\n", err)
	os.Exit(1)
}
