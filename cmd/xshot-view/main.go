package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/junsooki/xshot/internal/decoder"
	"github.com/junsooki/xshot/internal/display"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: xshot-view [file | -]\n")
	}
	flag.Parse()
	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}
	log.SetFlags(0)
	log.SetPrefix("xshot-view: ")

	name := flag.Arg(0)
	var r io.Reader = os.Stdin
	if name != "" && name != "-" {
		f, err := os.Open(name)
		if err != nil {
			log.Fatalf("open: %v", err)
		}
		defer f.Close()
		r = f
	} else {
		name = "stdin"
	}

	px, err := decoder.Decode(r)
	if err != nil {
		log.Fatalf("decode %s: %v", name, err)
	}
	if err := display.NewEbitenDisplay(name, px).Run(); err != nil && !errors.Is(err, display.ErrDiscarded) {
		log.Fatalf("display: %v", err)
	}
}
