// Package xconn talks to the X server through the pure Go xgb bindings. It
// provides the monitor layout, window lookups and root window image reads
// the capture pipeline needs.
package xconn

import (
	"errors"
	"fmt"
	"log"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xinerama"
	"github.com/jezek/xgb/xproto"

	"github.com/junsooki/xshot/internal/geometry"
)

// Conn is an open X connection bound to the default screen.
type Conn struct {
	conn   *xgb.Conn
	setup  *xproto.SetupInfo
	screen *xproto.ScreenInfo

	randr    bool
	xinerama bool
}

// Open connects to display, or $DISPLAY when display is empty.
func Open(display string) (*Conn, error) {
	conn, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("connect X server: %w", err)
	}
	setup := xproto.Setup(conn)
	if setup == nil {
		conn.Close()
		return nil, errors.New("xproto setup unavailable")
	}
	screen := setup.DefaultScreen(conn)
	if screen == nil {
		conn.Close()
		return nil, errors.New("xproto screen unavailable")
	}

	c := &Conn{conn: conn, setup: setup, screen: screen}
	if err := randr.Init(conn); err != nil {
		log.Printf("xconn: RandR unavailable: %v", err)
	} else {
		c.randr = true
	}
	if err := xinerama.Init(conn); err != nil {
		log.Printf("xconn: Xinerama unavailable: %v", err)
	} else {
		c.xinerama = true
	}
	return c, nil
}

// Close closes the connection.
func (c *Conn) Close() {
	c.conn.Close()
}

// RootWindow returns the root window id of the default screen.
func (c *Conn) RootWindow() uint32 {
	return uint32(c.screen.Root)
}

// Root returns the extent of the root window.
func (c *Conn) Root() geometry.Rect {
	return geometry.Rect{W: int(c.screen.WidthInPixels), H: int(c.screen.HeightInPixels)}
}
