package xconn

import (
	"fmt"
	"log"

	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xinerama"

	"github.com/junsooki/xshot/internal/geometry"
)

// crtc is the subset of a RandR CRTC the layout needs.
type crtc struct {
	name          string
	x, y          int16
	width, height uint16
}

// Monitors returns the active monitor layout. RandR is asked first; when it
// is missing or fails, Xinerama bounds are used, and when that yields
// nothing the whole root window counts as one monitor.
func (c *Conn) Monitors() (geometry.Layout, error) {
	if c.randr {
		crtcs, err := c.randrCrtcs()
		if err == nil {
			if l := layoutFromCrtcs(crtcs); len(l) > 0 {
				return l, nil
			}
			log.Printf("xconn: RandR reports no active CRTCs")
		} else {
			log.Printf("xconn: RandR query failed: %v", err)
		}
	}

	if c.xinerama {
		screens, err := c.xineramaScreens()
		if err == nil {
			if l := xineramaLayout(screens); len(l) > 0 {
				log.Printf("xconn: using Xinerama layout (%d monitors)", len(l))
				return l, nil
			}
		} else {
			log.Printf("xconn: Xinerama query failed: %v", err)
		}
	}

	log.Printf("xconn: no monitor information, treating the root window as one monitor")
	return geometry.Layout{{Name: "root", Rect: c.Root()}}, nil
}

func (c *Conn) randrCrtcs() ([]crtc, error) {
	res, err := randr.GetScreenResourcesCurrent(c.conn, c.screen.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("screen resources: %w", err)
	}
	out := make([]crtc, 0, len(res.Crtcs))
	for _, id := range res.Crtcs {
		info, err := randr.GetCrtcInfo(c.conn, id, res.ConfigTimestamp).Reply()
		if err != nil {
			return nil, fmt.Errorf("crtc %d: %w", id, err)
		}
		cr := crtc{x: info.X, y: info.Y, width: info.Width, height: info.Height}
		if len(info.Outputs) > 0 {
			if o, err := randr.GetOutputInfo(c.conn, info.Outputs[0], res.ConfigTimestamp).Reply(); err == nil {
				cr.name = string(o.Name)
			}
		}
		out = append(out, cr)
	}
	return out, nil
}

// layoutFromCrtcs drops disabled CRTCs, which RandR reports with a zero size.
func layoutFromCrtcs(crtcs []crtc) geometry.Layout {
	var l geometry.Layout
	for _, cr := range crtcs {
		if cr.width == 0 || cr.height == 0 {
			continue
		}
		l = append(l, geometry.Monitor{
			Name: cr.name,
			Rect: geometry.Rect{X: int(cr.x), Y: int(cr.y), W: int(cr.width), H: int(cr.height)},
		})
	}
	return l
}

// xineramaScreens returns nothing when Xinerama is inactive.
func (c *Conn) xineramaScreens() ([]xinerama.ScreenInfo, error) {
	active, err := xinerama.IsActive(c.conn).Reply()
	if err != nil {
		return nil, fmt.Errorf("is active: %w", err)
	}
	if active.State == 0 {
		return nil, nil
	}
	reply, err := xinerama.QueryScreens(c.conn).Reply()
	if err != nil {
		return nil, fmt.Errorf("query screens: %w", err)
	}
	return reply.ScreenInfo, nil
}

func xineramaLayout(screens []xinerama.ScreenInfo) geometry.Layout {
	var l geometry.Layout
	for i, s := range screens {
		if s.Width == 0 || s.Height == 0 {
			continue
		}
		l = append(l, geometry.Monitor{
			Name: fmt.Sprintf("xinerama-%d", i),
			Rect: geometry.Rect{X: int(s.XOrg), Y: int(s.YOrg), W: int(s.Width), H: int(s.Height)},
		})
	}
	return l
}
