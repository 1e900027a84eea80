package caddraw

import (
	"context"
	"fmt"

	"github.com/benoitkugler/cadsvg/cadgeom"
	"github.com/benoitkugler/cadsvg/cadmodel"
)

// Options tunes Draw. The zero value renders sequentially, without symbols.
type Options struct {
	// Symbols also sends each block definition to drivers
	// implementing SymbolDriver.
	Symbols bool
	// Workers > 1 renders the top-level entities concurrently
	// (see RenderParallel).
	Workers int
	// Fit uses the extent of the rendered primitives as viewport
	// (see Recording.Bounds), instead of the coordinates of the
	// top-level entities.
	Fit bool
}

// Draw renders `doc` into `d`: the viewport is computed from the top-level
// entities, then the driver is started, the entities are rendered and
// the driver is flushed.
func Draw(doc *cadmodel.Document, d Driver, opts Options) error {
	var rec *Recording // nil when rendering directly to d
	if opts.Workers > 1 {
		var err error
		rec, err = RenderParallel(context.Background(), doc.Entities, doc.Blocks, opts.Workers)
		if err != nil {
			return err
		}
	} else if opts.Fit {
		var r Recorder
		Render(doc.Entities, &r, doc.Blocks, cadgeom.Identity)
		rec = r.Finish()
	}

	var (
		vp cadgeom.Viewport
		ok bool
	)
	if opts.Fit {
		vp, ok = rec.Bounds()
	} else {
		vp, ok = cadmodel.Extent(doc.Entities)
	}
	if !ok {
		Logger().Warn("no coordinates in the drawing, using the default viewport", "viewport", vp)
	}
	if err := d.Begin(vp); err != nil {
		return fmt.Errorf("caddraw: starting document: %w", err)
	}

	if opts.Symbols {
		if sd, ok := d.(SymbolDriver); ok {
			drawSymbols(doc.Blocks, sd)
		} else {
			Logger().Debug("driver does not support symbols", "driver", fmt.Sprintf("%T", d))
		}
	}

	if rec != nil {
		rec.Playback(d)
	} else {
		Render(doc.Entities, d, doc.Blocks, cadgeom.Identity)
	}

	return d.End()
}

func drawSymbols(blocks cadmodel.Registry, sd SymbolDriver) {
	for _, name := range blocks.Names() {
		entities, _ := blocks.Lookup(name)
		vp, _ := cadmodel.Extent(entities)
		sd.BeginSymbol(name, vp)
		Render(entities, sd, blocks, cadgeom.Identity)
		sd.EndSymbol()
	}
}
