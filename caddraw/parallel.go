package caddraw

import (
	"context"

	"github.com/benoitkugler/cadsvg/cadgeom"
	"github.com/benoitkugler/cadsvg/cadmodel"
	"golang.org/x/sync/errgroup"
)

// chunkSize is the number of top-level entities rendered by one task.
const chunkSize = 64

// RenderParallel renders top-level entities on at most `workers` goroutines
// (no limit if workers <= 0), each chunk into its own Recorder.
// The chunks are concatenated in input order, so that the
// returned recording is identical to a sequential Render.
// An error is only returned if ctx is done before completion.
func RenderParallel(ctx context.Context, entities []cadmodel.Entity, blocks cadmodel.Registry, workers int) (*Recording, error) {
	chunks := make([][]cadmodel.Entity, 0, len(entities)/chunkSize+1)
	for start := 0; start < len(entities); start += chunkSize {
		end := min(start+chunkSize, len(entities))
		chunks = append(chunks, entities[start:end])
	}

	parts := make([]*Recording, len(chunks))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var rec Recorder
			Render(chunk, &rec, blocks, cadgeom.Identity)
			parts[i] = rec.Finish()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out Recording
	for _, part := range parts {
		out.Instructions = append(out.Instructions, part.Instructions...)
	}
	return &out, nil
}
