package sim

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/wavefield/internal/viz"
)

// RenderFrames calls draw for every frame using up to workers goroutines.
// draw must own whatever surface it renders into; frames are independent
// once the physics has been recorded.
func RenderFrames(ctx context.Context, frames []viz.Frame, workers int, draw func(ctx context.Context, i int, f viz.Frame) error) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, f := range frames {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return draw(ctx, i, f)
		})
	}
	return g.Wait()
}
