// Package renderer drives the rendering loop: it partitions the film into
// tiles, hands each tile to a worker with its own sampler clone, and
// accumulates the radiance estimates the integrator produces.
package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lucent-render/lucent/pkg/integrator"
	"github.com/lucent-render/lucent/pkg/sampler"
)

// Tile size in pixels; tiles are the unit of work distribution
const tileSize = 32

// Config holds renderer parameters
type Config struct {
	NumWorkers int    // 0 means one worker per CPU
	Seed       uint64 // Base seed; the full render is deterministic for a fixed seed and worker-independent tile assignment
}

// Renderer renders a scene to a film using parallel tile workers
type Renderer struct {
	camera     *Camera
	integrator integrator.Integrator
	config     Config
}

// NewRenderer creates a renderer
func NewRenderer(camera *Camera, integ integrator.Integrator, config Config) *Renderer {
	if config.NumWorkers <= 0 {
		config.NumWorkers = runtime.NumCPU()
	}
	return &Renderer{camera: camera, integrator: integ, config: config}
}

// tile is a rectangular region of the film, half-open on both axes
type tile struct {
	x0, y0, x1, y1 int
}

// Render renders the scene and returns the resolved film. The prototype
// sampler supplies the per-pixel sample budget and array registrations; each
// worker renders from its own clone, and every pixel's stream is derived
// from the base seed and the pixel coordinate alone, so results do not
// depend on worker count or tile scheduling.
func (r *Renderer) Render(ctx context.Context, scene integrator.Scene, proto sampler.Sampler) (*Film, error) {
	film := NewFilm(r.camera.Width(), r.camera.Height())

	tiles := make(chan tile)
	g, ctx := errgroup.WithContext(ctx)

	for workerID := 0; workerID < r.config.NumWorkers; workerID++ {
		smp := proto.Clone(r.config.Seed)
		g.Go(func() error {
			for t := range tiles {
				if err := ctx.Err(); err != nil {
					return err
				}
				r.renderTile(t, scene, smp, film)
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(tiles)
		for y0 := 0; y0 < film.Height(); y0 += tileSize {
			for x0 := 0; x0 < film.Width(); x0 += tileSize {
				t := tile{
					x0: x0,
					y0: y0,
					x1: min(x0+tileSize, film.Width()),
					y1: min(y0+tileSize, film.Height()),
				}
				select {
				case tiles <- t:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return film, nil
}

// renderTile renders every pixel of a tile to completion
func (r *Renderer) renderTile(t tile, scene integrator.Scene, smp sampler.Sampler, film *Film) {
	for y := t.y0; y < t.y1; y++ {
		for x := t.x0; x < t.x1; x++ {
			smp.StartPixel(x, y)
			for smp.StartNextSample() {
				cs := smp.GetCameraSample(x, y)
				ray := r.camera.GetRay(cs)
				radiance := r.integrator.RayColor(ray, scene, smp)
				film.AddSample(x, y, radiance)
			}
		}
	}
}
