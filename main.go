package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/lucent-render/lucent/pkg/core"
	"github.com/lucent-render/lucent/pkg/integrator"
	"github.com/lucent-render/lucent/pkg/renderer"
	"github.com/lucent-render/lucent/pkg/sampler"
	"github.com/lucent-render/lucent/pkg/scene"
)

func main() {
	// Parse command line flags
	sceneType := flag.String("scene", "default", "Scene type: 'default' or 'cornell'")
	samples := flag.Int("samples", 64, "Samples per pixel")
	maxDepth := flag.Int("depth", 25, "Maximum ray bounce depth")
	seed := flag.Uint64("seed", 42, "Base random seed")
	workers := flag.Int("workers", 0, "Number of render workers (0 = one per CPU)")
	stratified := flag.Bool("stratified", true, "Use stratified sampling instead of independent random sampling")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Lucent Renderer")
		fmt.Println("Usage: lucent [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		fmt.Println("  default - Outdoor scene with spheres, sky, sun and spot lighting")
		fmt.Println("  cornell - Cornell box scene with quad walls and area lighting")
		fmt.Println()
		fmt.Println("Output will be saved to output/<scene_type>/render_<timestamp>.png")
		return
	}

	fmt.Println("Starting Lucent Renderer...")

	var selectedScene *scene.Scene
	var cameraConfig renderer.CameraConfig

	switch *sceneType {
	case "cornell":
		fmt.Println("Using Cornell scene...")
		selectedScene = scene.NewCornellScene()
		cameraConfig = renderer.CameraConfig{
			Center:      core.NewVec3(278, 278, -800),
			LookAt:      core.NewVec3(278, 278, 0),
			Up:          core.NewVec3(0, 1, 0),
			Width:       400,
			AspectRatio: 1.0, // Square aspect ratio for Cornell box
			VFov:        40.0,
		}
	case "default":
		fmt.Println("Using default scene...")
		selectedScene = scene.NewDefaultScene()
		cameraConfig = renderer.CameraConfig{
			Center:      core.NewVec3(0, 2, 8),
			LookAt:      core.NewVec3(0, 1, 0),
			Up:          core.NewVec3(0, 1, 0),
			Width:       400,
			AspectRatio: 16.0 / 9.0,
			VFov:        40.0,
		}
	default:
		fmt.Printf("Unknown scene type: %s\n", *sceneType)
		os.Exit(1)
	}

	outputDir := filepath.Join("output", *sceneType)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Printf("Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	selectedScene.Preprocess()
	fmt.Printf("Scene ready: %d primitives, %d lights\n",
		selectedScene.PrimitiveCount(), len(selectedScene.Lights()))

	camera := renderer.NewCamera(cameraConfig)
	integ := integrator.NewPathTracingIntegrator(integrator.Config{
		MaxDepth:                  *maxDepth,
		RussianRouletteMinBounces: 4,
	})

	var proto sampler.Sampler
	if *stratified {
		// Stratified sampling wants a square sample grid
		side := int(math.Ceil(math.Sqrt(float64(*samples))))
		proto = sampler.NewStratifiedSampler(side, side, true, *maxDepth, *seed)
	} else {
		proto = sampler.NewRandomSampler(*samples, *seed)
	}

	r := renderer.NewRenderer(camera, integ, renderer.Config{
		NumWorkers: *workers,
		Seed:       *seed,
	})

	startTime := time.Now()
	film, err := r.Render(context.Background(), selectedScene, proto)
	if err != nil {
		fmt.Printf("Render failed: %v\n", err)
		os.Exit(1)
	}
	renderTime := time.Since(startTime)

	fmt.Printf("Render completed in %v (%d samples per pixel)\n", renderTime, proto.SamplesPerPixel())

	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		fmt.Printf("Error creating file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	if err := png.Encode(file, film.Image()); err != nil {
		fmt.Printf("Error saving PNG: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render saved as %s\n", filename)
}
