// Command softrast renders a scene to a sequence of PNG frames.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/schollz/progressbar/v3"

	"github.com/gogpu/softrast"
	"github.com/gogpu/softrast/internal/config"
	"github.com/gogpu/softrast/internal/parallel"
	"github.com/gogpu/softrast/internal/player"
)

func main() {
	var (
		configPath = flag.String("config", "", "scene file (YAML); empty uses the demo scene")
		outDir     = flag.String("out", "", "output directory (overrides the scene)")
		frames     = flag.Int("frames", -1, "number of frames (overrides the scene)")
		verbose    = flag.Bool("v", false, "log per-frame statistics")
		quiet      = flag.Bool("q", false, "hide the progress bar")
		jobs       = flag.Int("j", 0, "frames rendered in parallel; 0 uses GOMAXPROCS")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	softrast.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	scene, err := loadScene(*configPath)
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}
	if *outDir != "" {
		scene.Output.Dir = *outDir
	}
	if *frames >= 0 {
		scene.Frames = *frames
	}

	var progress io.Writer = os.Stderr
	if *quiet || *verbose {
		progress = io.Discard
	}
	summary, err := run(scene, *jobs, progress)
	if err != nil {
		log.Fatalf("Render failed: %v", err)
	}
	log.Println(summary)
}

func loadScene(path string) (*config.Scene, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// run renders every frame of scene into its output directory and returns
// a human-readable summary. Frames are split into contiguous ranges, one
// player per range, rendered on up to workers goroutines.
func run(scene *config.Scene, workers int, progress io.Writer) (string, error) {
	dir := scene.OutputDir()
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	if scene.Frames == 0 {
		return player.Summary(0, softrast.Stats{}), nil
	}

	pool := parallel.NewPool(workers)
	defer pool.Close()

	bar := progressbar.NewOptions(scene.Frames,
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("rendering"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("frames"),
		progressbar.OptionShowIts(),
		progressbar.OptionClearOnFinish(),
	)

	var (
		mu    sync.Mutex
		total softrast.Stats
	)
	var work []func() error
	for _, r := range parallel.Split(scene.Frames, pool.Workers()) {
		work = append(work, func() error {
			p, err := player.New(scene)
			if err != nil {
				return err
			}
			for i := r[0]; i < r[1]; i++ {
				img, _, err := p.Frame(i)
				if err != nil {
					return err
				}
				if err := writePNG(filepath.Join(dir, frameName(i)), img); err != nil {
					return err
				}
				_ = bar.Add(1)
			}
			mu.Lock()
			total.Add(p.Total())
			mu.Unlock()
			return nil
		})
	}
	if err := pool.Run(work); err != nil {
		return "", err
	}
	_ = bar.Finish()

	return player.Summary(scene.Frames, total), nil
}

func frameName(i int) string {
	return fmt.Sprintf("frame_%04d.png", i)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
