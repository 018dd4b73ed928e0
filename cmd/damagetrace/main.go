// Command damagetrace replays a scenario script through the compositor and
// prints the damage and scissor of every frame.
//
// Usage:
//
//	damagetrace -scenario frames.yaml [-config settings.yaml] [-png out.png] [-swapchain] [-v]
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/internal/config"
	"github.com/gogpu/compositor/internal/scenario"
	"github.com/gogpu/compositor/render"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatalf("damagetrace: %v", err)
	}
}

// imageTarget is a render target whose current buffer can be saved.
type imageTarget interface {
	render.RenderTarget
	Image() *image.RGBA
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("damagetrace", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		scenarioPath = fs.String("scenario", "", "frame script (YAML)")
		configPath   = fs.String("config", "", "settings file (YAML); COMPOSITOR_* variables override it")
		pngPath      = fs.String("png", "", "write the last frame to this PNG file")
		swapchain    = fs.Bool("swapchain", false, "draw into rotating buffers instead of one persistent buffer")
		verbose      = fs.Bool("v", false, "log per-frame diagnostics to stderr")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *scenarioPath == "" {
		return errors.New("missing -scenario")
	}

	if *verbose {
		compositor.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
		defer compositor.SetLogger(nil)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	s, err := scenario.Load(*scenarioPath)
	if err != nil {
		return err
	}
	player, err := scenario.NewPlayer(s)
	if err != nil {
		return err
	}

	var target imageTarget = render.NewPixmapTarget(cfg.Width, cfg.Height)
	if *swapchain {
		target = render.NewSwapchainTarget(cfg.Width, cfg.Height, cfg.Settings.BufferCount)
	}
	host, err := compositor.NewHost(player.Tree(), target, compositor.WithSettings(cfg.Settings))
	if err != nil {
		return err
	}

	results, err := player.Run(host)
	for i, r := range results {
		fmt.Fprintf(stdout, "frame %d %s: damage=(%s) scissor=(%s) full=%t\n",
			i, r.Name, r.Stats.RootDamage, r.Stats.Scissor, r.Stats.FullRedraw)
	}
	if err != nil {
		return err
	}

	if *pngPath != "" {
		return savePNG(*pngPath, lastFrame(target))
	}
	return nil
}

// lastFrame returns the most recently presented buffer.
func lastFrame(t imageTarget) *image.RGBA {
	if sc, ok := t.(*render.SwapchainTarget); ok {
		return sc.PresentedImage()
	}
	return t.Image()
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
