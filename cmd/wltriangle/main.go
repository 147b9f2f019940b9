//go:build linux && cgo

// Command wltriangle opens a window on the running Wayland compositor
// and draws a red triangle on a teal background into it with OpenGL
// ES 2.0. It exits when the window is closed or on SIGINT.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"deedles.dev/wlgl"
	"deedles.dev/wlgl/gpu"
	"deedles.dev/wlgl/gpu/egl"
	"deedles.dev/wlgl/gpu/gles"
	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
)

func init() {
	// EGL and GL state belong to the thread that made the context
	// current.
	runtime.LockOSThread()
}

func loadConfig(flags *pflag.FlagSet, path string) (wlgl.Config, error) {
	cfg := wlgl.DefaultConfig()
	if path != "" {
		c, err := wlgl.LoadConfig(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = c
	}

	if flags.Changed("width") {
		cfg.Width, _ = flags.GetInt("width")
	}
	if flags.Changed("height") {
		cfg.Height, _ = flags.GetInt("height")
	}
	if flags.Changed("title") {
		cfg.Title, _ = flags.GetString("title")
	}

	return cfg, cfg.Validate()
}

func main() {
	defaults := wlgl.DefaultConfig()
	config := pflag.StringP("config", "c", "", "YAML file to read settings from")
	pflag.Int("width", defaults.Width, "window width in pixels")
	pflag.Int("height", defaults.Height, "window height in pixels")
	pflag.String("title", defaults.Title, "window title")
	debug := pflag.Bool("debug", false, "log debugging information")
	pflag.Parse()

	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := loadConfig(pflag.CommandLine, *config)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	driver := gpu.Combine(egl.New(), gles.New())
	err = wlgl.Run(ctx, cfg, driver)
	if err != nil {
		log.Fatal(err)
	}
}
