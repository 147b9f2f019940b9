package wlgl

import (
	"errors"
	"fmt"

	"deedles.dev/wlgl/gpu"
	"github.com/charmbracelet/log"
)

var (
	ErrDisplay       = errors.New("failed to get EGL display")
	ErrInitialize    = errors.New("failed to initialize EGL")
	ErrConfigs       = errors.New("failed to get configurations")
	ErrNoConfig      = errors.New("no compatible EGL configuration was found")
	ErrWindow        = errors.New("failed to create native window")
	ErrWindowSurface = errors.New("failed to create window surface")
	ErrContext       = errors.New("failed to create OpenGL context")
	ErrMakeCurrent   = errors.New("make current failed")
)

// Binding is a rendering context that is current on a shell's
// surface.
type Binding struct {
	Display gpu.Display
	Config  gpu.Config
	Surface gpu.Surface
	Context gpu.Context
	Window  *Window
}

// ConfigFilter returns the framebuffer requirements of the renderer:
// 8 bits per channel, renderable with OpenGL ES 2.0.
func ConfigFilter() gpu.ConfigFilter {
	return gpu.ConfigFilter{
		RedSize:   8,
		GreenSize: 8,
		BlueSize:  8,
		AlphaSize: 8,
		Version:   gpu.OpenGLES2,
	}
}

// SelectConfig picks the first of the configurations, which EGL
// returns in its own order of preference.
func SelectConfig(configs []gpu.Config) (gpu.Config, bool) {
	if len(configs) == 0 {
		return 0, false
	}
	return configs[0], true
}

// Bind creates a rendering context for shell's surface and makes it
// current on the calling thread.
func Bind(egl gpu.EGL, session *Session, shell *Shell, cfg Config) (binding *Binding, err error) {
	display, err := egl.GetDisplay(session.NativeDisplay())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDisplay, err)
	}

	major, minor, err := egl.Initialize(display)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInitialize, err)
	}
	log.Debug("initialized EGL", "major", major, "minor", minor)

	configs, err := egl.ChooseConfigs(display, ConfigFilter())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigs, err)
	}
	config, ok := SelectConfig(configs)
	if !ok {
		return nil, ErrNoConfig
	}
	log.Debug("selected config", "config", config, "candidates", len(configs))

	win, err := NewWindow(shell, cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWindow, err)
	}
	defer func() {
		if err != nil {
			win.Destroy()
		}
	}()

	surface, err := egl.CreateWindowSurface(display, config, win)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWindowSurface, err)
	}

	ctx, err := egl.CreateContext(display, config, gpu.OpenGLES2)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContext, err)
	}

	err = egl.MakeCurrent(display, surface, surface, ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMakeCurrent, err)
	}

	return &Binding{
		Display: display,
		Config:  config,
		Surface: surface,
		Context: ctx,
		Window:  win,
	}, nil
}
