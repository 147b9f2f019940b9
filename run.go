package wlgl

import (
	"context"
	"fmt"

	"deedles.dev/wlgl/gpu"
	"github.com/charmbracelet/log"
)

// Stage is a step of a run.
type Stage int

const (
	StageSession Stage = iota
	StageSurface
	StageContext
	StagePipeline
	StageFrame
	StageLoop
)

func (s Stage) String() string {
	switch s {
	case StageSession:
		return "session"
	case StageSurface:
		return "surface"
	case StageContext:
		return "context"
	case StagePipeline:
		return "pipeline"
	case StageFrame:
		return "frame"
	case StageLoop:
		return "loop"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// StageError is a failure of one stage of a run.
type StageError struct {
	Stage Stage
	Err   error
}

func (err *StageError) Error() string {
	return fmt.Sprintf("%v: %v", err.Stage, err.Err)
}

func (err *StageError) Unwrap() error {
	return err.Err
}

// Run connects to the compositor, opens a window, draws one frame into
// it with driver and then dispatches events until ctx is cancelled or
// the window is closed. driver must be used from the calling thread
// only.
func Run(ctx context.Context, cfg Config, driver gpu.Driver) error {
	err := cfg.Validate()
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	session, err := Connect()
	if err != nil {
		return &StageError{Stage: StageSession, Err: err}
	}
	defer session.Close()

	shell, err := Negotiate(session, cfg)
	if err != nil {
		return &StageError{Stage: StageSurface, Err: err}
	}
	log.Info("surface configured", "serial", shell.Serial(), "commits", shell.Commits())

	binding, err := Bind(driver, session, shell, cfg)
	if err != nil {
		return &StageError{Stage: StageContext, Err: err}
	}
	defer binding.Window.Destroy()

	_, err = BuildPipeline(driver, cfg)
	if err != nil {
		return &StageError{Stage: StagePipeline, Err: err}
	}

	err = SubmitFrame(driver, driver, binding, cfg)
	if err != nil {
		return &StageError{Stage: StageFrame, Err: err}
	}
	log.Info("frame submitted", "width", cfg.Width, "height", cfg.Height)

	err = Loop(ctx, session, shell)
	if err != nil {
		return &StageError{Stage: StageLoop, Err: err}
	}
	return nil
}
