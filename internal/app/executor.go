package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jsamuelsen/quotebook/internal/platform/logging"
)

// ExecutionStep names one stage of an Operation.
type ExecutionStep string

// Stages run in this order. Archive is the only one allowed to write, and it
// only sees what Verify accepted.
const (
	StepValidate ExecutionStep = "validate"
	StepPerform  ExecutionStep = "perform"
	StepVerify   ExecutionStep = "verify"
	StepArchive  ExecutionStep = "archive"
	StepRespond  ExecutionStep = "respond"
)

// ExecutionError records which stage stopped an operation.
type ExecutionError struct {
	Step  ExecutionStep
	Cause error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s step: %v", e.Step, e.Cause)
}

func (e *ExecutionError) Unwrap() error { return e.Cause }

// IsExecutionError reports whether err came out of a failed stage.
func IsExecutionError(err error) bool {
	_, ok := GetExecutionStep(err)
	return ok
}

// GetExecutionStep returns the stage that produced err.
func GetExecutionStep(err error) (ExecutionStep, bool) {
	var execErr *ExecutionError
	if !errors.As(err, &execErr) {
		return "", false
	}

	return execErr.Step, true
}

// Operation is a write split into stages. Every func is optional; a missing
// one passes the zero value along.
type Operation[I, P, V, O any] struct {
	Name string

	Validate func(ctx context.Context, in I) error
	Perform  func(ctx context.Context, in I) (P, error)
	Verify   func(ctx context.Context, in I, performed P) (V, error)
	Archive  func(ctx context.Context, in I, verified V) error
	Respond  func(ctx context.Context, in I, verified V) (O, error)
}

// Executor runs Operations and logs each stage.
type Executor struct {
	logger *slog.Logger
}

// NewExecutor returns an Executor. A nil logger means slog.Default. A logger
// carried by the context still wins at run time.
func NewExecutor(logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Executor{logger: logger}
}

// Execute runs op against in. The first failing stage stops the run and is
// reported as an *ExecutionError wrapping the stage's own error.
func Execute[I, P, V, O any](ctx context.Context, exec *Executor, op Operation[I, P, V, O], in I) (O, error) {
	var out O

	logger, ok := logging.Lookup(ctx)
	if !ok {
		logger = exec.logger
	}

	logger = logger.With(slog.String("operation", op.Name))
	started := time.Now()

	if op.Validate != nil {
		if err := stage(ctx, logger, StepValidate, op.Validate(ctx, in)); err != nil {
			return out, err
		}
	}

	var performed P

	if op.Perform != nil {
		p, err := op.Perform(ctx, in)
		if err := stage(ctx, logger, StepPerform, err); err != nil {
			return out, err
		}

		performed = p
	}

	var verified V

	if op.Verify != nil {
		v, err := op.Verify(ctx, in, performed)
		if err := stage(ctx, logger, StepVerify, err); err != nil {
			return out, err
		}

		verified = v
	}

	if op.Archive != nil {
		if err := stage(ctx, logger, StepArchive, op.Archive(ctx, in, verified)); err != nil {
			return out, err
		}
	}

	if op.Respond != nil {
		o, err := op.Respond(ctx, in, verified)
		if err := stage(ctx, logger, StepRespond, err); err != nil {
			return out, err
		}

		out = o
	}

	logger.InfoContext(ctx, "operation completed", slog.Duration("duration", time.Since(started)))

	return out, nil
}

// stage logs the outcome of one step and wraps a failure.
func stage(ctx context.Context, logger *slog.Logger, step ExecutionStep, err error) error {
	if err == nil {
		logger.DebugContext(ctx, "step done", slog.String("step", string(step)))
		return nil
	}

	level := slog.LevelError
	if step == StepValidate || step == StepRespond {
		level = slog.LevelWarn
	}

	logger.Log(ctx, level, "step failed", slog.String("step", string(step)), slog.Any("error", err))

	return &ExecutionError{Step: step, Cause: err}
}
