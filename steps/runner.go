package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/kballard/go-shellquote"

	"github.com/rigforge/rigforge/errors"
	"github.com/rigforge/rigforge/logger"
)

// SharedContext is the data handed to every step, serialized as JSON on
// the step's stdin.
type SharedContext map[string]any

// Executor runs one step command.
type Executor interface {
	Run(ctx context.Context, command string, shared SharedContext) error
}

// Transactor wraps each step in the host's undo chunk. Begin returns the
// commit and rollback closures; exactly one of them runs per step.
type Transactor interface {
	Begin() (commit func(), rollback func())
}

// Decision is a Prompter's answer to a failed step.
type Decision int

const (
	// DecisionStop aborts the whole run.
	DecisionStop Decision = iota
	// DecisionContinue skips the failed step and keeps going.
	DecisionContinue
	// DecisionRetry runs the same step again.
	DecisionRetry
)

// Prompter decides how to proceed after a step failure. Interactive hosts
// ask the user; the default aborts.
type Prompter interface {
	OnFailure(step Step, err error) Decision
}

// ExecRunner executes steps as subprocesses. The command line is split
// with shell quoting rules, so arguments with spaces work as expected.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, command string, shared SharedContext) error {
	words, err := shellquote.Split(command)
	if err != nil {
		return errors.Wrapf(err, "parsing step command %q", command)
	}
	if len(words) == 0 {
		return errors.Newf("empty step command")
	}

	payload, err := json.Marshal(shared)
	if err != nil {
		return errors.Wrap(err, "encoding shared context")
	}

	cmd := exec.CommandContext(ctx, words[0], words[1:]...)
	cmd.Stdin = bytes.NewReader(payload)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return errors.Wrapf(errors.ErrStepFailed, "%s: %v: %s",
			command, err, bytes.TrimSpace(out))
	}
	return nil
}

// NoopTransactor is the default Transactor: no undo support.
type NoopTransactor struct{}

func (NoopTransactor) Begin() (func(), func()) {
	return func() {}, func() {}
}

// AbortPrompter is the default Prompter for non-interactive runs: log the
// failure and stop.
type AbortPrompter struct{}

func (AbortPrompter) OnFailure(step Step, err error) Decision {
	logger.Logger.Errorw("Custom step failed",
		logger.FieldStep, step.Name, logger.FieldError, err)
	return DecisionStop
}

// ContinuePrompter logs the failure and keeps going, for unattended runs
// configured to tolerate failing steps.
type ContinuePrompter struct{}

func (ContinuePrompter) OnFailure(step Step, err error) Decision {
	logger.Logger.Errorw("Custom step failed",
		logger.FieldStep, step.Name, logger.FieldError, err)
	return DecisionContinue
}

// Runner executes an ordered list of custom steps.
type Runner struct {
	// Dir is the root for relative step commands.
	Dir string

	// Timeout bounds each step's execution; zero means no limit.
	Timeout time.Duration

	Exec   Executor
	Tx     Transactor
	Prompt Prompter
}

// NewRunner creates a runner with subprocess execution, no undo support
// and abort-on-failure.
func NewRunner(dir string) *Runner {
	return &Runner{
		Dir:    dir,
		Exec:   ExecRunner{},
		Tx:     NoopTransactor{},
		Prompt: AbortPrompter{},
	}
}

// RunAll executes the steps in order. A failing step rolls back its undo
// chunk and asks the Prompter; stopped reports whether the run was aborted
// before reaching the end.
func (r *Runner) RunAll(ctx context.Context, list []Step, shared SharedContext) (stopped bool, err error) {
	for _, step := range list {
		command := r.resolve(step.Command)

	retry:
		for {
			commit, rollback := r.Tx.Begin()
			runErr := r.runOne(ctx, command, shared)
			if runErr == nil {
				commit()
				logger.Logger.Infow("Custom step finished", logger.FieldStep, step.Name)
				break retry
			}
			rollback()

			switch r.Prompt.OnFailure(step, runErr) {
			case DecisionRetry:
				continue retry
			case DecisionContinue:
				logger.Logger.Warnw("Custom step skipped",
					logger.FieldStep, step.Name, logger.FieldError, runErr)
				break retry
			default:
				return true, errors.Wrapf(runErr, "step %s", step.Name)
			}
		}
	}
	return false, nil
}

// runOne executes a single step attempt under the configured timeout.
func (r *Runner) runOne(ctx context.Context, command string, shared SharedContext) error {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	return r.Exec.Run(ctx, command, shared)
}

// resolve roots a relative script path at the runner directory, leaving
// any arguments untouched.
func (r *Runner) resolve(command string) string {
	if r.Dir == "" {
		return command
	}
	words, err := shellquote.Split(command)
	if err != nil || len(words) == 0 {
		return command
	}
	if filepath.IsAbs(words[0]) {
		return command
	}
	words[0] = filepath.Join(r.Dir, words[0])
	return shellquote.Join(words...)
}
