package system

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/google/shlex"
	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog/log"
)

const defaultTimeout = 30 * time.Second

// CommandError wraps a failed external command.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("'%s': %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// CommandRunner executes external commands.
type CommandRunner interface {
	Run(ctx context.Context, command string) error
}

// Runner executes commands without a shell. The command string is
// tokenized, a leading ~ in any token is expanded, and output is
// discarded.
type Runner struct {
	DryRun  bool
	Timeout time.Duration
}

// NewRunner builds a runner with the default timeout.
func NewRunner(dryRun bool) *Runner {
	return &Runner{
		DryRun:  dryRun,
		Timeout: defaultTimeout,
	}
}

func (r *Runner) Run(ctx context.Context, command string) error {
	if command == "" {
		return nil
	}

	args, err := shlex.Split(command)
	if err != nil {
		return &CommandError{Command: command, Err: err}
	}
	if len(args) == 0 {
		return nil
	}

	for i, arg := range args {
		args[i] = expandArg(arg)
	}

	if r.DryRun {
		log.Debug().Str("command", command).Msg("dry run, command not executed")
		return nil
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	log.Debug().Str("command", command).Msg("executing command")

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	if err := cmd.Run(); err != nil {
		return &CommandError{Command: command, Err: err}
	}

	return nil
}

// expandArg resolves a leading ~ in a single command token.
func expandArg(arg string) string {
	if !strings.HasPrefix(arg, "~") {
		return arg
	}

	expanded, err := homedir.Expand(arg)
	if err != nil {
		log.Warn().Err(err).Str("arg", arg).Msg("failed to expand path")
		return arg
	}

	return expanded
}
