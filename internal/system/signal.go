package system

import (
	"fmt"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
	"golang.org/x/sys/unix"
)

// UnknownSignalError indicates a signal name that does not resolve to a
// known signal on this platform.
type UnknownSignalError struct {
	Name string
}

func (e *UnknownSignalError) Error() string {
	return fmt.Sprintf("unknown signal '%s'", e.Name)
}

// ProcessNotFoundError indicates that no running process matched a
// restart token.
type ProcessNotFoundError struct {
	Name string
}

func (e *ProcessNotFoundError) Error() string {
	return fmt.Sprintf("process '%s' not found", e.Name)
}

// ParseSignal resolves a signal name such as "SIGUSR1", "usr1" or "HUP"
// into the platform signal number.
func ParseSignal(name string) (syscall.Signal, error) {
	s := strings.ToUpper(strings.TrimSpace(name))
	if !strings.HasPrefix(s, "SIG") {
		s = "SIG" + s
	}

	sig := unix.SignalNum(s)
	if sig == 0 {
		return 0, &UnknownSignalError{Name: name}
	}

	return sig, nil
}

// Dispatcher delivers a restart signal to every process matching a
// configured name.
type Dispatcher struct {
	Lister ProcessLister
	Signal syscall.Signal
	DryRun bool

	// Kill delivers a single signal. Defaults to unix.Kill; tests
	// substitute a recorder.
	Kill func(pid int, sig syscall.Signal) error
}

// NewDispatcher builds a dispatcher for the given signal name.
func NewDispatcher(lister ProcessLister, signalName string, dryRun bool) (*Dispatcher, error) {
	sig, err := ParseSignal(signalName)
	if err != nil {
		return nil, err
	}

	return &Dispatcher{
		Lister: lister,
		Signal: sig,
		DryRun: dryRun,
		Kill:   unix.Kill,
	}, nil
}

// DispatchResult reports one restart attempt.
type DispatchResult struct {
	Name string
	PIDs []int32
	Sent bool
}

// Dispatch resolves the PIDs matching name and signals each of them.
// Returns a ProcessNotFoundError when nothing matches. Under dry-run the
// PIDs are resolved but no signal is sent.
func (d *Dispatcher) Dispatch(name string) (*DispatchResult, error) {
	pids, err := FindPIDs(d.Lister, name)
	if err != nil {
		return nil, err
	}
	if len(pids) == 0 {
		return nil, &ProcessNotFoundError{Name: name}
	}

	result := &DispatchResult{Name: name, PIDs: pids}

	if d.DryRun {
		log.Debug().
			Str("program", name).
			Ints32("pids", pids).
			Msg("dry run, signal not sent")
		return result, nil
	}

	for _, pid := range pids {
		log.Debug().
			Int32("pid", pid).
			Str("signal", unix.SignalName(d.Signal)).
			Msg("sending signal")

		if err := d.Kill(int(pid), d.Signal); err != nil {
			return result, fmt.Errorf("failed to signal pid %d: %w", pid, err)
		}
	}

	result.Sent = true

	return result, nil
}
