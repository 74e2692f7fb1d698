package system

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v4/process"
)

// Proc identifies one running process.
type Proc struct {
	PID  int32
	Name string
}

// ProcessLister enumerates the running processes. The dispatcher depends
// on this interface so tests can substitute a fixed process table.
type ProcessLister interface {
	Processes() ([]Proc, error)
}

// GopsutilLister reads the live process table.
type GopsutilLister struct{}

func (GopsutilLister) Processes() ([]Proc, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("failed to read process table: %w", err)
	}

	out := make([]Proc, 0, len(procs))
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			// Processes can exit between listing and inspection.
			continue
		}
		out = append(out, Proc{PID: p.Pid, Name: name})
	}

	return out, nil
}

// FindPIDs returns the PIDs of processes whose executable name matches
// name exactly. The current process is never included.
func FindPIDs(lister ProcessLister, name string) ([]int32, error) {
	procs, err := lister.Processes()
	if err != nil {
		return nil, err
	}

	self := int32(os.Getpid())

	pids := make([]int32, 0, 4)
	for _, p := range procs {
		if p.PID == self || p.Name != name {
			continue
		}
		pids = append(pids, p.PID)
	}

	log.Debug().Str("program", name).Ints32("pids", pids).Msg("resolved process ids")

	return pids, nil
}
