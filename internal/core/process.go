package core

import (
	"fmt"
	"strings"

	ps "github.com/mitchellh/go-ps"
)

// commLen is the length Linux truncates process names to in /proc/<pid>/stat.
const commLen = 15

// ProcessChecker reports whether a process with the given executable name is running.
type ProcessChecker func(exeName string) (bool, error)

// IsProcessRunning scans the process table for exeName. Matching ignores
// case and accepts the kernel's truncated process name.
func IsProcessRunning(exeName string) (bool, error) {
	if exeName == "" {
		return false, nil
	}
	procs, err := ps.Processes()
	if err != nil {
		return false, fmt.Errorf("listing processes: %w", err)
	}
	for _, p := range procs {
		if processMatches(p.Executable(), exeName) {
			return true, nil
		}
	}
	return false, nil
}

func processMatches(executable, exeName string) bool {
	if strings.EqualFold(executable, exeName) {
		return true
	}
	if len(exeName) > commLen && len(executable) == commLen {
		return strings.EqualFold(executable, exeName[:commLen])
	}
	return false
}
