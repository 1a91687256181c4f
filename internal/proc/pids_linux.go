//go:build linux

package proc

import (
	"fmt"
	"os"
	"strconv"

	"github.com/HadrienG2/benchmon/pkg/model"
)

// Pids lists every live pid procfs currently exposes, in directory
// order. A procfs that cannot be listed leaves nothing to snapshot, so
// the error aborts the scan.
func Pids() ([]model.Pid, error) {
	entries, err := os.ReadDir(procRoot)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", procRoot, err)
	}

	var pids []model.Pid
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		pid, err := strconv.ParseInt(e.Name(), 10, 32)
		if err != nil {
			continue
		}
		pids = append(pids, model.Pid(pid))
	}
	return pids, nil
}
