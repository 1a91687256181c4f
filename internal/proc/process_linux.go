//go:build linux

package proc

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"github.com/HadrienG2/benchmon/pkg/model"
)

// procRoot points at the kernel's procfs. Tests repoint it at fixture
// directories.
var procRoot = "/proc"

// QueryProcess gathers the record of one discovered pid. Degraded
// outcomes come back as data, not errors: a process that exited
// mid-query is vanished, a zombie keeps nothing but its pid, and
// attributes behind permission walls are flagged denied one by one.
// An error return means procfs itself produced something
// unintelligible, which invalidates the whole scan.
func QueryProcess(pid model.Pid, boot time.Time) (model.ProcResult, error) {
	raw, err := os.ReadFile(fmt.Sprintf("%s/%d/stat", procRoot, pid))
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist) || errors.Is(err, unix.ESRCH):
		return model.ProcResult{Pid: pid, Status: model.StatusVanished}, nil
	case errors.Is(err, os.ErrPermission):
		// hidepid procfs hides even stat from other users.
		return model.ProcResult{Pid: pid, Status: model.StatusAccessDenied}, nil
	default:
		return model.ProcResult{}, fmt.Errorf("pid %d: reading stat: %w", pid, err)
	}

	comm, state, ppid, startTicks, err := parseStat(raw)
	if err != nil {
		return model.ProcResult{}, fmt.Errorf("pid %d: %w", pid, err)
	}
	if state == 'Z' {
		return model.ProcResult{Pid: pid, Status: model.StatusZombie}, nil
	}

	record := &model.ProcRecord{
		Parent:  model.Pid(ppid),
		Name:    comm,
		Started: boot.Add(time.Duration(startTicks) * time.Second / ticksPerSecond()),
	}

	exe, err := os.Readlink(fmt.Sprintf("%s/%d/exe", procRoot, pid))
	switch {
	case err == nil:
		record.Exe = exe
	case errors.Is(err, os.ErrPermission):
		record.Denied.Add(model.FieldExe)
	default:
		// Kernel threads have no exe link at all; leave it empty.
	}

	rawCmd, err := os.ReadFile(fmt.Sprintf("%s/%d/cmdline", procRoot, pid))
	switch {
	case err == nil:
		record.Cmdline = splitCmdline(rawCmd)
	case errors.Is(err, os.ErrNotExist) || errors.Is(err, unix.ESRCH):
		// Gone since the stat read. Partial attributes of a process
		// that no longer exists are worthless, so collapse the record.
		return model.ProcResult{Pid: pid, Status: model.StatusVanished}, nil
	case errors.Is(err, os.ErrPermission):
		record.Denied.Add(model.FieldCmdline)
	default:
		return model.ProcResult{}, fmt.Errorf("pid %d: reading cmdline: %w", pid, err)
	}

	return model.ProcResult{Pid: pid, Status: model.StatusOK, Record: record}, nil
}

// parseStat pulls the snapshot-relevant fields out of /proc/<pid>/stat.
// The comm field may itself contain spaces and parentheses, so it is
// delimited by the first "(" and the last ")".
func parseStat(raw []byte) (comm string, state byte, ppid int32, startTicks int64, err error) {
	s := string(raw)
	open := strings.Index(s, "(")
	close := strings.LastIndex(s, ")")
	if open == -1 || close == -1 || close < open {
		return "", 0, 0, 0, errors.New("malformed stat: comm delimiters missing")
	}
	comm = s[open+1 : close]

	fields := strings.Fields(s[close+1:])
	if len(fields) < 20 {
		return "", 0, 0, 0, fmt.Errorf("malformed stat: %d fields after comm", len(fields))
	}
	state = fields[0][0]

	parent, perr := strconv.ParseInt(fields[1], 10, 32)
	if perr != nil {
		return "", 0, 0, 0, fmt.Errorf("malformed stat: ppid: %w", perr)
	}
	startTicks, serr := strconv.ParseInt(fields[19], 10, 64)
	if serr != nil {
		return "", 0, 0, 0, fmt.Errorf("malformed stat: start time: %w", serr)
	}
	return comm, state, int32(parent), startTicks, nil
}

// splitCmdline splits the NUL-delimited argv. Zombies and kernel
// threads expose an empty file, which maps to no arguments at all.
func splitCmdline(raw []byte) []string {
	var args []string
	for _, arg := range strings.Split(string(raw), "\x00") {
		if arg != "" {
			args = append(args, arg)
		}
	}
	return args
}
