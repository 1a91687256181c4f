package model

import "time"

// Pid identifies an OS process. The kernel recycles pids over time, so a
// Pid is only meaningful within the snapshot that produced it.
type Pid int32

// Field names one attribute of a process record.
type Field uint8

const (
	FieldParent Field = 1 << iota
	FieldName
	FieldExe
	FieldCmdline
	FieldStarted
)

// FieldSet is the set of record attributes a probe was not allowed to read.
// A denied attribute is different from an empty one: kernel threads have no
// executable path at all, while a foreign process hides its path behind
// permission checks.
type FieldSet uint8

func (s FieldSet) Has(f Field) bool { return uint8(s)&uint8(f) != 0 }

func (s *FieldSet) Add(f Field) { *s |= FieldSet(f) }

// ProcRecord holds the per-process attributes gathered during enumeration.
// Attributes listed in Denied hold their zero value and must not be
// interpreted.
type ProcRecord struct {
	// Parent is the pid of the parent process, 0 when the process sits at
	// the top of the tree (pid 1 and kernel threads on Linux).
	Parent Pid

	// Name is the short process name (comm).
	Name string

	// Exe is the path to the executable, empty for kernel threads.
	Exe string

	// Cmdline is the NUL-separated command line, empty for kernel threads.
	Cmdline []string

	// Started is the process creation time.
	Started time.Time

	// Denied lists the attributes the probe lacked permission to read.
	Denied FieldSet
}

// HasParent reports whether the record names a parent process.
// A denied parent attribute does not count as having one.
func (r *ProcRecord) HasParent() bool {
	return !r.Denied.Has(FieldParent) && r.Parent != 0
}

// ProcStatus classifies how much of a process could be queried.
type ProcStatus int

const (
	// StatusOK means the record was retrieved, though individual
	// attributes may still be denied.
	StatusOK ProcStatus = iota

	// StatusAccessDenied means the process is visible but every attribute
	// is off-limits (e.g. procfs mounted with hidepid for another user).
	StatusAccessDenied

	// StatusVanished means the process exited between discovery and query,
	// or the pid never mapped to a real user-mode process.
	StatusVanished

	// StatusZombie means the process has exited but its exit status has
	// not been reaped by its parent yet. No attributes survive.
	StatusZombie
)

func (s ProcStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusAccessDenied:
		return "access denied"
	case StatusVanished:
		return "vanished"
	case StatusZombie:
		return "zombie"
	default:
		return "unknown"
	}
}

// ProcResult is the outcome of querying one identified process. Record is
// non-nil exactly when Status is StatusOK. Failures that prevent even
// identifying a process are not ProcResults; they abort the whole scan.
type ProcResult struct {
	Pid    Pid
	Status ProcStatus
	Record *ProcRecord
}
