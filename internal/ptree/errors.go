package ptree

import (
	"errors"
	"fmt"
)

// Batch-level integrity failures. Either one invalidates the whole
// enumeration batch: a snapshot with processes silently missing or
// double-counted would be misleading, so nothing of it is kept.
var (
	// ErrDuplicate flags a pid reported twice within one batch, either
	// as the same child registered under a parent twice or as two
	// authoritative results for one pid.
	ErrDuplicate = errors.New("duplicate process result")

	// ErrCycle flags a parent chain that loops back on itself, which
	// the host process model should never produce.
	ErrCycle = errors.New("process ancestry cycle")
)

// TreeError wraps structural failures found while assembling or walking
// the process tree. These indicate a bug in the collector or an OS race
// such as pid reuse mid-batch, not a legitimately degraded process.
type TreeError struct {
	Kind error
	Msg  string
}

func (e *TreeError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *TreeError) Unwrap() error { return e.Kind }

func duplicatef(format string, args ...any) error {
	return &TreeError{Kind: ErrDuplicate, Msg: fmt.Sprintf(format, args...)}
}

func cyclef(format string, args ...any) error {
	return &TreeError{Kind: ErrCycle, Msg: fmt.Sprintf(format, args...)}
}
