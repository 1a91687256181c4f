package ptree

import (
	"go.uber.org/zap"

	"github.com/HadrienG2/benchmon/internal/output"
	"github.com/HadrienG2/benchmon/pkg/model"
)

// deniedMarker stands in for any record field the kernel refused to
// disclose. It is never replaced by a default value, so a report reader
// can tell "empty" from "not allowed to know".
const deniedMarker = "unavailable: access denied"

// Report logs one event per process in deterministic order: roots by
// ascending pid, then depth-first through each node's children by
// ascending pid. Every event below a root carries one "parent_pid"
// context field per ancestry level, so a subtree can be grepped out of
// flat logs by its topmost pid.
//
// Severities follow the failure taxonomy: full records and vanished
// processes log at debug, zombies at warn, and processes whose whole
// record was off-limits at error. Running Report twice over the same
// tree yields identical event sequences.
func (t *Tree) Report(log *zap.Logger) error {
	// Loggers by depth. Children are visited right after their parent
	// one level down, so slot depth+1 always holds the logger derived
	// from the parent by the time they need it.
	logs := []*zap.Logger{log}
	return t.Walk(func(pid model.Pid, node *Node, depth int) {
		l := logs[depth]
		emit(l, pid, node)

		child := l.With(zap.Int32("parent_pid", int32(pid)))
		if depth+1 < len(logs) {
			logs[depth+1] = child
		} else {
			logs = append(logs, child)
		}
	})
}

func emit(log *zap.Logger, pid model.Pid, node *Node) {
	switch node.Status {
	case model.StatusOK:
		emitRecord(log, pid, node.Record)
	case model.StatusAccessDenied:
		log.Error("Found a process, but access to its info was denied",
			zap.Int32("pid", int32(pid)))
	case model.StatusVanished:
		log.Debug("Found a nonexistent process, likely a race during enumeration",
			zap.Int32("pid", int32(pid)))
	case model.StatusZombie:
		log.Warn("Found a process in the zombie state",
			zap.Int32("pid", int32(pid)))
	}
}

func emitRecord(log *zap.Logger, pid model.Pid, r *model.ProcRecord) {
	fields := make([]zap.Field, 0, 6)
	fields = append(fields, zap.Int32("pid", int32(pid)))

	switch {
	case r.Denied.Has(model.FieldParent):
		fields = append(fields, zap.String("parent", deniedMarker))
	case r.Parent != 0:
		fields = append(fields, zap.Int32("parent", int32(r.Parent)))
	default:
		fields = append(fields, zap.String("parent", "none"))
	}

	if r.Denied.Has(model.FieldName) {
		fields = append(fields, zap.String("name", deniedMarker))
	} else {
		fields = append(fields, zap.String("name", output.Sanitize(r.Name)))
	}

	switch {
	case r.Denied.Has(model.FieldExe):
		fields = append(fields, zap.String("exe", deniedMarker))
	case r.Exe == "":
		fields = append(fields, zap.String("exe", "none"))
	default:
		fields = append(fields, zap.String("exe", output.Sanitize(r.Exe)))
	}

	switch {
	case r.Denied.Has(model.FieldCmdline):
		fields = append(fields, zap.String("command", deniedMarker))
	case len(r.Cmdline) == 0:
		fields = append(fields, zap.String("command", "none"))
	default:
		fields = append(fields, zap.String("command", output.Args(r.Cmdline)))
	}

	if r.Denied.Has(model.FieldStarted) {
		fields = append(fields, zap.String("started", deniedMarker))
	} else {
		fields = append(fields, zap.Time("started", r.Started))
	}

	log.Debug("Found a process", fields...)
}
