package ptree

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/HadrienG2/benchmon/pkg/model"
)

func reportedEntries(t *testing.T, tree *Tree) []observer.LoggedEntry {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	require.NoError(t, tree.Report(zap.New(core)))
	return logs.All()
}

func entryPid(t *testing.T, e observer.LoggedEntry) model.Pid {
	t.Helper()
	for _, f := range e.Context {
		if f.Key == "pid" {
			return model.Pid(f.Integer)
		}
	}
	t.Fatalf("entry %q has no pid field", e.Message)
	return 0
}

func TestReportSequenceAndSeverities(t *testing.T) {
	tree, err := Build(familyFixture())
	require.NoError(t, err)

	entries := reportedEntries(t, tree)
	require.Len(t, entries, len(tree.Nodes))

	want := []struct {
		pid     model.Pid
		level   zapcore.Level
		message string
	}{
		{1, zapcore.DebugLevel, "Found a process"},
		{2, zapcore.DebugLevel, "Found a process"},
		{4, zapcore.DebugLevel, "Found a process"},
		{3, zapcore.DebugLevel, "Found a process"},
		{5, zapcore.DebugLevel, "Found a process"},
		{6, zapcore.WarnLevel, "Found a process in the zombie state"},
		{8, zapcore.ErrorLevel, "Found a process, but access to its info was denied"},
		{99, zapcore.DebugLevel, "Found a nonexistent process, likely a race during enumeration"},
		{7, zapcore.DebugLevel, "Found a process"},
	}
	for i, w := range want {
		require.Equal(t, w.pid, entryPid(t, entries[i]), "entry %d", i)
		require.Equal(t, w.level, entries[i].Level, "entry %d", i)
		require.Equal(t, w.message, entries[i].Message, "entry %d", i)
	}
}

func TestReportFullRecordFields(t *testing.T) {
	tree, err := Build(familyFixture())
	require.NoError(t, err)

	entries := reportedEntries(t, tree)

	// Second entry is pid 2, one level below root 1.
	want := []zapcore.Field{
		zap.Int32("parent_pid", 1),
		zap.Int32("pid", 2),
		zap.Int32("parent", 1),
		zap.String("name", "daemon"),
		zap.String("exe", "/usr/bin/daemon"),
		zap.String("command", "daemon"),
		zap.Time("started", fixtureStart),
	}
	require.Equal(t, want, entries[1].Context)
}

func TestReportAncestryContext(t *testing.T) {
	tree, err := Build(familyFixture())
	require.NoError(t, err)

	entries := reportedEntries(t, tree)

	// Third entry is pid 4, below 1 -> 2: one context field per level.
	require.Equal(t, model.Pid(4), entryPid(t, entries[2]))
	require.Equal(t,
		[]zapcore.Field{zap.Int32("parent_pid", 1), zap.Int32("parent_pid", 2)},
		entries[2].Context[:2])

	// Entries back at the root level carry no ancestry context.
	require.Equal(t, model.Pid(5), entryPid(t, entries[4]))
	require.Equal(t, "pid", entries[4].Context[0].Key)
}

func TestReportDeniedFieldMarkers(t *testing.T) {
	res := okProc(5, 2, "hidden")
	for _, f := range []model.Field{
		model.FieldParent, model.FieldName, model.FieldExe, model.FieldCmdline, model.FieldStarted,
	} {
		res.Record.Denied.Add(f)
	}

	tree, err := Build([]model.ProcResult{res})
	require.NoError(t, err)

	entries := reportedEntries(t, tree)
	require.Len(t, entries, 1)
	want := []zapcore.Field{
		zap.Int32("pid", 5),
		zap.String("parent", deniedMarker),
		zap.String("name", deniedMarker),
		zap.String("exe", deniedMarker),
		zap.String("command", deniedMarker),
		zap.String("started", deniedMarker),
	}
	require.Equal(t, want, entries[0].Context)
}

func TestReportEmptyFieldsRenderNone(t *testing.T) {
	tree, err := Build([]model.ProcResult{{
		Pid:    2,
		Status: model.StatusOK,
		Record: &model.ProcRecord{Name: "kthreadd", Started: fixtureStart},
	}})
	require.NoError(t, err)

	entries := reportedEntries(t, tree)
	require.Len(t, entries, 1)
	want := []zapcore.Field{
		zap.Int32("pid", 2),
		zap.String("parent", "none"),
		zap.String("name", "kthreadd"),
		zap.String("exe", "none"),
		zap.String("command", "none"),
		zap.Time("started", fixtureStart),
	}
	require.Equal(t, want, entries[0].Context)
}

func TestReportSanitizesProcessStrings(t *testing.T) {
	res := okProc(3, 0, "evil\x1b[2Jwipe")
	res.Record.Exe = "/tmp/\nnasty"
	res.Record.Cmdline = []string{"spam\x07bell", "--x"}

	tree, err := Build([]model.ProcResult{res})
	require.NoError(t, err)

	entries := reportedEntries(t, tree)
	require.Len(t, entries, 1)
	fields := map[string]string{}
	for _, f := range entries[0].Context {
		if f.Type == zapcore.StringType {
			fields[f.Key] = f.String
		}
	}
	require.Equal(t, `evil\x1b[2Jwipe`, fields["name"])
	require.Equal(t, `/tmp/\x0anasty`, fields["exe"])
	require.Equal(t, `spam\x07bell --x`, fields["command"])
}

func TestReportIdempotent(t *testing.T) {
	tree, err := Build(familyFixture())
	require.NoError(t, err)

	norm := func(entries []observer.LoggedEntry) []observer.LoggedEntry {
		out := make([]observer.LoggedEntry, len(entries))
		for i, e := range entries {
			e.Time = time.Time{}
			out[i] = e
		}
		return out
	}

	first := reportedEntries(t, tree)
	second := reportedEntries(t, tree)
	require.Equal(t, norm(first), norm(second))
}

func TestReportEmptyTree(t *testing.T) {
	tree, err := Build(nil)
	require.NoError(t, err)
	require.Empty(t, reportedEntries(t, tree))
}
