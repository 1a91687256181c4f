package logging

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewFileSinkCapturesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "benchmon.json")
	log, closer, err := New(Options{
		ConsoleLevel: zapcore.ErrorLevel, // keep the test's stderr quiet
		File:         path,
		Version:      "1.2.3-test",
	})
	require.NoError(t, err)

	log.Debug("debug detail")
	log.Info("info event")
	closer()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []map[string]interface{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}
	require.NoError(t, scanner.Err())

	require.Len(t, entries, 2, "the file sink records debug even when the console does not")
	require.Equal(t, "debug detail", entries[0]["msg"])
	require.Equal(t, "debug", entries[0]["level"])

	for _, entry := range entries {
		require.Equal(t, "1.2.3-test", entry["version"])
		id, ok := entry["snapshot_id"].(string)
		require.True(t, ok)
		_, err := uuid.Parse(id)
		require.NoError(t, err, "snapshot_id must be a well-formed uuid")
	}
	require.Equal(t, entries[0]["snapshot_id"], entries[1]["snapshot_id"],
		"one run, one snapshot id")
}

func TestNewUnwritableFile(t *testing.T) {
	_, _, err := New(Options{
		File: filepath.Join(t.TempDir(), "missing", "dir", "benchmon.json"),
	})
	require.Error(t, err)
}

func TestNewConsoleOnly(t *testing.T) {
	log, closer, err := New(Options{ConsoleLevel: zapcore.ErrorLevel})
	require.NoError(t, err)
	defer closer()
	log.Info("swallowed by the level threshold")
}
