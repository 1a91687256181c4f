//go:build linux

package proc

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// BootTime reads the kernel boot timestamp that per-process start ticks
// count from. Without it no process creation time can be trusted, so
// failures abort the scan.
func BootTime() (time.Time, error) {
	f, err := os.Open(procRoot + "/stat")
	if err != nil {
		return time.Time{}, fmt.Errorf("reading boot time: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 2 || fields[0] != "btime" {
			continue
		}
		sec, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("malformed btime %q: %w", fields[1], err)
		}
		return time.Unix(sec, 0), nil
	}
	if err := scanner.Err(); err != nil {
		return time.Time{}, fmt.Errorf("reading boot time: %w", err)
	}
	return time.Time{}, errors.New("no btime line in " + procRoot + "/stat")
}

func ticksPerSecond() time.Duration {
	return 100 // USER_HZ on every Linux configuration we build for
}
