//go:build linux

package proc

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ReadStat samples /proc/stat.
func ReadStat() (Stat, error) {
	raw, err := os.ReadFile(procRoot + "/stat")
	if err != nil {
		return Stat{}, fmt.Errorf("reading stat: %w", err)
	}
	return parseProcStat(raw)
}

func parseProcStat(raw []byte) (Stat, error) {
	var st Stat
	sawAggregate := false

	scanner := bufio.NewScanner(bytes.NewReader(raw))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		switch {
		case fields[0] == "cpu":
			ticks, err := parseCPULine(fields[1:])
			if err != nil {
				return Stat{}, err
			}
			st.Aggregate = ticks
			sawAggregate = true
		case strings.HasPrefix(fields[0], "cpu"):
			ticks, err := parseCPULine(fields[1:])
			if err != nil {
				return Stat{}, err
			}
			st.PerCPU = append(st.PerCPU, ticks)
		case fields[0] == "ctxt":
			st.ContextSwitches, _ = strconv.ParseUint(fields[1], 10, 64)
		case fields[0] == "intr":
			st.Interrupts, _ = strconv.ParseUint(fields[1], 10, 64)
		}
	}

	if !sawAggregate {
		return Stat{}, errors.New("stat: no aggregate cpu line")
	}
	return st, nil
}

// parseCPULine folds the jiffy columns of one cpu line. Busy counts
// everything except idle and iowait. The guest columns are already
// folded into user time by the kernel, so only the first eight count.
func parseCPULine(cols []string) (CPUTicks, error) {
	if len(cols) < 4 {
		return CPUTicks{}, fmt.Errorf("stat: cpu line with %d columns", len(cols))
	}
	if len(cols) > 8 {
		cols = cols[:8]
	}
	var ticks CPUTicks
	for i, col := range cols {
		v, err := strconv.ParseUint(col, 10, 64)
		if err != nil {
			return CPUTicks{}, fmt.Errorf("stat: cpu column %d: %w", i, err)
		}
		ticks.Total += v
		// Columns 3 and 4 are idle and iowait.
		if i != 3 && i != 4 {
			ticks.Busy += v
		}
	}
	return ticks, nil
}

// LoadAvg reads the 1, 5 and 15 minute load averages.
func LoadAvg() ([3]float64, error) {
	raw, err := os.ReadFile(procRoot + "/loadavg")
	if err != nil {
		return [3]float64{}, fmt.Errorf("reading loadavg: %w", err)
	}
	fields := strings.Fields(string(raw))
	if len(fields) < 3 {
		return [3]float64{}, errors.New("loadavg: too few fields")
	}
	var load [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return [3]float64{}, fmt.Errorf("loadavg: %w", err)
		}
		load[i] = v
	}
	return load, nil
}
