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

	"github.com/HadrienG2/benchmon/pkg/model"
)

// sysRoot points at the kernel's sysfs. Tests repoint it at fixture
// directories.
var sysRoot = "/sys"

// CPU describes the processor configuration: model name and logical
// count from /proc/cpuinfo, core count from (physical id, core id)
// topology pairs, frequency ranges from cpufreq sysfs where the driver
// exposes them.
func CPU() (model.CPUInfo, error) {
	raw, err := os.ReadFile(procRoot + "/cpuinfo")
	if err != nil {
		return model.CPUInfo{}, fmt.Errorf("reading cpuinfo: %w", err)
	}
	info, err := parseCpuinfo(raw)
	if err != nil {
		return model.CPUInfo{}, err
	}

	// Frequency ranges are optional: VMs and minimal kernels often ship
	// no cpufreq driver at all.
	info.Freq, info.PerCPU = readFreqRanges(info.LogicalCount)
	return info, nil
}

func parseCpuinfo(raw []byte) (model.CPUInfo, error) {
	var info model.CPUInfo

	type core struct{ pkg, id string }
	seen := make(map[core]bool)
	var cur core
	flush := func() {
		if cur.pkg != "" || cur.id != "" {
			seen[cur] = true
		}
		cur = core{}
	}

	scanner := bufio.NewScanner(bytes.NewReader(raw))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch key {
		case "processor":
			info.LogicalCount++
		case "model name":
			if info.ModelName == "" {
				info.ModelName = value
			}
		case "physical id":
			cur.pkg = value
		case "core id":
			cur.id = value
		}
	}
	flush()

	if info.LogicalCount == 0 {
		return model.CPUInfo{}, errors.New("cpuinfo: no processor entries")
	}
	info.PhysicalCount = len(seen)
	return info, nil
}

// readFreqRanges collects one cpufreq range per logical CPU. When every
// CPU reports the same range only the shared one is kept, so the report
// does not repeat itself on symmetric machines.
func readFreqRanges(logical int) (model.FreqRange, []model.FreqRange) {
	if logical == 0 {
		return model.FreqRange{}, nil
	}

	ranges := make([]model.FreqRange, logical)
	any := false
	uniform := true
	for i := range ranges {
		dir := fmt.Sprintf("%s/devices/system/cpu/cpu%d/cpufreq", sysRoot, i)
		min, okMin := readKHz(dir + "/cpuinfo_min_freq")
		max, okMax := readKHz(dir + "/cpuinfo_max_freq")
		if okMin || okMax {
			any = true
		}
		ranges[i] = model.FreqRange{MinMHz: min / 1000, MaxMHz: max / 1000}
		if ranges[i] != ranges[0] {
			uniform = false
		}
	}

	switch {
	case !any:
		return model.FreqRange{}, nil
	case uniform:
		return ranges[0], nil
	default:
		return ranges[0], ranges
	}
}

func readKHz(path string) (uint64, bool) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	v, err := strconv.ParseUint(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
