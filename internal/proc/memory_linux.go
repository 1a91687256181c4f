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

// Memory reads RAM and swap sizes from /proc/meminfo.
func Memory() (model.MemoryInfo, error) {
	raw, err := os.ReadFile(procRoot + "/meminfo")
	if err != nil {
		return model.MemoryInfo{}, fmt.Errorf("reading meminfo: %w", err)
	}
	return parseMeminfo(raw)
}

func parseMeminfo(raw []byte) (model.MemoryInfo, error) {
	vals := make(map[string]uint64)
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	for scanner.Scan() {
		name, rest, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			continue
		}
		v, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			continue
		}
		if len(fields) > 1 && fields[1] == "kB" {
			v *= 1024
		}
		vals[name] = v
	}

	total, ok := vals["MemTotal"]
	if !ok {
		return model.MemoryInfo{}, errors.New("meminfo: no MemTotal line")
	}
	avail, ok := vals["MemAvailable"]
	if !ok {
		// Pre-3.14 kernels; MemFree underestimates but beats nothing.
		avail = vals["MemFree"]
	}

	info := model.MemoryInfo{
		TotalRAM:     total,
		AvailableRAM: avail,
		TotalSwap:    vals["SwapTotal"],
	}
	if free := vals["SwapFree"]; info.TotalSwap > free {
		info.UsedSwap = info.TotalSwap - free
	}
	return info, nil
}
