//go:build linux

package proc

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/HadrienG2/benchmon/pkg/model"
)

// Sensors collects temperature channels from every hwmon device.
// Machines without hardware monitoring, most VMs included, report none.
func Sensors() ([]model.TempSensor, error) {
	hwmonDir := sysRoot + "/class/hwmon"
	entries, err := os.ReadDir(hwmonDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing hwmon: %w", err)
	}

	var sensors []model.TempSensor
	for _, e := range entries {
		dir := hwmonDir + "/" + e.Name()
		unit := readTrimmed(dir + "/name")

		inputs, _ := filepath.Glob(dir + "/temp*_input")
		for _, input := range inputs {
			milli, ok := readMilli(input)
			if !ok {
				continue
			}
			prefix := strings.TrimSuffix(input, "_input")
			sensor := model.TempSensor{
				Unit:    unit,
				Label:   readTrimmed(prefix + "_label"),
				Celsius: float64(milli) / 1000,
			}
			if v, ok := readMilli(prefix + "_max"); ok {
				c := float64(v) / 1000
				sensor.HighTrip = &c
			}
			if v, ok := readMilli(prefix + "_crit"); ok {
				c := float64(v) / 1000
				sensor.CritTrip = &c
			}
			sensors = append(sensors, sensor)
		}
	}
	return sensors, nil
}

// readMilli reads a hwmon value file, which counts in millidegrees.
func readMilli(path string) (int64, bool) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	v, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// readTrimmed reads a one-line sysfs attribute, empty when unreadable.
func readTrimmed(path string) string {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}
