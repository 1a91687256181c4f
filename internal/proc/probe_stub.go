//go:build !linux

package proc

import (
	"errors"
	"time"

	"github.com/HadrienG2/benchmon/pkg/model"
)

var errLinuxOnly = errors.New("host probing is only supported on Linux")

func Pids() ([]model.Pid, error) {
	return nil, errLinuxOnly
}

func QueryProcess(model.Pid, time.Time) (model.ProcResult, error) {
	return model.ProcResult{}, errLinuxOnly
}

func BootTime() (time.Time, error) {
	return time.Time{}, errLinuxOnly
}

func Host() (model.HostInfo, error) {
	return model.HostInfo{}, errLinuxOnly
}

func Memory() (model.MemoryInfo, error) {
	return model.MemoryInfo{}, errLinuxOnly
}

func CPU() (model.CPUInfo, error) {
	return model.CPUInfo{}, errLinuxOnly
}

func Mounts() ([]model.Mount, error) {
	return nil, errLinuxOnly
}

func Sensors() ([]model.TempSensor, error) {
	return nil, errLinuxOnly
}

func Users() ([]model.UserSession, error) {
	return nil, errLinuxOnly
}

func Virtualization() model.Virtualization {
	return model.Virtualization{}
}

func ReadStat() (Stat, error) {
	return Stat{}, errLinuxOnly
}

func LoadAvg() ([3]float64, error) {
	return [3]float64{}, errLinuxOnly
}
