// Package report renders a collected snapshot as structured log events.
// Section order is fixed: CPU, memory, filesystem, network, sensors,
// operating system, users, processes. Sections whose data was not
// collected stay silent.
package report

import (
	"go.uber.org/zap"

	"github.com/HadrienG2/benchmon/internal/output"
	"github.com/HadrienG2/benchmon/pkg/model"
)

// Startup emits the whole startup report. The only failure mode is a
// process batch whose integrity checks fail, in which case the process
// section emits nothing and the error propagates.
func Startup(log *zap.Logger, snap *model.Snapshot) error {
	reportCPU(log, snap.Host.Arch, snap.CPU)
	reportMemory(log, snap.Memory)
	reportMounts(log, snap.Mounts)
	reportNetwork(log, snap.Ifaces)
	reportSensors(log, snap.Sensors)
	reportHost(log, snap.Host, snap.Virt)
	reportUsers(log, snap.Users)
	return reportProcs(log, snap.Procs)
}

func reportMemory(log *zap.Logger, mem model.MemoryInfo) {
	log.Info("Received memory configuration information",
		zap.String("ram_size", output.FormatBytes(mem.TotalRAM)),
		zap.String("swap_size", output.FormatBytes(mem.TotalSwap)))

	if mem.UsedSwap > mem.TotalSwap/10 {
		log.Warn("Non-negligible use of swap detected, make sure that it doesn't bias your benchmark!",
			zap.String("swap_usage", output.FormatBytes(mem.UsedSwap)))
	}
}

func reportHost(log *zap.Logger, host model.HostInfo, virt model.Virtualization) {
	log.Info("Received host OS information",
		zap.String("hostname", host.Hostname),
		zap.String("os_name", host.OS),
		zap.String("os_release", host.Release),
		zap.String("os_version", host.Version))

	if virt.Scheme != "" {
		log.Warn("Found underlying virtualization layers, make sure that they don't bias your benchmarks!",
			zap.String("scheme", virt.Scheme),
			zap.String("detail", virt.Detail))
	}
}
