package report

import (
	"go.uber.org/zap"

	"github.com/HadrienG2/benchmon/pkg/model"
)

func reportCPU(log *zap.Logger, arch string, cpu model.CPUInfo) {
	log.Info("Received CPU configuration information",
		zap.String("architecture", arch),
		zap.String("model_name", cpu.ModelName),
		zap.Int("logical_cpus", cpu.LogicalCount),
		zap.Int("physical_cpus", cpu.PhysicalCount))

	// A per-CPU breakdown is only present when the ranges actually
	// differ (ARM big.LITTLE and friends); symmetric machines get the
	// concise global range.
	switch {
	case len(cpu.PerCPU) > 0:
		for i, freq := range cpu.PerCPU {
			logFreqRange(log.With(zap.Int("logical_cpu", i)), "per-CPU", freq)
		}
	case cpu.Freq != (model.FreqRange{}):
		logFreqRange(log, "global CPU", cpu.Freq)
	default:
		log.Debug("No CPU frequency range data available")
	}
}

func logFreqRange(log *zap.Logger, title string, freq model.FreqRange) {
	if freq.MinMHz > 0 && freq.MaxMHz > 0 {
		log.Info("Found "+title+" frequency range",
			zap.Uint64("min_mhz", freq.MinMHz),
			zap.Uint64("max_mhz", freq.MaxMHz))
		return
	}
	log.Warn("Some "+title+" frequency range data is missing",
		zap.Uint64("min_mhz", freq.MinMHz),
		zap.Uint64("max_mhz", freq.MaxMHz))
}
