package report

import (
	"sort"

	"go.uber.org/zap"

	"github.com/HadrienG2/benchmon/internal/output"
	"github.com/HadrienG2/benchmon/pkg/model"
)

// mountKey collapses mounts of the same device into one report line.
// Used bytes act as a hidden tiebreak so unrelated same-size mounts
// (tmpfs upon tmpfs) do not merge by accident.
type mountKey struct {
	device     string
	capacity   string
	filesystem string
	used       uint64
}

func reportMounts(log *zap.Logger, mounts []model.Mount) {
	if len(mounts) == 0 {
		return
	}
	log.Debug("Processing filesystem mount list...")

	groups := make(map[mountKey][]string)
	for _, m := range mounts {
		key := mountKey{
			device:     m.Device,
			filesystem: m.Filesystem,
		}
		if key.device == "" {
			key.device = "none"
		}
		if m.Usage != nil {
			key.capacity = output.FormatBytes(m.Usage.TotalBytes)
			key.used = m.Usage.UsedBytes
		} else {
			key.capacity = "unavailable: " + m.UsageErr
		}
		groups[key] = append(groups[key], m.MountPoint)
	}

	keys := make([]mountKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.device != b.device {
			return a.device < b.device
		}
		if a.capacity != b.capacity {
			return a.capacity < b.capacity
		}
		if a.filesystem != b.filesystem {
			return a.filesystem < b.filesystem
		}
		return a.used < b.used
	})

	for _, key := range keys {
		points := groups[key]
		sort.Strings(points)
		log.Info("Found a mounted device",
			zap.String("device", key.device),
			zap.String("capacity", key.capacity),
			zap.String("file_system", key.filesystem),
			zap.Strings("mount_points", points))
	}
}
