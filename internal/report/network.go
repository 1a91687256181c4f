package report

import (
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/HadrienG2/benchmon/pkg/model"
)

func reportNetwork(log *zap.Logger, ifaces []model.Interface) {
	if len(ifaces) == 0 {
		return
	}
	log.Debug("Processing network interface list...")

	sorted := make([]model.Interface, len(ifaces))
	copy(sorted, ifaces)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	for _, iface := range sorted {
		nicLog := log.With(zap.String("interface", iface.Name))
		nicLog.Info("Found a network interface",
			zap.Bool("up", iface.Up),
			zap.Bool("loopback", iface.Loopback),
			zap.Bool("multicast", iface.Multicast),
			zap.Bool("broadcast", iface.Broadcast),
			zap.Bool("point_to_point", iface.PointToPoint),
			zap.Int("mtu", iface.MTU))

		if iface.MAC != "" {
			nicLog.Info("Got a link-layer address", zap.String("address", iface.MAC))
		}
		for _, addr := range iface.IPv4 {
			nicLog.Info("Got an IPv4 address", zap.String("address", cidr(addr)))
		}
		for _, addr := range iface.IPv6 {
			nicLog.Info("Got an IPv6 address", zap.String("address", cidr(addr)))
		}
	}
}

func cidr(a model.Addr) string {
	return a.Address + "/" + strconv.Itoa(a.Prefix)
}
