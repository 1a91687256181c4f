package proc

import (
	"fmt"
	"net"

	"github.com/HadrienG2/benchmon/pkg/model"
)

// Interfaces lists network interfaces with their addresses split by
// family, the way the report renders them.
func Interfaces() ([]model.Interface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("listing interfaces: %w", err)
	}

	out := make([]model.Interface, 0, len(ifaces))
	for _, iface := range ifaces {
		info := model.Interface{
			Name:         iface.Name,
			MTU:          iface.MTU,
			MAC:          iface.HardwareAddr.String(),
			Up:           iface.Flags&net.FlagUp != 0,
			Loopback:     iface.Flags&net.FlagLoopback != 0,
			Multicast:    iface.Flags&net.FlagMulticast != 0,
			Broadcast:    iface.Flags&net.FlagBroadcast != 0,
			PointToPoint: iface.Flags&net.FlagPointToPoint != 0,
		}

		addrs, err := iface.Addrs()
		if err != nil {
			return nil, fmt.Errorf("addresses of %s: %w", iface.Name, err)
		}
		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			prefix, _ := ipnet.Mask.Size()
			a := model.Addr{Address: ipnet.IP.String(), Prefix: prefix}
			if ipnet.IP.To4() != nil {
				info.IPv4 = append(info.IPv4, a)
			} else {
				info.IPv6 = append(info.IPv6, a)
			}
		}
		out = append(out, info)
	}
	return out, nil
}
