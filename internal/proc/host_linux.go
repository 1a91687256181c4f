//go:build linux

package proc

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/HadrienG2/benchmon/pkg/model"
)

// Host identifies the kernel and machine the snapshot runs on.
func Host() (model.HostInfo, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return model.HostInfo{}, fmt.Errorf("uname: %w", err)
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = cString(uts.Nodename[:])
	}

	return model.HostInfo{
		Hostname: hostname,
		OS:       cString(uts.Sysname[:]),
		Release:  cString(uts.Release[:]),
		Version:  cString(uts.Version[:]),
		Arch:     cString(uts.Machine[:]),
	}, nil
}

// cString trims a NUL-terminated fixed-size field.
func cString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
