//go:build linux

package proc

import (
	"bufio"
	"bytes"
	"os"
	"strings"

	"github.com/HadrienG2/benchmon/pkg/model"
)

// Virtualization sniffs for container runtimes and hypervisors, most
// specific evidence first. An empty scheme means nothing was detected,
// which is not proof of bare metal.
func Virtualization() model.Virtualization {
	if v := containerRuntime(); v.Scheme != "" {
		return v
	}
	if vendor := readTrimmed(sysRoot + "/class/dmi/id/sys_vendor"); vendor != "" {
		if scheme := hypervisorVendor(vendor); scheme != "" {
			return model.Virtualization{Scheme: scheme, Detail: "dmi vendor: " + vendor}
		}
	}
	if t := readTrimmed(sysRoot + "/hypervisor/type"); t != "" {
		return model.Virtualization{Scheme: t, Detail: "sysfs hypervisor type"}
	}
	if raw, err := os.ReadFile(procRoot + "/cpuinfo"); err == nil && hasHypervisorFlag(raw) {
		return model.Virtualization{Scheme: "hypervisor", Detail: "cpuid hypervisor flag"}
	}
	return model.Virtualization{}
}

func containerRuntime() model.Virtualization {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return model.Virtualization{Scheme: "docker", Detail: "/.dockerenv present"}
	}

	raw, err := os.ReadFile(procRoot + "/1/cgroup")
	if err != nil {
		raw, err = os.ReadFile(procRoot + "/self/cgroup")
	}
	if err != nil {
		return model.Virtualization{}
	}
	if scheme := classifyCgroup(string(raw)); scheme != "" {
		return model.Virtualization{Scheme: scheme, Detail: "cgroup path"}
	}
	return model.Virtualization{}
}

func classifyCgroup(cgroup string) string {
	switch {
	case strings.Contains(cgroup, "docker"):
		return "docker"
	case strings.Contains(cgroup, "containerd"):
		return "containerd"
	case strings.Contains(cgroup, "kubepods"):
		return "kubernetes"
	case strings.Contains(cgroup, "lxc"):
		return "lxc"
	}
	return ""
}

func hypervisorVendor(vendor string) string {
	switch {
	case strings.Contains(vendor, "QEMU"), strings.Contains(vendor, "Amazon EC2"), strings.Contains(vendor, "Google"):
		return "kvm"
	case strings.Contains(vendor, "VMware"):
		return "vmware"
	case strings.Contains(vendor, "innotek"), strings.Contains(vendor, "VirtualBox"):
		return "virtualbox"
	case strings.Contains(vendor, "Microsoft"):
		return "hyperv"
	case strings.Contains(vendor, "Xen"):
		return "xen"
	case strings.Contains(vendor, "Parallels"):
		return "parallels"
	}
	return ""
}

func hasHypervisorFlag(cpuinfo []byte) bool {
	scanner := bufio.NewScanner(bytes.NewReader(cpuinfo))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "flags") {
			continue
		}
		for _, flag := range strings.Fields(line) {
			if flag == "hypervisor" {
				return true
			}
		}
	}
	return false
}
