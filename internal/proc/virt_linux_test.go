//go:build linux

package proc

import "testing"

func TestClassifyCgroup(t *testing.T) {
	cases := []struct{ cgroup, want string }{
		{"0::/system.slice/docker-abc123.scope\n", "docker"},
		{"0::/kubepods/besteffort/pod42/abc\n", "kubernetes"},
		{"12:cpuset:/lxc/mycontainer\n", "lxc"},
		{"0::/default/containerd-shim\n", "containerd"},
		{"0::/init.scope\n", ""},
	}
	for _, c := range cases {
		if got := classifyCgroup(c.cgroup); got != c.want {
			t.Errorf("classifyCgroup(%q) = %q, want %q", c.cgroup, got, c.want)
		}
	}
}

func TestHypervisorVendor(t *testing.T) {
	cases := []struct{ vendor, want string }{
		{"QEMU", "kvm"},
		{"Amazon EC2", "kvm"},
		{"VMware, Inc.", "vmware"},
		{"innotek GmbH", "virtualbox"},
		{"Microsoft Corporation", "hyperv"},
		{"Xen", "xen"},
		{"Parallels International GmbH.", "parallels"},
		{"Dell Inc.", ""},
	}
	for _, c := range cases {
		if got := hypervisorVendor(c.vendor); got != c.want {
			t.Errorf("hypervisorVendor(%q) = %q, want %q", c.vendor, got, c.want)
		}
	}
}

func TestHasHypervisorFlag(t *testing.T) {
	guest := []byte("processor: 0\nflags\t\t: fpu vme hypervisor ss\n")
	if !hasHypervisorFlag(guest) {
		t.Error("hypervisor flag not detected")
	}

	metal := []byte("processor: 0\nflags\t\t: fpu vme ss\n")
	if hasHypervisorFlag(metal) {
		t.Error("false positive on bare metal flags")
	}

	// Substring of another flag must not match.
	tricky := []byte("flags: nonhypervisorlike\n")
	if hasHypervisorFlag(tricky) {
		t.Error("matched a flag that merely contains the word")
	}
}
