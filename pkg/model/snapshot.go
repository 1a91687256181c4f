package model

import "time"

// HostInfo identifies the operating system the snapshot was taken on.
type HostInfo struct {
	Hostname string
	OS       string // kernel name, e.g. "Linux"
	Release  string // kernel release, e.g. "6.8.0-45-generic"
	Version  string // kernel build string
	Arch     string // machine architecture, e.g. "x86_64"
}

// Virtualization describes a detected virtualization or container layer.
// Empty Scheme means bare metal as far as we can tell.
type Virtualization struct {
	Scheme string // e.g. "kvm", "vmware", "docker"
	Detail string // what gave it away
}

// FreqRange is a CPU frequency operating range in MHz. Zero values mean
// the kernel did not expose the bound.
type FreqRange struct {
	MinMHz uint64
	MaxMHz uint64
}

// CPUInfo describes the host CPU configuration.
type CPUInfo struct {
	ModelName    string
	LogicalCount int
	// PhysicalCount is 0 when core topology could not be read.
	PhysicalCount int
	// Global frequency range, as exposed by cpu0.
	Freq FreqRange
	// PerCPU holds one range per logical CPU when the ranges differ
	// across CPUs, nil when they are uniform or unavailable.
	PerCPU []FreqRange
}

// MemoryInfo describes RAM and swap sizes in bytes.
type MemoryInfo struct {
	TotalRAM     uint64
	AvailableRAM uint64
	TotalSwap    uint64
	UsedSwap     uint64
}

// MountUsage is the capacity breakdown of one mounted filesystem.
type MountUsage struct {
	TotalBytes uint64
	UsedBytes  uint64
}

// Mount is one entry of the host's mount table. Usage is nil when statfs
// failed on the mount point; that happens on access-restricted
// pseudo-filesystems and is not an error.
type Mount struct {
	Device     string
	MountPoint string
	Filesystem string
	Usage      *MountUsage
	UsageErr   string
}

// Addr is one network-layer address of an interface.
type Addr struct {
	Address string
	Prefix  int
}

// Interface describes one network interface.
type Interface struct {
	Name         string
	MTU          int
	MAC          string
	Up           bool
	Loopback     bool
	Multicast    bool
	Broadcast    bool
	PointToPoint bool
	IPv4         []Addr
	IPv6         []Addr
}

// TempSensor is one temperature channel of a hardware monitoring device.
// Trip points are nil when the driver does not expose them.
type TempSensor struct {
	Unit     string // hwmon device name, e.g. "coretemp"
	Label    string // channel label, e.g. "Core 0", may be empty
	Celsius  float64
	HighTrip *float64
	CritTrip *float64
}

// UserSession is one login record of a logged-in user.
type UserSession struct {
	User     string
	Terminal string
	ID       string
	Host     string
	Addr     string
	Session  int32
	LoginPid Pid
	Time     time.Time
}

// Snapshot aggregates everything the startup report covers. Process
// results stay in enumeration order; tree building imposes its own order.
type Snapshot struct {
	TakenAt time.Time
	Host    HostInfo
	Virt    Virtualization
	CPU     CPUInfo
	Memory  MemoryInfo
	Mounts  []Mount
	Ifaces  []Interface
	Sensors []TempSensor
	Users   []UserSession
	Procs   []ProcResult
}
