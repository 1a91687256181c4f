package proc

// CPUTicks is one CPU line of /proc/stat, reduced to busy versus total
// jiffies. Fractions only make sense as deltas between two readings.
type CPUTicks struct {
	Busy  uint64
	Total uint64
}

// Stat is one reading of the kernel's aggregate activity counters.
type Stat struct {
	Aggregate       CPUTicks
	PerCPU          []CPUTicks
	ContextSwitches uint64
	Interrupts      uint64
}
