package watch

import (
	"time"

	"github.com/HadrienG2/benchmon/internal/proc"
	"github.com/HadrienG2/benchmon/pkg/model"
)

// Probe seams, swapped out by tests.
var (
	readStat = proc.ReadStat
	readMem  = proc.Memory
	readLoad = proc.LoadAvg
)

// sample is one reading of everything the monitor shows.
type sample struct {
	at   time.Time
	stat proc.Stat
	mem  model.MemoryInfo
	load [3]float64
}

type sampleMsg struct {
	sample sample
	err    error
}

func takeSample() sampleMsg {
	s := sample{at: time.Now()}
	var err error
	if s.stat, err = readStat(); err != nil {
		return sampleMsg{err: err}
	}
	if s.mem, err = readMem(); err != nil {
		return sampleMsg{err: err}
	}
	if s.load, err = readLoad(); err != nil {
		return sampleMsg{err: err}
	}
	return sampleMsg{sample: s}
}

// busyFraction turns two tick readings into a 0..1 load figure. Counter
// wraps and identical readings yield 0 rather than garbage.
func busyFraction(prev, cur proc.CPUTicks) float64 {
	if cur.Total <= prev.Total || cur.Busy < prev.Busy {
		return 0
	}
	frac := float64(cur.Busy-prev.Busy) / float64(cur.Total-prev.Total)
	if frac > 1 {
		return 1
	}
	return frac
}

// ratePerSecond scales a counter delta to events per second.
func ratePerSecond(prev, cur uint64, dt time.Duration) float64 {
	if cur < prev || dt <= 0 {
		return 0
	}
	return float64(cur-prev) / dt.Seconds()
}
