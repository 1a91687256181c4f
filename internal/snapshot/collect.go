// Package snapshot gathers one consistent picture of the machine at
// startup time. Collection is all or nothing: degraded facts about
// individual processes are data, but an unintelligible kernel interface
// fails the whole batch so no partial snapshot is ever reported.
package snapshot

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/HadrienG2/benchmon/internal/proc"
	"github.com/HadrienG2/benchmon/pkg/model"
)

// Probe seams. Tests swap these for fakes; production code never does.
var (
	hostInfo   = proc.Host
	virtInfo   = proc.Virtualization
	cpuInfo    = proc.CPU
	memInfo    = proc.Memory
	mountList  = proc.Mounts
	ifaceList  = proc.Interfaces
	sensorList = proc.Sensors
	userList   = proc.Users
	bootTime   = proc.BootTime
	pidList    = proc.Pids
	queryProc  = proc.QueryProcess
)

// queryParallelism bounds concurrent per-pid procfs reads. Each query
// is a handful of small file reads, so a modest fan-out already hides
// the syscall latency without hammering the kernel.
const queryParallelism = 16

// Options selects the optional report sections. Host, virtualization,
// CPU, memory and the process tree are always collected.
type Options struct {
	Mounts  bool
	Network bool
	Sensors bool
	Users   bool
}

// AllSections enables everything.
func AllSections() Options {
	return Options{Mounts: true, Network: true, Sensors: true, Users: true}
}

// Collect gathers a full snapshot, fanning the independent sections out
// across goroutines. The first error cancels the remaining work and
// discards everything already gathered.
func Collect(ctx context.Context, opts Options) (*model.Snapshot, error) {
	snap := &model.Snapshot{TakenAt: time.Now()}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.Host, err = hostInfo()
		return section("host", err)
	})
	g.Go(func() error {
		snap.Virt = virtInfo()
		return nil
	})
	g.Go(func() error {
		var err error
		snap.CPU, err = cpuInfo()
		return section("cpu", err)
	})
	g.Go(func() error {
		var err error
		snap.Memory, err = memInfo()
		return section("memory", err)
	})
	g.Go(func() error {
		var err error
		snap.Procs, err = collectProcs(ctx)
		return section("processes", err)
	})
	if opts.Mounts {
		g.Go(func() error {
			var err error
			snap.Mounts, err = mountList()
			return section("mounts", err)
		})
	}
	if opts.Network {
		g.Go(func() error {
			var err error
			snap.Ifaces, err = ifaceList()
			return section("network", err)
		})
	}
	if opts.Sensors {
		g.Go(func() error {
			var err error
			snap.Sensors, err = sensorList()
			return section("sensors", err)
		})
	}
	if opts.Users {
		g.Go(func() error {
			var err error
			snap.Users, err = userList()
			return section("users", err)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

// collectProcs enumerates pids once and queries each exactly once. The
// boot timestamp is shared across queries so every start time is
// derived from the same origin.
func collectProcs(ctx context.Context) ([]model.ProcResult, error) {
	boot, err := bootTime()
	if err != nil {
		return nil, err
	}
	pids, err := pidList()
	if err != nil {
		return nil, err
	}

	results := make([]model.ProcResult, len(pids))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(queryParallelism)
	for i, pid := range pids {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := queryProc(pid, boot)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func section(name string, err error) error {
	if err != nil {
		return fmt.Errorf("collecting %s: %w", name, err)
	}
	return nil
}
