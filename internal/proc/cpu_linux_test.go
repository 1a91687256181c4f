//go:build linux

package proc

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/HadrienG2/benchmon/pkg/model"
)

func withSysRoot(t *testing.T, dir string) {
	t.Helper()
	old := sysRoot
	sysRoot = dir
	t.Cleanup(func() { sysRoot = old })
}

func cpuinfoEntry(processor int, name string, physicalID, coreID int) string {
	return "processor\t: " + strconv.Itoa(processor) + "\n" +
		"model name\t: " + name + "\n" +
		"physical id\t: " + strconv.Itoa(physicalID) + "\n" +
		"core id\t: " + strconv.Itoa(coreID) + "\n\n"
}

func TestParseCpuinfoHyperthreaded(t *testing.T) {
	// Four logical CPUs, two cores, one socket.
	raw := cpuinfoEntry(0, "Example CPU @ 3.00GHz", 0, 0) +
		cpuinfoEntry(1, "Example CPU @ 3.00GHz", 0, 1) +
		cpuinfoEntry(2, "Example CPU @ 3.00GHz", 0, 0) +
		cpuinfoEntry(3, "Example CPU @ 3.00GHz", 0, 1)

	info, err := parseCpuinfo([]byte(raw))
	if err != nil {
		t.Fatalf("parseCpuinfo: %v", err)
	}
	if info.LogicalCount != 4 {
		t.Errorf("LogicalCount = %d, want 4", info.LogicalCount)
	}
	if info.PhysicalCount != 2 {
		t.Errorf("PhysicalCount = %d, want 2", info.PhysicalCount)
	}
	if info.ModelName != "Example CPU @ 3.00GHz" {
		t.Errorf("ModelName = %q", info.ModelName)
	}
}

func TestParseCpuinfoNoTopology(t *testing.T) {
	// ARM boards often omit physical id and core id entirely.
	raw := "processor\t: 0\nmodel name\t: minimal\n\nprocessor\t: 1\nmodel name\t: minimal\n"
	info, err := parseCpuinfo([]byte(raw))
	if err != nil {
		t.Fatalf("parseCpuinfo: %v", err)
	}
	if info.LogicalCount != 2 || info.PhysicalCount != 0 {
		t.Errorf("got %d logical %d physical, want 2 and 0", info.LogicalCount, info.PhysicalCount)
	}
}

func TestParseCpuinfoEmpty(t *testing.T) {
	if _, err := parseCpuinfo([]byte("vendor_id: nobody\n")); err == nil {
		t.Fatal("cpuinfo without processor entries must be rejected")
	}
}

func writeCpufreq(t *testing.T, root string, cpu int, minKHz, maxKHz string) {
	t.Helper()
	dir := filepath.Join(root, "devices", "system", "cpu", "cpu"+strconv.Itoa(cpu), "cpufreq")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "cpuinfo_min_freq"), []byte(minKHz+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "cpuinfo_max_freq"), []byte(maxKHz+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestReadFreqRangesUniform(t *testing.T) {
	root := t.TempDir()
	writeCpufreq(t, root, 0, "800000", "4200000")
	writeCpufreq(t, root, 1, "800000", "4200000")
	withSysRoot(t, root)

	shared, perCPU := readFreqRanges(2)
	if shared != (model.FreqRange{MinMHz: 800, MaxMHz: 4200}) {
		t.Errorf("shared = %+v", shared)
	}
	if perCPU != nil {
		t.Errorf("uniform machine must not report per-CPU ranges, got %v", perCPU)
	}
}

func TestReadFreqRangesHeterogeneous(t *testing.T) {
	// big.LITTLE: two slow cores, one fast one.
	root := t.TempDir()
	writeCpufreq(t, root, 0, "400000", "1800000")
	writeCpufreq(t, root, 1, "400000", "1800000")
	writeCpufreq(t, root, 2, "500000", "2400000")
	withSysRoot(t, root)

	_, perCPU := readFreqRanges(3)
	if len(perCPU) != 3 {
		t.Fatalf("perCPU = %v, want one range per logical CPU", perCPU)
	}
	if perCPU[2] != (model.FreqRange{MinMHz: 500, MaxMHz: 2400}) {
		t.Errorf("perCPU[2] = %+v", perCPU[2])
	}
}

func TestReadFreqRangesNoDriver(t *testing.T) {
	withSysRoot(t, t.TempDir())

	shared, perCPU := readFreqRanges(4)
	if shared != (model.FreqRange{}) || perCPU != nil {
		t.Errorf("no cpufreq driver should yield nothing, got %+v %v", shared, perCPU)
	}
}
