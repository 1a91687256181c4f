//go:build linux

package proc

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/HadrienG2/benchmon/pkg/model"
)

// Mounts lists the mount table with capacity figures per mount point.
// A mount point that refuses statfs keeps the refusal text instead;
// that is routine for access-restricted pseudo-filesystems and does
// not fail the scan.
func Mounts() ([]model.Mount, error) {
	raw, err := os.ReadFile(procRoot + "/self/mounts")
	if err != nil {
		return nil, fmt.Errorf("reading mount table: %w", err)
	}

	mounts := parseMounts(raw)
	for i := range mounts {
		var st unix.Statfs_t
		if err := unix.Statfs(mounts[i].MountPoint, &st); err != nil {
			mounts[i].UsageErr = err.Error()
			continue
		}
		frsize := uint64(st.Frsize)
		mounts[i].Usage = &model.MountUsage{
			TotalBytes: st.Blocks * frsize,
			UsedBytes:  (st.Blocks - st.Bfree) * frsize,
		}
	}
	return mounts, nil
}

func parseMounts(raw []byte) []model.Mount {
	var mounts []model.Mount
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			continue
		}
		mounts = append(mounts, model.Mount{
			Device:     unescapeMount(fields[0]),
			MountPoint: unescapeMount(fields[1]),
			Filesystem: fields[2],
		})
	}
	return mounts
}

// unescapeMount decodes the \ooo octal escapes the kernel uses for
// whitespace and backslashes in mount table entries.
func unescapeMount(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+3 < len(s) {
			if v, err := strconv.ParseUint(s[i+1:i+4], 8, 8); err == nil {
				b.WriteByte(byte(v))
				i += 3
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
