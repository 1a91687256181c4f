package output

import (
	"fmt"
	"strconv"
)

// FormatBytes renders a byte count with decimal SI prefixes, keeping
// three fractional digits once the count reaches a kilobyte:
//
//	512           -> "512 B"
//	2_500_000     -> "2.500 MB"
//	1_999_999_999 -> "1.999 GB"
//
// The fractional part truncates rather than rounds, so the printed
// value never overstates the measurement.
func FormatBytes(n uint64) string {
	switch {
	case n < 1e3:
		return strconv.FormatUint(n, 10) + " B"
	case n < 1e6:
		return formatSI(n, 1e3, "kB")
	case n < 1e9:
		return formatSI(n, 1e6, "MB")
	case n < 1e12:
		return formatSI(n, 1e9, "GB")
	default:
		return formatSI(n, 1e12, "TB")
	}
}

func formatSI(n, base uint64, unit string) string {
	return fmt.Sprintf("%d.%03d %s", n/base, (n/(base/1000))%1000, unit)
}
