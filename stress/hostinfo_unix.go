//go:build linux || darwin

package stress

import "golang.org/x/sys/unix"

// HostInfo is a short description of the machine a stress run executed
// on, included in a report header so a reader comparing two runs knows
// whether they ran on comparable hardware.
type HostInfo struct {
	NumCPU int
	MaxRSS int64
}

// CurrentHostInfo reports CPU count and peak resident set size for the
// current process, via getrusage(2) on platforms where it's available.
func CurrentHostInfo() HostInfo {
	var ru unix.Rusage
	_ = unix.Getrusage(unix.RUSAGE_SELF, &ru)
	return HostInfo{
		NumCPU: numCPU(),
		MaxRSS: int64(ru.Maxrss),
	}
}
