//go:build !linux && !darwin

package stress

// HostInfo is a short description of the machine a stress run executed
// on, included in a report header so a reader comparing two runs knows
// whether they ran on comparable hardware.
type HostInfo struct {
	NumCPU int
}

// CurrentHostInfo reports CPU count. Peak RSS accounting is only wired
// for linux/darwin, where getrusage(2) is available through
// golang.org/x/sys/unix.
func CurrentHostInfo() HostInfo {
	return HostInfo{NumCPU: numCPU()}
}
