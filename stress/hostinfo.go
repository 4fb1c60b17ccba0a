package stress

import "runtime"

func numCPU() int {
	return runtime.NumCPU()
}
