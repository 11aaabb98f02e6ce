package astanalyzer

import "runtime"

func defaultConcurrency() int {
	return runtime.NumCPU()
}
