package renderer

import (
	"runtime"

	"github.com/shirou/gopsutil/cpu"
)

// Get the number of logical cpus available for rendering.
func DefaultWorkers() int {
	count, err := cpu.Counts(true)
	if err != nil || count < 1 {
		return runtime.NumCPU()
	}
	return count
}
