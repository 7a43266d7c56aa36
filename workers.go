package orgfix

import "runtime"

// Worker sizing constants.
const (
	// MinWorkers ensures at least one page is processed at a time.
	MinWorkers = 1

	// MaxWorkers caps automatic sizing; file I/O saturates well before it.
	MaxWorkers = 8

	// cpuDivisor leaves headroom for reads and writes.
	cpuDivisor = 2
)

// ResolveWorkers determines how many pages to process concurrently.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by CLIs and build tools.
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs in containers
	n := runtime.GOMAXPROCS(0) / cpuDivisor

	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}
