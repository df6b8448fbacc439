// internal/engine/batch/concurrency.go
package batch

import (
	"runtime"
)

// DefaultConcurrency is the per-site limit on in-flight fetches and extractions
const DefaultConcurrency = 5

// maxAutoSites bounds AutoSiteLimit
const maxAutoSites = 50

// AutoSiteLimit picks a cross-site limit from the CPU count and free memory.
// Each site holds up to DefaultConcurrency page bodies, so a site is budgeted ~10MB.
func AutoSiteLimit() int {
	numCPU := runtime.NumCPU()

	// Sites are I/O bound
	limit := numCPU * 4

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	availMB := (m.Sys - m.Alloc) / 1024 / 1024
	maxByMemory := int(availMB / 10)

	if limit > maxAutoSites {
		limit = maxAutoSites
	}
	if maxByMemory > 0 && maxByMemory < limit {
		limit = maxByMemory
	}
	if limit < numCPU {
		limit = numCPU
	}
	return limit
}
