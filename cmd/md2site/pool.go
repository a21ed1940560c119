package main

import (
	"fmt"
	"runtime"

	"github.com/alnah/go-md2site/internal/config"
)

// resolvePoolSize determines the build worker count.
// Priority: explicit flag > build.workers > GOMAXPROCS-based calculation.
func resolvePoolSize(flagWorkers, configWorkers int) int {
	if flagWorkers > 0 {
		return flagWorkers
	}
	if configWorkers > 0 {
		return configWorkers
	}

	// Auto-calculate based on GOMAXPROCS (adjusted by automaxprocs for containers)
	n := runtime.GOMAXPROCS(0)

	// Minimum 1, maximum 8
	if n < 1 {
		return 1
	}
	if n > 8 {
		return 8
	}
	return n
}

// validateWorkers rejects worker counts outside 0..config.MaxWorkers.
func validateWorkers(n int) error {
	if n < 0 || n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (must be between 0 and %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}
