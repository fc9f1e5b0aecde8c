// Package soak drives long randomized event sequences through every
// view-model and checks the contract properties after each step.
//
// The checks use shadow state and independent oracles (integer arithmetic
// for the temperature rounding, pre-parsed dates for the flight booker), so
// a regression in the view-models shows up as a violation rather than being
// hidden by shared code.
package soak

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/thesyncim/uicontracts/pkg/contract"
)

// Status values reported in Result.
const (
	StatusPass = "PASS"
	StatusFail = "FAIL"
)

const (
	// maxRecordedViolations bounds Result.Violations; ViolationCount keeps counting.
	maxRecordedViolations = 20
	// heapLimitMB fails the run when live heap exceeds it.
	heapLimitMB = 100
)

// Options configures a soak run.
type Options struct {
	Duration       time.Duration // Stop after this long (0 = until MaxSteps or ctx)
	MaxSteps       int           // Stop after this many steps (0 = unlimited)
	Seed           uint64        // PRNG seed; runs with the same seed replay the same events
	StatusInterval time.Duration // How often progress is logged (default: 1 minute)
	Logger         *slog.Logger  // Defaults to slog.Default()
}

// Result contains the results of a soak run.
type Result struct {
	Duration       time.Duration
	Steps          int
	StepsByApp     map[contract.App]int
	ViolationCount int
	Violations     []string
	PeakHeapMB     float64
	TotalGCCycles  uint32
	Seed           uint64
	Status         string
}

// Passed reports whether no property was violated.
func (r Result) Passed() bool {
	return r.Status == StatusPass
}

// Run executes the soak until the duration elapses, MaxSteps is reached or
// ctx is cancelled.
func Run(ctx context.Context, opts Options) Result {
	if opts.StatusInterval <= 0 {
		opts.StatusInterval = time.Minute
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	checkers := newCheckers()

	result := Result{
		StepsByApp: make(map[contract.App]int),
		Seed:       opts.Seed,
		Status:     StatusPass,
	}

	var memStats runtime.MemStats
	start := time.Now()
	lastStatus := start

	for {
		if opts.MaxSteps > 0 && result.Steps >= opts.MaxSteps {
			break
		}
		if ctx.Err() != nil {
			break
		}
		now := time.Now()
		if opts.Duration > 0 && now.Sub(start) >= opts.Duration {
			break
		}

		c := checkers[rng.IntN(len(checkers))]
		if err := c.step(rng); err != nil {
			result.ViolationCount++
			if len(result.Violations) < maxRecordedViolations {
				result.Violations = append(result.Violations,
					fmt.Sprintf("step %d %s: %v", result.Steps, c.app(), err))
			}
			result.Status = StatusFail
			// Start the app over so one bad state doesn't cascade.
			c.reset()
		}
		result.Steps++
		result.StepsByApp[c.app()]++

		if now.Sub(lastStatus) >= opts.StatusInterval {
			lastStatus = now
			runtime.ReadMemStats(&memStats)
			heapMB := float64(memStats.HeapAlloc) / (1024 * 1024)
			if heapMB > result.PeakHeapMB {
				result.PeakHeapMB = heapMB
			}
			result.TotalGCCycles = memStats.NumGC
			logger.Info("soak progress",
				"elapsed", formatDuration(now.Sub(start)),
				"steps", result.Steps,
				"violations", result.ViolationCount,
				"heap_mb", fmt.Sprintf("%.2f", heapMB),
				"gc", memStats.NumGC,
			)
			if heapMB > heapLimitMB {
				logger.Error("memory limit exceeded", "heap_mb", fmt.Sprintf("%.2f", heapMB))
				result.Status = StatusFail
			}
		}
	}

	runtime.ReadMemStats(&memStats)
	if heapMB := float64(memStats.HeapAlloc) / (1024 * 1024); heapMB > result.PeakHeapMB {
		result.PeakHeapMB = heapMB
	}
	result.TotalGCCycles = memStats.NumGC
	result.Duration = time.Since(start)
	return result
}

// PrintSummary writes a human readable report of r.
func PrintSummary(w io.Writer, r Result) {
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Soak Run Complete\n")
	fmt.Fprintf(w, "=================\n")
	fmt.Fprintf(w, "Duration:    %v\n", r.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "Seed:        %d\n", r.Seed)
	fmt.Fprintf(w, "Total steps: %d\n", r.Steps)
	for _, app := range contract.Apps() {
		fmt.Fprintf(w, "  %-22s %d\n", app, r.StepsByApp[app])
	}
	fmt.Fprintf(w, "Peak heap:   %.2f MB\n", r.PeakHeapMB)
	fmt.Fprintf(w, "GC cycles:   %d\n", r.TotalGCCycles)
	fmt.Fprintf(w, "Violations:  %d\n", r.ViolationCount)
	for _, v := range r.Violations {
		fmt.Fprintf(w, "  - %s\n", v)
	}
	fmt.Fprintf(w, "Status:      %s\n", r.Status)
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "Pass Criteria:\n")
	fmt.Fprintf(w, "  - No panics:              %s\n", checkMark(true))
	fmt.Fprintf(w, "  - Every app exercised:    %s\n", checkMark(allAppsStepped(r)))
	fmt.Fprintf(w, "  - Peak memory < %d MB:   %s\n", heapLimitMB, checkMark(r.PeakHeapMB < heapLimitMB))
	fmt.Fprintf(w, "  - No property violations: %s\n", checkMark(r.ViolationCount == 0))
}

func allAppsStepped(r Result) bool {
	for _, app := range contract.Apps() {
		if r.StepsByApp[app] == 0 {
			return false
		}
	}
	return true
}

func formatDuration(d time.Duration) string {
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func checkMark(pass bool) string {
	if pass {
		return StatusPass
	}
	return StatusFail
}
