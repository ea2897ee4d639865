package main

import (
	"log"
	"os"

	perf "github.com/hodgesds/perf-utils"
)

// startPerf starts hardware counter sampling, which the generate command
// wraps around its ghostgen.Generate call (the run that contains the
// collective exchange phases, §5), when enabled and the host exposes
// perf_event_open;
// it degrades to a logged warning and a no-op stop function otherwise,
// since a demo driver should never fail a run just because it can't
// read hardware counters.
func startPerf(enabled bool) (stop func()) {
	if !enabled {
		return func() {}
	}

	profilers := map[perf.HardwareProfilerType]bool{
		perf.CPUCyclesProfiler:    true,
		perf.InstructionsProfiler: true,
	}
	hp, err := perf.NewHardwareProfiler(os.Getpid(), -1, profilers)
	if err != nil {
		log.Printf("ghostgrid: perf counters unavailable, continuing without them: %v", err)
		return func() {}
	}
	if err := hp.Start(); err != nil {
		log.Printf("ghostgrid: failed to start perf counters: %v", err)
		return func() {}
	}

	return func() {
		profile, err := hp.Profile()
		if err != nil {
			log.Printf("ghostgrid: failed to read perf counters: %v", err)
		} else {
			log.Printf("ghostgrid: hardware counters: %v", profile)
		}
		if err := hp.Stop(); err != nil {
			log.Printf("ghostgrid: failed to stop perf counters: %v", err)
		}
	}
}
