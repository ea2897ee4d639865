package main

import "github.com/pkg/profile"

// startProfile wraps the run in a pkg/profile session when mode names one
// of the standard profile kinds; an empty or unrecognized mode is a no-op.
func startProfile(mode string) (stop func()) {
	var p interface{ Stop() }
	switch mode {
	case "cpu":
		p = profile.Start(profile.CPUProfile)
	case "mem":
		p = profile.Start(profile.MemProfile)
	case "trace":
		p = profile.Start(profile.TraceProfile)
	default:
		return func() {}
	}
	return p.Stop
}
