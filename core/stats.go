package core

import "sync"

// StatsState accumulates counters for a generation run: how many anchors
// were processed or skipped, how many paths and vertices were produced
// and how long the batch took.
type StatsState struct {
	Anchors        int32
	SkippedAnchors int32
	Paths          int32
	SkippedPaths   int32
	Vertices       int32
	Triangles      int32
	BatchMS        float64
}

var onceStats sync.Once
var statsState *StatsState = nil

func StatsInitialize() error {
	onceStats.Do(func() {
		statsState = &StatsState{}
	})
	return nil
}

func StatsReset() {
	if statsState == nil {
		return
	}
	*statsState = StatsState{}
}

func StatsAnchor(skipped bool) {
	if statsState == nil {
		return
	}
	if skipped {
		statsState.SkippedAnchors++
		return
	}
	statsState.Anchors++
}

func StatsPaths(generated, skipped int32) {
	if statsState == nil {
		return
	}
	statsState.Paths += generated
	statsState.SkippedPaths += skipped
}

func StatsGeometry(vertices, triangles int32) {
	if statsState == nil {
		return
	}
	statsState.Vertices += vertices
	statsState.Triangles += triangles
}

func StatsBatchTime(ms float64) {
	if statsState == nil {
		return
	}
	statsState.BatchMS = ms
}

func Stats() StatsState {
	if statsState == nil {
		return StatsState{}
	}
	return *statsState
}
