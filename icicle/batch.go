package icicle

import (
	"github.com/magmavr/icegen/core"
)

/**
 * @brief The outcome of generation for one anchor of a batch. Err is
 * set when the anchor was skipped; sibling anchors are unaffected.
 */
type BatchResult struct {
	AnchorIndex int
	Paths       []Path
	Err         error
}

/**
 * @brief Runs generation over a whole selection. The parameter set is
 * validated once up front; a degenerate anchor only skips itself.
 * Because every anchor derives its randomness from (Seed, index),
 * regenerating a single anchor later yields the same paths it got as
 * part of the full batch.
 */
func GenerateBatch(anchors []Anchor, params Parameters) ([]BatchResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	clock := core.NewClock()
	clock.Start()

	results := make([]BatchResult, len(anchors))
	for i, anchor := range anchors {
		paths, err := Generate(anchor, params, i)
		if err != nil {
			core.LogWarn("anchor %d skipped: %v", i, err)
			core.StatsAnchor(true)
			results[i] = BatchResult{AnchorIndex: i, Err: err}
			continue
		}
		core.StatsAnchor(false)
		core.StatsPaths(int32(len(paths)), int32(params.Count-len(paths)))
		results[i] = BatchResult{AnchorIndex: i, Paths: paths}
	}

	clock.Update()
	core.StatsBatchTime(clock.ElapsedMS())
	core.LogDebug("batch of %d anchors generated in %.2fms", len(anchors), clock.ElapsedMS())
	return results, nil
}
