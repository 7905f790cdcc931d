package core

import (
	"errors"
)

var (
	// ErrInvalidParameter marks a bad generation configuration, caught
	// before any path is produced.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrDegenerateAnchor marks an anchor that cannot host icicles
	// (zero-length normal or zero-length source edge). The anchor is
	// skipped; sibling anchors in the same batch are unaffected.
	ErrDegenerateAnchor = errors.New("degenerate anchor")
)
