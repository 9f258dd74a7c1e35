package model

import (
	"time"

	"github.com/mapeditor/tactile-core/core/ident"
)

// Frame is a single step of a tile animation: which tile index to display,
// and for how long (spec.md §3 "Animation").
type Frame struct {
	TileIndex ident.TileIndex
	Duration  time.Duration
}

// Animation is an ordered, non-empty (once created) sequence of frames plus
// playback state. Playback state lives with the owning tileset, not with
// any particular map instance, per spec.md §3.
type Animation struct {
	Frames     []Frame
	Current    int
	LastUpdate time.Time
}

// NewAnimation builds an animation from the given frames. Panics if frames
// is empty; callers enforce the "≥1 frame when present" invariant by simply
// not constructing an Animation for an unanimated tile.
func NewAnimation(frames []Frame, now time.Time) *Animation {
	if len(frames) == 0 {
		panic("model: animation requires at least one frame")
	}
	return &Animation{Frames: append([]Frame(nil), frames...), Current: 0, LastUpdate: now}
}

// CurrentTileIndex returns the tile index that should be displayed right now.
func (a *Animation) CurrentTileIndex() ident.TileIndex {
	return a.Frames[a.Current].TileIndex
}

// Tick advances playback by a single step if the current frame's duration
// has elapsed. No catch-up is performed for long stalls: at most one frame
// advances per call, regardless of how much time passed (spec.md §4.5).
func (a *Animation) Tick(now time.Time) bool {
	elapsed := now.Sub(a.LastUpdate)
	if elapsed < a.Frames[a.Current].Duration {
		return false
	}
	a.Current = (a.Current + 1) % len(a.Frames)
	a.LastUpdate = now
	return true
}

// Clone returns a deep copy for undo snapshots.
func (a *Animation) Clone() *Animation {
	if a == nil {
		return nil
	}
	return &Animation{Frames: append([]Frame(nil), a.Frames...), Current: a.Current, LastUpdate: a.LastUpdate}
}

// Equal compares frame sequences only, ignoring transient playback state
// (Current/LastUpdate), matching the round-trip equivalence of spec.md §8:
// a freshly loaded map has Current=0 regardless of what was being displayed
// when the source map was saved.
func (a *Animation) Equal(other *Animation) bool {
	if a == nil || other == nil {
		return a == other
	}
	if len(a.Frames) != len(other.Frames) {
		return false
	}
	for i := range a.Frames {
		if a.Frames[i] != other.Frames[i] {
			return false
		}
	}
	return true
}
