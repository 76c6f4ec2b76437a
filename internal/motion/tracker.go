// Package motion provides the frame-scheduled progress tracker that drives
// bubble show/hide transitions.
package motion

import "time"

// EaseOutCubic maps linear progress t in [0,1] onto a cubic ease-out curve.
func EaseOutCubic(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	u := t - 1
	return u*u*u + 1
}

// Tracker is a resumable transition clock. It is advanced by feeding it
// frame timestamps; the first Advance call only records the start so the
// transition effectively begins on the second delivered frame (the first
// frame after a map tends to carry a stale timestamp).
//
// The zero value is a finished tracker.
type Tracker struct {
	duration time.Duration
	start    time.Duration
	started  bool
	progress float64
	finished bool
}

// Begin resets the tracker for a new run of the given duration. A
// non-positive duration completes on the first advanced frame.
func (t *Tracker) Begin(duration time.Duration) {
	t.duration = duration
	t.start = 0
	t.started = false
	t.progress = 0
	t.finished = duration <= 0
}

// Advance feeds the current frame timestamp and returns linear progress in
// [0,1]. It is a pure function of (start, duration, now) once the start
// frame has been recorded.
func (t *Tracker) Advance(now time.Duration) float64 {
	if t.finished {
		return 1
	}
	if !t.started {
		t.started = true
		t.start = now
		t.progress = 0
		return 0
	}

	elapsed := now - t.start
	switch {
	case elapsed <= 0:
		t.progress = 0
	case elapsed >= t.duration:
		t.progress = 1
		t.finished = true
	default:
		t.progress = float64(elapsed) / float64(t.duration)
	}
	return t.progress
}

// Progress returns the last computed linear progress.
func (t *Tracker) Progress() float64 {
	if t.finished {
		return 1
	}
	return t.progress
}

// Done reports whether the tracker has run to completion.
func (t *Tracker) Done() bool {
	return t.finished
}

// Finish forces the tracker to its terminal state without delivering more
// frames. Used when a transition is canceled out-of-band.
func (t *Tracker) Finish() {
	t.finished = true
	t.progress = 1
}
