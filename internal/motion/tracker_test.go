package motion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEaseOutCubic(t *testing.T) {
	assert.Equal(t, 0.0, EaseOutCubic(0))
	assert.Equal(t, 1.0, EaseOutCubic(1))
	assert.Equal(t, 0.0, EaseOutCubic(-1))
	assert.Equal(t, 1.0, EaseOutCubic(2))
	assert.InDelta(t, 0.875, EaseOutCubic(0.5), 1e-9)
}

func TestTrackerFirstFrameOnlyRecordsStart(t *testing.T) {
	var tr Tracker
	tr.Begin(150 * time.Millisecond)

	// The first delivered frame carries a potentially stale timestamp; it
	// anchors the run but contributes no progress.
	assert.Equal(t, 0.0, tr.Advance(time.Second))
	assert.False(t, tr.Done())

	assert.InDelta(t, 0.5, tr.Advance(time.Second+75*time.Millisecond), 1e-9)
	assert.Equal(t, 1.0, tr.Advance(time.Second+150*time.Millisecond))
	assert.True(t, tr.Done())
}

func TestTrackerProgressIsPureInNow(t *testing.T) {
	var tr Tracker
	tr.Begin(100 * time.Millisecond)
	tr.Advance(0)

	got := tr.Advance(30 * time.Millisecond)
	assert.InDelta(t, 0.3, got, 1e-9)
	assert.InDelta(t, got, tr.Progress(), 1e-9)
}

func TestTrackerZeroDurationCompletesImmediately(t *testing.T) {
	var tr Tracker
	tr.Begin(0)
	assert.True(t, tr.Done())
	assert.Equal(t, 1.0, tr.Advance(time.Millisecond))
}

func TestTrackerZeroValueIsFinished(t *testing.T) {
	var tr Tracker
	assert.True(t, tr.Done())
	assert.Equal(t, 1.0, tr.Progress())
}

func TestTrackerFinish(t *testing.T) {
	var tr Tracker
	tr.Begin(time.Second)
	tr.Advance(0)
	require.False(t, tr.Done())

	tr.Finish()
	assert.True(t, tr.Done())
	assert.Equal(t, 1.0, tr.Progress())
}

func TestTrackerBeginResets(t *testing.T) {
	var tr Tracker
	tr.Begin(time.Millisecond)
	tr.Advance(0)
	tr.Advance(2 * time.Millisecond)
	require.True(t, tr.Done())

	tr.Begin(100 * time.Millisecond)
	assert.False(t, tr.Done())
	assert.Equal(t, 0.0, tr.Advance(5*time.Second))
}
