package state

import (
	"errors"
	"testing"
	"time"
)

func TestStoreCounts(t *testing.T) {
	store := NewStore()
	if store.Snapshot().Phase != BOOTING {
		t.Fatal("new store should be booting")
	}
	store.SetPhase(WAITING)
	store.RecordIdle()
	store.RecordIdle()

	now := time.Now()
	store.RecordFrame(512, false, now)
	store.RecordFrame(600, true, now)

	snap := store.Snapshot()
	if snap.Phase != RUNNING {
		t.Errorf("phase = %v, want running after first frame", snap.Phase)
	}
	want := LoopStats{Ticks: 4, IdleTicks: 2, Frames: 2, Resizes: 1, Side: 600, LastPresent: now}
	if snap.Loop != want {
		t.Errorf("loop = %+v, want %+v", snap.Loop, want)
	}
}

func TestStoreError(t *testing.T) {
	store := NewStore()
	store.SetError(errors.New("window gone"))
	snap := store.Snapshot()
	if snap.Phase != ERROR || snap.Err != "window gone" {
		t.Errorf("snapshot = %+v", snap)
	}
	if snap.Phase.String() != "error" {
		t.Errorf("String = %q", snap.Phase.String())
	}
}

func TestFrameAfterCloseKeepsPhase(t *testing.T) {
	store := NewStore()
	store.SetPhase(CLOSED)
	store.RecordFrame(512, false, time.Now())
	if store.Snapshot().Phase != CLOSED {
		t.Error("RecordFrame should only promote WAITING")
	}
}
