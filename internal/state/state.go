package state

import (
	"sync"
	"time"
)

type Phase int

const (
	BOOTING Phase = iota
	WAITING       // mapped, no frame presented yet
	RUNNING
	CLOSED
	ERROR
)

func (p Phase) String() string {
	switch p {
	case BOOTING:
		return "booting"
	case WAITING:
		return "waiting"
	case RUNNING:
		return "running"
	case CLOSED:
		return "closed"
	case ERROR:
		return "error"
	}
	return "unknown"
}

type ChannelInfo struct {
	Path      string
	Dimension int
}

type LoopStats struct {
	Ticks       uint64
	IdleTicks   uint64
	Frames      uint64
	Resizes     uint64
	Side        int
	LastPresent time.Time
}

type State struct {
	Phase   Phase
	Channel ChannelInfo
	Loop    LoopStats
	Err     string
}

type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore() *Store {
	return &Store{state: State{Phase: BOOTING}}
}

func (store *Store) Snapshot() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.state
}

func (store *Store) SetPhase(phase Phase) {
	store.mu.Lock()
	store.state.Phase = phase
	store.mu.Unlock()
}

func (store *Store) SetChannel(info ChannelInfo) {
	store.mu.Lock()
	store.state.Channel = info
	store.mu.Unlock()
}

func (store *Store) SetError(err error) {
	store.mu.Lock()
	store.state.Phase = ERROR
	if err != nil {
		store.state.Err = err.Error()
	}
	store.mu.Unlock()
}

// RecordIdle counts a tick that found no new frame.
func (store *Store) RecordIdle() {
	store.mu.Lock()
	store.state.Loop.Ticks++
	store.state.Loop.IdleTicks++
	store.mu.Unlock()
}

// RecordFrame counts a presented frame at side, and a resize if one was applied.
func (store *Store) RecordFrame(side int, resized bool, at time.Time) {
	store.mu.Lock()
	loop := &store.state.Loop
	loop.Ticks++
	loop.Frames++
	if resized {
		loop.Resizes++
	}
	loop.Side = side
	loop.LastPresent = at
	if store.state.Phase == WAITING {
		store.state.Phase = RUNNING
	}
	store.mu.Unlock()
}

// SetSide records the applied window side without counting a frame.
func (store *Store) SetSide(side int) {
	store.mu.Lock()
	store.state.Loop.Side = side
	store.mu.Unlock()
}
