package adapter

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/texelation/texedit/editor"
)

// timerTicking is satisfied by editor.Control: the one thing a fired
// timer needs to do is ask the owning control to advance its
// auto-scroll state.
type timerTicking interface {
	HandleTimer()
}

// timerHandle is the Timer value returned by AllocateRecurring; its
// identity is a uuid so Free can look the ticker back up without storing
// a pointer-comparable key.
type timerHandle struct {
	id uuid.UUID
}

// TickerTimerHost implements editor.TimerHost with a time.Ticker per
// allocation. A host application (the cmd/texedit-demo event loop) must
// call Pump on whatever cadence its own poll loop wakes up; the ticker
// goroutines this adapter starts only queue fired timer ids and never
// call back into Control on their own, since Control is not
// goroutine-safe (spec.md's single-threaded cooperative model).
type TickerTimerHost struct {
	mu      sync.Mutex
	timers  map[uuid.UUID]*time.Ticker
	owners  map[uuid.UUID]timerTicking
	fireCh  chan uuid.UUID
}

// NewTickerTimerHost creates a host ready to allocate timers.
func NewTickerTimerHost() *TickerTimerHost {
	return &TickerTimerHost{
		timers: make(map[uuid.UUID]*time.Ticker),
		owners: make(map[uuid.UUID]timerTicking),
		fireCh: make(chan uuid.UUID, 16),
	}
}

// AllocateRecurring arms a recurring timer at periodMS and returns its
// handle. owner must be an *editor.Control (or satisfy timerTicking);
// anything else is accepted but never fires, per spec.md §7's policy of
// failing soft on a misused collaborator boundary rather than panicking.
func (h *TickerTimerHost) AllocateRecurring(owner editor.TimerOwner, periodMS int) editor.Timer {
	id := uuid.New()
	tt, _ := owner.(timerTicking)

	h.mu.Lock()
	h.owners[id] = tt
	ticker := time.NewTicker(time.Duration(periodMS) * time.Millisecond)
	h.timers[id] = ticker
	h.mu.Unlock()

	go func() {
		for range ticker.C {
			select {
			case h.fireCh <- id:
			default:
			}
		}
	}()

	return timerHandle{id: id}
}

// Free disarms a timer allocated by AllocateRecurring.
func (h *TickerTimerHost) Free(t editor.Timer) {
	handle, ok := t.(timerHandle)
	if !ok {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if ticker, ok := h.timers[handle.id]; ok {
		ticker.Stop()
		delete(h.timers, handle.id)
		delete(h.owners, handle.id)
	}
}

// Pump drains any timers that fired since the last call and invokes
// HandleTimer on their owning controls. The host event loop calls this
// once per iteration, on the same goroutine that otherwise drives
// Control, preserving the single-threaded invariant.
func (h *TickerTimerHost) Pump() {
	for {
		select {
		case id := <-h.fireCh:
			h.mu.Lock()
			owner := h.owners[id]
			h.mu.Unlock()
			if owner != nil {
				owner.HandleTimer()
			}
		default:
			return
		}
	}
}
