package services

import "sync"

// EventLocks serializes lineup mutations per event. Invitation and publish
// invariants (one active invitation per artist, no overlapping accepted
// slots) only hold within a single event, so independent events never
// contend. Share one registry between the booking and event services so
// respond and publish serialize against each other. The storage layer's
// unique indexes remain the backstop for multi-process deployments.
type EventLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewEventLocks() *EventLocks {
	return &EventLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for the event and returns its unlock func.
func (l *EventLocks) Lock(eventID string) func() {
	l.mu.Lock()
	m, ok := l.locks[eventID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[eventID] = m
	}
	l.mu.Unlock()
	m.Lock()
	return m.Unlock
}
