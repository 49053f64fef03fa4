package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventLocks_SerializesPerEvent(t *testing.T) {
	locks := NewEventLocks()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("ev-1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, counter)
}

func TestEventLocks_IndependentEvents(t *testing.T) {
	locks := NewEventLocks()

	unlockA := locks.Lock("ev-1")
	// A held lock on one event must not block another event.
	done := make(chan struct{})
	go func() {
		unlockB := locks.Lock("ev-2")
		unlockB()
		close(done)
	}()
	<-done
	unlockA()
}
