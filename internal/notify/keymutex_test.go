package notify

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyMutexSerializesSameKey(t *testing.T) {
	m := newKeyMutex()

	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := m.Lock("42|NEW_POST_LIKE|7")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestKeyMutexIndependentKeys(t *testing.T) {
	m := newKeyMutex()

	unlockA := m.Lock("a")
	// A held lock on one key must not block another key.
	unlockB := m.Lock("b")
	unlockB()
	unlockA()
}

func TestKeyMutexReleasesEntries(t *testing.T) {
	m := newKeyMutex()

	unlock := m.Lock("a")
	unlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	assert.Empty(t, m.locks)
}
