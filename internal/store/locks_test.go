package store

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithLockReturnsWorkError(t *testing.T) {
	locks := NewLockManager()

	err := locks.WithLock("user-1", func() error { return nil })
	assert.NoError(t, err)

	wantErr := errors.New("work failed")
	err = locks.WithLock("user-1", func() error { return wantErr })
	assert.Equal(t, wantErr, err)
}

func TestWithLockSerializesSameKey(t *testing.T) {
	locks := NewLockManager()

	var mu sync.Mutex
	var order []int

	started := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		locks.WithLock("user-1", func() error {
			close(started)
			time.Sleep(50 * time.Millisecond)
			mu.Lock()
			order = append(order, 1)
			mu.Unlock()
			return nil
		})
	}()

	<-started
	go func() {
		defer wg.Done()
		locks.WithLock("user-1", func() error {
			mu.Lock()
			order = append(order, 2)
			mu.Unlock()
			return nil
		})
	}()

	wg.Wait()
	assert.Equal(t, []int{1, 2}, order)
}

func TestWithLockAllowsDifferentKeysConcurrently(t *testing.T) {
	locks := NewLockManager()

	blocked := make(chan struct{})
	release := make(chan struct{})

	go locks.WithLock("user-1", func() error {
		close(blocked)
		<-release
		return nil
	})

	<-blocked

	// user-2 must not wait behind user-1
	done := make(chan struct{})
	go locks.WithLock("user-2", func() error {
		close(done)
		return nil
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("operation on an uncontended key was blocked")
	}
	close(release)
}

func TestWithLockReleasesAfterError(t *testing.T) {
	locks := NewLockManager()

	err := locks.WithLock("user-1", func() error { return errors.New("boom") })
	require.Error(t, err)

	done := make(chan struct{})
	go locks.WithLock("user-1", func() error {
		close(done)
		return nil
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock was not released after a failed unit of work")
	}
}

func TestWithLockReleasesAfterPanic(t *testing.T) {
	locks := NewLockManager()

	func() {
		defer func() { require.NotNil(t, recover()) }()
		locks.WithLock("user-1", func() error { panic("boom") })
	}()

	done := make(chan struct{})
	go locks.WithLock("user-1", func() error {
		close(done)
		return nil
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock was not released after a panicking unit of work")
	}
}

func TestWithLockMakesIncrementsAtomic(t *testing.T) {
	locks := NewLockManager()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			locks.WithLock("user-1", func() error {
				current := counter
				time.Sleep(time.Millisecond)
				counter = current + 1
				return nil
			})
		}()
	}
	wg.Wait()

	// Without the lock the read-sleep-write pattern would lose updates
	assert.Equal(t, 10, counter)
}
