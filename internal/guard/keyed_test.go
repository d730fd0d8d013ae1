package guard

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestLockSerializesSameKey(t *testing.T) {
	locks := NewKeyedLocks()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("same")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestLockDistinctKeysDoNotBlock(t *testing.T) {
	locks := NewKeyedLocks()

	unlockA := locks.Lock("a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := locks.Lock("b")
		unlockB()
		close(done)
	}()

	// A held lock on "a" must not stall "b".
	<-done
}

func TestLockEntriesCleanedUp(t *testing.T) {
	locks := NewKeyedLocks()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := []string{"x", "y", "z"}[n%3]
			unlock := locks.Lock(key)
			unlock()
		}(i)
	}
	wg.Wait()

	locks.mu.Lock()
	defer locks.mu.Unlock()
	assert.Empty(t, locks.entries)
}

func TestClaimKeys(t *testing.T) {
	userID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	questID := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	assert.Equal(t,
		"quest:11111111-1111-1111-1111-111111111111:22222222-2222-2222-2222-222222222222",
		QuestClaimKey(userID, questID))
	assert.Equal(t,
		"calendar:11111111-1111-1111-1111-111111111111:2026-03-17",
		CalendarClaimKey(userID, "2026-03-17"))
	assert.NotEqual(t, QuestClaimKey(userID, questID), QuestClaimKey(questID, userID))
}
