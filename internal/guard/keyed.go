// Package guard provides in-process claim serialization. Claim-type
// operations are read-then-write sequences; the store transaction is the
// hard guarantee, and the keyed lock keeps duplicate requests from the same
// process off the database entirely.
package guard

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// KeyedLocks serializes work per string key.
type KeyedLocks struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// NewKeyedLocks creates an empty keyed lock set.
func NewKeyedLocks() *KeyedLocks {
	return &KeyedLocks{entries: make(map[string]*lockEntry)}
}

// Lock blocks until the key is exclusively held and returns the release
// function. Entries are removed once the last holder releases, so the map
// never grows with dead keys.
func (k *KeyedLocks) Lock(key string) (unlock func()) {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &lockEntry{}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.entries, key)
		}
		k.mu.Unlock()
	}
}

// QuestClaimKey builds the serialization key for one user's quest claim.
func QuestClaimKey(userID, questID uuid.UUID) string {
	return fmt.Sprintf("quest:%s:%s", userID, questID)
}

// CalendarClaimKey builds the serialization key for one user's daily claim.
func CalendarClaimKey(userID uuid.UUID, day string) string {
	return fmt.Sprintf("calendar:%s:%s", userID, day)
}
