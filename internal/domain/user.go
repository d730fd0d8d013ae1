package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the partial view of a platform user this core reads and mutates:
// the point balance and the badge set. Everything else lives upstream.
type User struct {
	ID        uuid.UUID `json:"id"`
	Points    int       `json:"points"`
	CreatedAt time.Time `json:"created_at"`
}
