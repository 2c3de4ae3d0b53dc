package models

import "time"

// Balance is a snapshot of a user's coin balance. The row in the balances table
// is the source of truth; snapshots are never mutated in process.
type Balance struct {
	UserID        string    `json:"user_id"`
	Amount        int64     `json:"amount"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
}
