package domain

import "time"

// Invitation is a single-use, expiring grant of a role to whoever presents
// the matching raw token while authenticated as the invited email. Only the
// SHA-256 hash of the token is ever stored; redemption deletes the row, so
// non-existence is the terminal state and replay is impossible by
// construction.
type Invitation struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Email     string    `json:"email" bson:"email"`
	Role      Role      `json:"role" bson:"role"`
	TokenHash string    `json:"-" bson:"token_hash"`
	ExpiresAt time.Time `json:"expires_at" bson:"expires_at"`
	CreatedBy string    `json:"created_by" bson:"created_by"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Expired reports whether the invitation is past its expiry at now. Expiry is
// enforced at lookup time; expired rows are inert, never swept eagerly.
func (i *Invitation) Expired(now time.Time) bool {
	return !i.ExpiresAt.After(now)
}
