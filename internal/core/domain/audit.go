package domain

import "time"

// AuditEntry records one handled request: who did what, with what outcome.
// Entries are written asynchronously; a failed write never affects the
// request that produced it.
type AuditEntry struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	UID        string    `json:"uid" bson:"uid"`
	Role       string    `json:"role" bson:"role"`
	Method     string    `json:"method" bson:"method"`
	Path       string    `json:"path" bson:"path"`
	StatusCode int       `json:"status_code" bson:"status_code"`
	IP         string    `json:"ip" bson:"ip"`
	UserAgent  string    `json:"user_agent" bson:"user_agent"`
	DurationMs int64     `json:"duration_ms" bson:"duration_ms"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}
