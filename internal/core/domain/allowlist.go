package domain

import "time"

// AllowedEmail is one entry of the invitation allow-list. Emails are stored
// lower-cased and compared case-insensitively.
type AllowedEmail struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Email     string    `json:"email" bson:"email"`
	CreatedBy string    `json:"created_by" bson:"created_by"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
