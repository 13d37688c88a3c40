package domain

import "time"

// Identity is the record owned by the external identity provider. The
// platform only reads it and requests changes to the role claim; every other
// field is provider-authoritative.
type Identity struct {
	UID           string `json:"uid"`
	Email         string `json:"email"`
	DisplayName   string `json:"display_name"`
	EmailVerified bool   `json:"email_verified"`
	Role          Role   `json:"role"` // role claim; empty when the provider holds none
}

// Profile is the local, queryable mirror of an identity. Role must equal the
// provider's role claim after any successful role-changing operation; the
// verified flag is synced one-way from the provider on read.
type Profile struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	UID           string    `json:"uid" bson:"uid"`
	Email         string    `json:"email" bson:"email"`
	FirstName     string    `json:"first_name" bson:"first_name"`
	LastName      string    `json:"last_name" bson:"last_name"`
	EmailVerified bool      `json:"email_verified" bson:"email_verified"`
	Role          Role      `json:"role" bson:"role"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}
