package models

import (
	"time"
)

// RevokedToken defines a revocation record based on the 'revoked_tokens'
// table. Records are written on logout and refresh and never updated;
// expired records are only ever garbage, not reused.
type RevokedToken struct {
	ID           int64     `json:"token_id" db:"id"`
	JTI          string    `json:"jti" db:"jti"`                     // Unique token identifier from the JWT
	TokenType    string    `json:"token_type" db:"token_type"`       // e.g. "access"
	UserIdentity string    `json:"user_identity" db:"user_identity"` // Identity claim carried by the token (email)
	Expires      time.Time `json:"expires" db:"expires"`             // Token expiry; record is dead weight afterwards
}
