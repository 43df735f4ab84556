package model

import "time"

// OneTimeCode is a short-lived numeric code mailed to an address to prove
// control of it. A code is valid until ExpiresAt and is consumed (deleted)
// on successful verification.
type OneTimeCode struct {
	ID        int64
	Email     string
	Code      string
	CreatedAt time.Time
	ExpiresAt time.Time
}
