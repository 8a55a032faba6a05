package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is an authenticated login session. The token doubles as the bearer
// credential handed back to the client.
type Session struct {
	BaseSimple
	UserID    uuid.UUID  `db:"user_id"`
	Username  string     `db:"username"`
	Token     uuid.UUID  `db:"token"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}
