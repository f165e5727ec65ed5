package models

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// RevokedToken records a bearer token revoked by logout. Only the SHA-256 of
// the token is kept; rows are purged once ExpiresAt (unix seconds) passes.
type RevokedToken struct {
	ID        uint   `gorm:"primaryKey"`
	TokenHash string `gorm:"size:64;not null;uniqueIndex"`
	ExpiresAt int64  `gorm:"not null;index"`
	CreatedAt time.Time
}

func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
