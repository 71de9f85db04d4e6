package model

import "time"

// Session is a login session backing an issued token. Deleting the row
// revokes the token; expired rows are purged by a background job.
type Session struct {
	ID        string    `gorm:"primaryKey"`
	UserID    uint      `gorm:"index"`
	ExpiresAt time.Time `gorm:"index"`
	CreatedAt time.Time
}
