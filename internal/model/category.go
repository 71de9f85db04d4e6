package model

import "time"

// Category groups tasks by area (work, health, study, etc.).
// Names are free-form and scoped per user; two users may both have "work".
type Category struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index"`
	Name      string `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Tasks     []Task `gorm:"foreignKey:CategoryID"`
}
