package models

import "gorm.io/gorm"

// Rating is unique per (user, store); a repeated submission updates Value.
type Rating struct {
	gorm.Model
	Value   int  `gorm:"not null;check:value >= 1 AND value <= 5"`
	UserID  uint `gorm:"not null;uniqueIndex:idx_rating_user_store"`
	StoreID uint `gorm:"not null;uniqueIndex:idx_rating_user_store"`
	User    User `gorm:"foreignKey:UserID"`
}
