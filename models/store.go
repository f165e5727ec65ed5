package models

import "gorm.io/gorm"

type Store struct {
	gorm.Model
	Name    string  `gorm:"not null;index"`
	Email   *string `gorm:"index"`
	Address string  `gorm:"size:400;not null"`
	// At most one store per owner.
	OwnerID *uint    `gorm:"uniqueIndex"`
	Ratings []Rating `gorm:"constraint:OnDelete:CASCADE;"`
}
