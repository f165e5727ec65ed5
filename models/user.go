package models

import (
	"store-rating/constants"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name         string         `gorm:"size:60;not null"`
	Email        string         `gorm:"not null;unique"`
	Address      string         `gorm:"size:400;not null"`
	Role         constants.Role `gorm:"not null;default:'USER';index"`
	PasswordHash string         `gorm:"not null"`
	Store        *Store         `gorm:"foreignKey:OwnerID"`
}
