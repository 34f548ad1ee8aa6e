package models

import (
	"time"
)

type User struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	Username       string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email          string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	HashedPassword string    `gorm:"type:varchar(255);not null" json:"-"`
	FullName       string    `gorm:"type:varchar(100);not null" json:"full_name"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
