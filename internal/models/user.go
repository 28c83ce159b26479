package models

import "time"

// User is a login account, separate from the Employee records it manages.
type User struct {
	ID           uint      `gorm:"primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password;not null"`
	CreatedOn    time.Time `gorm:"not null"`
	IsAdmin      bool      `gorm:"not null;default:false"`
}

func (u User) String() string { return "<User " + u.Email + ">" }
