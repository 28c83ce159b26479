package models

import "time"

type AuditLog struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	UserID uint
	User   User

	Entity   string `gorm:"size:50;not null"` // "asset", "company", "employee", ...
	EntityID uint
	Action   string `gorm:"size:50;not null"` // "create", "update", "assign", "return"
	Details  string `gorm:"type:text"`
}

// All lists every persisted model in dependency order.
func All() []any {
	return []any{
		&User{},
		&Company{},
		&Department{},
		&Location{},
		&Employee{},
		&Asset{},
		&AssignmentHistory{},
		&AuditLog{},
	}
}
