package database

import (
	"asset-tracker/internal/models"

	"gorm.io/gorm"
)

// CreateAuditLog appends one entry to the audit trail.
func CreateAuditLog(db *gorm.DB, userID uint, entity string, entityID uint, action, details string) error {
	record := models.AuditLog{
		UserID:   userID,
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		Details:  details,
	}
	return db.Create(&record).Error
}

// RecentAuditLogs returns the newest entries first.
func RecentAuditLogs(db *gorm.DB, limit int) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := db.Preload("User").
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
