package models

import "time"

type ReturnReason string

const (
	ReturnExit   ReturnReason = "exit"
	ReturnRepair ReturnReason = "repair"
)

func (r ReturnReason) Valid() bool {
	return r == ReturnExit || r == ReturnRepair
}

// AssignmentHistory is an append-only custody log. A row with a nil
// ReturnedDate is the asset's open assignment.
type AssignmentHistory struct {
	ID           uint          `gorm:"primaryKey"`
	AssetID      uint          `gorm:"not null;index"`
	Asset        Asset         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	EmployeeID   uint          `gorm:"not null;index"`
	Employee     Employee      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	AssignedDate time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"`
	ReturnedDate *time.Time    `gorm:"check:chk_assignment_returned_after,returned_date IS NULL OR returned_date >= assigned_date"`
	ReturnReason *ReturnReason `gorm:"type:varchar(10);check:chk_assignment_return_pair,(returned_date IS NULL) = (return_reason IS NULL) AND (return_reason IS NULL OR return_reason IN ('exit','repair'))"`
}

func (AssignmentHistory) TableName() string {
	return "assignment_history"
}

func (h AssignmentHistory) Open() bool {
	return h.ReturnedDate == nil
}
