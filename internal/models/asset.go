package models

import "time"

type AssetStatus string

const (
	AssetGood AssetStatus = "good"
	AssetBad  AssetStatus = "bad"
)

func (s AssetStatus) Valid() bool {
	return s == AssetGood || s == AssetBad
}

type Asset struct {
	ID             uint        `gorm:"primaryKey"`
	Name           string      `gorm:"size:200;not null"`
	Type           string      `gorm:"size:200;not null"`
	Description    *string     `gorm:"type:text"`
	SerialNumber   *string     `gorm:"size:50"`
	PurchaseDate   *time.Time  `gorm:"type:date"`
	WarrantyExpiry *time.Time  `gorm:"type:date"`
	Status         AssetStatus `gorm:"type:varchar(10);not null;check:chk_assets_status,status IN ('good','bad')"`

	LocationID   uint       `gorm:"not null;index"`
	Location     Location   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	DepartmentID uint       `gorm:"not null;index"`
	Department   Department `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	OwnerID      *uint      `gorm:"index"`
	Owner        *Employee  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
}

func (a Asset) String() string { return "<Asset " + a.Name + ">" }
