package models

type Location struct {
	ID        uint    `gorm:"primaryKey"`
	Site      string  `gorm:"size:100;not null"`
	CompanyID uint    `gorm:"not null;index"`
	Company   Company `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
}

func (l Location) String() string { return l.Site }
