package models

type Department struct {
	ID        uint    `gorm:"primaryKey"`
	Name      string  `gorm:"column:department;size:250;not null"`
	CompanyID uint    `gorm:"not null;index"`
	Company   Company `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
}

func (d Department) String() string { return d.Name }
