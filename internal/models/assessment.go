package models

import "time"

type Assessment struct {
	ID        int64      `gorm:"primaryKey" json:"id"`
	AssetID   int64      `gorm:"index;not null" json:"assetId"`
	Name      string     `gorm:"size:200;not null" json:"name"`
	Executive string     `gorm:"size:255" json:"executiveSummary"`
	Testers   string     `gorm:"size:255" json:"testers"`
	Scope     string     `gorm:"type:text" json:"scope"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`

	// Relations
	Asset           *Asset          `gorm:"foreignKey:AssetID" json:"-"`
	Vulnerabilities []Vulnerability `gorm:"foreignKey:AssessmentID" json:"-"`
}
