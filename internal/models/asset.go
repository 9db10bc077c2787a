package models

import "time"

type Asset struct {
	ID        int64  `gorm:"primaryKey" json:"id"`
	OrgID     int64  `gorm:"index;not null" json:"orgId"`
	Name      string `gorm:"size:200;not null" json:"name"`
	Archived  bool   `gorm:"default:false;index" json:"archived"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Org         *Organization `gorm:"foreignKey:OrgID" json:"-"`
	Assessments []Assessment  `gorm:"foreignKey:AssetID" json:"-"`
}
