package models

import "time"

type Organization struct {
	ID        int64  `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:200;not null" json:"name"`
	Archived  bool   `gorm:"default:false;index" json:"archived"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Assets []Asset `gorm:"foreignKey:OrgID" json:"-"`
}
