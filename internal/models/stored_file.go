package models

import "time"

// StoredFile holds uploaded evidence (screenshots, scan output) keyed by a
// uuid so the blob id can be embedded in vulnerability evidence.
type StoredFile struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	Name        string `gorm:"size:255" json:"name"`
	ContentType string `gorm:"size:100" json:"contentType"`
	Data        []byte `gorm:"type:mediumblob" json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
}
