package models

import (
	"time"

	"gorm.io/datatypes"
)

type Severity string

const (
	SeverityInformational Severity = "informational"
	SeverityLow           Severity = "low"
	SeverityMedium        Severity = "medium"
	SeverityHigh          Severity = "high"
	SeverityCritical      Severity = "critical"
)

type VulnStatus string

const (
	VulnOpen     VulnStatus = "open"
	VulnClosed   VulnStatus = "closed"
	VulnAccepted VulnStatus = "accepted"
)

type Vulnerability struct {
	ID           int64          `gorm:"primaryKey" json:"id"`
	AssessmentID int64          `gorm:"index;not null" json:"assessmentId"`
	Name         string         `gorm:"size:200;not null" json:"name"`
	Severity     Severity       `gorm:"size:20;default:informational" json:"severity"`
	Status       VulnStatus     `gorm:"size:20;default:open" json:"status"`
	Description  string         `gorm:"type:text" json:"description"`
	Remediation  string         `gorm:"type:text" json:"remediation"`
	Evidence     datatypes.JSON `gorm:"type:json" json:"evidence"` // request/response captures, CVSS vector
	JiraIssueKey string         `gorm:"size:64" json:"jiraIssueKey"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`

	// Relations
	Assessment *Assessment `gorm:"foreignKey:AssessmentID" json:"-"`
}
