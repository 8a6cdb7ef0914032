package entity

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// BriefingStatus is the outcome of a briefing request.
type BriefingStatus string

const (
	BriefingStatusSuccess BriefingStatus = "success"
	BriefingStatusFailure BriefingStatus = "failure"
)

// BriefingResult is returned by every briefing request. On failure Text holds
// the diagnostic message.
type BriefingResult struct {
	Status    BriefingStatus `json:"status"`
	ModelUsed string         `json:"model_used"`
	Text      string         `json:"text"`
}

// Succeeded reports whether the briefing was generated.
func (r BriefingResult) Succeeded() bool {
	return r.Status == BriefingStatusSuccess
}

// BriefingFailure builds a failed result.
func BriefingFailure(model, message string) BriefingResult {
	return BriefingResult{Status: BriefingStatusFailure, ModelUsed: model, Text: message}
}

// Briefing is a stored report: the snapshot it was built from and the outcome.
type Briefing struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Status    string         `gorm:"type:varchar(20);not null" json:"status"`
	ModelUsed string         `gorm:"type:varchar(100)" json:"model_used"`
	Text      string         `gorm:"type:text" json:"text"`
	Lookback  string         `gorm:"type:varchar(10)" json:"lookback"`
	Interval  string         `gorm:"type:varchar(10)" json:"interval"`
	Snapshot  datatypes.JSON `gorm:"type:jsonb" json:"snapshot"`
	Headlines pq.StringArray `gorm:"type:text[]" json:"headlines"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the Briefing model.
func (Briefing) TableName() string {
	return "briefings"
}
