package models

import "time"

const (
	FlowLight  = "light"
	FlowMedium = "medium"
	FlowHeavy  = "heavy"
)

type PeriodLog struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	ProfileID uint      `gorm:"not null;index" json:"-"`
	StartDate time.Time `gorm:"type:date;not null" json:"startDate"`
	EndDate   time.Time `gorm:"type:date;not null" json:"endDate"`
	Flow      string    `gorm:"not null" json:"flow"`
	CreatedAt time.Time `json:"-"`
}

func (PeriodLog) TableName() string {
	return "period_logs"
}

func IsValidFlow(flow string) bool {
	switch flow {
	case FlowLight, FlowMedium, FlowHeavy:
		return true
	default:
		return false
	}
}
