package models

import "time"

const (
	DefaultCycleLength  = 28
	DefaultPeriodLength = 5
)

// CycleProfile is the single persisted aggregate. Period logs and symptoms
// keep insertion order; nothing guarantees they are chronological.
type CycleProfile struct {
	ID              uint        `gorm:"primaryKey" json:"-"`
	LastPeriodStart *time.Time  `gorm:"type:date" json:"lastPeriodStart"`
	CycleLength     int         `gorm:"not null;default:28" json:"cycleLength"`
	PeriodLength    int         `gorm:"not null;default:5" json:"periodLength"`
	PeriodLogs      []PeriodLog `gorm:"foreignKey:ProfileID" json:"periodLogs"`
	Symptoms        []Symptom   `gorm:"foreignKey:ProfileID" json:"symptoms"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

func (CycleProfile) TableName() string {
	return "cycle_profiles"
}

func NewCycleProfile() CycleProfile {
	return CycleProfile{
		CycleLength:  DefaultCycleLength,
		PeriodLength: DefaultPeriodLength,
		PeriodLogs:   []PeriodLog{},
		Symptoms:     []Symptom{},
	}
}
