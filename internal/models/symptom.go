package models

import "time"

const (
	MinSymptomSeverity = 1
	MaxSymptomSeverity = 5
)

type Symptom struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	ProfileID uint      `gorm:"not null;index" json:"-"`
	Date      time.Time `gorm:"type:date;not null" json:"date"`
	Type      string    `gorm:"not null" json:"type"`
	Severity  int       `gorm:"not null" json:"severity"`
	CreatedAt time.Time `json:"-"`
}

func (Symptom) TableName() string {
	return "symptom_logs"
}

type SymptomType struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// DefaultSymptomTypes lists the labels offered by the client symptom picker,
// grouped by category. Any non-empty label is accepted on write.
func DefaultSymptomTypes() []SymptomType {
	return []SymptomType{
		{Name: "Happy", Category: "Mood"},
		{Name: "Sad", Category: "Mood"},
		{Name: "Anxious", Category: "Mood"},
		{Name: "Irritable", Category: "Mood"},
		{Name: "Cramps", Category: "Physical"},
		{Name: "Headache", Category: "Physical"},
		{Name: "Bloating", Category: "Physical"},
		{Name: "Breast tenderness", Category: "Physical"},
		{Name: "Energetic", Category: "Energy"},
		{Name: "Tired", Category: "Energy"},
		{Name: "Insomnia", Category: "Energy"},
		{Name: "Acne", Category: "Other"},
		{Name: "Cravings", Category: "Other"},
		{Name: "Nausea", Category: "Other"},
	}
}
