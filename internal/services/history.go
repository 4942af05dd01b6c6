package services

import (
	"time"

	"github.com/terraincognita07/cycletracker/internal/models"
)

type CycleHistoryEntry struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Length    int       `json:"length"`
	Flow      string    `json:"flow"`
	Symptoms  []string  `json:"symptoms"`
}

// BuildCycleHistory lists period logs in stored order together with the
// symptom types observed between each period's start and end dates.
func BuildCycleHistory(profile models.CycleProfile) []CycleHistoryEntry {
	history := make([]CycleHistoryEntry, 0, len(profile.PeriodLogs))
	for _, log := range profile.PeriodLogs {
		symptoms := make([]string, 0)
		for _, symptom := range profile.Symptoms {
			if betweenInclusive(symptom.Date, log.StartDate, log.EndDate) {
				symptoms = append(symptoms, symptom.Type)
			}
		}

		history = append(history, CycleHistoryEntry{
			StartDate: log.StartDate,
			EndDate:   log.EndDate,
			Length:    DaySpan(log.StartDate, log.EndDate),
			Flow:      log.Flow,
			Symptoms:  symptoms,
		})
	}
	return history
}
