package services

import (
	"fmt"
	"math"
	"sort"

	"github.com/terraincognita07/cycletracker/internal/models"
)

const LutealPhaseDays = 14

type AnalysisStatus string

const (
	AnalysisNoData       AnalysisStatus = "no_data"
	AnalysisSinglePeriod AnalysisStatus = "single_period"
	AnalysisComplete     AnalysisStatus = "complete"
)

const (
	analysisNoDataMessage       = "No period data available. Please log at least two periods for full analysis."
	analysisSinglePeriodMessage = "Not enough data to calculate cycle statistics. Please log at least two periods."
	analysisCompleteMessage     = "Analysis successful."
)

type SymptomFrequency struct {
	Name      string `json:"name"`
	Frequency string `json:"frequency"`
	Count     int    `json:"-"`
}

// CycleAnalysis holds the derived statistics. Nil pointers encode as JSON null
// and mean there was not enough data for that figure.
type CycleAnalysis struct {
	AverageLength   *int               `json:"averageLength"`
	LengthVariation *int               `json:"lengthVariation"`
	PeriodLength    *int               `json:"periodLength"`
	PeriodVariation *int               `json:"periodVariation"`
	OvulationDay    *int               `json:"ovulationDay"`
	LutealPhase     int                `json:"lutealPhase"`
	Symptoms        []SymptomFrequency `json:"symptoms"`
	Status          AnalysisStatus     `json:"-"`
	Message         string             `json:"message"`
}

func EmptyAnalysis() CycleAnalysis {
	return CycleAnalysis{
		LutealPhase: LutealPhaseDays,
		Symptoms:    []SymptomFrequency{},
		Status:      AnalysisNoData,
		Message:     analysisNoDataMessage,
	}
}

// ComputeAnalysis derives cycle and period statistics from the logged periods
// and the symptom frequency per logged period. Inputs are not modified.
func ComputeAnalysis(periodLogs []models.PeriodLog, symptoms []models.Symptom) CycleAnalysis {
	if len(periodLogs) == 0 {
		return EmptyAnalysis()
	}

	if len(periodLogs) == 1 {
		analysis := EmptyAnalysis()
		periodLength := DaySpan(periodLogs[0].StartDate, periodLogs[0].EndDate)
		analysis.PeriodLength = &periodLength
		analysis.Status = AnalysisSinglePeriod
		analysis.Message = analysisSinglePeriodMessage
		return analysis
	}

	sorted := sortPeriodLogsByStart(periodLogs)

	cycleLengths := make([]int, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		cycleLengths = append(cycleLengths, DayDelta(sorted[i-1].StartDate, sorted[i].StartDate))
	}

	periodLengths := make([]int, 0, len(sorted))
	for _, log := range sorted {
		periodLengths = append(periodLengths, DaySpan(log.StartDate, log.EndDate))
	}

	analysis := CycleAnalysis{
		AverageLength:   roundedStat(averageInts(cycleLengths)),
		LengthVariation: roundedStat(sampleStdDev(cycleLengths)),
		PeriodLength:    roundedStat(averageInts(periodLengths)),
		PeriodVariation: roundedStat(sampleStdDev(periodLengths)),
		LutealPhase:     LutealPhaseDays,
		Symptoms:        symptomFrequencies(symptoms, len(periodLogs)),
		Status:          AnalysisComplete,
		Message:         analysisCompleteMessage,
	}
	if analysis.AverageLength != nil && *analysis.AverageLength != 0 {
		ovulationDay := *analysis.AverageLength - LutealPhaseDays
		analysis.OvulationDay = &ovulationDay
	}
	return analysis
}

func sortPeriodLogsByStart(logs []models.PeriodLog) []models.PeriodLog {
	sorted := make([]models.PeriodLog, len(logs))
	copy(sorted, logs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartDate.Before(sorted[j].StartDate)
	})
	return sorted
}

// symptomFrequencies groups symptoms by type in first-seen order. The
// denominator is the number of logged periods, not completed cycles.
func symptomFrequencies(symptoms []models.Symptom, periodCount int) []SymptomFrequency {
	result := make([]SymptomFrequency, 0)
	if len(symptoms) == 0 {
		return result
	}

	indexByName := make(map[string]int)
	for _, symptom := range symptoms {
		index, ok := indexByName[symptom.Type]
		if !ok {
			index = len(result)
			indexByName[symptom.Type] = index
			result = append(result, SymptomFrequency{Name: symptom.Type})
		}
		result[index].Count++
	}

	for i := range result {
		percent := 0
		if periodCount > 0 {
			percent = int(roundHalfUp(float64(result[i].Count) / float64(periodCount) * 100))
		}
		result[i].Frequency = fmt.Sprintf("%d%%", percent)
	}
	return result
}

func averageInts(values []int) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	var total int
	for _, value := range values {
		total += value
	}
	return float64(total) / float64(len(values)), true
}

// sampleStdDev uses Bessel's correction and needs at least two samples.
func sampleStdDev(values []int) (float64, bool) {
	if len(values) < 2 {
		return 0, false
	}
	mean, _ := averageInts(values)
	var squares float64
	for _, value := range values {
		diff := float64(value) - mean
		squares += diff * diff
	}
	return math.Sqrt(squares / float64(len(values)-1)), true
}

func roundedStat(value float64, ok bool) *int {
	if !ok {
		return nil
	}
	rounded := int(roundHalfUp(value))
	return &rounded
}

func roundHalfUp(value float64) float64 {
	return math.Floor(value + 0.5)
}
