package services

import (
	"reflect"
	"testing"

	"github.com/terraincognita07/cycletracker/internal/models"
)

func TestComputeAnalysisWithoutLogs(t *testing.T) {
	analysis := ComputeAnalysis(nil, nil)

	assertNilStat(t, "averageLength", analysis.AverageLength)
	assertNilStat(t, "lengthVariation", analysis.LengthVariation)
	assertNilStat(t, "periodLength", analysis.PeriodLength)
	assertNilStat(t, "periodVariation", analysis.PeriodVariation)
	assertNilStat(t, "ovulationDay", analysis.OvulationDay)
	if analysis.LutealPhase != 14 {
		t.Fatalf("expected luteal phase 14, got %d", analysis.LutealPhase)
	}
	if analysis.Symptoms == nil || len(analysis.Symptoms) != 0 {
		t.Fatalf("expected empty non-nil symptoms, got %#v", analysis.Symptoms)
	}
	if analysis.Status != AnalysisNoData {
		t.Fatalf("expected status %q, got %q", AnalysisNoData, analysis.Status)
	}
}

func TestComputeAnalysisWithSingleLog(t *testing.T) {
	logs := []models.PeriodLog{makePeriodLog(t, "2024-01-01", "2024-01-05")}
	symptoms := []models.Symptom{makeSymptom(t, "2024-01-02", "Cramps")}

	analysis := ComputeAnalysis(logs, symptoms)

	assertStat(t, "periodLength", analysis.PeriodLength, 5)
	assertNilStat(t, "averageLength", analysis.AverageLength)
	assertNilStat(t, "lengthVariation", analysis.LengthVariation)
	assertNilStat(t, "periodVariation", analysis.PeriodVariation)
	assertNilStat(t, "ovulationDay", analysis.OvulationDay)
	if len(analysis.Symptoms) != 0 {
		t.Fatalf("expected no symptom frequencies for a single log, got %#v", analysis.Symptoms)
	}
	if analysis.Status != AnalysisSinglePeriod {
		t.Fatalf("expected status %q, got %q", AnalysisSinglePeriod, analysis.Status)
	}
}

func TestComputeAnalysisWithTwoLogs(t *testing.T) {
	logs := []models.PeriodLog{
		makePeriodLog(t, "2024-01-01", "2024-01-05"),
		makePeriodLog(t, "2024-01-29", "2024-02-02"),
	}

	analysis := ComputeAnalysis(logs, nil)

	assertStat(t, "averageLength", analysis.AverageLength, 28)
	assertNilStat(t, "lengthVariation", analysis.LengthVariation)
	assertStat(t, "periodLength", analysis.PeriodLength, 5)
	assertStat(t, "periodVariation", analysis.PeriodVariation, 0)
	assertStat(t, "ovulationDay", analysis.OvulationDay, 14)
	if analysis.Status != AnalysisComplete {
		t.Fatalf("expected status %q, got %q", AnalysisComplete, analysis.Status)
	}
}

func TestComputeAnalysisUsesSampleStandardDeviation(t *testing.T) {
	logs := []models.PeriodLog{
		makePeriodLog(t, "2024-01-01", "2024-01-05"),
		makePeriodLog(t, "2024-01-29", "2024-02-01"),
		makePeriodLog(t, "2024-02-28", "2024-03-04"),
	}

	analysis := ComputeAnalysis(logs, nil)

	assertStat(t, "averageLength", analysis.AverageLength, 29)
	assertStat(t, "lengthVariation", analysis.LengthVariation, 1)
	assertStat(t, "ovulationDay", analysis.OvulationDay, 15)
	// period lengths [5 4 6]: mean 5, sample stddev 1
	assertStat(t, "periodLength", analysis.PeriodLength, 5)
	assertStat(t, "periodVariation", analysis.PeriodVariation, 1)
}

func TestComputeAnalysisSortsLogsWithoutMutatingInput(t *testing.T) {
	logs := []models.PeriodLog{
		makePeriodLog(t, "2024-02-28", "2024-03-03"),
		makePeriodLog(t, "2024-01-01", "2024-01-05"),
		makePeriodLog(t, "2024-01-29", "2024-02-02"),
	}
	original := make([]models.PeriodLog, len(logs))
	copy(original, logs)

	analysis := ComputeAnalysis(logs, nil)

	assertStat(t, "averageLength", analysis.AverageLength, 29)
	if !reflect.DeepEqual(logs, original) {
		t.Fatal("expected input period logs to keep their order")
	}
}

func TestComputeAnalysisRoundsHalfUp(t *testing.T) {
	// cycle lengths [28 29]: mean 28.5
	logs := []models.PeriodLog{
		makePeriodLog(t, "2024-01-01", "2024-01-05"),
		makePeriodLog(t, "2024-01-29", "2024-02-02"),
		makePeriodLog(t, "2024-02-27", "2024-03-02"),
	}

	analysis := ComputeAnalysis(logs, nil)

	assertStat(t, "averageLength", analysis.AverageLength, 29)
	assertStat(t, "ovulationDay", analysis.OvulationDay, 15)
}

func TestComputeAnalysisOvulationNullWhenAverageIsZero(t *testing.T) {
	logs := []models.PeriodLog{
		makePeriodLog(t, "2024-01-01", "2024-01-05"),
		makePeriodLog(t, "2024-01-01", "2024-01-03"),
	}

	analysis := ComputeAnalysis(logs, nil)

	assertStat(t, "averageLength", analysis.AverageLength, 0)
	assertNilStat(t, "ovulationDay", analysis.OvulationDay)
}

func TestComputeAnalysisSymptomFrequencyUsesLogCount(t *testing.T) {
	logs := []models.PeriodLog{
		makePeriodLog(t, "2024-01-01", "2024-01-05"),
		makePeriodLog(t, "2024-01-29", "2024-02-02"),
		makePeriodLog(t, "2024-02-26", "2024-03-01"),
		makePeriodLog(t, "2024-03-25", "2024-03-29"),
	}
	symptoms := []models.Symptom{
		makeSymptom(t, "2024-01-02", "Headache"),
		makeSymptom(t, "2024-01-02", "Cramps"),
		makeSymptom(t, "2024-01-30", "Cramps"),
		makeSymptom(t, "2024-02-27", "Cramps"),
	}

	analysis := ComputeAnalysis(logs, symptoms)

	want := []SymptomFrequency{
		{Name: "Headache", Frequency: "25%", Count: 1},
		{Name: "Cramps", Frequency: "75%", Count: 3},
	}
	if !reflect.DeepEqual(analysis.Symptoms, want) {
		t.Fatalf("unexpected symptom frequencies: %#v", analysis.Symptoms)
	}
}

func TestComputeAnalysisSymptomFrequencyRoundsPercentage(t *testing.T) {
	logs := []models.PeriodLog{
		makePeriodLog(t, "2024-01-01", "2024-01-05"),
		makePeriodLog(t, "2024-01-29", "2024-02-02"),
		makePeriodLog(t, "2024-02-26", "2024-03-01"),
	}
	symptoms := []models.Symptom{
		makeSymptom(t, "2024-01-02", "Fatigue"),
		makeSymptom(t, "2024-01-30", "Fatigue"),
		makeSymptom(t, "2024-02-27", "Bloating"),
	}

	analysis := ComputeAnalysis(logs, symptoms)

	if analysis.Symptoms[0].Frequency != "67%" {
		t.Fatalf("expected 67%% for 2 of 3 logs, got %s", analysis.Symptoms[0].Frequency)
	}
	if analysis.Symptoms[1].Frequency != "33%" {
		t.Fatalf("expected 33%% for 1 of 3 logs, got %s", analysis.Symptoms[1].Frequency)
	}
}

func TestComputeAnalysisIsIdempotent(t *testing.T) {
	logs := []models.PeriodLog{
		makePeriodLog(t, "2024-01-29", "2024-02-02"),
		makePeriodLog(t, "2024-01-01", "2024-01-05"),
		makePeriodLog(t, "2024-02-28", "2024-03-03"),
	}
	symptoms := []models.Symptom{
		makeSymptom(t, "2024-01-02", "Cramps"),
		makeSymptom(t, "2024-01-30", "Acne"),
	}

	first := ComputeAnalysis(logs, symptoms)
	second := ComputeAnalysis(logs, symptoms)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical analyses, got %#v and %#v", first, second)
	}
}

func TestComputeAnalysisOvulationFollowsAverage(t *testing.T) {
	starts := []string{"2024-01-01", "2024-02-02", "2024-03-01", "2024-04-03"}
	logs := make([]models.PeriodLog, 0, len(starts))
	for _, start := range starts {
		logs = append(logs, makePeriodLog(t, start, start))
	}

	analysis := ComputeAnalysis(logs, nil)
	if analysis.AverageLength == nil || analysis.OvulationDay == nil {
		t.Fatalf("expected average and ovulation day, got %#v", analysis)
	}
	if *analysis.OvulationDay != *analysis.AverageLength-14 {
		t.Fatalf("expected ovulation day %d, got %d", *analysis.AverageLength-14, *analysis.OvulationDay)
	}
}

func makePeriodLog(t *testing.T, start string, end string) models.PeriodLog {
	t.Helper()
	return models.PeriodLog{
		StartDate: mustParseDay(t, start),
		EndDate:   mustParseDay(t, end),
		Flow:      models.FlowMedium,
	}
}

func makeSymptom(t *testing.T, date string, symptomType string) models.Symptom {
	t.Helper()
	return models.Symptom{
		Date:     mustParseDay(t, date),
		Type:     symptomType,
		Severity: 3,
	}
}

func assertStat(t *testing.T, name string, got *int, want int) {
	t.Helper()
	if got == nil {
		t.Fatalf("expected %s %d, got null", name, want)
	}
	if *got != want {
		t.Fatalf("expected %s %d, got %d", name, want, *got)
	}
}

func assertNilStat(t *testing.T, name string, got *int) {
	t.Helper()
	if got != nil {
		t.Fatalf("expected %s null, got %d", name, *got)
	}
}
