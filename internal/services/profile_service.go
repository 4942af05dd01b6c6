package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/cycletracker/internal/models"
)

var ErrProfileNotFound = errors.New("cycle profile not found")

// ProfileRepository persists the singleton cycle profile. Every mutation is an
// upsert that creates the profile with defaults when it does not exist yet.
type ProfileRepository interface {
	Load(ctx context.Context) (models.CycleProfile, bool, error)
	AppendPeriodLog(ctx context.Context, log models.PeriodLog, periodLength int) (models.CycleProfile, error)
	AppendSymptom(ctx context.Context, symptom models.Symptom) (models.CycleProfile, error)
	UpdateCycleLength(ctx context.Context, cycleLength int) (models.CycleProfile, error)
	ClearPeriodLogs(ctx context.Context) error
}

// AnalysisObserver is notified after every analysis computation.
type AnalysisObserver interface {
	ObserveAnalysis(status AnalysisStatus)
}

type ProfileService struct {
	profiles ProfileRepository
	observer AnalysisObserver
}

type CycleLengthUpdate struct {
	Profile    models.CycleProfile `json:"profile"`
	Validation CycleValidation     `json:"validation"`
}

type PhaseOverview struct {
	PhaseModel
	Status CycleStatus `json:"status"`
}

func NewProfileService(profiles ProfileRepository, observer AnalysisObserver) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		observer: observer,
	}
}

func (service *ProfileService) GetProfile(ctx context.Context) (models.CycleProfile, error) {
	profile, found, err := service.profiles.Load(ctx)
	if err != nil {
		return models.CycleProfile{}, fmt.Errorf("load profile: %w", err)
	}
	if !found {
		return models.CycleProfile{}, ErrProfileNotFound
	}
	return profile, nil
}

// LogPeriod appends a period and moves lastPeriodStart and periodLength to
// the logged values.
func (service *ProfileService) LogPeriod(ctx context.Context, input PeriodLogInput) (models.CycleProfile, error) {
	log, err := NormalizePeriodLogInput(input)
	if err != nil {
		return models.CycleProfile{}, err
	}

	profile, err := service.profiles.AppendPeriodLog(ctx, log, DaySpan(log.StartDate, log.EndDate))
	if err != nil {
		return models.CycleProfile{}, fmt.Errorf("append period log: %w", err)
	}
	return profile, nil
}

func (service *ProfileService) LogSymptom(ctx context.Context, input SymptomInput) (models.CycleProfile, error) {
	symptom, err := NormalizeSymptomInput(input)
	if err != nil {
		return models.CycleProfile{}, err
	}

	profile, err := service.profiles.AppendSymptom(ctx, symptom)
	if err != nil {
		return models.CycleProfile{}, fmt.Errorf("append symptom: %w", err)
	}
	return profile, nil
}

func (service *ProfileService) UpdateCycleLength(ctx context.Context, input CycleLengthInput) (CycleLengthUpdate, error) {
	cycleLength, err := NormalizeCycleLengthInput(input)
	if err != nil {
		return CycleLengthUpdate{}, err
	}

	profile, err := service.profiles.UpdateCycleLength(ctx, cycleLength)
	if err != nil {
		return CycleLengthUpdate{}, fmt.Errorf("update cycle length: %w", err)
	}
	return CycleLengthUpdate{
		Profile:    profile,
		Validation: ValidateCycleLength(cycleLength),
	}, nil
}

func (service *ProfileService) ClearPeriodLogs(ctx context.Context) error {
	if err := service.profiles.ClearPeriodLogs(ctx); err != nil {
		return fmt.Errorf("clear period logs: %w", err)
	}
	return nil
}

// Analysis returns the empty analysis when no profile exists yet.
func (service *ProfileService) Analysis(ctx context.Context) (CycleAnalysis, error) {
	profile, found, err := service.profiles.Load(ctx)
	if err != nil {
		return CycleAnalysis{}, fmt.Errorf("load profile: %w", err)
	}

	analysis := EmptyAnalysis()
	if found {
		analysis = ComputeAnalysis(profile.PeriodLogs, profile.Symptoms)
	}
	if service.observer != nil {
		service.observer.ObserveAnalysis(analysis.Status)
	}
	return analysis, nil
}

func (service *ProfileService) History(ctx context.Context) ([]CycleHistoryEntry, error) {
	profile, found, err := service.profiles.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if !found {
		return []CycleHistoryEntry{}, nil
	}
	return BuildCycleHistory(profile), nil
}

// Phases needs a logged period to anchor the cycle; without one it reports
// ErrProfileNotFound.
func (service *ProfileService) Phases(ctx context.Context, today time.Time) (PhaseOverview, error) {
	profile, err := service.GetProfile(ctx)
	if err != nil {
		return PhaseOverview{}, err
	}
	if profile.LastPeriodStart == nil || profile.LastPeriodStart.IsZero() {
		return PhaseOverview{}, ErrProfileNotFound
	}

	cycleLength := profile.CycleLength
	if cycleLength <= 0 {
		cycleLength = models.DefaultCycleLength
	}

	model := ComputePhases(cycleLength, UTCDate(*profile.LastPeriodStart))
	return PhaseOverview{
		PhaseModel: model,
		Status:     BuildCycleStatus(model, today),
	}, nil
}
