package services

import "time"

const (
	MinRegularCycleLength = 21
	MaxRegularCycleLength = 35
	MaxPeriodLength       = 7
)

const (
	PhaseMenstrual  = "menstrual"
	PhaseFollicular = "follicular"
	PhaseOvulation  = "ovulation"
	PhaseLuteal     = "luteal"
)

const (
	CycleAdvisoryTooShort = "cycle_too_short"
	CycleAdvisoryTooLong  = "cycle_too_long"
)

type CycleValidation struct {
	IsValid bool   `json:"isValid"`
	Message string `json:"message,omitempty"`
	Code    string `json:"-"`
}

// DayRange is an inclusive range of 1-indexed cycle days.
type DayRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (r DayRange) Contains(day int) bool {
	return day >= r.Start && day <= r.End
}

type CyclePhases struct {
	Menstrual  DayRange `json:"menstrual"`
	Follicular DayRange `json:"follicular"`
	Ovulation  DayRange `json:"ovulation"`
	Luteal     DayRange `json:"luteal"`
}

type PhaseModel struct {
	CycleLength     int             `json:"cycleLength"`
	LastPeriodStart time.Time       `json:"lastPeriodStart"`
	Validation      CycleValidation `json:"validation"`
	Phases          CyclePhases     `json:"phases"`
	Fertile         DayRange        `json:"fertile"`
}

// ValidateCycleLength flags lengths outside the regular range. The result is
// advisory and never blocks phase computation.
func ValidateCycleLength(cycleLength int) CycleValidation {
	if cycleLength < MinRegularCycleLength {
		return CycleValidation{
			IsValid: false,
			Code:    CycleAdvisoryTooShort,
			Message: "Cycles shorter than 21 days may indicate irregular periods. Consider consulting a healthcare provider.",
		}
	}
	if cycleLength > MaxRegularCycleLength {
		return CycleValidation{
			IsValid: false,
			Code:    CycleAdvisoryTooLong,
			Message: "Cycles longer than 35 days may indicate irregular periods. Consider consulting a healthcare provider.",
		}
	}
	return CycleValidation{IsValid: true}
}

// ComputePhases splits a cycle into day ranges counted from lastPeriodStart.
// The menstrual phase always spans MaxPeriodLength days and the ovulation
// phase starts on the last follicular day.
func ComputePhases(cycleLength int, lastPeriodStart time.Time) PhaseModel {
	follicularLength := cycleLength - LutealPhaseDays

	return PhaseModel{
		CycleLength:     cycleLength,
		LastPeriodStart: lastPeriodStart,
		Validation:      ValidateCycleLength(cycleLength),
		Phases: CyclePhases{
			Menstrual:  DayRange{Start: 1, End: MaxPeriodLength},
			Follicular: DayRange{Start: MaxPeriodLength + 1, End: follicularLength},
			Ovulation:  DayRange{Start: follicularLength, End: follicularLength + 2},
			Luteal:     DayRange{Start: follicularLength + 3, End: cycleLength},
		},
		Fertile: DayRange{Start: follicularLength - 3, End: follicularLength + 2},
	}
}

// DetectPhase returns the first phase whose range contains daysSinceStart.
// The period start itself (day 0) counts as menstrual and days past the end
// of the cycle fall back to luteal.
func DetectPhase(model PhaseModel, daysSinceStart int) string {
	if daysSinceStart < model.Phases.Menstrual.Start {
		return PhaseMenstrual
	}

	ordered := []struct {
		name   string
		window DayRange
	}{
		{name: PhaseMenstrual, window: model.Phases.Menstrual},
		{name: PhaseFollicular, window: model.Phases.Follicular},
		{name: PhaseOvulation, window: model.Phases.Ovulation},
		{name: PhaseLuteal, window: model.Phases.Luteal},
	}
	for _, phase := range ordered {
		if phase.window.Contains(daysSinceStart) {
			return phase.name
		}
	}
	return PhaseLuteal
}

type CycleStatus struct {
	Today               time.Time `json:"today"`
	DaysSinceStart      int       `json:"daysSinceStart"`
	CycleDay            int       `json:"cycleDay"`
	CurrentPhase        string    `json:"currentPhase"`
	InFertileWindow     bool      `json:"inFertileWindow"`
	NextPeriodStart     time.Time `json:"nextPeriodStart"`
	OvulationDate       time.Time `json:"ovulationDate"`
	DaysUntilNextPeriod int       `json:"daysUntilNextPeriod"`
	DaysUntilOvulation  int       `json:"daysUntilOvulation"`
}

// BuildCycleStatus places today inside the phase model. Phase and fertile
// window are matched on daysSinceStart; CycleDay is the 1-indexed day number
// for display.
func BuildCycleStatus(model PhaseModel, today time.Time) CycleStatus {
	start := UTCDate(model.LastPeriodStart)
	day := UTCDate(today)

	daysSinceStart := DayDelta(start, day)
	cycleDay := daysSinceStart + 1
	nextPeriod := start.AddDate(0, 0, model.CycleLength)
	ovulation := nextPeriod.AddDate(0, 0, -LutealPhaseDays)

	return CycleStatus{
		Today:               day,
		DaysSinceStart:      daysSinceStart,
		CycleDay:            cycleDay,
		CurrentPhase:        DetectPhase(model, daysSinceStart),
		InFertileWindow:     model.Fertile.Contains(daysSinceStart),
		NextPeriodStart:     nextPeriod,
		OvulationDate:       ovulation,
		DaysUntilNextPeriod: max(0, DayDelta(day, nextPeriod)),
		DaysUntilOvulation:  max(0, DayDelta(day, ovulation)),
	}
}
