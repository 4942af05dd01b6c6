package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/terraincognita07/cycletracker/internal/models"
)

const maxSymptomTypeLength = 80

var (
	ErrInvalidDateRange   = errors.New("start date is after end date")
	ErrInvalidFlow        = errors.New("invalid flow value")
	ErrInvalidSymptomType = errors.New("invalid symptom type")
	ErrInvalidSeverity    = errors.New("invalid symptom severity")
	ErrInvalidCycleLength = errors.New("invalid cycle length")
)

var inputValidator = newInputValidator()

func newInputValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	rules := map[string]validator.Func{
		"period_flow": func(field validator.FieldLevel) bool {
			return models.IsValidFlow(field.Field().String())
		},
		"symptom_type": func(field validator.FieldLevel) bool {
			return utf8.RuneCountInString(field.Field().String()) <= maxSymptomTypeLength
		},
		"symptom_severity": func(field validator.FieldLevel) bool {
			severity := field.Field().Int()
			return severity >= models.MinSymptomSeverity && severity <= models.MaxSymptomSeverity
		},
	}
	for tag, rule := range rules {
		if err := validate.RegisterValidation(tag, rule); err != nil {
			panic(fmt.Sprintf("register %s validation: %v", tag, err))
		}
	}
	return validate
}

type PeriodLogInput struct {
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
	Flow      string `json:"flow" validate:"required,period_flow"`
}

type SymptomInput struct {
	Date     string `json:"date" validate:"required"`
	Type     string `json:"type" validate:"required,symptom_type"`
	Severity int    `json:"severity" validate:"symptom_severity"`
}

type CycleLengthInput struct {
	CycleLength int `json:"cycleLength" validate:"min=1"`
}

// inputFieldErrors maps a failing struct field to the error reported for it.
var inputFieldErrors = map[string]error{
	"StartDate":   ErrInvalidDate,
	"EndDate":     ErrInvalidDate,
	"Date":        ErrInvalidDate,
	"Flow":        ErrInvalidFlow,
	"Type":        ErrInvalidSymptomType,
	"Severity":    ErrInvalidSeverity,
	"CycleLength": ErrInvalidCycleLength,
}

func NormalizePeriodLogInput(input PeriodLogInput) (models.PeriodLog, error) {
	input.StartDate = strings.TrimSpace(input.StartDate)
	input.EndDate = strings.TrimSpace(input.EndDate)
	input.Flow = strings.ToLower(strings.TrimSpace(input.Flow))
	if err := validateInput(input); err != nil {
		return models.PeriodLog{}, err
	}

	start, err := ParseDay(input.StartDate)
	if err != nil {
		return models.PeriodLog{}, err
	}
	end, err := ParseDay(input.EndDate)
	if err != nil {
		return models.PeriodLog{}, err
	}
	if start.After(end) {
		return models.PeriodLog{}, ErrInvalidDateRange
	}

	return models.PeriodLog{
		StartDate: start,
		EndDate:   end,
		Flow:      input.Flow,
	}, nil
}

func NormalizeSymptomInput(input SymptomInput) (models.Symptom, error) {
	input.Date = strings.TrimSpace(input.Date)
	input.Type = strings.TrimSpace(input.Type)
	if err := validateInput(input); err != nil {
		return models.Symptom{}, err
	}

	day, err := ParseDay(input.Date)
	if err != nil {
		return models.Symptom{}, err
	}

	return models.Symptom{
		Date:     day,
		Type:     input.Type,
		Severity: input.Severity,
	}, nil
}

func NormalizeCycleLengthInput(input CycleLengthInput) (int, error) {
	if err := validateInput(input); err != nil {
		return 0, err
	}
	return input.CycleLength, nil
}

func validateInput(input any) error {
	err := inputValidator.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		if mapped, ok := inputFieldErrors[fieldErrors[0].StructField()]; ok {
			return mapped
		}
	}
	return err
}
