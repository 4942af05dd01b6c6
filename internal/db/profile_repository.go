package db

import (
	"context"
	"time"

	"github.com/terraincognita07/cycletracker/internal/models"
	"gorm.io/gorm"
)

// ProfileRepository stores the singleton cycle profile in SQL tables. The
// singleton is the profile row with the lowest id.
type ProfileRepository struct {
	database *gorm.DB
}

func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{database: database}
}

func (repo *ProfileRepository) Load(ctx context.Context) (models.CycleProfile, bool, error) {
	return loadProfile(repo.database.WithContext(ctx))
}

func (repo *ProfileRepository) AppendPeriodLog(ctx context.Context, log models.PeriodLog, periodLength int) (models.CycleProfile, error) {
	return repo.mutate(ctx, func(tx *gorm.DB, profile *models.CycleProfile) error {
		log.ID = 0
		log.ProfileID = profile.ID
		if err := tx.Create(&log).Error; err != nil {
			return err
		}

		return tx.Model(profile).Updates(map[string]any{
			"last_period_start": log.StartDate,
			"period_length":     periodLength,
			"updated_at":        time.Now().UTC(),
		}).Error
	})
}

func (repo *ProfileRepository) AppendSymptom(ctx context.Context, symptom models.Symptom) (models.CycleProfile, error) {
	return repo.mutate(ctx, func(tx *gorm.DB, profile *models.CycleProfile) error {
		symptom.ID = 0
		symptom.ProfileID = profile.ID
		if err := tx.Create(&symptom).Error; err != nil {
			return err
		}
		return tx.Model(profile).Update("updated_at", time.Now().UTC()).Error
	})
}

func (repo *ProfileRepository) UpdateCycleLength(ctx context.Context, cycleLength int) (models.CycleProfile, error) {
	return repo.mutate(ctx, func(tx *gorm.DB, profile *models.CycleProfile) error {
		return tx.Model(profile).Updates(map[string]any{
			"cycle_length": cycleLength,
			"updated_at":   time.Now().UTC(),
		}).Error
	})
}

// ClearPeriodLogs removes every period log. Settings and symptoms stay.
func (repo *ProfileRepository) ClearPeriodLogs(ctx context.Context) error {
	return repo.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile, found, err := findSingletonRow(tx)
		if err != nil || !found {
			return err
		}
		if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.PeriodLog{}).Error; err != nil {
			return err
		}
		return tx.Model(&profile).Update("updated_at", time.Now().UTC()).Error
	})
}

func (repo *ProfileRepository) mutate(ctx context.Context, apply func(tx *gorm.DB, profile *models.CycleProfile) error) (models.CycleProfile, error) {
	var updated models.CycleProfile
	err := repo.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile, err := findOrCreateSingletonRow(tx)
		if err != nil {
			return err
		}
		if err := apply(tx, &profile); err != nil {
			return err
		}

		loaded, _, err := loadProfile(tx)
		if err != nil {
			return err
		}
		updated = loaded
		return nil
	})
	if err != nil {
		return models.CycleProfile{}, err
	}
	return updated, nil
}

func findSingletonRow(tx *gorm.DB) (models.CycleProfile, bool, error) {
	profile := models.CycleProfile{}
	result := tx.Order("id ASC").Limit(1).Find(&profile)
	if result.Error != nil {
		return models.CycleProfile{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.CycleProfile{}, false, nil
	}
	return profile, true, nil
}

func findOrCreateSingletonRow(tx *gorm.DB) (models.CycleProfile, error) {
	profile, found, err := findSingletonRow(tx)
	if err != nil {
		return models.CycleProfile{}, err
	}
	if found {
		return profile, nil
	}

	profile = models.NewCycleProfile()
	if err := tx.Omit("PeriodLogs", "Symptoms").Create(&profile).Error; err != nil {
		return models.CycleProfile{}, err
	}
	return profile, nil
}

func loadProfile(tx *gorm.DB) (models.CycleProfile, bool, error) {
	profile, found, err := findSingletonRow(tx)
	if err != nil || !found {
		return models.CycleProfile{}, found, err
	}

	periodLogs := make([]models.PeriodLog, 0)
	if err := tx.Where("profile_id = ?", profile.ID).Order("id ASC").Find(&periodLogs).Error; err != nil {
		return models.CycleProfile{}, false, err
	}
	symptoms := make([]models.Symptom, 0)
	if err := tx.Where("profile_id = ?", profile.ID).Order("id ASC").Find(&symptoms).Error; err != nil {
		return models.CycleProfile{}, false, err
	}

	for index := range periodLogs {
		periodLogs[index].StartDate = utcDay(periodLogs[index].StartDate)
		periodLogs[index].EndDate = utcDay(periodLogs[index].EndDate)
	}
	for index := range symptoms {
		symptoms[index].Date = utcDay(symptoms[index].Date)
	}
	if profile.LastPeriodStart != nil {
		lastPeriodStart := utcDay(*profile.LastPeriodStart)
		profile.LastPeriodStart = &lastPeriodStart
	}

	profile.PeriodLogs = periodLogs
	profile.Symptoms = symptoms
	return profile, true, nil
}

// utcDay reads stored dates back as UTC midnight of their calendar date.
func utcDay(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
