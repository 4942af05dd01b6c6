package api

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/cycletracker/internal/i18n"
	"github.com/terraincognita07/cycletracker/internal/services"
)

type Handler struct {
	profiles *services.ProfileService
	i18n     *i18n.Manager
	logger   *logrus.Logger
	now      func() time.Time
}

func NewHandler(profiles *services.ProfileService, i18nManager *i18n.Manager, logger *logrus.Logger) (*Handler, error) {
	if profiles == nil {
		return nil, errors.New("profile service is required")
	}
	if i18nManager == nil {
		return nil, errors.New("i18n manager is required")
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Handler{
		profiles: profiles,
		i18n:     i18nManager,
		logger:   logger,
		now:      time.Now,
	}, nil
}
