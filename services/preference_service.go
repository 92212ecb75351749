package services

import (
	"context"
	"errors"

	"github.com/Soukthavilay/qr-order/i18n"
	"github.com/Soukthavilay/qr-order/models"
	"github.com/Soukthavilay/qr-order/storage"
	"go.uber.org/zap"
)

// PreferenceService stores language and theme per session.
type PreferenceService interface {
	GetPreferences(ctx context.Context, sessionID string) models.Preferences
	UpdatePreferences(ctx context.Context, sessionID string, req *models.UpdatePreferencesRequest) (models.Preferences, *ServiceError)
}

type preferenceServiceImpl struct {
	store  storage.Store
	logger *zap.Logger
}

func NewPreferenceService(store storage.Store, logger *zap.Logger) PreferenceService {
	return &preferenceServiceImpl{store: store, logger: logger}
}

// GetPreferences falls back to English and the light theme for anything
// missing or unreadable.
func (s *preferenceServiceImpl) GetPreferences(ctx context.Context, sessionID string) models.Preferences {
	lang, err := storage.LoadJSON(ctx, s.store, sessionID, storage.KeyLanguage, string(i18n.DefaultLanguage))
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.logger.Warn("Discarding unreadable language", zap.String("session_id", sessionID), zap.Error(err))
	}
	if _, ok := i18n.ParseLanguage(lang); !ok {
		lang = string(i18n.DefaultLanguage)
	}

	theme, err := storage.LoadJSON(ctx, s.store, sessionID, storage.KeyTheme, models.ThemeLight)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.logger.Warn("Discarding unreadable theme", zap.String("session_id", sessionID), zap.Error(err))
	}
	if !theme.IsValid() {
		theme = models.ThemeLight
	}
	return models.Preferences{Language: lang, Theme: theme}
}

func (s *preferenceServiceImpl) UpdatePreferences(ctx context.Context, sessionID string, req *models.UpdatePreferencesRequest) (models.Preferences, *ServiceError) {
	if req.Language != nil {
		if _, ok := i18n.ParseLanguage(*req.Language); !ok {
			return models.Preferences{}, badRequest("Unsupported language")
		}
	}
	if req.Theme != nil && !req.Theme.IsValid() {
		return models.Preferences{}, badRequest("Unsupported theme")
	}

	if req.Language != nil {
		if err := storage.SaveJSON(ctx, s.store, sessionID, storage.KeyLanguage, *req.Language); err != nil {
			s.logger.Error("Failed to save language", zap.String("session_id", sessionID), zap.Error(err))
			return models.Preferences{}, internal("Failed to save preferences")
		}
	}
	if req.Theme != nil {
		if err := storage.SaveJSON(ctx, s.store, sessionID, storage.KeyTheme, *req.Theme); err != nil {
			s.logger.Error("Failed to save theme", zap.String("session_id", sessionID), zap.Error(err))
			return models.Preferences{}, internal("Failed to save preferences")
		}
	}
	return s.GetPreferences(ctx, sessionID), nil
}
