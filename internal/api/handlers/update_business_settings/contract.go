package update_business_settings

import (
	"context"

	"github.com/lerthy/Appointlify-Amazon-sub002/internal/service/settings/models"
)

type SettingsService interface {
	Update(ctx context.Context, businessID int64, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
