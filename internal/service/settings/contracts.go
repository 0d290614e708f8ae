package settings

import (
	"context"

	"github.com/lerthy/Appointlify-Amazon-sub002/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек бизнеса
type SettingsRepository interface {
	GetByBusinessID(ctx context.Context, businessID int64) (*domain.BusinessSettings, error)
	Create(ctx context.Context, settings *domain.BusinessSettings) (*domain.BusinessSettings, error)
	Update(ctx context.Context, settings *domain.BusinessSettings) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
