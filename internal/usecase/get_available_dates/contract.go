package get_available_dates

import (
	"context"
	"time"

	"github.com/lerthy/Appointlify-Amazon-sub002/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек бизнеса
type SettingsRepository interface {
	GetByBusinessID(ctx context.Context, businessID int64) (*domain.BusinessSettings, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
