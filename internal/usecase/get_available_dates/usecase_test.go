package get_available_dates

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lerthy/Appointlify-Amazon-sub002/internal/domain"
	settingsRepo "github.com/lerthy/Appointlify-Amazon-sub002/internal/infra/storage/settings"
)

type fakeSettingsRepo struct {
	settings *domain.BusinessSettings
	err      error
}

func (f *fakeSettingsRepo) GetByBusinessID(_ context.Context, _ int64) (*domain.BusinessSettings, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.settings, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (l *noopLogger) Info(format string, v ...interface{})  {}
func (l *noopLogger) Warn(format string, v ...interface{})  {}
func (l *noopLogger) Error(format string, v ...interface{}) {}

func newUseCase(repo *fakeSettingsRepo) *UseCase {
	uc := NewUseCase(repo, &noopLogger{})
	uc.timeProvider = &fixedTimeProvider{
		now: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC), // вторник
	}
	return uc
}

func TestExecuteSkipsClosedAndBlockedDays(t *testing.T) {
	repo := &fakeSettingsRepo{
		settings: &domain.BusinessSettings{
			BusinessID:   1,
			WorkingHours: domain.DefaultWorkingHours(), // воскресенье закрыто
			BlockedDates: []string{"2026-09-03"},
		},
	}
	uc := newUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, HorizonDays: 7})

	require.NoError(t, err)
	// 7 дней со вторника 2026-09-01: выпадают заблокированный четверг и воскресенье
	assert.Equal(t, []string{
		"2026-09-01", "2026-09-02", "2026-09-04", "2026-09-05", "2026-09-07",
	}, resp.Dates)
}

func TestExecuteDefaultHorizon(t *testing.T) {
	repo := &fakeSettingsRepo{
		settings: &domain.BusinessSettings{
			BusinessID:   1,
			WorkingHours: domain.DefaultWorkingHours(),
		},
	}
	uc := newUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1})

	require.NoError(t, err)
	// 30 дней со вторника: 2026-09-01..2026-09-30, минус четыре воскресенья
	assert.Len(t, resp.Dates, 26)
	assert.Equal(t, "2026-09-01", resp.Dates[0])
	assert.NotContains(t, resp.Dates, "2026-09-06")
}

func TestExecuteBusinessNotConfigured(t *testing.T) {
	uc := newUseCase(&fakeSettingsRepo{err: settingsRepo.ErrSettingsNotFound})

	_, err := uc.Execute(context.Background(), &Request{BusinessID: 1})
	assert.ErrorIs(t, err, ErrBusinessNotConfigured)
}

func TestExecuteInvalidBusinessID(t *testing.T) {
	uc := newUseCase(&fakeSettingsRepo{})

	_, err := uc.Execute(context.Background(), &Request{BusinessID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
