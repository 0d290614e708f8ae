package check_availability

import (
	"context"
	"fmt"
	"time"

	getAvailableTimes "github.com/lerthy/Appointlify-Amazon-sub002/internal/usecase/get_available_times"
	"github.com/lerthy/Appointlify-Amazon-sub002/pkg/types"
)

// AvailableTimesUseCase интерфейс use case получения доступного времени
type AvailableTimesUseCase interface {
	Execute(ctx context.Context, req *getAvailableTimes.Request) (*getAvailableTimes.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Request модель запроса на проверку доступности конкретного слота
type Request struct {
	BusinessID int64
	ServiceID  int64
	EmployeeID *int64
	Date       time.Time
	StartTime  types.TimeString
}

// Response модель ответа проверки доступности
type Response struct {
	Available bool
}

// UseCase use case проверки доступности одного слота
// Тонкая обертка над get_available_times: один расчет доступности на все
// entry points, без параллельной копии логики
type UseCase struct {
	availableTimes AvailableTimesUseCase
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(availableTimes AvailableTimesUseCase, logger Logger) *UseCase {
	return &UseCase{
		availableTimes: availableTimes,
		logger:         logger,
	}
}

// Execute выполняет проверку доступности слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := req.StartTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	times, err := uc.availableTimes.Execute(ctx, &getAvailableTimes.Request{
		BusinessID: req.BusinessID,
		ServiceID:  req.ServiceID,
		EmployeeID: req.EmployeeID,
		Date:       req.Date,
	})
	if err != nil {
		return nil, err
	}

	for _, slot := range times.Times {
		if slot.Equal(req.StartTime) {
			return &Response{Available: true}, nil
		}
	}

	return &Response{Available: false}, nil
}
