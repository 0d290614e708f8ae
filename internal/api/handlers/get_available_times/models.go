package get_available_times

import (
	"time"

	"github.com/lerthy/Appointlify-Amazon-sub002/internal/domain"
	getAvailableTimes "github.com/lerthy/Appointlify-Amazon-sub002/internal/usecase/get_available_times"
)

// AvailableTimesResponse HTTP response model
type AvailableTimesResponse struct {
	BusinessID      int64    `json:"businessId"`
	ServiceID       int64    `json:"serviceId,omitempty"`
	EmployeeID      *int64   `json:"employeeId,omitempty"`
	Date            string   `json:"date"`
	DurationMinutes int      `json:"durationMinutes"`
	Times           []string `json:"times"`
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(businessID, serviceID int64, employeeID *int64, dateStr string) (*getAvailableTimes.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableTimes.Request{
		BusinessID: businessID,
		ServiceID:  serviceID,
		EmployeeID: employeeID,
		Date:       date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableTimes.Response) *AvailableTimesResponse {
	times := make([]string, len(resp.Times))
	for i, slot := range resp.Times {
		times[i] = slot.String()
	}

	return &AvailableTimesResponse{
		BusinessID:      resp.BusinessID,
		ServiceID:       resp.ServiceID,
		EmployeeID:      resp.EmployeeID,
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		Times:           times,
	}
}
