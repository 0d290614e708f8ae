package get_available_times

import (
	"time"

	"github.com/lerthy/Appointlify-Amazon-sub002/pkg/types"
)

// Request модель запроса на получение доступного времени
type Request struct {
	BusinessID int64     // ID бизнеса
	ServiceID  int64     // ID услуги; 0 — использовать длительность слота по умолчанию
	EmployeeID *int64    // ID сотрудника (опционально, nil — доступность всего бизнеса)
	Date       time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступного времени
type Response struct {
	BusinessID      int64              // ID бизнеса
	ServiceID       int64              // ID услуги
	EmployeeID      *int64             // ID сотрудника
	Date            time.Time          // Дата, на которую запрашивались слоты
	DurationMinutes int                // Длительность слота
	Times           []types.TimeString // Доступное время начала, по возрастанию
}
