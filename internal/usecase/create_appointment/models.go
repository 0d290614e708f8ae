package create_appointment

import (
	"time"

	"github.com/lerthy/Appointlify-Amazon-sub002/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	BusinessID int64            // ID бизнеса
	ServiceID  int64            // ID услуги
	EmployeeID *int64           // ID сотрудника (опционально, nil — слот общий)
	Date       time.Time        // Дата приема (без времени)
	StartTime  types.TimeString // Время начала слота (например, "10:00")

	// Контактные данные клиента (upsert по email)
	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	Notes *string // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64            // ID созданной записи
	BusinessID      int64            // ID бизнеса
	ServiceID       int64            // ID услуги
	EmployeeID      *int64           // ID сотрудника
	CustomerID      int64            // ID клиента
	Date            time.Time        // Дата приема
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус записи (scheduled)

	// Денормализованные данные
	ServiceName   string  // Название услуги
	ServicePrice  float64 // Цена услуги
	CustomerName  string  // Имя клиента
	CustomerEmail string  // Email клиента
	Notes         *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
