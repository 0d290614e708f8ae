package domain

import "time"

// Service represents a bookable service of a business
type Service struct {
	ID              int64
	BusinessID      int64
	Name            string
	DurationMinutes int // > 0, определяет длину слота при бронировании
	Price           float64
	Description     *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Employee represents a staff member providing services
type Employee struct {
	ID         int64
	BusinessID int64
	Name       string
	Role       string
	Email      *string
	Phone      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Customer is identified by email: looked up first, created if absent
type Customer struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
