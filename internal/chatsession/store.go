// Package chatsession хранит состояние пошагового бронирования через
// чат-ассистента: черновик записи, собранный за несколько сообщений.
// Состояние живет в Redis с TTL и ключом по session id, поэтому ядро
// бронирования остается stateless и горизонтально масштабируется —
// никаких process-wide map по сессиям.
package chatsession

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Step шаг диалога бронирования
type Step string

const (
	StepService  Step = "service"  // выбор услуги
	StepDate     Step = "date"     // выбор даты
	StepTime     Step = "time"     // выбор времени
	StepContacts Step = "contacts" // сбор имени/email/телефона
	StepConfirm  Step = "confirm"  // финальное подтверждение
)

// Draft черновик записи, заполняемый по ходу диалога
// Структура повторяет запрос createAppointment: чат-ассистент — тонкий
// клиент движка бронирования, извлечение полей из текста живет вне ядра
type Draft struct {
	BusinessID int64   `json:"businessId"`
	ServiceID  int64   `json:"serviceId,omitempty"`
	EmployeeID *int64  `json:"employeeId,omitempty"`
	Date       string  `json:"date,omitempty"` // YYYY-MM-DD
	StartTime  string  `json:"startTime,omitempty"`
	Name       string  `json:"name,omitempty"`
	Email      string  `json:"email,omitempty"`
	Phone      string  `json:"phone,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

// State состояние одной чат-сессии
type State struct {
	SessionID string    `json:"sessionId"`
	Step      Step      `json:"step"`
	Draft     Draft     `json:"draft"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store хранилище сессий в Redis с TTL-вытеснением
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore создает хранилище сессий
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func sessionKey(sessionID string) string {
	return "chatsession:" + sessionID
}

// Get возвращает состояние сессии
// Истекшая или отсутствующая сессия — ErrSessionNotFound
func (s *Store) Get(ctx context.Context, sessionID string) (*State, error) {
	raw, err := s.rdb.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", ErrStore, sessionID, err)
	}

	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrEncode, sessionID, err)
	}

	return &state, nil
}

// Put сохраняет состояние сессии и продлевает TTL (sliding expiration:
// каждое сообщение диалога держит сессию живой)
func (s *Store) Put(ctx context.Context, state *State) error {
	state.UpdatedAt = time.Now()

	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrEncode, state.SessionID, err)
	}

	if err := s.rdb.Set(ctx, sessionKey(state.SessionID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrStore, state.SessionID, err)
	}

	return nil
}

// Delete удаляет сессию (после завершения или отмены диалога)
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("%w: del %s: %v", ErrStore, sessionID, err)
	}
	return nil
}
