package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lerthy/Appointlify-Amazon-sub002/internal/domain"
	"github.com/lerthy/Appointlify-Amazon-sub002/internal/integrations/smsgateway"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// SMSSender интерфейс отправки SMS
type SMSSender interface {
	Send(ctx context.Context, msg smsgateway.Message) (*smsgateway.SendResult, error)
}

// Dispatcher отправляет уведомления о бронировании после фиксации транзакции.
// Отправка асинхронная и fire-and-forget: сбои логируются и проглатываются,
// они никогда не влияют на результат бронирования.
type Dispatcher struct {
	email   EmailSender
	sms     SMSSender
	timeout time.Duration
	log     Logger
	wg      sync.WaitGroup
}

// NewDispatcher создает диспетчер уведомлений
// email или sms могут быть nil — соответствующий канал отключен
func NewDispatcher(email EmailSender, sms SMSSender, timeout time.Duration, log Logger) *Dispatcher {
	return &Dispatcher{
		email:   email,
		sms:     sms,
		timeout: timeout,
		log:     log,
	}
}

// DispatchConfirmation асинхронно отправляет клиенту письмо и SMS
// с просьбой подтвердить запись. Возвращает управление сразу.
func (d *Dispatcher) DispatchConfirmation(appt *domain.Appointment) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		d.sendEmail(ctx, appt)
		d.sendSMS(ctx, appt)
	}()
}

// DispatchCancellation асинхронно уведомляет клиента об отмене записи
func (d *Dispatcher) DispatchCancellation(appt *domain.Appointment) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if d.email == nil {
			return
		}

		msg := EmailMessage{
			To:      appt.CustomerEmail,
			ToName:  appt.CustomerName,
			Subject: "Ваша запись отменена",
			Body: fmt.Sprintf("Запись на услугу %q %s в %s отменена.",
				appt.ServiceName, appt.Date.Format(domain.DateFormat), appt.StartTime),
		}

		if err := d.email.Send(ctx, msg); err != nil {
			d.log.Error("Notify: cancellation email failed for appointment id=%d: %v", appt.ID, err)
		}
	}()
}

// Wait дожидается завершения всех фоновых отправок (используется при shutdown)
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) sendEmail(ctx context.Context, appt *domain.Appointment) {
	if d.email == nil {
		return
	}

	token := ""
	if appt.ConfirmationToken != nil {
		token = *appt.ConfirmationToken
	}

	msg := EmailMessage{
		To:      appt.CustomerEmail,
		ToName:  appt.CustomerName,
		Subject: "Подтвердите вашу запись",
		Body: fmt.Sprintf(
			"Здравствуйте, %s!\n\nВы записаны на услугу %q %s в %s (длительность %d мин).\n"+
				"Для подтверждения записи используйте код: %s\nКод действует 48 часов.",
			appt.CustomerName, appt.ServiceName,
			appt.Date.Format(domain.DateFormat), appt.StartTime,
			appt.DurationMinutes, token),
	}

	if err := d.email.Send(ctx, msg); err != nil {
		d.log.Error("Notify: confirmation email failed for appointment id=%d: %v", appt.ID, err)
	}
}

func (d *Dispatcher) sendSMS(ctx context.Context, appt *domain.Appointment) {
	if d.sms == nil || appt.CustomerPhone == "" {
		return
	}

	msg := smsgateway.Message{
		To: appt.CustomerPhone,
		Body: fmt.Sprintf("Вы записаны: %s %s %s. Подтвердите запись по ссылке из письма.",
			appt.ServiceName, appt.Date.Format(domain.DateFormat), appt.StartTime),
	}

	if _, err := d.sms.Send(ctx, msg); err != nil {
		d.log.Error("Notify: confirmation SMS failed for appointment id=%d: %v", appt.ID, err)
	}
}
