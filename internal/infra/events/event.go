// Package events публикует события об изменении записей в RabbitMQ
package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-QueueService/internal/domain"
)

// Типы событий, они же routing key в topic exchange
const (
	TypeAppointmentCreated = "appointment.created"
	TypeAppointmentUpdated = "appointment.updated"
	TypeAppointmentDeleted = "appointment.deleted"
)

// Event сообщение, уходящее в брокер
type Event struct {
	EventID     string             `json:"eventId"`
	Type        string             `json:"type"`
	OccurredAt  time.Time          `json:"occurredAt"`
	Appointment AppointmentPayload `json:"appointment"`
}

// AppointmentPayload состояние записи на момент события
type AppointmentPayload struct {
	ID        int64     `json:"id"`
	WorkerID  int64     `json:"workerId"`
	ClientID  int64     `json:"clientId"`
	ServiceID int64     `json:"serviceId"`
	StartAt   time.Time `json:"startAt"`
	EndAt     time.Time `json:"endAt"`
}

// NewEvent собирает событие для записи
func NewEvent(eventType string, a *domain.Appointment, occurredAt time.Time) Event {
	return Event{
		EventID:    uuid.NewString(),
		Type:       eventType,
		OccurredAt: occurredAt.UTC(),
		Appointment: AppointmentPayload{
			ID:        a.ID,
			WorkerID:  a.WorkerID,
			ClientID:  a.ClientID,
			ServiceID: a.ServiceID,
			StartAt:   a.StartAt.UTC(),
			EndAt:     a.EndAt.UTC(),
		},
	}
}
