package models

import (
	"time"

	"github.com/m04kA/SMC-QueueService/internal/domain"
)

// Request модели

// CreateAppointmentRequest запрос на создание записи
type CreateAppointmentRequest struct {
	WorkerID  int64     `json:"workerId"`
	ClientID  int64     `json:"clientId"`
	ServiceID int64     `json:"serviceId"`
	StartAt   time.Time `json:"startAt"`
}

// UpdateAppointmentRequest запрос на изменение записи.
// Не переданные поля сохраняют прежнее значение.
type UpdateAppointmentRequest struct {
	WorkerID  *int64     `json:"workerId,omitempty"`
	ClientID  *int64     `json:"clientId,omitempty"`
	ServiceID *int64     `json:"serviceId,omitempty"`
	StartAt   *time.Time `json:"startAt,omitempty"`
}

// ToPatch конвертирует request в доменный патч
func (r *UpdateAppointmentRequest) ToPatch() domain.AppointmentPatch {
	return domain.AppointmentPatch{
		WorkerID:  r.WorkerID,
		ClientID:  r.ClientID,
		ServiceID: r.ServiceID,
		StartAt:   r.StartAt,
	}
}

// ListAppointmentsRequest фильтры списка записей
type ListAppointmentsRequest struct {
	WorkerID        *int64     `json:"workerId,omitempty"`
	ExcludeWorkerID *int64     `json:"excludeWorkerId,omitempty"`
	ClientID        *int64     `json:"clientId,omitempty"`
	ServiceID       *int64     `json:"serviceId,omitempty"`
	DateFrom        *time.Time `json:"dateFrom,omitempty"` // Начало периода (включительно)
	DateTo          *time.Time `json:"dateTo,omitempty"`   // Конец периода (не включительно)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAppointmentsRequest) ToDomainFilter() domain.AppointmentFilter {
	return domain.AppointmentFilter{
		WorkerID:        r.WorkerID,
		ExcludeWorkerID: r.ExcludeWorkerID,
		ClientID:        r.ClientID,
		ServiceID:       r.ServiceID,
		DateFrom:        r.DateFrom,
		DateTo:          r.DateTo,
	}
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID        int64     `json:"id"`
	WorkerID  int64     `json:"workerId"`
	ClientID  int64     `json:"clientId"`
	ServiceID int64     `json:"serviceId"`
	StartAt   time.Time `json:"startAt"`
	EndAt     time.Time `json:"endAt"`
	IsPast    bool      `json:"isPast"` // Вычисляется в момент ответа

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment, now time.Time) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:        a.ID,
		WorkerID:  a.WorkerID,
		ClientID:  a.ClientID,
		ServiceID: a.ServiceID,
		StartAt:   a.StartAt.UTC(),
		EndAt:     a.EndAt.UTC(),
		IsPast:    a.IsPast(now),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment, now time.Time) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, a := range appointments {
		if item := FromDomainAppointment(a, now); item != nil {
			resp.Appointments = append(resp.Appointments, *item)
		}
	}

	return resp
}
