package create_appointment_with_client

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-QueueService/internal/service/appointments/models"
	createWithClient "github.com/m04kA/SMC-QueueService/internal/usecase/create_appointment_with_client"
)

var errMissingStartAt = errors.New("startAt is required")

// ClientInfo данные клиента из запроса
type ClientInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// CreateAppointmentWithClientRequest тело запроса POST /appointments/with-client
type CreateAppointmentWithClientRequest struct {
	WorkerID  int64      `json:"workerId"`
	ServiceID int64      `json:"serviceId"`
	StartAt   *time.Time `json:"startAt"`
	Client    ClientInfo `json:"client"`
}

// CreateAppointmentWithClientResponse ответ: запись и признак нового клиента
type CreateAppointmentWithClientResponse struct {
	Appointment   *models.AppointmentResponse `json:"appointment"`
	ClientID      int64                       `json:"clientId"`
	ClientCreated bool                        `json:"clientCreated"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentWithClientRequest) ToUseCaseRequest() (*createWithClient.Request, error) {
	if r.StartAt == nil {
		return nil, errMissingStartAt
	}

	return &createWithClient.Request{
		WorkerID:   r.WorkerID,
		ServiceID:  r.ServiceID,
		StartAt:    r.StartAt.UTC(),
		ClientName: r.Client.Name,
		Phone:      r.Client.Phone,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *createWithClient.Response) *CreateAppointmentWithClientResponse {
	return &CreateAppointmentWithClientResponse{
		Appointment:   resp.Appointment,
		ClientID:      resp.ClientID,
		ClientCreated: resp.ClientCreated,
	}
}
