package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-QueueService/internal/api/handlers"
	"github.com/m04kA/SMC-QueueService/internal/service/appointments"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные записи"
	msgServiceNotFound    = "услуга не найдена"
	msgWorkerNotFound     = "мастер не найден"
	msgReferenceNotFound  = "клиент или услуга не найдены"
	msgConflict           = "на это время у мастера уже есть запись"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Декодируем body
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Invalid input: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	// Создаем запись
	result, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, appointments.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, appointments.ErrWorkerNotFound):
			h.logger.Warn("POST /appointments - Worker not found: worker_id=%d", req.WorkerID)
			handlers.RespondNotFound(w, msgWorkerNotFound)

		case errors.Is(err, appointments.ErrReferenceNotFound):
			h.logger.Warn("POST /appointments - Reference not found: client_id=%d, service_id=%d",
				req.ClientID, req.ServiceID)
			handlers.RespondNotFound(w, msgReferenceNotFound)

		case errors.Is(err, appointments.ErrConflict):
			h.logger.Warn("POST /appointments - Conflict: worker_id=%d, start_at=%s",
				req.WorkerID, serviceReq.StartAt)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: worker_id=%d, error=%v",
				req.WorkerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, worker_id=%d",
		result.ID, result.WorkerID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
