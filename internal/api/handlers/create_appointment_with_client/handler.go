package create_appointment_with_client

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-QueueService/internal/api/handlers"
	"github.com/m04kA/SMC-QueueService/internal/service/appointments"
	createWithClient "github.com/m04kA/SMC-QueueService/internal/usecase/create_appointment_with_client"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные записи"
	msgClientBlocked      = "клиент в черном списке"
	msgServiceNotFound    = "услуга не найдена"
	msgWorkerNotFound     = "мастер не найден"
	msgReferenceNotFound  = "клиент или услуга не найдены"
	msgConflict           = "на это время у мастера уже есть запись"
)

type Handler struct {
	useCase CreateAppointmentWithClientUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentWithClientUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/with-client
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Декодируем body
	var req CreateAppointmentWithClientRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/with-client - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments/with-client - Invalid input: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createWithClient.ErrInvalidInput),
			errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("POST /appointments/with-client - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createWithClient.ErrClientBlocked):
			h.logger.Warn("POST /appointments/with-client - Client blocked: worker_id=%d", req.WorkerID)
			handlers.RespondForbidden(w, msgClientBlocked)

		case errors.Is(err, appointments.ErrServiceNotFound):
			h.logger.Warn("POST /appointments/with-client - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, appointments.ErrWorkerNotFound):
			h.logger.Warn("POST /appointments/with-client - Worker not found: worker_id=%d", req.WorkerID)
			handlers.RespondNotFound(w, msgWorkerNotFound)

		case errors.Is(err, appointments.ErrReferenceNotFound):
			h.logger.Warn("POST /appointments/with-client - Reference not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgReferenceNotFound)

		case errors.Is(err, appointments.ErrConflict):
			h.logger.Warn("POST /appointments/with-client - Conflict: worker_id=%d, start_at=%s",
				req.WorkerID, useCaseReq.StartAt)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("POST /appointments/with-client - Failed to create appointment: worker_id=%d, error=%v",
				req.WorkerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/with-client - Appointment created successfully: appointment_id=%d, client_id=%d, client_created=%t",
		result.Appointment.ID, result.ClientID, result.ClientCreated)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
