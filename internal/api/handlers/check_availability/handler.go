package check_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-QueueService/internal/api/handlers"
	checkAvailability "github.com/m04kA/SMC-QueueService/internal/usecase/check_availability"
)

const (
	msgInvalidQueryParams = "некорректные параметры запроса: нужны workerId, serviceId и startAt (RFC3339)"
	msgServiceNotFound    = "услуга не найдена"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments/availability
// Query params: workerId, serviceId, startAt (RFC3339), все обязательны
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := ToUseCaseRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /appointments/availability - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQueryParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /appointments/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQueryParams)

		case errors.Is(err, checkAvailability.ErrServiceNotFound):
			h.logger.Warn("GET /appointments/availability - Service not found: service_id=%d", useCaseReq.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("GET /appointments/availability - Failed to check availability: worker_id=%d, error=%v",
				useCaseReq.WorkerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments/availability - Checked: worker_id=%d, service_id=%d, available=%t",
		result.WorkerID, result.ServiceID, result.Available)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
