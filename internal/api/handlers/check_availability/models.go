package check_availability

import (
	"errors"
	"net/url"
	"time"

	"github.com/m04kA/SMC-QueueService/internal/api/handlers"
	checkAvailability "github.com/m04kA/SMC-QueueService/internal/usecase/check_availability"
)

var errMissingParam = errors.New("workerId, serviceId and startAt are required")

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	WorkerID  int64     `json:"workerId"`
	ServiceID int64     `json:"serviceId"`
	StartAt   time.Time `json:"startAt"`
	EndAt     time.Time `json:"endAt"`
	Available bool      `json:"available"`
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(q url.Values) (*checkAvailability.Request, error) {
	workerID, err := handlers.QueryInt64(q, "workerId")
	if err != nil {
		return nil, err
	}
	serviceID, err := handlers.QueryInt64(q, "serviceId")
	if err != nil {
		return nil, err
	}
	startAt, err := handlers.QueryTime(q, "startAt")
	if err != nil {
		return nil, err
	}
	if workerID == nil || serviceID == nil || startAt == nil {
		return nil, errMissingParam
	}

	return &checkAvailability.Request{
		WorkerID:  *workerID,
		ServiceID: *serviceID,
		StartAt:   *startAt,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		WorkerID:  resp.WorkerID,
		ServiceID: resp.ServiceID,
		StartAt:   resp.StartAt,
		EndAt:     resp.EndAt,
		Available: resp.Available,
	}
}
