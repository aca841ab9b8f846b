package appointments

import (
	"fmt"

	"github.com/m04kA/SMC-QueueService/internal/domain"
	"github.com/m04kA/SMC-QueueService/internal/service/appointments/models"
)

func validateCreateRequest(req *models.CreateAppointmentRequest) error {
	if req.WorkerID <= 0 {
		return fmt.Errorf("%w: workerId must be positive", ErrInvalidInput)
	}
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientId must be positive", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}
	if req.StartAt.IsZero() {
		return fmt.Errorf("%w: startAt is required", ErrInvalidInput)
	}
	return nil
}

func validatePatch(patch domain.AppointmentPatch) error {
	if patch.IsEmpty() {
		return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if patch.WorkerID != nil && *patch.WorkerID <= 0 {
		return fmt.Errorf("%w: workerId must be positive", ErrInvalidInput)
	}
	if patch.ClientID != nil && *patch.ClientID <= 0 {
		return fmt.Errorf("%w: clientId must be positive", ErrInvalidInput)
	}
	if patch.ServiceID != nil && *patch.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}
	if patch.StartAt != nil && patch.StartAt.IsZero() {
		return fmt.Errorf("%w: startAt must not be empty", ErrInvalidInput)
	}
	return nil
}
