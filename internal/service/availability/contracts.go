package availability

import (
	"context"

	"github.com/m04kA/SMC-QueueService/internal/domain"
)

// AppointmentRepository интерфейс чтения записей
type AppointmentRepository interface {
	FindMany(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
}
