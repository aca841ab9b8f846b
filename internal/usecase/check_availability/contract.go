package check_availability

import (
	"context"
	"time"
)

// ServiceCatalog источник длительности услуг
type ServiceCatalog interface {
	GetDuration(ctx context.Context, serviceID int64) (int, error)
}

// AvailabilityChecker проверка пересечений с записями мастера
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, workerID int64, startAt, endAt time.Time, excludeID *int64) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
