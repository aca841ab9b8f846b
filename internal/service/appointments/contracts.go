package appointments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-QueueService/internal/domain"
	"github.com/m04kA/SMC-QueueService/internal/infra/events"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	FindMany(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
	Update(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	Delete(ctx context.Context, id int64) (*domain.Appointment, error)
}

// ServiceCatalog интерфейс каталога услуг
type ServiceCatalog interface {
	GetDuration(ctx context.Context, serviceID int64) (int, error)
}

// AvailabilityChecker интерфейс проверки занятости мастера
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, workerID int64, startAt, endAt time.Time, excludeID *int64) (bool, error)
}

// WorkerDirectory интерфейс справочника мастеров (UserService)
type WorkerDirectory interface {
	GetWorker(ctx context.Context, workerID int64) (*domain.Worker, error)
}

// WorkerLocker интерфейс блокировок по мастеру
type WorkerLocker interface {
	Lock(ctx context.Context, workerIDs ...int64) (func(), error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс публикации событий
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// MetricsRecorder интерфейс бизнес-метрик
type MetricsRecorder interface {
	AppointmentConflict(operation string)
	EventPublished(eventType string, err error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

type nopMetrics struct{}

func (nopMetrics) AppointmentConflict(string)   {}
func (nopMetrics) EventPublished(string, error) {}
