// Package check_availability отвечает, свободен ли мастер для услуги в заданное время.
// Результат подсказка для клиента: бронирование все равно проверяет пересечения под блокировкой.
package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-QueueService/internal/domain"
	"github.com/m04kA/SMC-QueueService/internal/service/catalog"
)

// UseCase use case проверки свободного времени мастера
type UseCase struct {
	catalog ServiceCatalog
	checker AvailabilityChecker
	logger  Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(catalog ServiceCatalog, checker AvailabilityChecker, logger Logger) *UseCase {
	return &UseCase{
		catalog: catalog,
		checker: checker,
		logger:  logger,
	}
}

// Execute вычисляет интервал записи и проверяет его на пересечения
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: worker=%d, service=%d, start=%s",
		req.WorkerID, req.ServiceID, req.StartAt.Format(domain.DateTimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}
	startAt := req.StartAt.UTC()

	// 2. Получаем длительность услуги
	duration, err := uc.catalog.GetDuration(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			uc.logger.Warn("CheckAvailability: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get duration of service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get duration: %v", ErrInternal, err)
	}

	// 3. Проверяем интервал
	endAt := domain.CalculateEndAt(startAt, duration)
	available, err := uc.checker.IsAvailable(ctx, req.WorkerID, startAt, endAt, nil)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to check worker id=%d: %v", req.WorkerID, err)
		return nil, fmt.Errorf("%w: failed to check availability: %v", ErrInternal, err)
	}

	uc.logger.Info("CheckAvailability: worker=%d, [%s, %s) available=%t", req.WorkerID,
		startAt.Format(domain.DateTimeFormat), endAt.Format(domain.DateTimeFormat), available)

	return &Response{
		WorkerID:  req.WorkerID,
		ServiceID: req.ServiceID,
		StartAt:   startAt,
		EndAt:     endAt,
		Available: available,
	}, nil
}
