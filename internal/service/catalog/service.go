package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-QueueService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-QueueService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-QueueService/internal/service/catalog/models"
)

// Service сервис чтения каталога услуг
type Service struct {
	repo   ServiceRepository
	cache  *Cache
	logger Logger
}

// NewService создает новый экземпляр сервиса каталога.
// cache может быть nil, тогда каждый запрос идет в БД.
func NewService(repo ServiceRepository, cache *Cache, logger Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// GetDuration возвращает длительность услуги в минутах
func (s *Service) GetDuration(ctx context.Context, serviceID int64) (int, error) {
	service, err := s.get(ctx, serviceID)
	if err != nil {
		return 0, err
	}

	if !service.HasValidDuration() {
		s.logger.Error("GetDuration: service id=%d has invalid duration %d", serviceID, service.DurationMinutes)
		return 0, fmt.Errorf("%w: service_id=%d, duration=%d", ErrInvalidDuration, serviceID, service.DurationMinutes)
	}

	return service.DurationMinutes, nil
}

// GetByID возвращает услугу для публичного чтения
func (s *Service) GetByID(ctx context.Context, serviceID int64) (*models.ServiceResponse, error) {
	service, err := s.get(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	return models.FromDomain(service), nil
}

func (s *Service) get(ctx context.Context, serviceID int64) (*domain.Service, error) {
	if cached, ok := s.cache.get(serviceID); ok {
		return cached, nil
	}

	service, err := s.repo.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("Service id=%d not found", serviceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Failed to get service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	s.cache.add(service)
	return service, nil
}
