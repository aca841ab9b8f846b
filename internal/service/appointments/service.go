package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-QueueService/internal/domain"
	"github.com/m04kA/SMC-QueueService/internal/infra/events"
	"github.com/m04kA/SMC-QueueService/internal/infra/lock"
	appointmentRepo "github.com/m04kA/SMC-QueueService/internal/infra/storage/appointment"
	userClient "github.com/m04kA/SMC-QueueService/internal/integrations/userservice"
	"github.com/m04kA/SMC-QueueService/internal/service/appointments/models"
	"github.com/m04kA/SMC-QueueService/internal/service/availability"
	"github.com/m04kA/SMC-QueueService/internal/service/catalog"
	"github.com/m04kA/SMC-QueueService/pkg/txmanager"
)

const (
	opCreate = "create"
	opUpdate = "update"
)

// Service сервис записей к мастерам.
//
// Инвариант: у одного мастера интервалы [StartAt, EndAt) записей не пересекаются.
// Проверка доступности и запись выполняются под блокировкой мастера внутри
// сериализуемой транзакции, а исключающее ограничение в БД отсекает то,
// что прошло мимо обоих уровней.
type Service struct {
	repo         AppointmentRepository
	catalog      ServiceCatalog
	checker      AvailabilityChecker
	directory    WorkerDirectory
	locker       WorkerLocker
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      MetricsRecorder
	lockTimeout  time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса записей.
// directory, publisher и metrics могут быть nil.
func NewService(
	repo AppointmentRepository,
	catalog ServiceCatalog,
	checker AvailabilityChecker,
	directory WorkerDirectory,
	locker WorkerLocker,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics MetricsRecorder,
	lockTimeout time.Duration,
	logger Logger,
) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Service{
		repo:         repo,
		catalog:      catalog,
		checker:      checker,
		directory:    directory,
		locker:       locker,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		lockTimeout:  lockTimeout,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Create создает запись мастера на услугу.
// EndAt вычисляется как StartAt + длительность услуги.
func (s *Service) Create(ctx context.Context, req *models.CreateAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Create: worker=%d, client=%d, service=%d, start=%s",
		req.WorkerID, req.ClientID, req.ServiceID, req.StartAt.Format(domain.DateTimeFormat))

	// 1. Валидация входных данных
	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем мастера
	if err := s.ensureWorker(ctx, "Create", req.WorkerID); err != nil {
		return nil, err
	}

	// 3. Получаем длительность услуги и вычисляем конец интервала
	startAt := req.StartAt.UTC()
	endAt, err := s.calculateEndAt(ctx, "Create", req.ServiceID, startAt)
	if err != nil {
		return nil, err
	}

	appointment := &domain.Appointment{
		WorkerID:  req.WorkerID,
		ClientID:  req.ClientID,
		ServiceID: req.ServiceID,
		StartAt:   startAt,
		EndAt:     endAt,
	}

	// 4. Блокируем мастера на время проверки и записи
	unlock, err := s.lockWorkers(ctx, "Create", req.WorkerID)
	if err != nil {
		return nil, s.finish(opCreate, err)
	}
	defer unlock()

	var result *domain.Appointment

	// 5. Проверка доступности и запись в сериализуемой транзакции
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Проверяем, что мастер свободен (строки интервала блокируются FOR UPDATE)
		if err := s.ensureAvailable(txCtx, "Create", appointment.WorkerID, startAt, endAt, nil); err != nil {
			return err
		}

		// 5.2. Сохраняем запись
		created, err := s.repo.Create(txCtx, appointment)
		if err != nil {
			return s.mapWriteError("Create", err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, s.finish(opCreate, s.mapTxError("Create", err))
	}

	s.logger.Info("Create: successfully created appointment id=%d for worker=%d [%s, %s)",
		result.ID, result.WorkerID, result.StartAt.Format(domain.DateTimeFormat), result.EndAt.Format(domain.DateTimeFormat))

	// 6. Публикуем событие (ошибка публикации не отменяет запись)
	s.publish(ctx, events.TypeAppointmentCreated, result)

	return models.FromDomainAppointment(result, s.timeProvider.Now()), nil
}

// Update изменяет запись и заново проверяет пересечения, исключая саму запись.
// Изменять запись может мастер-владелец или администратор.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateAppointmentRequest, requester domain.Requester) (*models.AppointmentResponse, error) {
	s.logger.Info("Update: appointment id=%d by user=%d (%s)", id, requester.UserID, requester.Role)

	// 1. Валидация входных данных
	patch := req.ToPatch()
	if err := validatePatch(patch); err != nil {
		s.logger.Warn("Update: validation failed for appointment id=%d: %v", id, err)
		return nil, err
	}

	// 2. Получаем запись
	existing, err := s.getAppointment(ctx, "Update", id)
	if err != nil {
		return nil, err
	}

	// 3. Проверяем права доступа
	if !requester.CanManage(existing) {
		s.logger.Warn("Update: access denied for user=%d to appointment id=%d of worker=%d",
			requester.UserID, id, existing.WorkerID)
		return nil, ErrForbidden
	}

	// 4. Накладываем патч и пересчитываем конец интервала
	merged := patch.ApplyTo(*existing)
	if merged.WorkerID != existing.WorkerID {
		if err := s.ensureWorker(ctx, "Update", merged.WorkerID); err != nil {
			return nil, err
		}
	}

	endAt, err := s.calculateEndAt(ctx, "Update", merged.ServiceID, merged.StartAt)
	if err != nil {
		return nil, err
	}
	merged.EndAt = endAt

	// 5. Блокируем прежнего и нового мастера
	unlock, err := s.lockWorkers(ctx, "Update", existing.WorkerID, merged.WorkerID)
	if err != nil {
		return nil, s.finish(opUpdate, err)
	}
	defer unlock()

	var result *domain.Appointment

	// 6. Повторная проверка и запись в сериализуемой транзакции
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Перечитываем запись с блокировкой строки
		current, err := s.getAppointment(txCtx, "Update", id)
		if err != nil {
			return err
		}
		if !sameSlot(current, existing) {
			s.logger.Warn("Update: appointment id=%d was changed concurrently", id)
			return ErrConflict
		}

		// 6.2. Проверяем доступность, исключая саму запись
		if err := s.ensureAvailable(txCtx, "Update", merged.WorkerID, merged.StartAt, merged.EndAt, &id); err != nil {
			return err
		}

		// 6.3. Сохраняем изменения
		updated, err := s.repo.Update(txCtx, &merged)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return s.mapWriteError("Update", err)
		}

		result = updated
		return nil
	})
	if err != nil {
		return nil, s.finish(opUpdate, s.mapTxError("Update", err))
	}

	s.logger.Info("Update: successfully updated appointment id=%d, worker=%d [%s, %s)",
		result.ID, result.WorkerID, result.StartAt.Format(domain.DateTimeFormat), result.EndAt.Format(domain.DateTimeFormat))

	s.publish(ctx, events.TypeAppointmentUpdated, result)

	return models.FromDomainAppointment(result, s.timeProvider.Now()), nil
}

// Delete удаляет запись и возвращает её.
// Чужие записи удаляет только администратор, оконченные (now >= EndAt) тоже.
func (s *Service) Delete(ctx context.Context, id int64, requester domain.Requester) (*models.AppointmentResponse, error) {
	s.logger.Info("Delete: appointment id=%d by user=%d (%s)", id, requester.UserID, requester.Role)

	// 1. Получаем запись
	existing, err := s.getAppointment(ctx, "Delete", id)
	if err != nil {
		return nil, err
	}

	// 2. Проверяем права доступа
	if !requester.CanManage(existing) {
		s.logger.Warn("Delete: access denied for user=%d to appointment id=%d of worker=%d",
			requester.UserID, id, existing.WorkerID)
		return nil, ErrForbidden
	}

	// 3. Оконченную запись может удалить только администратор
	now := s.timeProvider.Now()
	if existing.IsPast(now) && !requester.IsAdmin() {
		s.logger.Warn("Delete: appointment id=%d already finished at %s, user=%d is not admin",
			id, existing.EndAt.Format(domain.DateTimeFormat), requester.UserID)
		return nil, fmt.Errorf("%w: %w", ErrForbidden, ErrAppointmentFinished)
	}

	// 4. Удаляем
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Delete: appointment id=%d not found during deletion", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted appointment id=%d", id)

	s.publish(ctx, events.TypeAppointmentDeleted, deleted)

	return models.FromDomainAppointment(deleted, now), nil
}

// GetByID возвращает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	appointment, err := s.getAppointment(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainAppointment(appointment, s.timeProvider.Now()), nil
}

// FindOwn возвращает записи мастера, выполняющего запрос.
// Фильтр по мастеру всегда заменяется ID запрашивающего.
func (s *Service) FindOwn(ctx context.Context, requester domain.Requester, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	filter := req.ToDomainFilter()
	filter.WorkerID = &requester.UserID

	return s.find(ctx, "FindOwn", filter)
}

// FindAll возвращает записи по фильтру без ограничений по владельцу
func (s *Service) FindAll(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	return s.find(ctx, "FindAll", req.ToDomainFilter())
}

func (s *Service) find(ctx context.Context, op string, filter domain.AppointmentFilter) (*models.AppointmentListResponse, error) {
	if !filter.HasValidRange() {
		s.logger.Warn("%s: dateTo must be after dateFrom", op)
		return nil, fmt.Errorf("%w: dateTo must be after dateFrom", ErrInvalidInput)
	}

	appointments, err := s.repo.FindMany(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: fetched %d appointments", op, len(appointments))
	return models.FromDomainAppointmentList(appointments, s.timeProvider.Now()), nil
}

func (s *Service) getAppointment(ctx context.Context, op string, id int64) (*domain.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		if errors.Is(err, appointmentRepo.ErrConflict) {
			return nil, ErrConflict
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appointment, nil
}

// ensureWorker проверяет мастера в UserService.
// При недоступности UserService проверка пропускается.
func (s *Service) ensureWorker(ctx context.Context, op string, workerID int64) error {
	if s.directory == nil {
		return nil
	}

	worker, err := s.directory.GetWorker(ctx, workerID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			s.logger.Warn("%s: worker id=%d not found", op, workerID)
			return ErrWorkerNotFound
		}
		if errors.Is(err, userClient.ErrServiceDegraded) {
			s.logger.Warn("%s: skipping worker check for id=%d: %v", op, workerID, err)
			return nil
		}
		s.logger.Error("%s: failed to get worker id=%d: %v", op, workerID, err)
		return fmt.Errorf("%w: failed to get worker: %v", ErrInternal, err)
	}

	if !worker.CanBeBooked() {
		s.logger.Warn("%s: worker id=%d cannot be booked (role=%s, archived=%t)", op, workerID, worker.Role, worker.Archived)
		return ErrWorkerNotFound
	}

	return nil
}

func (s *Service) calculateEndAt(ctx context.Context, op string, serviceID int64, startAt time.Time) (time.Time, error) {
	duration, err := s.catalog.GetDuration(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			s.logger.Warn("%s: service id=%d not found", op, serviceID)
			return time.Time{}, ErrServiceNotFound
		}
		s.logger.Error("%s: failed to get duration of service id=%d: %v", op, serviceID, err)
		return time.Time{}, fmt.Errorf("%w: failed to get service duration: %v", ErrInternal, err)
	}

	return domain.CalculateEndAt(startAt, duration), nil
}

func (s *Service) lockWorkers(ctx context.Context, op string, workerIDs ...int64) (func(), error) {
	lockCtx := ctx
	if s.lockTimeout > 0 {
		var cancel context.CancelFunc
		lockCtx, cancel = context.WithTimeout(ctx, s.lockTimeout)
		defer cancel()
	}

	unlock, err := s.locker.Lock(lockCtx, workerIDs...)
	if err != nil {
		if errors.Is(err, lock.ErrLockTimeout) {
			s.logger.Warn("%s: worker lock is busy for workers=%v: %v", op, workerIDs, err)
			return nil, ErrConflict
		}
		s.logger.Error("%s: failed to lock workers=%v: %v", op, workerIDs, err)
		return nil, fmt.Errorf("%w: failed to lock worker: %v", ErrInternal, err)
	}

	return unlock, nil
}

func (s *Service) ensureAvailable(ctx context.Context, op string, workerID int64, startAt, endAt time.Time, excludeID *int64) error {
	available, err := s.checker.IsAvailable(ctx, workerID, startAt, endAt, excludeID)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidInterval) {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if errors.Is(err, appointmentRepo.ErrConflict) {
			s.logger.Warn("%s: concurrent write while checking worker=%d: %v", op, workerID, err)
			return ErrConflict
		}
		s.logger.Error("%s: availability check failed for worker=%d: %v", op, workerID, err)
		return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
	}

	if !available {
		s.logger.Warn("%s: worker=%d is busy in [%s, %s)", op, workerID,
			startAt.Format(domain.DateTimeFormat), endAt.Format(domain.DateTimeFormat))
		return ErrConflict
	}

	return nil
}

// mapWriteError переводит ошибки записи репозитория в ошибки сервиса
func (s *Service) mapWriteError(op string, err error) error {
	switch {
	case errors.Is(err, appointmentRepo.ErrConflict):
		s.logger.Warn("%s: rejected by storage constraint: %v", op, err)
		return ErrConflict
	case errors.Is(err, appointmentRepo.ErrReferenceNotFound):
		s.logger.Warn("%s: referenced entity not found: %v", op, err)
		return ErrReferenceNotFound
	case errors.Is(err, appointmentRepo.ErrInvalidInterval):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		s.logger.Error("%s: repository error: %v", op, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}

// mapTxError переводит ошибку транзакции: ошибки сервиса возвращаются как есть,
// конфликт сериализации становится ErrConflict
func (s *Service) mapTxError(op string, err error) error {
	if errors.Is(err, txmanager.ErrSerializationFailure) {
		s.logger.Warn("%s: serialization failure: %v", op, err)
		return ErrConflict
	}
	for _, known := range []error{
		ErrConflict, ErrAppointmentNotFound, ErrReferenceNotFound, ErrInvalidInput, ErrForbidden, ErrInternal,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	s.logger.Error("%s: transaction error: %v", op, err)
	return fmt.Errorf("%w: %s - transaction error: %v", ErrInternal, op, err)
}

// finish учитывает конфликт в метриках
func (s *Service) finish(op string, err error) error {
	if errors.Is(err, ErrConflict) {
		s.metrics.AppointmentConflict(op)
	}
	return err
}

func (s *Service) publish(ctx context.Context, eventType string, a *domain.Appointment) {
	event := events.NewEvent(eventType, a, s.timeProvider.Now())
	err := s.publisher.Publish(ctx, event)
	s.metrics.EventPublished(eventType, err)
	if err != nil {
		s.logger.Error("Failed to publish %s for appointment id=%d: %v", eventType, a.ID, err)
	}
}

// sameSlot сообщает, что запись не менялась между чтением и блокировкой
func sameSlot(a, b *domain.Appointment) bool {
	return a.WorkerID == b.WorkerID &&
		a.ServiceID == b.ServiceID &&
		a.ClientID == b.ClientID &&
		a.StartAt.Equal(b.StartAt) &&
		a.EndAt.Equal(b.EndAt)
}
