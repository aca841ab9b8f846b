package create_appointment_with_client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-QueueService/internal/domain"
	clientRepo "github.com/m04kA/SMC-QueueService/internal/infra/storage/client"
	"github.com/m04kA/SMC-QueueService/internal/service/appointments/models"
)

// UseCase use case записи клиента, который может ещё не существовать
type UseCase struct {
	blacklist    BlacklistRepository
	clientRepo   ClientRepository
	appointments AppointmentCreator
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	blacklist BlacklistRepository,
	clientRepo ClientRepository,
	appointments AppointmentCreator,
	logger Logger,
) *UseCase {
	return &UseCase{
		blacklist:    blacklist,
		clientRepo:   clientRepo,
		appointments: appointments,
		logger:       logger,
	}
}

// Execute проверяет черный список, находит или создает клиента по телефону
// и создает запись через сервис записей.
// Ошибки сервиса записей (конфликт, услуга не найдена) возвращаются как есть.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointmentWithClient: worker=%d, service=%d, start=%s",
		req.WorkerID, req.ServiceID, req.StartAt.Format(domain.DateTimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointmentWithClient: validation failed: %v", err)
		return nil, err
	}
	phone := strings.TrimSpace(req.Phone)
	name := strings.TrimSpace(req.ClientName)

	// 2. Проверяем черный список
	blocked, err := uc.blacklist.IsBlocked(ctx, phone)
	if err != nil {
		uc.logger.Error("CreateAppointmentWithClient: failed to check blacklist: %v", err)
		return nil, fmt.Errorf("%w: failed to check blacklist: %v", ErrInternal, err)
	}
	if blocked {
		uc.logger.Warn("CreateAppointmentWithClient: phone is blacklisted")
		return nil, ErrClientBlocked
	}

	// 3. Находим или создаем клиента
	client, created, err := uc.findOrCreateClient(ctx, name, phone)
	if err != nil {
		return nil, err
	}
	if client.Blocked {
		uc.logger.Warn("CreateAppointmentWithClient: client id=%d is blocked", client.ID)
		return nil, ErrClientBlocked
	}

	// 4. Создаем запись
	appointment, err := uc.appointments.Create(ctx, &models.CreateAppointmentRequest{
		WorkerID:  req.WorkerID,
		ClientID:  client.ID,
		ServiceID: req.ServiceID,
		StartAt:   req.StartAt,
	})
	if err != nil {
		uc.logger.Warn("CreateAppointmentWithClient: failed to create appointment for client id=%d: %v", client.ID, err)
		return nil, err
	}

	uc.logger.Info("CreateAppointmentWithClient: created appointment id=%d for client id=%d (new=%t)",
		appointment.ID, client.ID, created)

	return &Response{
		Appointment:   appointment,
		ClientID:      client.ID,
		ClientCreated: created,
	}, nil
}

func (uc *UseCase) findOrCreateClient(ctx context.Context, name, phone string) (*domain.Client, bool, error) {
	client, err := uc.clientRepo.GetByPhone(ctx, phone)
	if err == nil {
		return client, false, nil
	}
	if !errors.Is(err, clientRepo.ErrClientNotFound) {
		uc.logger.Error("CreateAppointmentWithClient: failed to get client by phone: %v", err)
		return nil, false, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	client, err = uc.clientRepo.Create(ctx, &domain.Client{Name: name, Phone: phone})
	if err == nil {
		return client, true, nil
	}

	// Параллельный запрос успел создать клиента с тем же телефоном
	if errors.Is(err, clientRepo.ErrDuplicatePhone) {
		client, err = uc.clientRepo.GetByPhone(ctx, phone)
		if err == nil {
			return client, false, nil
		}
	}

	uc.logger.Error("CreateAppointmentWithClient: failed to create client: %v", err)
	return nil, false, fmt.Errorf("%w: failed to create client: %v", ErrInternal, err)
}
