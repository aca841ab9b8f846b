package create_appointment_with_client

import (
	"context"

	createWithClient "github.com/m04kA/SMC-QueueService/internal/usecase/create_appointment_with_client"
)

type CreateAppointmentWithClientUseCase interface {
	Execute(ctx context.Context, req *createWithClient.Request) (*createWithClient.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
