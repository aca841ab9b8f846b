package create_appointment_with_client

import (
	"time"

	"github.com/m04kA/SMC-QueueService/internal/service/appointments/models"
)

// Request модель запроса на запись нового (или найденного по телефону) клиента
type Request struct {
	WorkerID   int64     // ID мастера
	ServiceID  int64     // ID услуги
	StartAt    time.Time // Начало записи
	ClientName string    // Имя клиента
	Phone      string    // Телефон клиента, ключ поиска
}

// Response модель ответа: созданная запись и клиент
type Response struct {
	Appointment   *models.AppointmentResponse
	ClientID      int64
	ClientCreated bool // true, если клиент создан этим запросом
}
