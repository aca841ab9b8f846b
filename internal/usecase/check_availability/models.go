package check_availability

import "time"

// Request модель запроса проверки свободного времени
type Request struct {
	WorkerID  int64     // ID мастера
	ServiceID int64     // ID услуги, задает длительность
	StartAt   time.Time // Желаемое начало
}

// Response модель ответа
type Response struct {
	WorkerID  int64
	ServiceID int64
	StartAt   time.Time
	EndAt     time.Time // StartAt + длительность услуги
	Available bool
}
