package get_my_appointments

import (
	"net/url"

	"github.com/m04kA/SMC-QueueService/internal/api/handlers"
	"github.com/m04kA/SMC-QueueService/internal/service/appointments/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// Мастер подставляется сервисом из токена, workerId в query игнорируется.
func ToServiceRequest(q url.Values) (*models.ListAppointmentsRequest, error) {
	var (
		req = &models.ListAppointmentsRequest{}
		err error
	)

	if req.ClientID, err = handlers.QueryInt64(q, "clientId"); err != nil {
		return nil, err
	}
	if req.ServiceID, err = handlers.QueryInt64(q, "serviceId"); err != nil {
		return nil, err
	}
	if req.DateFrom, err = handlers.QueryTime(q, "dateFrom"); err != nil {
		return nil, err
	}
	if req.DateTo, err = handlers.QueryTime(q, "dateTo"); err != nil {
		return nil, err
	}

	return req, nil
}
