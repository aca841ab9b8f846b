package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-QueueService/internal/domain"
)

func TestNewEvent(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	a := &domain.Appointment{ID: 1, WorkerID: 5, ClientID: 7, ServiceID: 3, StartAt: start, EndAt: start.Add(30 * time.Minute)}

	event := NewEvent(TypeAppointmentCreated, a, start)

	_, err := uuid.Parse(event.EventID)
	require.NoError(t, err)
	assert.NotEqual(t, event.EventID, NewEvent(TypeAppointmentCreated, a, start).EventID)

	body, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "appointment.created", decoded["type"])
	assert.Equal(t, "2024-01-01T09:00:00Z", decoded["occurredAt"])

	payload := decoded["appointment"].(map[string]interface{})
	assert.Equal(t, float64(5), payload["workerId"])
	assert.Equal(t, "2024-01-01T09:30:00Z", payload["endAt"])
}
