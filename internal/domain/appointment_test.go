package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hhmm string) time.Time {
	t, err := time.Parse("2006-01-02T15:04Z", "2024-01-01T"+hhmm+"Z")
	if err != nil {
		panic(err)
	}
	return t
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name   string
		s1, e1 string
		s2, e2 string
		want   bool
	}{
		{"touching end to start", "09:00", "10:00", "10:00", "11:00", false},
		{"touching start to end", "10:00", "11:00", "09:00", "10:00", false},
		{"candidate inside existing", "09:00", "11:00", "09:30", "10:30", true},
		{"existing inside candidate", "09:30", "10:30", "09:00", "11:00", true},
		{"partial overlap on end edge", "09:00", "10:00", "09:30", "10:30", true},
		{"partial overlap on start edge", "09:00", "10:00", "08:30", "09:30", true},
		{"identical intervals", "09:00", "09:30", "09:00", "09:30", true},
		{"disjoint", "09:00", "09:30", "12:00", "12:30", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(at(tt.s1), at(tt.e1), at(tt.s2), at(tt.e2))
			assert.Equal(t, tt.want, got)
			// Пересечение симметрично
			assert.Equal(t, tt.want, Overlaps(at(tt.s2), at(tt.e2), at(tt.s1), at(tt.e1)))
		})
	}
}

func TestCalculateEndAt(t *testing.T) {
	assert.Equal(t, at("09:30"), CalculateEndAt(at("09:00"), 30))
	assert.Equal(t, at("11:15"), CalculateEndAt(at("09:00"), 135))
}

func TestAppointment_IsPast(t *testing.T) {
	a := &Appointment{StartAt: at("09:00"), EndAt: at("10:00")}

	assert.False(t, a.IsPast(at("09:59")))
	assert.True(t, a.IsPast(at("10:00")), "appointment is served exactly at EndAt")
	assert.True(t, a.IsPast(at("10:01")))
}

func TestAppointmentPatch_ApplyTo(t *testing.T) {
	base := Appointment{ID: 42, WorkerID: 5, ClientID: 7, ServiceID: 3, StartAt: at("09:00"), EndAt: at("09:30")}

	newStart := at("09:05")
	newService := int64(4)
	merged := AppointmentPatch{StartAt: &newStart, ServiceID: &newService}.ApplyTo(base)

	assert.Equal(t, int64(42), merged.ID)
	assert.Equal(t, int64(5), merged.WorkerID)
	assert.Equal(t, int64(7), merged.ClientID)
	assert.Equal(t, int64(4), merged.ServiceID)
	assert.Equal(t, newStart, merged.StartAt)
	// исходная запись не меняется
	assert.Equal(t, at("09:00"), base.StartAt)

	assert.True(t, AppointmentPatch{}.IsEmpty())
	assert.False(t, AppointmentPatch{StartAt: &newStart}.IsEmpty())
}

func TestAppointmentFilter_Matches(t *testing.T) {
	a := &Appointment{ID: 1, WorkerID: 5, ClientID: 7, ServiceID: 3, StartAt: at("09:00"), EndAt: at("10:00")}

	id := func(v int64) *int64 { return &v }
	tm := func(s string) *time.Time { v := at(s); return &v }

	assert.True(t, AppointmentFilter{}.Matches(a))
	assert.True(t, AppointmentFilter{WorkerID: id(5), ExcludeWorkerID: id(6)}.Matches(a))
	assert.False(t, AppointmentFilter{WorkerID: id(5), ExcludeWorkerID: id(5)}.Matches(a))
	assert.False(t, AppointmentFilter{ClientID: id(8)}.Matches(a))
	assert.False(t, AppointmentFilter{ServiceID: id(4)}.Matches(a))
	assert.False(t, AppointmentFilter{ExcludeID: id(1)}.Matches(a))

	assert.True(t, AppointmentFilter{DateFrom: tm("09:30"), DateTo: tm("10:30")}.Matches(a))
	assert.False(t, AppointmentFilter{DateFrom: tm("10:00"), DateTo: tm("11:00")}.Matches(a))
	assert.False(t, AppointmentFilter{DateFrom: tm("08:00"), DateTo: tm("09:00")}.Matches(a))
	assert.True(t, AppointmentFilter{DateTo: tm("09:01")}.Matches(a))
}

func TestAppointmentFilter_HasValidRange(t *testing.T) {
	from, to := at("10:00"), at("09:00")

	assert.True(t, AppointmentFilter{}.HasValidRange())
	assert.True(t, AppointmentFilter{DateFrom: &to, DateTo: &from}.HasValidRange())
	assert.False(t, AppointmentFilter{DateFrom: &from, DateTo: &to}.HasValidRange())
	assert.False(t, AppointmentFilter{DateFrom: &from, DateTo: &from}.HasValidRange())
}

func TestRequester_CanManage(t *testing.T) {
	a := &Appointment{WorkerID: 5}

	assert.True(t, Requester{UserID: 5, Role: RoleWorker}.CanManage(a))
	assert.False(t, Requester{UserID: 6, Role: RoleWorker}.CanManage(a))
	assert.True(t, Requester{UserID: 6, Role: RoleAdmin}.CanManage(a))
}
