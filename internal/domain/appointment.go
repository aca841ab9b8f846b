package domain

import "time"

// Appointment represents a booked interval during which one worker
// performs one service for one client.
//
// EndAt is derived: StartAt + duration of ServiceID at the moment of writing.
// For a fixed WorkerID the half-open intervals [StartAt, EndAt) never overlap.
type Appointment struct {
	ID        int64
	WorkerID  int64
	ClientID  int64
	ServiceID int64
	StartAt   time.Time
	EndAt     time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPast returns true once the appointment has been served (now >= EndAt)
func (a *Appointment) IsPast(now time.Time) bool {
	return !now.Before(a.EndAt)
}

// BelongsTo returns true if the appointment is owned by the worker
func (a *Appointment) BelongsTo(workerID int64) bool {
	return a.WorkerID == workerID
}

// OverlapsWith returns true if [startAt, endAt) shares any instant with the appointment
func (a *Appointment) OverlapsWith(startAt, endAt time.Time) bool {
	return Overlaps(a.StartAt, a.EndAt, startAt, endAt)
}

// Overlaps reports whether half-open intervals [s1, e1) and [s2, e2) intersect.
// Touching intervals (e1 == s2) do not overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// CalculateEndAt returns startAt shifted by the service duration
func CalculateEndAt(startAt time.Time, durationMinutes int) time.Time {
	return startAt.Add(time.Duration(durationMinutes) * time.Minute)
}

// AppointmentPatch holds the fields of an update request.
// Nil fields keep their previous value.
type AppointmentPatch struct {
	WorkerID  *int64
	ClientID  *int64
	ServiceID *int64
	StartAt   *time.Time
}

// IsEmpty returns true if the patch changes nothing
func (p AppointmentPatch) IsEmpty() bool {
	return p.WorkerID == nil && p.ClientID == nil && p.ServiceID == nil && p.StartAt == nil
}

// ApplyTo returns a copy of the appointment with the patch merged onto it.
// EndAt is not recalculated here.
func (p AppointmentPatch) ApplyTo(a Appointment) Appointment {
	if p.WorkerID != nil {
		a.WorkerID = *p.WorkerID
	}
	if p.ClientID != nil {
		a.ClientID = *p.ClientID
	}
	if p.ServiceID != nil {
		a.ServiceID = *p.ServiceID
	}
	if p.StartAt != nil {
		a.StartAt = p.StartAt.UTC()
	}
	return a
}

// AppointmentFilter is the closed set of conditions accepted by the appointment store.
// All set fields are combined with AND. Results are ordered by StartAt ascending.
type AppointmentFilter struct {
	WorkerID        *int64 // workerId = X
	ExcludeWorkerID *int64 // workerId != Y
	ClientID        *int64
	ServiceID       *int64
	ExcludeID       *int64 // skip one record (the one being updated)

	// DateFrom/DateTo select appointments intersecting [DateFrom, DateTo):
	// EndAt > DateFrom AND StartAt < DateTo. Either bound may be nil.
	DateFrom *time.Time
	DateTo   *time.Time
}

// Matches applies the filter to a single appointment in memory
func (f AppointmentFilter) Matches(a *Appointment) bool {
	if f.WorkerID != nil && a.WorkerID != *f.WorkerID {
		return false
	}
	if f.ExcludeWorkerID != nil && a.WorkerID == *f.ExcludeWorkerID {
		return false
	}
	if f.ClientID != nil && a.ClientID != *f.ClientID {
		return false
	}
	if f.ServiceID != nil && a.ServiceID != *f.ServiceID {
		return false
	}
	if f.ExcludeID != nil && a.ID == *f.ExcludeID {
		return false
	}
	if f.DateFrom != nil && !a.EndAt.After(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && !a.StartAt.Before(*f.DateTo) {
		return false
	}
	return true
}

// HasValidRange returns false when both bounds are set and DateTo is not after DateFrom
func (f AppointmentFilter) HasValidRange() bool {
	if f.DateFrom == nil || f.DateTo == nil {
		return true
	}
	return f.DateTo.After(*f.DateFrom)
}
