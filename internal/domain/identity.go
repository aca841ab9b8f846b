package domain

// Role of an authenticated user
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleWorker Role = "worker"
	RoleClient Role = "client"
)

// IsValid returns true for a known role
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleWorker || r == RoleClient
}

// Requester is the verified identity performing an operation.
// It is passed explicitly into every operation that checks ownership.
type Requester struct {
	UserID int64
	Role   Role
}

// IsAdmin returns true if the requester has the admin role
func (r Requester) IsAdmin() bool {
	return r.Role == RoleAdmin
}

// CanManage returns true if the requester owns the appointment or is an admin
func (r Requester) CanManage(a *Appointment) bool {
	return r.IsAdmin() || a.BelongsTo(r.UserID)
}

// Worker is the directory view of a user who may be booked
type Worker struct {
	ID       int64
	Role     Role
	Archived bool
}

// CanBeBooked returns true if the user provides services and is not archived
func (w *Worker) CanBeBooked() bool {
	return !w.Archived && (w.Role == RoleWorker || w.Role == RoleAdmin)
}
