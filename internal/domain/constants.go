package domain

import "time"

// Service duration bounds
const (
	MinServiceDurationMinutes = 1
	MaxServiceDurationMinutes = 720 // 12 hours
)

// Client field limits
const (
	MaxClientNameLength  = 100
	MaxClientPhoneLength = 32
)

// DateTimeFormat is used for every timestamp crossing the API boundary
const DateTimeFormat = time.RFC3339
