package domain

import "time"

// Client represents a person receiving services
type Client struct {
	ID        int64
	Name      string
	Phone     string
	Blocked   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
