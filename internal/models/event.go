package models

import "time"

// Location is a venue where events are held.
type Location struct {
	ID      int64
	Name    string
	Address string
}

// Event is a ticketed happening at a location.
type Event struct {
	ID         int64
	Name       string
	LocationID int64
	StartsAt   time.Time
	EndsAt     time.Time
}

// Ticket is a single seat for an event. Only sold tickets count towards
// the reporting aggregates.
type Ticket struct {
	ID       int64
	EventID  int64
	Price    float64
	Sold     bool
	SaleDate *time.Time
}
