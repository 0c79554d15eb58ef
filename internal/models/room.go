package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrIntervalNotFound is returned when releasing an interval that was never reserved
var ErrIntervalNotFound = errors.New("reserved interval not found")

// Room represents a bookable room in the hotel inventory
type Room struct {
	RoomNumber int     `json:"room_number" db:"room_number"`
	RoomType   string  `json:"room_type" db:"room_type"`
	Rate       float64 `json:"rate" db:"rate"`

	// Reserved holds the room's booked date ranges keyed by start time.
	// Each entry is half-open: the room is occupied on [start, end).
	Reserved map[time.Time]time.Time `json:"-" db:"-"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewRoom creates a room with an empty reservation set
func NewRoom(roomNumber int, roomType string, rate float64) *Room {
	return &Room{
		RoomNumber: roomNumber,
		RoomType:   roomType,
		Rate:       rate,
		Reserved:   make(map[time.Time]time.Time),
	}
}

// Available reports whether the room is free for [start, end).
// A zero end probes the single instant at start.
func (r *Room) Available(start, end time.Time) bool {
	if end.IsZero() {
		end = start.Add(time.Nanosecond)
	}

	for s, e := range r.Reserved {
		if start.Before(e) && s.Before(end) {
			return false
		}
	}

	return true
}

// Reserve adds [start, end) to the reserved set. Callers must check
// Available first; reserving twice at the same start replaces the prior end.
func (r *Room) Reserve(start, end time.Time) {
	if r.Reserved == nil {
		r.Reserved = make(map[time.Time]time.Time)
	}
	r.Reserved[start] = end
}

// Release removes the interval keyed by start
func (r *Room) Release(start time.Time) error {
	if _, ok := r.Reserved[start]; !ok {
		return fmt.Errorf("room %d: %w", r.RoomNumber, ErrIntervalNotFound)
	}

	delete(r.Reserved, start)
	return nil
}

// Price returns the total for the given number of nights
func (r *Room) Price(nights int) float64 {
	return r.Rate * float64(nights)
}
