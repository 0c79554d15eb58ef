package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrRoomUnavailable is returned when a stay is created or moved onto a
// room/date range that collides with an existing reservation
var ErrRoomUnavailable = errors.New("room unavailable for the requested dates")

// DefaultKeycards is the number of standard keycards issued per stay
const DefaultKeycards = 2

// KeycardPrinter is the external collaborator that produces physical keycards
type KeycardPrinter interface {
	PrintKeycard(roomNumber int) error
}

// Stay binds a room to a date range for one guest. For as long as the stay
// exists its [start, end) is registered as reserved on the room.
type Stay struct {
	ID      uuid.UUID `json:"id" db:"id"`
	GuestID uuid.UUID `json:"guest_id" db:"guest_id"`

	Room  *Room     `json:"room" db:"-"`
	Start time.Time `json:"start" db:"start_date"`
	End   time.Time `json:"end" db:"end_date"`

	CheckedIn         bool `json:"checked_in" db:"checked_in"`
	RemainingKeycards int  `json:"remaining_keycards" db:"remaining_keycards"`
	ReplacedKeycards  int  `json:"replaced_keycards" db:"replaced_keycards"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewStay reserves [start, end) on the room and returns the stay. If the
// range collides with an existing reservation the room is left untouched
// and ErrRoomUnavailable is returned.
func NewStay(room *Room, start, end time.Time) (*Stay, error) {
	if !room.Available(start, end) {
		return nil, fmt.Errorf("room %d from %s to %s: %w",
			room.RoomNumber, start.Format(time.DateOnly), end.Format(time.DateOnly), ErrRoomUnavailable)
	}

	room.Reserve(start, end)

	return &Stay{
		ID:                uuid.New(),
		Room:              room,
		Start:             start,
		End:               end,
		RemainingKeycards: DefaultKeycards,
	}, nil
}

// IsCheckedIn reports whether the guest is currently checked in
func (s *Stay) IsCheckedIn() bool {
	return s.CheckedIn
}

// CheckIn marks the stay as checked in and moves its start to now,
// re-keying the reserved interval. Returns false if already checked in.
func (s *Stay) CheckIn(now time.Time) bool {
	if s.CheckedIn {
		return false
	}

	// Re-key the interval under the actual arrival time. The end is kept,
	// so availability for later dates is unaffected. If the interval is
	// unexpectedly absent the dates are left alone rather than reserving a
	// phantom range.
	end := s.Reserved()
	if err := s.Room.Release(s.Start); err == nil {
		s.Start = now
		s.Room.Reserve(s.Start, end)
	}

	s.CheckedIn = true
	s.UpdatedAt = now
	return true
}

// CheckOut marks the stay as checked out and moves its end to now.
// Returns false if the guest is not checked in.
func (s *Stay) CheckOut(now time.Time) bool {
	if !s.CheckedIn {
		return false
	}

	if err := s.Room.Release(s.Start); err == nil {
		s.End = now
		s.Room.Reserve(s.Start, s.End)
	}

	s.CheckedIn = false
	s.UpdatedAt = now
	return true
}

// Reserved returns the end of the interval this stay holds on its room
func (s *Stay) Reserved() time.Time {
	return s.Room.Reserved[s.Start]
}

// SetStart moves the stay's start date. The current interval is released
// before validation so the stay cannot collide with itself; on collision
// the old interval is restored and ErrRoomUnavailable is returned.
func (s *Stay) SetStart(start time.Time) error {
	return s.Relocate(s.Room, start, s.End)
}

// SetEnd moves the stay's end date
func (s *Stay) SetEnd(end time.Time) error {
	return s.Relocate(s.Room, s.Start, end)
}

// SetRoom moves the stay onto another room, releasing the interval on the
// old room and reserving it on the new one
func (s *Stay) SetRoom(room *Room) error {
	return s.Relocate(room, s.Start, s.End)
}

// Relocate moves the stay to a new room and/or date range in one step
func (s *Stay) Relocate(room *Room, start, end time.Time) error {
	oldRoom, oldStart, oldEnd := s.Room, s.Start, s.Reserved()

	oldRoom.Release(oldStart)

	if !room.Available(start, end) {
		oldRoom.Reserve(oldStart, oldEnd)
		return fmt.Errorf("room %d from %s to %s: %w",
			room.RoomNumber, start.Format(time.DateOnly), end.Format(time.DateOnly), ErrRoomUnavailable)
	}

	room.Reserve(start, end)
	s.Room = room
	s.Start = start
	s.End = end
	return nil
}

// ReleaseInterval removes the stay's reservation from its room. Called on
// cancellation, after which the stay must not be used.
func (s *Stay) ReleaseInterval() error {
	return s.Room.Release(s.Start)
}

// IssueKeycard prints one of the stay's standard keycards. Returns false
// with no side effect once the standard allotment is used up.
func (s *Stay) IssueKeycard(printer KeycardPrinter) (bool, error) {
	if s.RemainingKeycards <= 0 {
		return false, nil
	}

	if err := printer.PrintKeycard(s.Room.RoomNumber); err != nil {
		return false, fmt.Errorf("failed to print keycard: %w", err)
	}

	s.RemainingKeycards--
	return true, nil
}

// ReplaceKeycard prints a replacement keycard. Replacements are not capped
// by the standard allotment.
func (s *Stay) ReplaceKeycard(printer KeycardPrinter) error {
	if err := printer.PrintKeycard(s.Room.RoomNumber); err != nil {
		return fmt.Errorf("failed to print replacement keycard: %w", err)
	}

	s.ReplacedKeycards++
	return nil
}

// Nights returns the length of the stay in whole calendar days, ignoring
// the time of day on either side
func (s *Stay) Nights() int {
	sy, sm, sd := s.Start.Date()
	ey, em, ed := s.End.Date()
	start := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
	end := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}

// TotalCharge returns the room charge for the full stay
func (s *Stay) TotalCharge() float64 {
	return s.Room.Price(s.Nights())
}
