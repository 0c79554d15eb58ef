package models

import (
	"time"

	"github.com/google/uuid"
)

// Shift is one scheduled block of work with actual clock times recorded
// alongside the scheduled ones
type Shift struct {
	ID         uuid.UUID `json:"id" db:"id"`
	EmployeeID uuid.UUID `json:"employee_id" db:"employee_id"`

	Start time.Time `json:"start" db:"start_time"`
	End   time.Time `json:"end" db:"end_time"`

	ActualStart *time.Time `json:"actual_start,omitempty" db:"actual_start"`
	ActualEnd   *time.Time `json:"actual_end,omitempty" db:"actual_end"`
	ClockedIn   bool       `json:"clocked_in" db:"clocked_in"`
}

// NewShift schedules a shift from start to end
func NewShift(start, end time.Time) *Shift {
	return &Shift{
		ID:    uuid.New(),
		Start: start,
		End:   end,
	}
}

// ClockIn records the actual start of the shift. Returns false if already
// clocked in.
func (s *Shift) ClockIn(now time.Time) bool {
	if s.ClockedIn {
		return false
	}

	s.ClockedIn = true
	s.ActualStart = &now
	return true
}

// ClockOut records the actual end of the shift. Returns false if not
// clocked in.
func (s *Shift) ClockOut(now time.Time) bool {
	if !s.ClockedIn {
		return false
	}

	s.ClockedIn = false
	s.ActualEnd = &now
	return true
}

// HoursScheduled returns the length of the scheduled block in hours
func (s *Shift) HoursScheduled() float64 {
	return s.End.Sub(s.Start).Hours()
}

// HoursWorked returns the hours between the actual clock times, or 0 if the
// shift has not been fully worked
func (s *Shift) HoursWorked() float64 {
	if s.ActualStart == nil || s.ActualEnd == nil {
		return 0
	}
	return s.ActualEnd.Sub(*s.ActualStart).Hours()
}

// Schedule is an employee's collection of shifts
type Schedule struct {
	Shifts []*Shift `json:"shifts"`
}

// NewSchedule creates an empty schedule
func NewSchedule() *Schedule {
	return &Schedule{}
}

// AddShift appends a shift to the schedule
func (sc *Schedule) AddShift(shift *Shift) {
	sc.Shifts = append(sc.Shifts, shift)
}

// RemoveShift removes the shift with the given ID, returning it, or nil if
// absent
func (sc *Schedule) RemoveShift(shiftID uuid.UUID) *Shift {
	for i, s := range sc.Shifts {
		if s.ID == shiftID {
			sc.Shifts = append(sc.Shifts[:i], sc.Shifts[i+1:]...)
			return s
		}
	}
	return nil
}

// Shift returns the shift with the given ID, or nil
func (sc *Schedule) Shift(shiftID uuid.UUID) *Shift {
	for _, s := range sc.Shifts {
		if s.ID == shiftID {
			return s
		}
	}
	return nil
}

// CurrentShift returns the shift scheduled to start on the given day, or nil
func (sc *Schedule) CurrentShift(now time.Time) *Shift {
	y, m, d := now.Date()
	for _, s := range sc.Shifts {
		sy, sm, sd := s.Start.Date()
		if sy == y && sm == m && sd == d {
			return s
		}
	}
	return nil
}

// HoursScheduled sums the scheduled hours across all shifts
func (sc *Schedule) HoursScheduled() float64 {
	var total float64
	for _, s := range sc.Shifts {
		total += s.HoursScheduled()
	}
	return total
}

// HoursWorked sums the worked hours across all shifts
func (sc *Schedule) HoursWorked() float64 {
	var total float64
	for _, s := range sc.Shifts {
		total += s.HoursWorked()
	}
	return total
}

// IsClockedIn reports whether any shift is currently clocked in
func (sc *Schedule) IsClockedIn() bool {
	for _, s := range sc.Shifts {
		if s.ClockedIn {
			return true
		}
	}
	return false
}

// Reset discards all shifts
func (sc *Schedule) Reset() {
	sc.Shifts = nil
}
