package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shiftTime(day, hour int) time.Time {
	return time.Date(2026, time.March, day, hour, 0, 0, 0, time.UTC)
}

func TestShiftClockInOut(t *testing.T) {
	shift := NewShift(shiftTime(2, 9), shiftTime(2, 17))

	assert.Equal(t, 8.0, shift.HoursScheduled())
	assert.Equal(t, 0.0, shift.HoursWorked())

	require.True(t, shift.ClockIn(shiftTime(2, 9)))
	assert.False(t, shift.ClockIn(shiftTime(2, 10)))
	assert.True(t, shift.ClockedIn)

	require.True(t, shift.ClockOut(shiftTime(2, 17)))
	assert.False(t, shift.ClockOut(shiftTime(2, 18)))
	assert.Equal(t, 8.0, shift.HoursWorked())
}

func TestShiftClockOut_NeverClockedIn(t *testing.T) {
	shift := NewShift(shiftTime(2, 9), shiftTime(2, 17))

	assert.False(t, shift.ClockOut(shiftTime(2, 17)))
	assert.Equal(t, 0.0, shift.HoursWorked())
}

func TestScheduleAddRemove(t *testing.T) {
	schedule := NewSchedule()
	shift := NewShift(shiftTime(2, 9), shiftTime(2, 17))

	schedule.AddShift(shift)
	assert.Equal(t, shift, schedule.Shift(shift.ID))

	removed := schedule.RemoveShift(shift.ID)
	assert.Equal(t, shift, removed)
	assert.Nil(t, schedule.Shift(shift.ID))
	assert.Nil(t, schedule.RemoveShift(uuid.New()))
}

func TestScheduleCurrentShift(t *testing.T) {
	schedule := NewSchedule()
	monday := NewShift(shiftTime(2, 9), shiftTime(2, 17))
	tuesday := NewShift(shiftTime(3, 9), shiftTime(3, 17))
	schedule.AddShift(monday)
	schedule.AddShift(tuesday)

	assert.Equal(t, monday, schedule.CurrentShift(shiftTime(2, 12)))
	assert.Equal(t, tuesday, schedule.CurrentShift(shiftTime(3, 8)))
	assert.Nil(t, schedule.CurrentShift(shiftTime(4, 12)))
}

func TestScheduleTotals(t *testing.T) {
	schedule := NewSchedule()
	first := NewShift(shiftTime(2, 9), shiftTime(2, 17))
	second := NewShift(shiftTime(3, 9), shiftTime(3, 13))
	schedule.AddShift(first)
	schedule.AddShift(second)

	assert.Equal(t, 12.0, schedule.HoursScheduled())

	first.ClockIn(shiftTime(2, 9))
	first.ClockOut(shiftTime(2, 17))
	assert.Equal(t, 8.0, schedule.HoursWorked())

	second.ClockIn(shiftTime(3, 9))
	assert.True(t, schedule.IsClockedIn())

	schedule.Reset()
	assert.Empty(t, schedule.Shifts)
	assert.False(t, schedule.IsClockedIn())
}

func TestEmployeePay(t *testing.T) {
	employee := NewEmployee("dana reyes", "dreyes@harborview.test", 20.0, shiftTime(1, 0))

	assert.Equal(t, "Dana Reyes", employee.Name)

	employee.AddHours(8.0, 2.0)
	assert.Equal(t, 8.0*20.0+2.0*20.0*1.5, employee.TotalPay())

	employee.ResetHours()
	assert.Equal(t, 0.0, employee.TotalPay())
}

func TestPersonIsCurrent(t *testing.T) {
	person := NewPerson("sam ortiz", "sortiz@harborview.test", shiftTime(1, 0))

	assert.True(t, person.IsCurrent(shiftTime(15, 0)))

	ended := shiftTime(10, 0)
	person.Ended = &ended
	assert.True(t, person.IsCurrent(shiftTime(10, 0)))
	assert.False(t, person.IsCurrent(shiftTime(11, 0)))
}

func TestManagerReports(t *testing.T) {
	manager := NewManager("lee chan", "lchan@harborview.test", 32.0, shiftTime(1, 0))
	employee := NewEmployee("dana reyes", "dreyes@harborview.test", 20.0, shiftTime(1, 0))

	manager.AddReport(employee)
	assert.Len(t, manager.Reports, 1)

	removed := manager.RemoveReport(employee.ID)
	assert.Equal(t, employee, removed)
	assert.Empty(t, manager.Reports)
	assert.Nil(t, manager.RemoveReport(employee.ID))
}

func TestGuestStays(t *testing.T) {
	guest := NewGuest("ana silva", "asilva@harborview.test", shiftTime(1, 0))
	room := NewRoom(101, "double", 150.0)
	stay, err := NewStay(room, date(10), date(14))
	require.NoError(t, err)

	guest.AddStay(stay)
	assert.Equal(t, guest.ID, stay.GuestID)
	assert.Equal(t, stay, guest.Stay(stay.ID))
	assert.False(t, guest.IsCheckedIn())

	stay.CheckIn(date(10))
	assert.True(t, guest.IsCheckedIn())

	removed := guest.RemoveStay(stay.ID)
	assert.Equal(t, stay, removed)
	assert.Nil(t, guest.Stay(stay.ID))
}
