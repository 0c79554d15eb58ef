package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harborview/hotel-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePayrollStores struct {
	savedShifts    int
	savedEmployees int
}

func (f *fakePayrollStores) SaveShift(shift *models.Shift) error {
	f.savedShifts++
	return nil
}

func (f *fakePayrollStores) SaveEmployee(employee *models.Employee) error {
	f.savedEmployees++
	return nil
}

func at(day, hour int) time.Time {
	return time.Date(2026, time.March, day, hour, 0, 0, 0, time.UTC)
}

func newTestPayroll(t *testing.T) (*PayrollService, *models.Employee, *fakePayrollStores) {
	t.Helper()

	stores := &fakePayrollStores{}
	payroll := NewPayrollService(stores, stores, nil)

	employee := models.NewEmployee("dana reyes", "dreyes@harborview.test", 20.0, at(1, 0))
	payroll.RegisterEmployee(employee)

	return payroll, employee, stores
}

func TestScheduleShift(t *testing.T) {
	payroll, employee, stores := newTestPayroll(t)

	shift, err := payroll.ScheduleShift(employee.ID, at(2, 9), at(2, 17))
	require.NoError(t, err)

	assert.Equal(t, employee.ID, shift.EmployeeID)
	assert.Equal(t, shift, employee.Schedule.Shift(shift.ID))
	assert.Equal(t, 1, stores.savedShifts)
}

func TestScheduleShift_UnknownEmployee(t *testing.T) {
	payroll, _, _ := newTestPayroll(t)

	_, err := payroll.ScheduleShift(uuid.New(), at(2, 9), at(2, 17))
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestClockInOut_AccruesHours(t *testing.T) {
	payroll, employee, _ := newTestPayroll(t)

	shift, err := payroll.ScheduleShift(employee.ID, at(2, 9), at(2, 17))
	require.NoError(t, err)

	payroll.SetClock(func() time.Time { return at(2, 9) })
	ok, err := payroll.ClockIn(employee.ID, shift.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// Second clock-in is a no-op
	ok, err = payroll.ClockIn(employee.ID, shift.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	payroll.SetClock(func() time.Time { return at(2, 17) })
	ok, err = payroll.ClockOut(employee.ID, shift.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, 8.0, employee.UnpaidHours)
	assert.Equal(t, 0.0, employee.UnpaidOvertime)
}

func TestClockOut_SplitsOvertime(t *testing.T) {
	payroll, employee, _ := newTestPayroll(t)

	shift, err := payroll.ScheduleShift(employee.ID, at(2, 9), at(2, 17))
	require.NoError(t, err)

	payroll.SetClock(func() time.Time { return at(2, 9) })
	_, err = payroll.ClockIn(employee.ID, shift.ID)
	require.NoError(t, err)

	// Worked 11 hours against an 8 hour standard
	payroll.SetClock(func() time.Time { return at(2, 20) })
	ok, err := payroll.ClockOut(employee.ID, shift.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, 8.0, employee.UnpaidHours)
	assert.Equal(t, 3.0, employee.UnpaidOvertime)
}

func TestClockOut_NotClockedIn(t *testing.T) {
	payroll, employee, _ := newTestPayroll(t)

	shift, err := payroll.ScheduleShift(employee.ID, at(2, 9), at(2, 17))
	require.NoError(t, err)

	ok, err := payroll.ClockOut(employee.ID, shift.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0.0, employee.UnpaidHours)
}

func TestClockIn_UnknownShift(t *testing.T) {
	payroll, employee, _ := newTestPayroll(t)

	_, err := payroll.ClockIn(employee.ID, uuid.New())
	assert.ErrorIs(t, err, ErrShiftNotFound)
}

func TestPayout(t *testing.T) {
	payroll, employee, stores := newTestPayroll(t)

	employee.AddHours(8.0, 3.0)

	pay, err := payroll.Payout(employee.ID)
	require.NoError(t, err)

	assert.Equal(t, 8.0*20.0+3.0*20.0*1.5, pay)
	assert.Equal(t, 0.0, employee.UnpaidHours)
	assert.Equal(t, 0.0, employee.UnpaidOvertime)
	assert.Equal(t, 1, stores.savedEmployees)

	// A second payout pays nothing
	pay, err = payroll.Payout(employee.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, pay)
}
