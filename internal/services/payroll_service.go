package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harborview/hotel-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// ErrEmployeeNotFound is returned when an employee ID is unknown
var ErrEmployeeNotFound = errors.New("employee not found")

// ErrShiftNotFound is returned when a shift does not exist for the employee
var ErrShiftNotFound = errors.New("shift not found")

// ShiftStore persists shift mutations
type ShiftStore interface {
	SaveShift(shift *models.Shift) error
}

// EmployeeStore persists employee payroll mutations
type EmployeeStore interface {
	SaveEmployee(employee *models.Employee) error
}

// StandardShiftHours is the length of a shift beyond which worked time
// counts as overtime
const StandardShiftHours = 8.0

// PayrollService tracks staff shifts and the hours owed for them
type PayrollService struct {
	mu        sync.RWMutex
	employees map[uuid.UUID]*models.Employee

	shiftStore    ShiftStore
	employeeStore EmployeeStore

	nowFn  func() time.Time
	logger *logrus.Logger
}

// NewPayrollService creates the payroll tracker. Stores may be nil in tests.
func NewPayrollService(shiftStore ShiftStore, employeeStore EmployeeStore, logger *logrus.Logger) *PayrollService {
	if logger == nil {
		logger = logrus.New()
	}
	return &PayrollService{
		employees:     make(map[uuid.UUID]*models.Employee),
		shiftStore:    shiftStore,
		employeeStore: employeeStore,
		nowFn:         time.Now,
		logger:        logger,
	}
}

// SetClock overrides the service clock. Used by tests.
func (s *PayrollService) SetClock(nowFn func() time.Time) {
	s.nowFn = nowFn
}

// RegisterEmployee registers an employee with the tracker
func (s *PayrollService) RegisterEmployee(employee *models.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees[employee.ID] = employee
}

// Employee returns the employee with the given ID
func (s *PayrollService) Employee(employeeID uuid.UUID) (*models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	employee, ok := s.employees[employeeID]
	if !ok {
		return nil, fmt.Errorf("employee %s: %w", employeeID, ErrEmployeeNotFound)
	}
	return employee, nil
}

// ScheduleShift adds a shift to the employee's schedule
func (s *PayrollService) ScheduleShift(employeeID uuid.UUID, start, end time.Time) (*models.Shift, error) {
	employee, err := s.Employee(employeeID)
	if err != nil {
		return nil, err
	}

	shift := models.NewShift(start, end)
	shift.EmployeeID = employeeID
	employee.Schedule.AddShift(shift)

	s.persistShift(shift)
	return shift, nil
}

// ClockIn clocks the employee in on the shift. Returns false if the shift
// is already clocked in.
func (s *PayrollService) ClockIn(employeeID, shiftID uuid.UUID) (bool, error) {
	_, shift, err := s.employeeShift(employeeID, shiftID)
	if err != nil {
		return false, err
	}

	ok := shift.ClockIn(s.nowFn())
	if ok {
		s.persistShift(shift)
	}
	return ok, nil
}

// ClockOut clocks the employee out and accrues the worked hours onto the
// employee's unpaid balance, splitting off overtime beyond the standard
// shift length. Returns false if the shift is not clocked in.
func (s *PayrollService) ClockOut(employeeID, shiftID uuid.UUID) (bool, error) {
	employee, shift, err := s.employeeShift(employeeID, shiftID)
	if err != nil {
		return false, err
	}

	if !shift.ClockOut(s.nowFn()) {
		return false, nil
	}

	worked := shift.HoursWorked()
	overtime := 0.0
	if worked > StandardShiftHours {
		overtime = worked - StandardShiftHours
		worked = StandardShiftHours
	}
	employee.AddHours(worked, overtime)

	s.logger.WithFields(logrus.Fields{
		"employee_id": employeeID,
		"shift_id":    shiftID,
		"hours":       worked,
		"overtime":    overtime,
	}).Info("Shift completed")

	s.persistShift(shift)
	s.persistEmployee(employee)
	return true, nil
}

// Payout returns the pay owed to the employee and resets the accrued hours
func (s *PayrollService) Payout(employeeID uuid.UUID) (float64, error) {
	employee, err := s.Employee(employeeID)
	if err != nil {
		return 0, err
	}

	pay := employee.TotalPay()
	employee.ResetHours()

	s.logger.WithFields(logrus.Fields{
		"employee_id": employeeID,
		"pay":         pay,
	}).Info("Payroll paid out")

	s.persistEmployee(employee)
	return pay, nil
}

func (s *PayrollService) employeeShift(employeeID, shiftID uuid.UUID) (*models.Employee, *models.Shift, error) {
	employee, err := s.Employee(employeeID)
	if err != nil {
		return nil, nil, err
	}
	shift := employee.Schedule.Shift(shiftID)
	if shift == nil {
		return nil, nil, fmt.Errorf("shift %s: %w", shiftID, ErrShiftNotFound)
	}
	return employee, shift, nil
}

func (s *PayrollService) persistShift(shift *models.Shift) {
	if s.shiftStore == nil {
		return
	}
	if err := s.shiftStore.SaveShift(shift); err != nil {
		s.logger.WithError(err).WithField("shift_id", shift.ID).Warn("Failed to persist shift")
	}
}

func (s *PayrollService) persistEmployee(employee *models.Employee) {
	if s.employeeStore == nil {
		return
	}
	if err := s.employeeStore.SaveEmployee(employee); err != nil {
		s.logger.WithError(err).WithField("employee_id", employee.ID).Warn("Failed to persist employee")
	}
}
