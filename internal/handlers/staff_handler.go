package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/harborview/hotel-backend/internal/middleware"
	"github.com/harborview/hotel-backend/internal/models"
	"github.com/harborview/hotel-backend/internal/services"
	"github.com/sirupsen/logrus"
)

// StaffHandler handles shift scheduling and payroll for employees
type StaffHandler struct {
	payroll *services.PayrollService
	logger  *logrus.Logger
}

// NewStaffHandler creates a new StaffHandler
func NewStaffHandler(payroll *services.PayrollService, logger *logrus.Logger) *StaffHandler {
	return &StaffHandler{
		payroll: payroll,
		logger:  logger,
	}
}

// GetSchedule returns the authenticated employee's schedule and accrued hours
func (h *StaffHandler) GetSchedule(c *gin.Context) {
	user, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	employee, err := h.payroll.Employee(user.UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shifts":          employee.Schedule.Shifts,
		"hours_scheduled": employee.Schedule.HoursScheduled(),
		"hours_worked":    employee.Schedule.HoursWorked(),
		"unpaid_hours":    employee.UnpaidHours,
		"unpaid_overtime": employee.UnpaidOvertime,
	})
}

// CreateOwnShift schedules a shift for the authenticated employee
func (h *StaffHandler) CreateOwnShift(c *gin.Context) {
	user, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	h.createShift(c, user.UserID)
}

// CreateShift schedules a shift for an employee. Managers schedule for
// anyone; the employee ID comes from the path.
func (h *StaffHandler) CreateShift(c *gin.Context) {
	employeeID, ok := h.employeeParam(c)
	if !ok {
		return
	}
	h.createShift(c, employeeID)
}

func (h *StaffHandler) createShift(c *gin.Context, employeeID uuid.UUID) {
	var req models.CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shift, err := h.payroll.ScheduleShift(employeeID, req.Start, req.End)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"shift": shift})
}

// ClockIn clocks the authenticated employee in on a shift
func (h *StaffHandler) ClockIn(c *gin.Context) {
	user, shiftID, ok := h.shiftParams(c)
	if !ok {
		return
	}

	clockedIn, err := h.payroll.ClockIn(user.UserID, shiftID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if !clockedIn {
		c.JSON(http.StatusOK, gin.H{"clocked_in": false, "message": "Already clocked in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"clocked_in": true})
}

// ClockOut clocks the authenticated employee out of a shift
func (h *StaffHandler) ClockOut(c *gin.Context) {
	user, shiftID, ok := h.shiftParams(c)
	if !ok {
		return
	}

	clockedOut, err := h.payroll.ClockOut(user.UserID, shiftID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if !clockedOut {
		c.JSON(http.StatusOK, gin.H{"clocked_out": false, "message": "Not clocked in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"clocked_out": true})
}

// GetOwnPayroll returns the pay currently owed to the authenticated employee
func (h *StaffHandler) GetOwnPayroll(c *gin.Context) {
	user, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	h.payrollSummary(c, user.UserID)
}

// GetPayroll returns the pay currently owed to an employee
func (h *StaffHandler) GetPayroll(c *gin.Context) {
	employeeID, ok := h.employeeParam(c)
	if !ok {
		return
	}
	h.payrollSummary(c, employeeID)
}

func (h *StaffHandler) payrollSummary(c *gin.Context, employeeID uuid.UUID) {
	employee, err := h.payroll.Employee(employeeID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"employee_id":     employee.ID,
		"pay_rate":        employee.PayRate,
		"unpaid_hours":    employee.UnpaidHours,
		"unpaid_overtime": employee.UnpaidOvertime,
		"total_pay":       employee.TotalPay(),
	})
}

// PayoutOwn settles the authenticated employee's accrued hours
func (h *StaffHandler) PayoutOwn(c *gin.Context) {
	user, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	h.payout(c, user.UserID)
}

// Payout pays out an employee's accrued hours and resets the balance
func (h *StaffHandler) Payout(c *gin.Context) {
	employeeID, ok := h.employeeParam(c)
	if !ok {
		return
	}
	h.payout(c, employeeID)
}

func (h *StaffHandler) payout(c *gin.Context, employeeID uuid.UUID) {
	pay, err := h.payroll.Payout(employeeID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"employee_id": employeeID,
		"paid":        pay,
	})
}

func (h *StaffHandler) employeeParam(c *gin.Context) (uuid.UUID, bool) {
	employeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid employee ID"})
		return uuid.Nil, false
	}
	return employeeID, true
}

func (h *StaffHandler) shiftParams(c *gin.Context) (*middleware.UserContext, uuid.UUID, bool) {
	user, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, uuid.Nil, false
	}

	shiftID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shift ID"})
		return nil, uuid.Nil, false
	}

	return user, shiftID, true
}

func (h *StaffHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmployeeNotFound),
		errors.Is(err, services.ErrShiftNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.WithError(err).Error("Staff operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
