package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/harborview/hotel-backend/internal/middleware"
	"github.com/harborview/hotel-backend/internal/models"
	"github.com/harborview/hotel-backend/internal/services"
	"github.com/harborview/hotel-backend/internal/utils"
	"github.com/sirupsen/logrus"
)

// BookingHandler handles guest-facing stay operations
type BookingHandler struct {
	reservations *services.ReservationService
	printer      models.KeycardPrinter
	logger       *logrus.Logger
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(reservations *services.ReservationService, printer models.KeycardPrinter, logger *logrus.Logger) *BookingHandler {
	return &BookingHandler{
		reservations: reservations,
		printer:      printer,
		logger:       logger,
	}
}

// BookStay books a stay for the authenticated guest
func (h *BookingHandler) BookStay(c *gin.Context) {
	user, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.BookStayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stay, err := h.reservations.BookStay(user.UserID, req.RoomNumber, req.Start, req.End)
	if err != nil {
		h.respondError(c, err)
		return
	}

	device := utils.ParseUserAgent(c.Request.UserAgent())
	h.logger.WithFields(logrus.Fields{
		"guest_id":    user.UserID,
		"stay_id":     stay.ID,
		"room":        req.RoomNumber,
		"device_type": device.DeviceType,
		"device_os":   device.OS,
		"ip":          c.ClientIP(),
	}).Info("Booking created")

	c.JSON(http.StatusCreated, gin.H{
		"stay":   stay,
		"charge": stay.TotalCharge(),
	})
}

// CancelStay cancels one of the guest's stays
func (h *BookingHandler) CancelStay(c *gin.Context) {
	user, stayID, ok := h.stayParams(c)
	if !ok {
		return
	}

	if err := h.reservations.CancelStay(user.UserID, stayID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Stay cancelled"})
}

// AlterStay changes the dates and/or room of one of the guest's stays
func (h *BookingHandler) AlterStay(c *gin.Context) {
	user, stayID, ok := h.stayParams(c)
	if !ok {
		return
	}

	var req models.AlterStayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stay, err := h.reservations.AlterStay(user.UserID, stayID, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stay":   stay,
		"charge": stay.TotalCharge(),
	})
}

// CheckIn checks the guest in on a stay
func (h *BookingHandler) CheckIn(c *gin.Context) {
	user, stayID, ok := h.stayParams(c)
	if !ok {
		return
	}

	checkedIn, err := h.reservations.CheckIn(user.UserID, stayID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if !checkedIn {
		c.JSON(http.StatusOK, gin.H{"checked_in": false, "message": "Already checked in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"checked_in": true})
}

// CheckOut checks the guest out of a stay
func (h *BookingHandler) CheckOut(c *gin.Context) {
	user, stayID, ok := h.stayParams(c)
	if !ok {
		return
	}

	checkedOut, err := h.reservations.CheckOut(user.UserID, stayID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if !checkedOut {
		c.JSON(http.StatusOK, gin.H{"checked_out": false, "message": "Not checked in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"checked_out": true})
}

// IssueKeycard prints a standard keycard for a stay
func (h *BookingHandler) IssueKeycard(c *gin.Context) {
	user, stayID, ok := h.stayParams(c)
	if !ok {
		return
	}

	issued, err := h.reservations.IssueKeycard(user.UserID, stayID, h.printer)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if !issued {
		c.JSON(http.StatusOK, gin.H{"issued": false, "message": "No standard keycards remaining"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"issued": true})
}

// ReplaceKeycard prints a replacement keycard for a stay
func (h *BookingHandler) ReplaceKeycard(c *gin.Context) {
	user, stayID, ok := h.stayParams(c)
	if !ok {
		return
	}

	if err := h.reservations.ReplaceKeycard(user.UserID, stayID, h.printer); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"issued": true})
}

// GetAccount returns the guest's ledger and stays
func (h *BookingHandler) GetAccount(c *gin.Context) {
	user, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, stays, err := h.reservations.GuestLedger(user.UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"account":     account,
		"payment_due": account.PaymentDue(),
		"stays":       stays,
	})
}

// RecordPayment applies a payment to the guest's account
func (h *BookingHandler) RecordPayment(c *gin.Context) {
	user, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.reservations.RecordPayment(user.UserID, req.Amount, req.CreditsUsed)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"account":     account,
		"payment_due": account.PaymentDue(),
	})
}

// stayParams extracts the authenticated user and the stay ID path parameter
func (h *BookingHandler) stayParams(c *gin.Context) (*middleware.UserContext, uuid.UUID, bool) {
	user, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, uuid.Nil, false
	}

	stayID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stay ID"})
		return nil, uuid.Nil, false
	}

	return user, stayID, true
}

// respondError maps engine errors onto HTTP statuses
func (h *BookingHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrRoomUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrRoomNotFound),
		errors.Is(err, services.ErrGuestNotFound),
		errors.Is(err, services.ErrStayNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.WithError(err).Error("Booking operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
