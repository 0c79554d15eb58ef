package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harborview/hotel-backend/internal/models"
	"github.com/harborview/hotel-backend/internal/services"
	"github.com/sirupsen/logrus"
)

// RateStore persists room rate changes
type RateStore interface {
	UpdateRate(roomNumber int, rate float64) error
}

// RoomHandler handles room inventory queries and rate management
type RoomHandler struct {
	reservations *services.ReservationService
	rates        RateStore
	logger       *logrus.Logger
}

// NewRoomHandler creates a new RoomHandler. The rate store may be nil when
// running without a database.
func NewRoomHandler(reservations *services.ReservationService, rates RateStore, logger *logrus.Logger) *RoomHandler {
	return &RoomHandler{
		reservations: reservations,
		rates:        rates,
		logger:       logger,
	}
}

// ListRooms returns the full room inventory
func (h *RoomHandler) ListRooms(c *gin.Context) {
	rooms := h.reservations.Rooms()
	c.JSON(http.StatusOK, gin.H{
		"rooms": rooms,
		"count": len(rooms),
	})
}

// GetRoom returns a single room
func (h *RoomHandler) GetRoom(c *gin.Context) {
	number, ok := h.roomNumber(c)
	if !ok {
		return
	}

	room, err := h.reservations.Room(number)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"room": room})
}

// CheckAvailability reports whether a room is free for a date range.
// Query params: start, end (RFC 3339). Omitting end probes a single instant.
func (h *RoomHandler) CheckAvailability(c *gin.Context) {
	number, ok := h.roomNumber(c)
	if !ok {
		return
	}

	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing start parameter, expected RFC 3339"})
		return
	}

	var end time.Time
	if raw := c.Query("end"); raw != "" {
		end, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end parameter, expected RFC 3339"})
			return
		}
		if !end.After(start) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end must be after start"})
			return
		}
	}

	available, err := h.reservations.Availability(number, start, end)
	if err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.WithError(err).Error("Availability check failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"room_number": number,
		"available":   available,
	})
}

// UpdateRate changes a room's nightly rate. Existing stays keep pricing
// against the room, so charges computed after the change use the new rate.
func (h *RoomHandler) UpdateRate(c *gin.Context) {
	number, ok := h.roomNumber(c)
	if !ok {
		return
	}

	var req models.UpdateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.reservations.Room(number)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	room.Rate = req.Rate
	if h.rates != nil {
		if err := h.rates.UpdateRate(number, req.Rate); err != nil {
			h.logger.WithError(err).WithField("room", number).Warn("Failed to persist rate change")
		}
	}

	h.logger.WithFields(logrus.Fields{
		"room": number,
		"rate": req.Rate,
	}).Info("Room rate updated")

	c.JSON(http.StatusOK, gin.H{"room": room})
}

func (h *RoomHandler) roomNumber(c *gin.Context) (int, bool) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room number"})
		return 0, false
	}
	return number, true
}
