package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harborview/hotel-backend/internal/database"
	"github.com/harborview/hotel-backend/internal/models"
	"github.com/harborview/hotel-backend/pkg/jwt"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler handles staff login and token issuance
type AuthHandler struct {
	staffRepo  *database.StaffRepository
	guestRepo  *database.GuestRepository
	jwtService *jwt.Service
	logger     *logrus.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(staffRepo *database.StaffRepository, guestRepo *database.GuestRepository, jwtService *jwt.Service, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		staffRepo:  staffRepo,
		guestRepo:  guestRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// StaffLogin authenticates an employee with email and password and returns
// a token pair
func (h *AuthHandler) StaffLogin(c *gin.Context) {
	var req models.StaffLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	creds, err := h.staffRepo.GetCredentialsByEmail(req.Email)
	if err != nil {
		h.logger.WithField("email", req.Email).Warn("Login attempt for unknown staff email")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(req.Password)); err != nil {
		h.logger.WithField("email", req.Email).Warn("Login attempt with wrong password")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	roles := []string{string(models.RoleEmployee)}
	if creds.IsManager {
		roles = append(roles, string(models.RoleManager))
	}

	accessToken, err := h.jwtService.GenerateAccessToken(creds.EmployeeID, creds.Email, roles)
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate access token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	refreshToken, err := h.jwtService.GenerateRefreshToken(creds.EmployeeID, creds.Email)
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate refresh token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	h.logger.WithFields(logrus.Fields{
		"employee_id": creds.EmployeeID,
		"email":       creds.Email,
	}).Info("Staff logged in")

	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"roles":         roles,
	})
}

// RefreshToken exchanges a refresh token for a fresh access token
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	creds, err := h.staffRepo.GetCredentialsByEmail(claims.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account no longer active"})
		return
	}

	roles := []string{string(models.RoleEmployee)}
	if creds.IsManager {
		roles = append(roles, string(models.RoleManager))
	}

	accessToken, err := h.jwtService.GenerateAccessToken(creds.EmployeeID, creds.Email, roles)
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate access token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": accessToken})
}

// IssueGuestToken lets front-desk staff issue a portal token for a guest.
// Guests do not hold passwords; staff vouch for them at the desk.
func (h *AuthHandler) IssueGuestToken(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	guest, err := h.guestRepo.GetByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Guest not found"})
		return
	}

	accessToken, err := h.jwtService.GenerateAccessToken(guest.ID, guest.Email, []string{string(models.RoleGuest)})
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate guest token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	h.logger.WithFields(logrus.Fields{
		"guest_id": guest.ID,
		"email":    guest.Email,
	}).Info("Guest portal token issued")

	c.JSON(http.StatusOK, gin.H{"access_token": accessToken, "guest_id": guest.ID})
}
