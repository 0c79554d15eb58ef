package models

import (
	"errors"
	"time"
)

// BookStayRequest is the request to book a stay
type BookStayRequest struct {
	RoomNumber int       `json:"room_number" binding:"required"`
	Start      time.Time `json:"start" binding:"required"`
	End        time.Time `json:"end" binding:"required"`
}

// Validate validates the booking request
func (r *BookStayRequest) Validate() error {
	if !r.End.After(r.Start) {
		return errors.New("end must be after start")
	}
	return nil
}

// AlterStayRequest is the request to change an existing stay. Omitted
// fields keep their current values.
type AlterStayRequest struct {
	Start      *time.Time `json:"start,omitempty"`
	End        *time.Time `json:"end,omitempty"`
	RoomNumber *int       `json:"room_number,omitempty"`
}

// Validate validates the alteration request
func (r *AlterStayRequest) Validate() error {
	if r.Start == nil && r.End == nil && r.RoomNumber == nil {
		return errors.New("nothing to alter")
	}
	if r.Start != nil && r.End != nil && !r.End.After(*r.Start) {
		return errors.New("end must be after start")
	}
	return nil
}

// PaymentRequest records a payment against the guest's account
type PaymentRequest struct {
	Amount      float64 `json:"amount" binding:"required"`
	CreditsUsed float64 `json:"credits_used"`
}

// Validate validates the payment request. The ledger itself trusts its
// callers, so sign checks live here at the boundary.
func (r *PaymentRequest) Validate() error {
	if r.Amount < 0 {
		return errors.New("amount must not be negative")
	}
	if r.CreditsUsed < 0 {
		return errors.New("credits_used must not be negative")
	}
	return nil
}

// UpdateRateRequest changes a room's nightly rate
type UpdateRateRequest struct {
	Rate float64 `json:"rate" binding:"required"`
}

// Validate validates the rate update
func (r *UpdateRateRequest) Validate() error {
	if r.Rate < 0 {
		return errors.New("rate must not be negative")
	}
	return nil
}

// StaffLoginRequest authenticates a staff member
type StaffLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateShiftRequest schedules a shift for an employee
type CreateShiftRequest struct {
	Start time.Time `json:"start" binding:"required"`
	End   time.Time `json:"end" binding:"required"`
}

// Validate validates the shift request
func (r *CreateShiftRequest) Validate() error {
	if !r.End.After(r.Start) {
		return errors.New("end must be after start")
	}
	return nil
}
