package models

import (
	"time"

	"github.com/google/uuid"
)

// Account is a guest's ledger: the amount currently owed and any unused
// refund value held as credit. Amount validation belongs to the HTTP
// layer, not here.
type Account struct {
	ID      uuid.UUID `json:"id" db:"id"`
	GuestID uuid.UUID `json:"guest_id" db:"guest_id"`

	// TotalDue may go negative, representing value owed to the guest.
	TotalDue float64 `json:"total_due" db:"total_due"`
	// Credits is unused refunded value, never negative.
	Credits float64 `json:"credits" db:"credits"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewAccount creates an empty ledger
func NewAccount() *Account {
	return &Account{ID: uuid.New()}
}

// Charge adds amount to the balance due. Negative amounts act as credits;
// the settlement flows rely on that.
func (a *Account) Charge(amount float64) {
	a.TotalDue += amount
}

// Credit adds amount to the stored credit balance
func (a *Account) Credit(amount float64) {
	a.Credits += amount
}

// Pay records a payment, optionally spending stored credit alongside it
func (a *Account) Pay(payment, creditsUsed float64) {
	a.TotalDue -= payment + creditsUsed
	a.Credits -= creditsUsed
}

// ApplyCredits settles the stored credit against the balance due. If the
// credit exceeds the balance, the excess remains as credit and the balance
// clamps to zero.
func (a *Account) ApplyCredits() {
	a.TotalDue -= a.Credits

	if a.TotalDue < 0 {
		a.Credits = -a.TotalDue
		a.TotalDue = 0
	} else {
		a.Credits = 0
	}
}

// PaymentDue reports whether the guest owes anything
func (a *Account) PaymentDue() bool {
	return a.TotalDue > 0
}
