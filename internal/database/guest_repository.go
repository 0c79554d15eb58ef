package database

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/harborview/hotel-backend/internal/models"
)

// GuestRepository handles database operations for guests and their accounts
type GuestRepository struct {
	db DB
}

// NewGuestRepository creates a new GuestRepository
func NewGuestRepository(db DB) *GuestRepository {
	return &GuestRepository{db: db}
}

// Create inserts a guest together with their account
func (r *GuestRepository) Create(guest *models.Guest) error {
	query := `
		INSERT INTO guests (id, name, email, joined, ended)
		VALUES ($1, $2, $3, $4, $5)
	`

	if guest.ID == uuid.Nil {
		guest.ID = uuid.New()
	}

	if _, err := r.db.Exec(query, guest.ID, guest.Name, guest.Email, guest.Joined, guest.Ended); err != nil {
		return fmt.Errorf("failed to create guest: %w", err)
	}

	accountQuery := `
		INSERT INTO accounts (id, guest_id, total_due, credits)
		VALUES ($1, $2, $3, $4)
	`
	account := guest.Account
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	account.GuestID = guest.ID

	if _, err := r.db.Exec(accountQuery, account.ID, account.GuestID, account.TotalDue, account.Credits); err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// GetByID retrieves a guest with their account. Stays are loaded
// separately by the stay repository.
func (r *GuestRepository) GetByID(guestID uuid.UUID) (*models.Guest, error) {
	query := `
		SELECT id, name, email, joined, ended
		FROM guests
		WHERE id = $1
	`

	guest := &models.Guest{Stays: make(map[uuid.UUID]*models.Stay)}
	err := r.db.QueryRow(query, guestID).Scan(
		&guest.ID, &guest.Name, &guest.Email, &guest.Joined, &guest.Ended,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get guest: %w", err)
	}

	account, err := r.getAccount(guestID)
	if err != nil {
		return nil, err
	}
	guest.Account = account

	return guest, nil
}

// GetByEmail retrieves a guest by email
func (r *GuestRepository) GetByEmail(email string) (*models.Guest, error) {
	query := `
		SELECT id, name, email, joined, ended
		FROM guests
		WHERE email = $1
	`

	guest := &models.Guest{Stays: make(map[uuid.UUID]*models.Stay)}
	err := r.db.QueryRow(query, email).Scan(
		&guest.ID, &guest.Name, &guest.Email, &guest.Joined, &guest.Ended,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get guest: %w", err)
	}

	account, err := r.getAccount(guest.ID)
	if err != nil {
		return nil, err
	}
	guest.Account = account

	return guest, nil
}

// List retrieves all guests with their accounts
func (r *GuestRepository) List() ([]*models.Guest, error) {
	query := `
		SELECT id, name, email, joined, ended
		FROM guests
		ORDER BY joined
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list guests: %w", err)
	}
	defer rows.Close()

	var guests []*models.Guest
	for rows.Next() {
		guest := &models.Guest{Stays: make(map[uuid.UUID]*models.Stay)}
		if err := rows.Scan(&guest.ID, &guest.Name, &guest.Email, &guest.Joined, &guest.Ended); err != nil {
			return nil, fmt.Errorf("failed to scan guest: %w", err)
		}
		guests = append(guests, guest)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, guest := range guests {
		account, err := r.getAccount(guest.ID)
		if err != nil {
			return nil, err
		}
		guest.Account = account
	}

	return guests, nil
}

// SaveAccount upserts a guest's ledger state
func (r *GuestRepository) SaveAccount(account *models.Account) error {
	query := `
		INSERT INTO accounts (id, guest_id, total_due, credits)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET total_due = $3, credits = $4, updated_at = NOW()
	`

	_, err := r.db.Exec(query, account.ID, account.GuestID, account.TotalDue, account.Credits)
	if err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}

	return nil
}

func (r *GuestRepository) getAccount(guestID uuid.UUID) (*models.Account, error) {
	query := `
		SELECT id, guest_id, total_due, credits, created_at, updated_at
		FROM accounts
		WHERE guest_id = $1
	`

	account := &models.Account{}
	err := r.db.QueryRow(query, guestID).Scan(
		&account.ID, &account.GuestID, &account.TotalDue, &account.Credits,
		&account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return account, nil
}
