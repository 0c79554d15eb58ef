package database

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/harborview/hotel-backend/internal/models"
)

// StayRepository handles database operations for stays
type StayRepository struct {
	db DB
}

// NewStayRepository creates a new StayRepository
func NewStayRepository(db DB) *StayRepository {
	return &StayRepository{db: db}
}

// SaveStay upserts a stay record
func (r *StayRepository) SaveStay(stay *models.Stay) error {
	query := `
		INSERT INTO stays (
			id, guest_id, room_number, start_date, end_date,
			checked_in, remaining_keycards, replaced_keycards
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE
		SET room_number = $3, start_date = $4, end_date = $5,
			checked_in = $6, remaining_keycards = $7, replaced_keycards = $8,
			updated_at = NOW()
	`

	if stay.ID == uuid.Nil {
		stay.ID = uuid.New()
	}

	_, err := r.db.Exec(
		query,
		stay.ID, stay.GuestID, stay.Room.RoomNumber, stay.Start, stay.End,
		stay.CheckedIn, stay.RemainingKeycards, stay.ReplacedKeycards,
	)
	if err != nil {
		return fmt.Errorf("failed to save stay: %w", err)
	}

	return nil
}

// DeleteStay removes a stay record
func (r *StayRepository) DeleteStay(stayID uuid.UUID) error {
	_, err := r.db.Exec(`DELETE FROM stays WHERE id = $1`, stayID)
	if err != nil {
		return fmt.Errorf("failed to delete stay: %w", err)
	}
	return nil
}

// StayRecord is the flat DB shape of a stay; the room reference is resolved by
// the caller
type StayRecord struct {
	Stay       *models.Stay
	RoomNumber int
}

// GetByGuestID retrieves all stays for a guest, with the room numbers they
// reference
func (r *StayRepository) GetByGuestID(guestID uuid.UUID) ([]StayRecord, error) {
	query := `
		SELECT id, guest_id, room_number, start_date, end_date,
			   checked_in, remaining_keycards, replaced_keycards,
			   created_at, updated_at
		FROM stays
		WHERE guest_id = $1
		ORDER BY start_date
	`

	rows, err := r.db.Query(query, guestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stays: %w", err)
	}
	defer rows.Close()

	var result []StayRecord
	for rows.Next() {
		stay := &models.Stay{}
		var roomNumber int
		if err := rows.Scan(
			&stay.ID, &stay.GuestID, &roomNumber, &stay.Start, &stay.End,
			&stay.CheckedIn, &stay.RemainingKeycards, &stay.ReplacedKeycards,
			&stay.CreatedAt, &stay.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan stay: %w", err)
		}
		result = append(result, StayRecord{Stay: stay, RoomNumber: roomNumber})
	}

	return result, rows.Err()
}
