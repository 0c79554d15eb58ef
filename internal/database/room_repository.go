package database

import (
	"fmt"
	"time"

	"github.com/harborview/hotel-backend/internal/models"
)

// RoomRepository handles database operations for rooms and their reserved
// intervals
type RoomRepository struct {
	db DB
}

// NewRoomRepository creates a new RoomRepository
func NewRoomRepository(db DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// Create inserts a room
func (r *RoomRepository) Create(room *models.Room) error {
	query := `
		INSERT INTO rooms (room_number, room_type, rate)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(query, room.RoomNumber, room.RoomType, room.Rate).
		Scan(&room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}

	return nil
}

// GetByNumber retrieves a room with its reserved intervals
func (r *RoomRepository) GetByNumber(roomNumber int) (*models.Room, error) {
	query := `
		SELECT room_number, room_type, rate, created_at, updated_at
		FROM rooms
		WHERE room_number = $1
	`

	room := &models.Room{Reserved: make(map[time.Time]time.Time)}
	err := r.db.QueryRow(query, roomNumber).Scan(
		&room.RoomNumber, &room.RoomType, &room.Rate,
		&room.CreatedAt, &room.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	if err := r.loadIntervals(room); err != nil {
		return nil, err
	}

	return room, nil
}

// List retrieves all rooms with their reserved intervals
func (r *RoomRepository) List() ([]*models.Room, error) {
	query := `
		SELECT room_number, room_type, rate, created_at, updated_at
		FROM rooms
		ORDER BY room_number
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*models.Room
	for rows.Next() {
		room := &models.Room{Reserved: make(map[time.Time]time.Time)}
		if err := rows.Scan(
			&room.RoomNumber, &room.RoomType, &room.Rate,
			&room.CreatedAt, &room.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, room := range rooms {
		if err := r.loadIntervals(room); err != nil {
			return nil, err
		}
	}

	return rooms, nil
}

// UpdateRate changes a room's nightly rate
func (r *RoomRepository) UpdateRate(roomNumber int, rate float64) error {
	query := `
		UPDATE rooms
		SET rate = $2, updated_at = NOW()
		WHERE room_number = $1
	`

	result, err := r.db.Exec(query, roomNumber, rate)
	if err != nil {
		return fmt.Errorf("failed to update rate: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("room not found")
	}

	return nil
}

// SaveRoomIntervals replaces the persisted reserved set of a room with its
// current in-memory state
func (r *RoomRepository) SaveRoomIntervals(room *models.Room) error {
	if _, err := r.db.Exec(`DELETE FROM room_reservations WHERE room_number = $1`, room.RoomNumber); err != nil {
		return fmt.Errorf("failed to clear room intervals: %w", err)
	}

	query := `
		INSERT INTO room_reservations (room_number, start_date, end_date)
		VALUES ($1, $2, $3)
	`
	for start, end := range room.Reserved {
		if _, err := r.db.Exec(query, room.RoomNumber, start, end); err != nil {
			return fmt.Errorf("failed to save room interval: %w", err)
		}
	}

	return nil
}

// loadIntervals populates a room's reserved set from the reservations table
func (r *RoomRepository) loadIntervals(room *models.Room) error {
	query := `
		SELECT start_date, end_date
		FROM room_reservations
		WHERE room_number = $1
		ORDER BY start_date
	`

	rows, err := r.db.Query(query, room.RoomNumber)
	if err != nil {
		return fmt.Errorf("failed to load room intervals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var start, end time.Time
		if err := rows.Scan(&start, &end); err != nil {
			return fmt.Errorf("failed to scan room interval: %w", err)
		}
		room.Reserved[start] = end
	}

	return rows.Err()
}
