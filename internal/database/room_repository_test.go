package database

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/harborview/hotel-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRoomRepository(&mockDatabase{db: db})
	room := models.NewRoom(101, "double", 150.0)

	now := time.Now()
	mock.ExpectQuery("INSERT INTO rooms").
		WithArgs(101, "double", 150.0).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	require.NoError(t, repo.Create(room))
	assert.Equal(t, now, room.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRepository_GetByNumber(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRoomRepository(&mockDatabase{db: db})

	now := time.Now()
	start := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM rooms").
		WithArgs(101).
		WillReturnRows(sqlmock.NewRows([]string{"room_number", "room_type", "rate", "created_at", "updated_at"}).
			AddRow(101, "double", 150.0, now, now))

	mock.ExpectQuery("SELECT (.+) FROM room_reservations").
		WithArgs(101).
		WillReturnRows(sqlmock.NewRows([]string{"start_date", "end_date"}).AddRow(start, end))

	room, err := repo.GetByNumber(101)
	require.NoError(t, err)

	assert.Equal(t, 101, room.RoomNumber)
	assert.Equal(t, 150.0, room.Rate)
	assert.Equal(t, end, room.Reserved[start])
	assert.False(t, room.Available(start, end))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRepository_UpdateRate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRoomRepository(&mockDatabase{db: db})

	mock.ExpectExec("UPDATE rooms").
		WithArgs(101, 175.0).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateRate(101, 175.0))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRepository_UpdateRate_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRoomRepository(&mockDatabase{db: db})

	mock.ExpectExec("UPDATE rooms").
		WithArgs(999, 175.0).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateRate(999, 175.0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRoomRepository_SaveRoomIntervals(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRoomRepository(&mockDatabase{db: db})

	room := models.NewRoom(101, "double", 150.0)
	start := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)
	room.Reserve(start, end)

	mock.ExpectExec("DELETE FROM room_reservations").
		WithArgs(101).
		WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectExec("INSERT INTO room_reservations").
		WithArgs(101, start, end).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.SaveRoomIntervals(room))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// mockDatabase wraps a plain *sql.DB so sqlmock can drive the DB interface
type mockDatabase struct {
	db *sql.DB
}

func (m *mockDatabase) Get(dest interface{}, query string, args ...interface{}) error {
	return fmt.Errorf("Get not implemented in mock")
}

func (m *mockDatabase) Select(dest interface{}, query string, args ...interface{}) error {
	return fmt.Errorf("Select not implemented in mock")
}

func (m *mockDatabase) Exec(query string, args ...interface{}) (sql.Result, error) {
	return m.db.Exec(query, args...)
}

func (m *mockDatabase) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return m.db.Query(query, args...)
}

func (m *mockDatabase) QueryRow(query string, args ...interface{}) *sql.Row {
	return m.db.QueryRow(query, args...)
}

func (m *mockDatabase) Close() error {
	return m.db.Close()
}

func (m *mockDatabase) Ping() error {
	return m.db.Ping()
}
