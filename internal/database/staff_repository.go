package database

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/harborview/hotel-backend/internal/models"
)

// StaffRepository handles database operations for employees, their
// credentials, and their shifts
type StaffRepository struct {
	db DB
}

// NewStaffRepository creates a new StaffRepository
func NewStaffRepository(db DB) *StaffRepository {
	return &StaffRepository{db: db}
}

// StaffCredentials carries what the login flow needs
type StaffCredentials struct {
	EmployeeID   uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	IsManager    bool      `db:"is_manager"`
}

// Create inserts an employee with their login credentials
func (r *StaffRepository) Create(employee *models.Employee, passwordHash string, isManager bool) error {
	query := `
		INSERT INTO employees (
			id, name, email, joined, ended,
			pay_rate, unpaid_hours, unpaid_overtime,
			password_hash, is_manager
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	if employee.ID == uuid.Nil {
		employee.ID = uuid.New()
	}

	_, err := r.db.Exec(
		query,
		employee.ID, employee.Name, employee.Email, employee.Joined, employee.Ended,
		employee.PayRate, employee.UnpaidHours, employee.UnpaidOvertime,
		passwordHash, isManager,
	)
	if err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}

	return nil
}

// GetCredentialsByEmail retrieves the login credentials for an employee
func (r *StaffRepository) GetCredentialsByEmail(email string) (*StaffCredentials, error) {
	query := `
		SELECT id, email, password_hash, is_manager
		FROM employees
		WHERE email = $1 AND ended IS NULL
	`

	creds := &StaffCredentials{}
	err := r.db.QueryRow(query, email).Scan(
		&creds.EmployeeID, &creds.Email, &creds.PasswordHash, &creds.IsManager,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get staff credentials: %w", err)
	}

	return creds, nil
}

// List retrieves all employees with their schedules
func (r *StaffRepository) List() ([]*models.Employee, error) {
	query := `
		SELECT id, name, email, joined, ended,
			   pay_rate, unpaid_hours, unpaid_overtime
		FROM employees
		ORDER BY joined
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []*models.Employee
	for rows.Next() {
		e := &models.Employee{Schedule: models.NewSchedule()}
		if err := rows.Scan(
			&e.ID, &e.Name, &e.Email, &e.Joined, &e.Ended,
			&e.PayRate, &e.UnpaidHours, &e.UnpaidOvertime,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, e := range employees {
		if err := r.loadShifts(e); err != nil {
			return nil, err
		}
	}

	return employees, nil
}

// SaveEmployee updates an employee's payroll balances
func (r *StaffRepository) SaveEmployee(employee *models.Employee) error {
	query := `
		UPDATE employees
		SET pay_rate = $2, unpaid_hours = $3, unpaid_overtime = $4, updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.db.Exec(query, employee.ID, employee.PayRate, employee.UnpaidHours, employee.UnpaidOvertime)
	if err != nil {
		return fmt.Errorf("failed to save employee: %w", err)
	}

	return nil
}

// SaveShift upserts a shift record
func (r *StaffRepository) SaveShift(shift *models.Shift) error {
	query := `
		INSERT INTO shifts (
			id, employee_id, start_time, end_time,
			actual_start, actual_end, clocked_in
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET start_time = $3, end_time = $4,
			actual_start = $5, actual_end = $6, clocked_in = $7
	`

	_, err := r.db.Exec(
		query,
		shift.ID, shift.EmployeeID, shift.Start, shift.End,
		shift.ActualStart, shift.ActualEnd, shift.ClockedIn,
	)
	if err != nil {
		return fmt.Errorf("failed to save shift: %w", err)
	}

	return nil
}

func (r *StaffRepository) loadShifts(employee *models.Employee) error {
	query := `
		SELECT id, employee_id, start_time, end_time,
			   actual_start, actual_end, clocked_in
		FROM shifts
		WHERE employee_id = $1
		ORDER BY start_time
	`

	rows, err := r.db.Query(query, employee.ID)
	if err != nil {
		return fmt.Errorf("failed to load shifts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		shift := &models.Shift{}
		if err := rows.Scan(
			&shift.ID, &shift.EmployeeID, &shift.Start, &shift.End,
			&shift.ActualStart, &shift.ActualEnd, &shift.ClockedIn,
		); err != nil {
			return fmt.Errorf("failed to scan shift: %w", err)
		}
		employee.Schedule.AddShift(shift)
	}

	return rows.Err()
}
