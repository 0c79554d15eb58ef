package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role identifies what kind of person a record represents
type Role string

const (
	RoleGuest    Role = "guest"
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
)

// Person holds the identity fields shared by guests and staff
type Person struct {
	ID     uuid.UUID  `json:"id" db:"id"`
	Name   string     `json:"name" db:"name"`
	Email  string     `json:"email" db:"email"`
	Joined time.Time  `json:"joined" db:"joined"`
	Ended  *time.Time `json:"ended,omitempty" db:"ended"`
}

// NewPerson creates a person joined as of the given date
func NewPerson(name, email string, joined time.Time) Person {
	return Person{
		ID:     uuid.New(),
		Name:   titleCase(name),
		Email:  email,
		Joined: joined,
	}
}

// titleCase capitalizes each word of a name
func titleCase(name string) string {
	words := strings.Fields(strings.ToLower(name))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// IsCurrent reports whether the person is still active as of now
func (p *Person) IsCurrent(now time.Time) bool {
	if p.Ended == nil {
		return true
	}
	return !now.After(*p.Ended)
}

// Guest is a hotel guest with a ledger and a set of stays
type Guest struct {
	Person

	Account *Account `json:"account"`
	// Stays holds the guest's current stays keyed by stay ID.
	Stays map[uuid.UUID]*Stay `json:"stays"`
}

// NewGuest creates a guest with a fresh account and no stays
func NewGuest(name, email string, joined time.Time) *Guest {
	g := &Guest{
		Person: NewPerson(name, email, joined),
		Stays:  make(map[uuid.UUID]*Stay),
	}
	g.Account = NewAccount()
	g.Account.GuestID = g.ID
	return g
}

// AddStay attaches a stay to the guest
func (g *Guest) AddStay(stay *Stay) {
	stay.GuestID = g.ID
	g.Stays[stay.ID] = stay
}

// RemoveStay detaches the stay with the given ID, returning it, or nil if
// the guest has no such stay
func (g *Guest) RemoveStay(stayID uuid.UUID) *Stay {
	stay, ok := g.Stays[stayID]
	if !ok {
		return nil
	}
	delete(g.Stays, stayID)
	return stay
}

// Stay returns the guest's stay with the given ID, or nil
func (g *Guest) Stay(stayID uuid.UUID) *Stay {
	return g.Stays[stayID]
}

// IsCheckedIn reports whether the guest is checked in on any stay
func (g *Guest) IsCheckedIn() bool {
	for _, stay := range g.Stays {
		if stay.IsCheckedIn() {
			return true
		}
	}
	return false
}

// Employee is a staff member paid by the hour
type Employee struct {
	Person

	PayRate        float64   `json:"pay_rate" db:"pay_rate"`
	UnpaidHours    float64   `json:"unpaid_hours" db:"unpaid_hours"`
	UnpaidOvertime float64   `json:"unpaid_overtime" db:"unpaid_overtime"`
	Schedule       *Schedule `json:"schedule,omitempty"`
}

// NewEmployee creates an employee with an empty schedule
func NewEmployee(name, email string, payRate float64, joined time.Time) *Employee {
	return &Employee{
		Person:   NewPerson(name, email, joined),
		PayRate:  payRate,
		Schedule: NewSchedule(),
	}
}

// AddHours accrues worked hours, with overtime tracked separately
func (e *Employee) AddHours(hours, overtime float64) {
	e.UnpaidHours += hours
	e.UnpaidOvertime += overtime
}

// ResetHours clears the accrued hours after a payout
func (e *Employee) ResetHours() {
	e.UnpaidHours = 0
	e.UnpaidOvertime = 0
}

// TotalPay returns the pay owed for the accrued hours. Overtime is paid at
// time and a half.
func (e *Employee) TotalPay() float64 {
	return e.UnpaidHours*e.PayRate + e.UnpaidOvertime*e.PayRate*1.5
}

// Manager is an employee with a roster of direct reports
type Manager struct {
	Employee

	Reports []*Employee `json:"reports"`
}

// NewManager creates a manager with an empty roster
func NewManager(name, email string, payRate float64, joined time.Time) *Manager {
	return &Manager{Employee: *NewEmployee(name, email, payRate, joined)}
}

// AddReport adds an employee to the manager's roster
func (m *Manager) AddReport(e *Employee) {
	m.Reports = append(m.Reports, e)
}

// RemoveReport removes the employee with the given ID from the roster,
// returning it, or nil if absent
func (m *Manager) RemoveReport(employeeID uuid.UUID) *Employee {
	for i, e := range m.Reports {
		if e.ID == employeeID {
			m.Reports = append(m.Reports[:i], m.Reports[i+1:]...)
			return e
		}
	}
	return nil
}
