package services

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harborview/hotel-backend/internal/models"
	"github.com/sirupsen/logrus"
)

var (
	// ErrRoomNotFound is returned when a room number is not in the inventory
	ErrRoomNotFound = errors.New("room not found")
	// ErrGuestNotFound is returned when a guest ID is unknown
	ErrGuestNotFound = errors.New("guest not found")
	// ErrStayNotFound is returned when a stay does not exist or does not
	// belong to the guest
	ErrStayNotFound = errors.New("stay not found")
)

// StayStore persists stay mutations
type StayStore interface {
	SaveStay(stay *models.Stay) error
	DeleteStay(stayID uuid.UUID) error
}

// AccountStore persists ledger mutations
type AccountStore interface {
	SaveAccount(account *models.Account) error
}

// RoomStore persists room reservation-set mutations
type RoomStore interface {
	SaveRoomIntervals(room *models.Room) error
}

// ReservationService is the guest-facing booking engine. It keeps room
// inventory and guest state in memory, serializes the availability
// check-then-reserve sequence per room, and writes every completed mutation
// through to the stores.
type ReservationService struct {
	mu     sync.RWMutex
	rooms  map[int]*models.Room
	guests map[uuid.UUID]*models.Guest

	// roomLocks serializes booking transactions per room so two concurrent
	// bookings cannot both pass the availability check.
	roomLocks map[int]*sync.Mutex
	// guestLocks serializes mutations of one guest's stays and ledger,
	// which the room locks alone do not cover when the rooms differ.
	guestLocks map[uuid.UUID]*sync.Mutex

	stayStore    StayStore
	accountStore AccountStore
	roomStore    RoomStore

	nowFn  func() time.Time
	logger *logrus.Logger
}

// NewReservationService creates the engine. Stores may be nil in tests.
func NewReservationService(stayStore StayStore, accountStore AccountStore, roomStore RoomStore, logger *logrus.Logger) *ReservationService {
	if logger == nil {
		logger = logrus.New()
	}
	return &ReservationService{
		rooms:        make(map[int]*models.Room),
		guests:       make(map[uuid.UUID]*models.Guest),
		roomLocks:    make(map[int]*sync.Mutex),
		guestLocks:   make(map[uuid.UUID]*sync.Mutex),
		stayStore:    stayStore,
		accountStore: accountStore,
		roomStore:    roomStore,
		nowFn:        time.Now,
		logger:       logger,
	}
}

// SetClock overrides the engine's clock. Used by tests.
func (s *ReservationService) SetClock(nowFn func() time.Time) {
	s.nowFn = nowFn
}

// AddRoom registers a room in the inventory
func (s *ReservationService) AddRoom(room *models.Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[room.RoomNumber] = room
	s.roomLocks[room.RoomNumber] = &sync.Mutex{}
}

// RegisterGuest registers a guest with the engine
func (s *ReservationService) RegisterGuest(guest *models.Guest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guests[guest.ID] = guest
	s.guestLocks[guest.ID] = &sync.Mutex{}
}

// Room returns the room with the given number
func (s *ReservationService) Room(number int) (*models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[number]
	if !ok {
		return nil, fmt.Errorf("room %d: %w", number, ErrRoomNotFound)
	}
	return room, nil
}

// Rooms returns the full inventory sorted by room number
func (s *ReservationService) Rooms() []*models.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rooms := make([]*models.Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		rooms = append(rooms, room)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].RoomNumber < rooms[j].RoomNumber })
	return rooms
}

// Guest returns the guest with the given ID
func (s *ReservationService) Guest(guestID uuid.UUID) (*models.Guest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	guest, ok := s.guests[guestID]
	if !ok {
		return nil, fmt.Errorf("guest %s: %w", guestID, ErrGuestNotFound)
	}
	return guest, nil
}

// GuestLedger returns a consistent snapshot of the guest's account and
// stays, safe to serialize while other requests mutate the guest
func (s *ReservationService) GuestLedger(guestID uuid.UUID) (models.Account, []models.Stay, error) {
	guest, err := s.Guest(guestID)
	if err != nil {
		return models.Account{}, nil, err
	}

	unlockGuest := s.lockGuest(guestID)
	defer unlockGuest()

	account := *guest.Account
	stays := make([]models.Stay, 0, len(guest.Stays))
	for _, stay := range guest.Stays {
		stays = append(stays, *stay)
	}
	sort.Slice(stays, func(i, j int) bool { return stays[i].Start.Before(stays[j].Start) })

	return account, stays, nil
}

// guestStay resolves a stay that must belong to the guest
func (s *ReservationService) guestStay(guestID, stayID uuid.UUID) (*models.Guest, *models.Stay, error) {
	guest, err := s.Guest(guestID)
	if err != nil {
		return nil, nil, err
	}
	stay := guest.Stay(stayID)
	if stay == nil {
		return nil, nil, fmt.Errorf("stay %s: %w", stayID, ErrStayNotFound)
	}
	return guest, stay, nil
}

// lockGuest acquires the guest's mutation lock and returns the unlock
// function. Always taken before any room lock.
func (s *ReservationService) lockGuest(guestID uuid.UUID) func() {
	s.mu.RLock()
	l, ok := s.guestLocks[guestID]
	s.mu.RUnlock()
	if !ok {
		return func() {}
	}
	l.Lock()
	return l.Unlock
}

// lockRooms acquires the booking locks for the given rooms in a stable
// order and returns the matching unlock function
func (s *ReservationService) lockRooms(numbers ...int) func() {
	s.mu.RLock()
	locks := make([]*sync.Mutex, 0, len(numbers))
	seen := make(map[int]bool, len(numbers))
	sort.Ints(numbers)
	for _, n := range numbers {
		if seen[n] {
			continue
		}
		seen[n] = true
		if l, ok := s.roomLocks[n]; ok {
			locks = append(locks, l)
		}
	}
	s.mu.RUnlock()

	for _, l := range locks {
		l.Lock()
	}
	return func() {
		for i := len(locks) - 1; i >= 0; i-- {
			locks[i].Unlock()
		}
	}
}

// Availability reports whether a room is free for [start, end)
func (s *ReservationService) Availability(roomNumber int, start, end time.Time) (bool, error) {
	room, err := s.Room(roomNumber)
	if err != nil {
		return false, err
	}

	unlock := s.lockRooms(roomNumber)
	defer unlock()

	return room.Available(start, end), nil
}

// BookStay reserves the room for [start, end), attaches the stay to the
// guest, and charges the guest's account. On an availability collision
// nothing changes and models.ErrRoomUnavailable is returned.
func (s *ReservationService) BookStay(guestID uuid.UUID, roomNumber int, start, end time.Time) (*models.Stay, error) {
	guest, err := s.Guest(guestID)
	if err != nil {
		return nil, err
	}
	room, err := s.Room(roomNumber)
	if err != nil {
		return nil, err
	}

	unlockGuest := s.lockGuest(guestID)
	defer unlockGuest()
	unlock := s.lockRooms(roomNumber)
	defer unlock()

	stay, err := models.NewStay(room, start, end)
	if err != nil {
		return nil, err
	}
	stay.CreatedAt = s.nowFn()
	stay.UpdatedAt = stay.CreatedAt

	guest.AddStay(stay)
	guest.Account.Charge(stay.TotalCharge())

	s.logger.WithFields(logrus.Fields{
		"guest_id": guestID,
		"stay_id":  stay.ID,
		"room":     roomNumber,
		"charge":   stay.TotalCharge(),
	}).Info("Stay booked")

	s.persistStay(stay)
	s.persistAccount(guest.Account)
	s.persistRoom(room)

	return stay, nil
}

// CancelStay releases the stay's interval, reverses its charge via a
// credit, settles the ledger, and removes the stay from the guest
func (s *ReservationService) CancelStay(guestID, stayID uuid.UUID) error {
	unlockGuest := s.lockGuest(guestID)
	defer unlockGuest()

	guest, stay, err := s.guestStay(guestID, stayID)
	if err != nil {
		return err
	}

	unlock := s.lockRooms(stay.Room.RoomNumber)
	defer unlock()

	guest.Account.Credit(stay.TotalCharge())
	guest.Account.ApplyCredits()

	if err := stay.ReleaseInterval(); err != nil {
		return fmt.Errorf("failed to release interval: %w", err)
	}
	guest.RemoveStay(stayID)

	s.logger.WithFields(logrus.Fields{
		"guest_id": guestID,
		"stay_id":  stayID,
		"room":     stay.Room.RoomNumber,
	}).Info("Stay cancelled")

	s.deleteStay(stayID)
	s.persistAccount(guest.Account)
	s.persistRoom(stay.Room)

	return nil
}

// AlterStay moves a stay to new dates and/or a new room. The old charge is
// provisionally credited, the stay is relocated, the new charge is applied,
// and the ledger settles. If the new placement collides, the provisional
// credit is reversed and the guest's due, credit, and all room state are
// exactly as before the call.
func (s *ReservationService) AlterStay(guestID, stayID uuid.UUID, req *models.AlterStayRequest) (*models.Stay, error) {
	unlockGuest := s.lockGuest(guestID)
	defer unlockGuest()

	guest, stay, err := s.guestStay(guestID, stayID)
	if err != nil {
		return nil, err
	}

	oldRoom := stay.Room
	newRoom := oldRoom
	if req.RoomNumber != nil {
		newRoom, err = s.Room(*req.RoomNumber)
		if err != nil {
			return nil, err
		}
	}

	newStart := stay.Start
	newEnd := stay.End
	if req.Start != nil {
		newStart = *req.Start
	}
	if req.End != nil {
		newEnd = *req.End
	}

	unlock := s.lockRooms(oldRoom.RoomNumber, newRoom.RoomNumber)
	defer unlock()

	oldCharge := stay.TotalCharge()
	guest.Account.Credit(oldCharge)

	if err := stay.Relocate(newRoom, newStart, newEnd); err != nil {
		// Compensate: take back the provisional credit so the ledger is
		// exactly as it was before the call.
		guest.Account.Credit(-oldCharge)
		return nil, err
	}

	guest.Account.Charge(stay.TotalCharge())
	guest.Account.ApplyCredits()
	stay.UpdatedAt = s.nowFn()

	s.logger.WithFields(logrus.Fields{
		"guest_id":   guestID,
		"stay_id":    stayID,
		"room":       stay.Room.RoomNumber,
		"old_charge": oldCharge,
		"new_charge": stay.TotalCharge(),
	}).Info("Stay altered")

	s.persistStay(stay)
	s.persistAccount(guest.Account)
	s.persistRoom(oldRoom)
	if newRoom != oldRoom {
		s.persistRoom(newRoom)
	}

	return stay, nil
}

// CheckIn checks the guest in on the stay. A second check-in is a no-op
// reported as false, not an error.
func (s *ReservationService) CheckIn(guestID, stayID uuid.UUID) (bool, error) {
	unlockGuest := s.lockGuest(guestID)
	defer unlockGuest()

	_, stay, err := s.guestStay(guestID, stayID)
	if err != nil {
		return false, err
	}

	unlock := s.lockRooms(stay.Room.RoomNumber)
	defer unlock()

	ok := stay.CheckIn(s.nowFn())
	if ok {
		s.persistStay(stay)
		s.persistRoom(stay.Room)
	}
	return ok, nil
}

// CheckOut checks the guest out of the stay. Checking out while not
// checked in is reported as false.
func (s *ReservationService) CheckOut(guestID, stayID uuid.UUID) (bool, error) {
	unlockGuest := s.lockGuest(guestID)
	defer unlockGuest()

	_, stay, err := s.guestStay(guestID, stayID)
	if err != nil {
		return false, err
	}

	unlock := s.lockRooms(stay.Room.RoomNumber)
	defer unlock()

	ok := stay.CheckOut(s.nowFn())
	if ok {
		s.persistStay(stay)
		s.persistRoom(stay.Room)
	}
	return ok, nil
}

// IssueKeycard prints a standard keycard for the stay. Returns false once
// the standard allotment is used up; printer failures are returned as
// errors.
func (s *ReservationService) IssueKeycard(guestID, stayID uuid.UUID, printer models.KeycardPrinter) (bool, error) {
	unlockGuest := s.lockGuest(guestID)
	defer unlockGuest()

	_, stay, err := s.guestStay(guestID, stayID)
	if err != nil {
		return false, err
	}

	ok, err := stay.IssueKeycard(printer)
	if err != nil {
		return false, err
	}
	if ok {
		s.persistStay(stay)
	}
	return ok, nil
}

// ReplaceKeycard prints a replacement keycard for the stay
func (s *ReservationService) ReplaceKeycard(guestID, stayID uuid.UUID, printer models.KeycardPrinter) error {
	unlockGuest := s.lockGuest(guestID)
	defer unlockGuest()

	_, stay, err := s.guestStay(guestID, stayID)
	if err != nil {
		return err
	}

	if err := stay.ReplaceKeycard(printer); err != nil {
		return err
	}
	s.persistStay(stay)
	return nil
}

// RecordPayment applies a payment (optionally spending stored credit) to
// the guest's account and returns the settled ledger state
func (s *ReservationService) RecordPayment(guestID uuid.UUID, amount, creditsUsed float64) (models.Account, error) {
	guest, err := s.Guest(guestID)
	if err != nil {
		return models.Account{}, err
	}

	unlockGuest := s.lockGuest(guestID)
	defer unlockGuest()

	guest.Account.Pay(amount, creditsUsed)

	s.logger.WithFields(logrus.Fields{
		"guest_id":     guestID,
		"amount":       amount,
		"credits_used": creditsUsed,
		"total_due":    guest.Account.TotalDue,
	}).Info("Payment recorded")

	s.persistAccount(guest.Account)
	return *guest.Account, nil
}

// Write-through helpers. Persistence failures are logged, not propagated:
// the in-memory engine is the source of truth for the transaction and the
// stores catch up on the next mutation.

func (s *ReservationService) persistStay(stay *models.Stay) {
	if s.stayStore == nil {
		return
	}
	if err := s.stayStore.SaveStay(stay); err != nil {
		s.logger.WithError(err).WithField("stay_id", stay.ID).Warn("Failed to persist stay")
	}
}

func (s *ReservationService) deleteStay(stayID uuid.UUID) {
	if s.stayStore == nil {
		return
	}
	if err := s.stayStore.DeleteStay(stayID); err != nil {
		s.logger.WithError(err).WithField("stay_id", stayID).Warn("Failed to delete stay")
	}
}

func (s *ReservationService) persistAccount(account *models.Account) {
	if s.accountStore == nil {
		return
	}
	if err := s.accountStore.SaveAccount(account); err != nil {
		s.logger.WithError(err).WithField("account_id", account.ID).Warn("Failed to persist account")
	}
}

func (s *ReservationService) persistRoom(room *models.Room) {
	if s.roomStore == nil {
		return
	}
	if err := s.roomStore.SaveRoomIntervals(room); err != nil {
		s.logger.WithError(err).WithField("room", room.RoomNumber).Warn("Failed to persist room intervals")
	}
}
