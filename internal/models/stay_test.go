package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePrinter struct {
	printed []int
	err     error
}

func (p *fakePrinter) PrintKeycard(roomNumber int) error {
	if p.err != nil {
		return p.err
	}
	p.printed = append(p.printed, roomNumber)
	return nil
}

func TestNewStay(t *testing.T) {
	room := NewRoom(101, "double", 150.0)

	stay, err := NewStay(room, date(10), date(14))
	require.NoError(t, err)

	assert.Equal(t, room, stay.Room)
	assert.Equal(t, DefaultKeycards, stay.RemainingKeycards)
	assert.False(t, stay.CheckedIn)
	assert.Equal(t, date(14), room.Reserved[date(10)])
}

func TestNewStay_RoomUnavailable(t *testing.T) {
	room := NewRoom(101, "double", 150.0)
	_, err := NewStay(room, date(10), date(14))
	require.NoError(t, err)

	stay, err := NewStay(room, date(12), date(16))
	require.Error(t, err)
	assert.Nil(t, stay)
	assert.ErrorIs(t, err, ErrRoomUnavailable)

	// The failed booking leaves the room untouched
	assert.Len(t, room.Reserved, 1)
	assert.Equal(t, date(14), room.Reserved[date(10)])
}

func TestCheckIn(t *testing.T) {
	room := NewRoom(101, "double", 150.0)
	stay, err := NewStay(room, date(10), date(14))
	require.NoError(t, err)

	arrival := date(10).Add(15 * time.Hour)
	require.True(t, stay.CheckIn(arrival))

	assert.True(t, stay.IsCheckedIn())
	assert.Equal(t, arrival, stay.Start)
	// The interval is re-keyed under the arrival time with the end kept
	assert.Equal(t, date(14), room.Reserved[arrival])
	assert.Len(t, room.Reserved, 1)
}

func TestCheckIn_Twice(t *testing.T) {
	room := NewRoom(101, "double", 150.0)
	stay, err := NewStay(room, date(10), date(14))
	require.NoError(t, err)

	require.True(t, stay.CheckIn(date(10)))
	assert.False(t, stay.CheckIn(date(11)))
	assert.Equal(t, date(10), stay.Start)
}

func TestCheckOut(t *testing.T) {
	room := NewRoom(101, "double", 150.0)
	stay, err := NewStay(room, date(10), date(14))
	require.NoError(t, err)

	arrival := date(10).Add(15 * time.Hour)
	departure := date(13).Add(11 * time.Hour)
	require.True(t, stay.CheckIn(arrival))
	require.True(t, stay.CheckOut(departure))

	assert.False(t, stay.IsCheckedIn())
	assert.Equal(t, departure, stay.End)
	assert.Equal(t, departure, room.Reserved[arrival])
}

func TestCheckIn_MissingInterval(t *testing.T) {
	room := NewRoom(101, "double", 150.0)
	stay, err := NewStay(room, date(10), date(14))
	require.NoError(t, err)
	require.NoError(t, room.Release(date(10)))

	// Check-in still succeeds, but no phantom interval appears and the
	// dates are left alone
	assert.True(t, stay.CheckIn(date(10).Add(15*time.Hour)))
	assert.True(t, stay.IsCheckedIn())
	assert.Equal(t, date(10), stay.Start)
	assert.Empty(t, room.Reserved)
}

func TestCheckOut_MissingInterval(t *testing.T) {
	room := NewRoom(101, "double", 150.0)
	stay, err := NewStay(room, date(10), date(14))
	require.NoError(t, err)
	require.True(t, stay.CheckIn(date(10)))
	require.NoError(t, room.Release(date(10)))

	assert.True(t, stay.CheckOut(date(13)))
	assert.False(t, stay.IsCheckedIn())
	assert.Equal(t, date(14), stay.End)
	assert.Empty(t, room.Reserved)
}

func TestCheckOut_NotCheckedIn(t *testing.T) {
	room := NewRoom(101, "double", 150.0)
	stay, err := NewStay(room, date(10), date(14))
	require.NoError(t, err)

	assert.False(t, stay.CheckOut(date(13)))
	assert.Equal(t, date(14), stay.End)
}

func TestSetStart(t *testing.T) {
	room := NewRoom(101, "double", 150.0)
	stay, err := NewStay(room, date(10), date(14))
	require.NoError(t, err)

	require.NoError(t, stay.SetStart(date(11)))

	assert.Equal(t, date(11), stay.Start)
	assert.Equal(t, date(14), room.Reserved[date(11)])
	assert.Len(t, room.Reserved, 1)
}

func TestSetEnd_NoSelfCollision(t *testing.T) {
	room := NewRoom(101, "double", 150.0)
	stay, err := NewStay(room, date(10), date(14))
	require.NoError(t, err)

	// Extending over its own current range must not collide with itself
	require.NoError(t, stay.SetEnd(date(16)))

	assert.Equal(t, date(16), stay.End)
	assert.Equal(t, date(16), room.Reserved[date(10)])
}

func TestSetRoom(t *testing.T) {
	roomA := NewRoom(101, "double", 150.0)
	roomB := NewRoom(102, "suite", 250.0)
	stay, err := NewStay(roomA, date(10), date(14))
	require.NoError(t, err)

	require.NoError(t, stay.SetRoom(roomB))

	assert.Equal(t, roomB, stay.Room)
	assert.Empty(t, roomA.Reserved)
	assert.Equal(t, date(14), roomB.Reserved[date(10)])
}

func TestRelocate_CollisionRestoresOldInterval(t *testing.T) {
	roomA := NewRoom(101, "double", 150.0)
	roomB := NewRoom(102, "suite", 250.0)
	stay, err := NewStay(roomA, date(10), date(14))
	require.NoError(t, err)
	_, err = NewStay(roomB, date(12), date(16))
	require.NoError(t, err)

	err = stay.Relocate(roomB, date(11), date(15))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRoomUnavailable)

	// The stay keeps its old room and interval
	assert.Equal(t, roomA, stay.Room)
	assert.Equal(t, date(10), stay.Start)
	assert.Equal(t, date(14), stay.End)
	assert.Equal(t, date(14), roomA.Reserved[date(10)])
	assert.Len(t, roomB.Reserved, 1)
}

func TestIssueKeycard(t *testing.T) {
	room := NewRoom(101, "double", 150.0)
	stay, err := NewStay(room, date(10), date(14))
	require.NoError(t, err)

	printer := &fakePrinter{}

	for i := 0; i < DefaultKeycards; i++ {
		ok, err := stay.IssueKeycard(printer)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	// The standard allotment is used up
	ok, err := stay.IssueKeycard(printer)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, printer.printed, DefaultKeycards)
	assert.Equal(t, 0, stay.RemainingKeycards)
}

func TestIssueKeycard_PrinterFailure(t *testing.T) {
	room := NewRoom(101, "double", 150.0)
	stay, err := NewStay(room, date(10), date(14))
	require.NoError(t, err)

	printer := &fakePrinter{err: errors.New("out of card stock")}

	ok, err := stay.IssueKeycard(printer)
	require.Error(t, err)
	assert.False(t, ok)
	// Failed prints do not consume the allotment
	assert.Equal(t, DefaultKeycards, stay.RemainingKeycards)
}

func TestReplaceKeycard_NotCapped(t *testing.T) {
	room := NewRoom(101, "double", 150.0)
	stay, err := NewStay(room, date(10), date(14))
	require.NoError(t, err)
	stay.RemainingKeycards = 0

	printer := &fakePrinter{}

	for i := 0; i < 5; i++ {
		require.NoError(t, stay.ReplaceKeycard(printer))
	}

	assert.Equal(t, 5, stay.ReplacedKeycards)
	assert.Len(t, printer.printed, 5)
}

func TestNights(t *testing.T) {
	room := NewRoom(101, "double", 150.0)
	stay, err := NewStay(room, date(10), date(14))
	require.NoError(t, err)

	assert.Equal(t, 4, stay.Nights())

	// Time of day on either side is ignored
	stay.Start = date(10).Add(15 * time.Hour)
	stay.End = date(14).Add(11 * time.Hour)
	assert.Equal(t, 4, stay.Nights())
}

func TestNights_NonUTCZone(t *testing.T) {
	room := NewRoom(101, "double", 150.0)
	stay, err := NewStay(room, date(10), date(14))
	require.NoError(t, err)

	// Calendar dates in the timestamps' own zone decide the count, even
	// when the instants fall on different UTC days
	zone := time.FixedZone("UTC-5", -5*60*60)
	stay.Start = time.Date(2026, time.March, 10, 22, 0, 0, 0, zone)
	stay.End = time.Date(2026, time.March, 14, 9, 0, 0, 0, zone)

	assert.Equal(t, 4, stay.Nights())
}

func TestTotalCharge(t *testing.T) {
	room := NewRoom(101, "double", 150.0)
	stay, err := NewStay(room, date(10), date(14))
	require.NoError(t, err)

	assert.Equal(t, 600.0, stay.TotalCharge())
}
