package model_test

import (
	"roomify/internal/domains/booking/model"
	"roomify/shared/failure"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, 1, 1, hour, minute, 0, 0, time.UTC)
}

func approved(roomID string, start, end time.Time) model.Booking {
	return model.Booking{ID: roomID + start.String(), RoomID: roomID, Start: start, End: end, Status: model.StatusApproved}
}

func TestIsRoomAvailable(t *testing.T) {
	bookings := []model.Booking{
		approved("room-1", at(9, 0), at(10, 0)),
		approved("room-1", at(11, 0), at(12, 0)),
		approved("room-2", at(10, 0), at(11, 0)),
		{RoomID: "room-1", Start: at(10, 0), End: at(11, 0), Status: model.StatusPending},
		{RoomID: "room-1", Start: at(10, 0), End: at(11, 0), Status: model.StatusRejected},
		{RoomID: "room-1", Start: at(10, 0), End: at(11, 0), Status: model.StatusCancelled},
	}

	tests := []struct {
		name      string
		roomID    string
		start     time.Time
		end       time.Time
		available bool
	}{
		{name: "gap between approved bookings", roomID: "room-1", start: at(10, 0), end: at(11, 0), available: true},
		{name: "touching the end of a booking", roomID: "room-1", start: at(12, 0), end: at(13, 0), available: true},
		{name: "touching the start of a booking", roomID: "room-1", start: at(8, 0), end: at(9, 0), available: true},
		{name: "inside a booking", roomID: "room-1", start: at(9, 15), end: at(9, 45), available: false},
		{name: "covering a booking", roomID: "room-1", start: at(8, 0), end: at(13, 0), available: false},
		{name: "overlapping the start", roomID: "room-1", start: at(10, 30), end: at(11, 30), available: false},
		{name: "overlapping the end", roomID: "room-1", start: at(8, 30), end: at(9, 30), available: false},
		{name: "other room busy", roomID: "room-3", start: at(10, 0), end: at(11, 0), available: true},
		{name: "unknown room", roomID: "room-404", start: at(9, 0), end: at(12, 0), available: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.available, model.IsRoomAvailable(bookings, tt.roomID, tt.start, tt.end))
			assert.Equal(t, !tt.available, len(model.Conflicts(bookings, tt.roomID, tt.start, tt.end)) > 0)
		})
	}
}

func TestIsRoomAvailable_DisjointSweep(t *testing.T) {
	var bookings []model.Booking
	for h := 8; h < 18; h += 2 {
		bookings = append(bookings, approved("room-1", at(h, 0), at(h+1, 0)))
	}

	for h := 8; h < 18; h++ {
		for _, offset := range []int{0, 30} {
			start := at(h, offset)
			end := start.Add(30 * time.Minute)
			busy := h%2 == 0

			assert.Equal(t, !busy, model.IsRoomAvailable(bookings, "room-1", start, end), "slot %s", start.Format(time.Kitchen))
		}
	}
}

func TestBooking_StateMachine(t *testing.T) {
	now := at(9, 0)

	b := model.Booking{Status: model.StatusPending}
	require.NoError(t, b.Approve("fac1", now))
	assert.Equal(t, model.StatusApproved, b.Status)
	assert.Equal(t, "fac1", b.ApprovedBy)
	assert.Equal(t, now, *b.ApprovedAt)
	assert.True(t, failure.IsInvalidTransition(b.Reject("fac1", now)))

	require.NoError(t, b.RecordCheckIn("fac1", now))
	assert.True(t, failure.IsInvalidTransition(b.RecordCheckIn("fac1", now)))
	require.NoError(t, b.RecordCheckOut("user1", now))
	assert.True(t, failure.IsInvalidTransition(b.Cancel("user1", now)))

	r := model.Booking{Status: model.StatusPending}
	require.NoError(t, r.Reject("hod", now))
	assert.Equal(t, "hod", r.ApprovedBy)
	assert.True(t, failure.IsInvalidTransition(r.Cancel("user1", now)))
	assert.True(t, failure.IsInvalidTransition(r.RecordCheckIn("user1", now)))

	c := model.Booking{Status: model.StatusPending}
	require.NoError(t, c.Cancel("user1", now))
	assert.True(t, failure.IsInvalidTransition(c.Approve("fac1", now)))
	assert.True(t, failure.IsInvalidTransition(c.Cancel("user1", now)))
}

func TestBooking_Clone(t *testing.T) {
	now := at(9, 0)
	b := model.Booking{Status: model.StatusPending}
	require.NoError(t, b.Approve("fac1", now))
	require.NoError(t, b.RecordCheckIn("fac1", now))

	clone := b.Clone()
	clone.CheckIn.VerifiedBy = "someone"
	*clone.ApprovedAt = now.Add(time.Hour)

	assert.Equal(t, "fac1", b.CheckIn.VerifiedBy)
	assert.Equal(t, now, *b.ApprovedAt)
}

func TestOccupying(t *testing.T) {
	bookings := []model.Booking{approved("room-1", at(9, 0), at(10, 0))}

	assert.True(t, model.Occupying(bookings, "room-1", at(9, 0)))
	assert.True(t, model.Occupying(bookings, "room-1", at(9, 59)))
	assert.False(t, model.Occupying(bookings, "room-1", at(10, 0)))
	assert.False(t, model.Occupying(bookings, "room-2", at(9, 30)))
}
