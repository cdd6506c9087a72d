package model

import (
	"roomify/shared/failure"
	"roomify/shared/model"
	"time"
)

const (
	EntityName = "booking"

	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"

	TypeRegular = "regular"
	TypeClub    = "club"
	TypeClass   = "class"
)

var Statuses = []string{StatusPending, StatusApproved, StatusRejected, StatusCancelled}

// Verification records who confirmed a check-in or check-out and when.
type Verification struct {
	Time       time.Time `json:"time"`
	VerifiedBy string    `json:"verified_by"`
}

type Booking struct {
	ID          string        `json:"id"`
	RoomID      string        `json:"room_id"`
	RequesterID string        `json:"requester_id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Type        string        `json:"type"`
	Start       time.Time     `json:"start"`
	End         time.Time     `json:"end"`
	Status      string        `json:"status"`
	ApprovedBy  string        `json:"approved_by,omitempty"`
	ApprovedAt  *time.Time    `json:"approved_at,omitempty"`
	CheckIn     *Verification `json:"check_in,omitempty"`
	CheckOut    *Verification `json:"check_out,omitempty"`
	model.Metadata
}

func (b Booking) Key() string {
	return b.ID
}

func (b Booking) Clone() Booking {
	if b.ApprovedAt != nil {
		at := *b.ApprovedAt
		b.ApprovedAt = &at
	}

	if b.CheckIn != nil {
		in := *b.CheckIn
		b.CheckIn = &in
	}

	if b.CheckOut != nil {
		out := *b.CheckOut
		b.CheckOut = &out
	}

	return b
}

// Overlaps uses closed-open intervals: touching bookings do not overlap.
func (b Booking) Overlaps(start, end time.Time) bool {
	return b.Start.Before(end) && b.End.After(start)
}

// Blocks reports whether b makes roomID unavailable for [start, end).
func (b Booking) Blocks(roomID string, start, end time.Time) bool {
	return b.RoomID == roomID && b.Status == StatusApproved && b.Overlaps(start, end)
}

// Active bookings are the ones still heading towards use of the room.
func (b Booking) Active() bool {
	return b.Status == StatusPending || b.Status == StatusApproved
}

func (b Booking) Hours() float64 {
	return b.End.Sub(b.Start).Hours()
}

// Covers reports whether t falls inside [Start, End).
func (b Booking) Covers(t time.Time) bool {
	return !t.Before(b.Start) && t.Before(b.End)
}

func (b *Booking) Approve(approverID string, at time.Time) error {
	if err := b.decide(); err != nil {
		return err
	}

	b.Status = StatusApproved
	b.record(approverID, at)

	return nil
}

func (b *Booking) Reject(approverID string, at time.Time) error {
	if err := b.decide(); err != nil {
		return err
	}

	b.Status = StatusRejected
	b.record(approverID, at)

	return nil
}

func (b *Booking) Cancel(actorID string, at time.Time) error {
	switch {
	case b.Status != StatusPending && b.Status != StatusApproved:
		return failure.InvalidTransition("booking is already " + b.Status) // nolint:wrapcheck
	case b.CheckOut != nil:
		return failure.InvalidTransition("booking is already checked out") // nolint:wrapcheck
	}

	b.Status = StatusCancelled
	b.Touch(actorID, at)

	return nil
}

func (b *Booking) RecordCheckIn(verifierID string, at time.Time) error {
	switch {
	case b.Status != StatusApproved:
		return failure.InvalidTransition("only approved bookings can be checked in, booking is " + b.Status) // nolint:wrapcheck
	case b.CheckIn != nil:
		return failure.InvalidTransition("booking is already checked in") // nolint:wrapcheck
	}

	b.CheckIn = &Verification{Time: at, VerifiedBy: verifierID}
	b.Touch(verifierID, at)

	return nil
}

func (b *Booking) RecordCheckOut(verifierID string, at time.Time) error {
	switch {
	case b.Status != StatusApproved:
		return failure.InvalidTransition("only approved bookings can be checked out, booking is " + b.Status) // nolint:wrapcheck
	case b.CheckIn == nil:
		return failure.InvalidTransition("booking has not been checked in") // nolint:wrapcheck
	case b.CheckOut != nil:
		return failure.InvalidTransition("booking is already checked out") // nolint:wrapcheck
	}

	b.CheckOut = &Verification{Time: at, VerifiedBy: verifierID}
	b.Touch(verifierID, at)

	return nil
}

func (b *Booking) decide() error {
	if b.Status != StatusPending {
		return failure.InvalidTransition("booking is " + b.Status + ", only pending bookings can be decided") // nolint:wrapcheck
	}

	return nil
}

func (b *Booking) record(approverID string, at time.Time) {
	b.ApprovedBy = approverID
	b.ApprovedAt = &at
	b.Touch(approverID, at)
}

// IsRoomAvailable reports whether no approved booking on roomID overlaps
// [start, end). Pending, rejected and cancelled bookings never block, and a
// room nobody booked is always available.
func IsRoomAvailable(bookings []Booking, roomID string, start, end time.Time) bool {
	for _, b := range bookings {
		if b.Blocks(roomID, start, end) {
			return false
		}
	}

	return true
}

// Conflicts returns the approved bookings on roomID overlapping [start, end)
// in the order given.
func Conflicts(bookings []Booking, roomID string, start, end time.Time) []Booking {
	res := []Booking{}

	for _, b := range bookings {
		if b.Blocks(roomID, start, end) {
			res = append(res, b)
		}
	}

	return res
}

// Occupying reports whether an approved booking holds roomID at t.
func Occupying(bookings []Booking, roomID string, t time.Time) bool {
	for _, b := range bookings {
		if b.RoomID == roomID && b.Status == StatusApproved && b.Covers(t) {
			return true
		}
	}

	return false
}
