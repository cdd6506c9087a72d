package model

import "roomify/shared/model"

const (
	EntityName = "notification"

	TypeBookingCreated    = "booking_created"
	TypeBookingRequest    = "booking_request"
	TypeBookingApproved   = "booking_approved"
	TypeBookingRejected   = "booking_rejected"
	TypeBookingCancelled  = "booking_cancelled"
	TypeBookingCheckedIn  = "booking_checked_in"
	TypeBookingCheckedOut = "booking_checked_out"
	TypeBookingReminder   = "booking_reminder"
)

var Types = []string{
	TypeBookingCreated,
	TypeBookingRequest,
	TypeBookingApproved,
	TypeBookingRejected,
	TypeBookingCancelled,
	TypeBookingCheckedIn,
	TypeBookingCheckedOut,
	TypeBookingReminder,
}

type Notification struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	BookingID string `json:"booking_id,omitempty"`
	Read      bool   `json:"read"`
	model.Metadata
}

func (n Notification) Key() string {
	return n.ID
}

func (n Notification) Clone() Notification {
	return n
}
