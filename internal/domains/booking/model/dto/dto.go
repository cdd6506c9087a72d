package dto

import (
	"net/http"
	"roomify/internal/domains/booking/model"
	"roomify/shared"
	"roomify/shared/constant"
	gDto "roomify/shared/dto"
	gModel "roomify/shared/model"
	"roomify/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	RoomID      string    `json:"room_id"     validate:"required,notblank"`
	Title       string    `json:"title"       validate:"required,notblank,max=200"`
	Description string    `json:"description" validate:"omitempty,max=2000"`
	Type        string    `json:"type"        validate:"omitempty,oneof=regular club class"`
	Start       time.Time `json:"start"       validate:"required"`
	End         time.Time `json:"end"         validate:"required,gtfield=Start"`
}

func (r *CreateBookingRequest) ToModel(requesterID string, now time.Time) model.Booking {
	bookingType := r.Type
	if bookingType == constant.Empty {
		bookingType = model.TypeRegular
	}

	return model.Booking{
		ID:          uuid.NewString(),
		RoomID:      r.RoomID,
		RequesterID: requesterID,
		Title:       r.Title,
		Description: r.Description,
		Type:        bookingType,
		Start:       r.Start,
		End:         r.End,
		Status:      model.StatusPending,
		Metadata:    gModel.NewMetadata(requesterID, now),
	}
}

type VerificationResponse struct {
	Time       string `json:"time"`
	VerifiedBy string `json:"verified_by"`
}

func (r *VerificationResponse) FromModel(v *model.Verification) *VerificationResponse {
	if v == nil {
		return nil
	}

	r.Time = timezone.Format(v.Time, constant.DateFormat)
	r.VerifiedBy = v.VerifiedBy

	return r
}

type BookingResponse struct {
	ID          string                `json:"id"`
	RoomID      string                `json:"room_id"`
	RequesterID string                `json:"requester_id"`
	Title       string                `json:"title"`
	Description string                `json:"description,omitempty"`
	Type        string                `json:"type"`
	Start       string                `json:"start"`
	End         string                `json:"end"`
	Status      string                `json:"status"`
	ApprovedBy  string                `json:"approved_by,omitempty"`
	ApprovedAt  string                `json:"approved_at,omitempty"`
	CheckIn     *VerificationResponse `json:"check_in,omitempty"`
	CheckOut    *VerificationResponse `json:"check_out,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(m model.Booking) {
	r.ID = m.ID
	r.RoomID = m.RoomID
	r.RequesterID = m.RequesterID
	r.Title = m.Title
	r.Description = m.Description
	r.Type = m.Type
	r.Start = timezone.Format(m.Start, constant.DateFormat)
	r.End = timezone.Format(m.End, constant.DateFormat)
	r.Status = m.Status
	r.ApprovedBy = m.ApprovedBy
	r.ApprovedAt = constant.Empty

	if m.ApprovedAt != nil {
		r.ApprovedAt = timezone.Format(*m.ApprovedAt, constant.DateFormat)
	}

	r.CheckIn = new(VerificationResponse).FromModel(m.CheckIn)
	r.CheckOut = new(VerificationResponse).FromModel(m.CheckOut)
	r.Metadata.FromModel(m.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, m := range models {
		r.Bookings[i].FromModel(m)
	}
}

// BookingFilter narrows booking listings. Empty fields match everything.
type BookingFilter struct {
	RoomID      string
	RequesterID string
	Status      string
}

func (f *BookingFilter) FromRequest(r *http.Request) {
	query := r.URL.Query()

	f.RoomID = query.Get("room_id")
	f.RequesterID = query.Get("requester_id")
	f.Status = query.Get("status")
}

func (f BookingFilter) Match(b model.Booking) bool {
	switch {
	case f.RoomID != constant.Empty && b.RoomID != f.RoomID:
		return false
	case f.RequesterID != constant.Empty && b.RequesterID != f.RequesterID:
		return false
	case f.Status != constant.Empty && b.Status != f.Status:
		return false
	}

	return true
}

type AvailabilityResponse struct {
	RoomID    string            `json:"room_id"`
	Start     string            `json:"start"`
	End       string            `json:"end"`
	Available bool              `json:"available"`
	Conflicts []BookingResponse `json:"conflicts"`
}

func (r *AvailabilityResponse) FromModels(roomID string, start, end time.Time, conflicts []model.Booking) {
	r.RoomID = roomID
	r.Start = timezone.Format(start, constant.DateFormat)
	r.End = timezone.Format(end, constant.DateFormat)
	r.Available = len(conflicts) == 0

	r.Conflicts = make([]BookingResponse, len(conflicts))
	for i, m := range conflicts {
		r.Conflicts[i].FromModel(m)
	}
}
