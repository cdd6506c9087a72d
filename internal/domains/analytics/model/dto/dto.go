package dto

import (
	"net/http"
	"roomify/internal/domains/analytics/model"
	bookingDto "roomify/internal/domains/booking/model/dto"
	"roomify/shared/constant"
	"roomify/shared/failure"
	"roomify/shared/timezone"
	"time"
)

// WindowFromRequest reads from/to (RFC3339). A missing to means now, a
// missing from means one week before to.
func WindowFromRequest(r *http.Request, now time.Time) (model.Window, error) {
	query := r.URL.Query()
	window := model.Window{To: now}

	if to := query.Get(constant.RequestParamTo); to != constant.Empty {
		parsed, err := timezone.Parse(constant.DateFormat, to)
		if err != nil {
			return window, failure.BadRequestFromString("to must be an RFC3339 timestamp") // nolint:wrapcheck
		}

		window.To = parsed
	}

	window.From = window.To.Add(-model.DefaultWindow)

	if from := query.Get(constant.RequestParamFrom); from != constant.Empty {
		parsed, err := timezone.Parse(constant.DateFormat, from)
		if err != nil {
			return window, failure.BadRequestFromString("from must be an RFC3339 timestamp") // nolint:wrapcheck
		}

		window.From = parsed
	}

	if !window.From.Before(window.To) {
		return window, failure.BadRequestFromString("to must be after from") // nolint:wrapcheck
	}

	return window, nil
}

type WindowResponse struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (r *WindowResponse) FromModel(w model.Window) {
	r.From = timezone.Format(w.From, constant.DateFormat)
	r.To = timezone.Format(w.To, constant.DateFormat)
}

type TypeCountResponse struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type HourCountResponse struct {
	Hour     int `json:"hour"`
	Bookings int `json:"bookings"`
}

type SummaryResponse struct {
	TotalBookings     int                          `json:"total_bookings"`
	ApprovedBookings  int                          `json:"approved_bookings"`
	PendingBookings   int                          `json:"pending_bookings"`
	RejectedBookings  int                          `json:"rejected_bookings"`
	CancelledBookings int                          `json:"cancelled_bookings"`
	TotalCapacity     int                          `json:"total_capacity"`
	TotalRooms        int                          `json:"total_rooms"`
	AvailableRooms    int                          `json:"available_rooms"`
	UpcomingBookings  int                          `json:"upcoming_bookings"`
	RoomTypes         []TypeCountResponse          `json:"room_types"`
	PeakHours         []HourCountResponse          `json:"peak_hours"`
	RecentBookings    []bookingDto.BookingResponse `json:"recent_bookings"`
}

func (r *SummaryResponse) FromModel(m model.Summary) {
	r.TotalBookings = m.TotalBookings
	r.ApprovedBookings = m.ApprovedBookings
	r.PendingBookings = m.PendingBookings
	r.RejectedBookings = m.RejectedBookings
	r.CancelledBookings = m.CancelledBookings
	r.TotalCapacity = m.TotalCapacity
	r.TotalRooms = m.TotalRooms
	r.AvailableRooms = m.AvailableRooms
	r.UpcomingBookings = m.UpcomingBookings

	r.RoomTypes = make([]TypeCountResponse, len(m.RoomTypes))
	for i, t := range m.RoomTypes {
		r.RoomTypes[i] = TypeCountResponse{Type: t.Type, Count: t.Count}
	}

	r.PeakHours = make([]HourCountResponse, len(m.PeakHours))
	for i, h := range m.PeakHours {
		r.PeakHours[i] = HourCountResponse{Hour: h.Hour, Bookings: h.Bookings}
	}

	r.RecentBookings = make([]bookingDto.BookingResponse, len(m.RecentBookings))
	for i, b := range m.RecentBookings {
		r.RecentBookings[i].FromModel(b)
	}
}

type RoomUsageResponse struct {
	RoomID      string         `json:"room_id"`
	RoomName    string         `json:"room_name"`
	Bookings    int            `json:"bookings"`
	Hours       float64        `json:"hours"`
	Utilization float64        `json:"utilization"`
	Window      WindowResponse `json:"window"`
}

func (r *RoomUsageResponse) FromModel(m model.RoomUsage) {
	r.RoomID = m.RoomID
	r.RoomName = m.RoomName
	r.Bookings = m.Bookings
	r.Hours = m.Hours
	r.Utilization = m.Utilization
	r.Window.FromModel(m.Window)
}

type DepartmentUsageResponse struct {
	Department string         `json:"department"`
	Rooms      int            `json:"rooms"`
	Bookings   int            `json:"bookings"`
	Hours      float64        `json:"hours"`
	Window     WindowResponse `json:"window"`
}

func (r *DepartmentUsageResponse) FromModel(m model.DepartmentUsage) {
	r.Department = m.Department
	r.Rooms = m.Rooms
	r.Bookings = m.Bookings
	r.Hours = m.Hours
	r.Window.FromModel(m.Window)
}

type UserStatsResponse struct {
	UserID    string  `json:"user_id"`
	Requested int     `json:"requested"`
	Approved  int     `json:"approved"`
	Pending   int     `json:"pending"`
	Rejected  int     `json:"rejected"`
	Cancelled int     `json:"cancelled"`
	Hours     float64 `json:"hours"`
}

func (r *UserStatsResponse) FromModel(m model.UserStats) {
	r.UserID = m.UserID
	r.Requested = m.Requested
	r.Approved = m.Approved
	r.Pending = m.Pending
	r.Rejected = m.Rejected
	r.Cancelled = m.Cancelled
	r.Hours = m.Hours
}
