package model

import (
	bookingModel "roomify/internal/domains/booking/model"
	roomModel "roomify/internal/domains/room/model"
	"slices"
	"time"
)

const (
	HoursPerDay   = 24
	RecentLimit   = 5
	DefaultWindow = 7 * 24 * time.Hour
)

// Window is the half-open range [From, To) usage is measured over.
type Window struct {
	From time.Time
	To   time.Time
}

func (w Window) Hours() float64 {
	return w.To.Sub(w.From).Hours()
}

// Overlap returns the hours of b that fall inside the window.
func (w Window) Overlap(b bookingModel.Booking) float64 {
	start := b.Start
	if w.From.After(start) {
		start = w.From
	}

	end := b.End
	if w.To.Before(end) {
		end = w.To
	}

	if !start.Before(end) {
		return 0
	}

	return end.Sub(start).Hours()
}

type TypeCount struct {
	Type  string
	Count int
}

type HourCount struct {
	Hour     int
	Bookings int
}

type Summary struct {
	TotalBookings     int
	ApprovedBookings  int
	PendingBookings   int
	RejectedBookings  int
	CancelledBookings int
	TotalCapacity     int
	TotalRooms        int
	AvailableRooms    int
	UpcomingBookings  int
	RoomTypes         []TypeCount
	PeakHours         []HourCount
	RecentBookings    []bookingModel.Booking
}

type RoomUsage struct {
	RoomID      string
	RoomName    string
	Bookings    int
	Hours       float64
	Utilization float64
	Window      Window
}

type DepartmentUsage struct {
	Department string
	Rooms      int
	Bookings   int
	Hours      float64
	Window     Window
}

type UserStats struct {
	UserID    string
	Requested int
	Approved  int
	Pending   int
	Rejected  int
	Cancelled int
	Hours     float64
}

// Summarize projects the dashboard figures from rooms and bookings as they
// are at now. Hours of day are read in loc.
func Summarize(rooms []roomModel.Room, bookings []bookingModel.Booking, now time.Time, loc *time.Location) Summary {
	res := Summary{
		TotalBookings: len(bookings),
		TotalRooms:    len(rooms),
		RoomTypes:     []TypeCount{},
		PeakHours:     make([]HourCount, HoursPerDay),
	}

	for hour := range res.PeakHours {
		res.PeakHours[hour].Hour = hour
	}

	for _, b := range bookings {
		switch b.Status {
		case bookingModel.StatusApproved:
			res.ApprovedBookings++
		case bookingModel.StatusPending:
			res.PendingBookings++
		case bookingModel.StatusRejected:
			res.RejectedBookings++
		case bookingModel.StatusCancelled:
			res.CancelledBookings++
		}

		if !b.Active() {
			continue
		}

		if b.Start.After(now) {
			res.UpcomingBookings++
		}

		for _, hour := range hoursTouched(b, loc) {
			res.PeakHours[hour].Bookings++
		}
	}

	types := map[string]int{}
	for _, room := range rooms {
		res.TotalCapacity += room.Capacity
		types[room.Type]++

		if room.EffectiveStatus(bookingModel.Occupying(bookings, room.ID, now)) == roomModel.StatusAvailable {
			res.AvailableRooms++
		}
	}

	for _, t := range roomModel.Types {
		if types[t] > 0 {
			res.RoomTypes = append(res.RoomTypes, TypeCount{Type: t, Count: types[t]})
		}
	}

	recent := slices.Clone(bookings)
	slices.SortStableFunc(recent, func(a, b bookingModel.Booking) int {
		return b.Start.Compare(a.Start)
	})
	res.RecentBookings = recent[:min(RecentLimit, len(recent))]

	return res
}

// ProjectRoomUsage measures approved bookings of room inside window.
func ProjectRoomUsage(room roomModel.Room, bookings []bookingModel.Booking, window Window) RoomUsage {
	res := RoomUsage{RoomID: room.ID, RoomName: room.Name, Window: window}

	for _, b := range bookings {
		if b.RoomID != room.ID || b.Status != bookingModel.StatusApproved {
			continue
		}

		hours := window.Overlap(b)
		if hours == 0 {
			continue
		}

		res.Bookings++
		res.Hours += hours
	}

	if total := window.Hours(); total > 0 {
		res.Utilization = min(res.Hours/total, 1)
	}

	return res
}

// ProjectDepartmentUsage measures approved bookings on the department's rooms
// inside window.
func ProjectDepartmentUsage(department string, rooms []roomModel.Room, bookings []bookingModel.Booking, window Window) DepartmentUsage {
	res := DepartmentUsage{Department: department, Window: window}

	for _, room := range rooms {
		if room.Department != department {
			continue
		}

		usage := ProjectRoomUsage(room, bookings, window)
		res.Rooms++
		res.Bookings += usage.Bookings
		res.Hours += usage.Hours
	}

	return res
}

func ProjectUserStats(userID string, bookings []bookingModel.Booking) UserStats {
	res := UserStats{UserID: userID}

	for _, b := range bookings {
		if b.RequesterID != userID {
			continue
		}

		res.Requested++

		switch b.Status {
		case bookingModel.StatusApproved:
			res.Approved++
			res.Hours += b.Hours()
		case bookingModel.StatusPending:
			res.Pending++
		case bookingModel.StatusRejected:
			res.Rejected++
		case bookingModel.StatusCancelled:
			res.Cancelled++
		}
	}

	return res
}

// hoursTouched lists each hour of day b spans, once.
func hoursTouched(b bookingModel.Booking, loc *time.Location) []int {
	start := b.Start.In(loc)
	cursor := time.Date(start.Year(), start.Month(), start.Day(), start.Hour(), 0, 0, 0, loc)
	seen := make([]bool, HoursPerDay)
	res := []int{}

	for cursor.Before(b.End) && len(res) < HoursPerDay {
		hour := cursor.Hour()
		if !seen[hour] {
			seen[hour] = true
			res = append(res, hour)
		}

		cursor = cursor.Add(time.Hour)
	}

	return res
}
