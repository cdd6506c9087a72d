package model

import (
	"roomify/shared/model"
	"slices"
	"strings"
)

const (
	EntityName = "room"

	TypeClassroom  = "classroom"
	TypeConference = "conference"
	TypeMeeting    = "meeting"
	TypeLab        = "lab"

	StatusAvailable   = "available"
	StatusBooked      = "booked"
	StatusMaintenance = "maintenance"
)

var Types = []string{TypeClassroom, TypeConference, TypeMeeting, TypeLab}

// Room is the stored form of a room. Status is only ever available or
// maintenance here; booked is derived from approved bookings at read time.
type Room struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	Capacity   int      `json:"capacity"`
	Equipment  []string `json:"equipment"`
	Department string   `json:"department"`
	Floor      int      `json:"floor"`
	Building   string   `json:"building"`
	Status     string   `json:"status"`
	model.Metadata
}

func (r Room) Key() string {
	return r.ID
}

func (r Room) Clone() Room {
	r.Equipment = slices.Clone(r.Equipment)

	return r
}

func (r Room) InMaintenance() bool {
	return r.Status == StatusMaintenance
}

// NormalizeEquipment trims entries and drops blanks and repeats, keeping the
// first occurrence of each item.
func NormalizeEquipment(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	res := make([]string, 0, len(items))

	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		if _, ok := seen[item]; ok {
			continue
		}

		seen[item] = struct{}{}
		res = append(res, item)
	}

	return res
}

// EffectiveStatus is the status shown to readers. An available room that is
// occupied right now reads as booked.
func (r Room) EffectiveStatus(occupied bool) string {
	if r.Status == StatusAvailable && occupied {
		return StatusBooked
	}

	return r.Status
}
