package dto

import (
	"net/http"
	"roomify/internal/domains/room/model"
	"roomify/shared"
	"roomify/shared/constant"
	gDto "roomify/shared/dto"
	gModel "roomify/shared/model"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	Name       string   `json:"name"       validate:"required,notblank,max=100"`
	Type       string   `json:"type"       validate:"required,oneof=classroom conference meeting lab"`
	Capacity   int      `json:"capacity"   validate:"required,gt=0"`
	Equipment  []string `json:"equipment"  validate:"omitempty,dive,notblank"`
	Department string   `json:"department" validate:"required,notblank"`
	Floor      int      `json:"floor"      validate:"gte=0"`
	Building   string   `json:"building"   validate:"omitempty,max=100"`
}

func (r *CreateRoomRequest) ToModel(user string, now time.Time) model.Room {
	return model.Room{
		ID:         uuid.NewString(),
		Name:       r.Name,
		Type:       r.Type,
		Capacity:   r.Capacity,
		Equipment:  model.NormalizeEquipment(r.Equipment),
		Department: r.Department,
		Floor:      r.Floor,
		Building:   r.Building,
		Status:     model.StatusAvailable,
		Metadata:   gModel.NewMetadata(user, now),
	}
}

type UpdateRoomStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available maintenance"`
}

// RoomFilter narrows room listings. Status matches the derived status.
type RoomFilter struct {
	Type        string
	Department  string
	Status      string
	MinCapacity int
}

func (f *RoomFilter) FromRequest(r *http.Request) {
	query := r.URL.Query()

	f.Type = query.Get("type")
	f.Department = query.Get(constant.RequestParamDepartment)
	f.Status = query.Get("status")

	if capacity, err := strconv.Atoi(query.Get("min_capacity")); err == nil && capacity > 0 {
		f.MinCapacity = capacity
	}
}

func (f RoomFilter) Match(room model.Room, status string) bool {
	switch {
	case f.Type != constant.Empty && room.Type != f.Type:
		return false
	case f.Department != constant.Empty && room.Department != f.Department:
		return false
	case f.Status != constant.Empty && status != f.Status:
		return false
	case room.Capacity < f.MinCapacity:
		return false
	}

	return true
}

type RoomResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	Capacity   int      `json:"capacity"`
	Equipment  []string `json:"equipment"`
	Department string   `json:"department"`
	Floor      int      `json:"floor"`
	Building   string   `json:"building"`
	Status     string   `json:"status"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(m model.Room, status string) {
	r.ID = m.ID
	r.Name = m.Name
	r.Type = m.Type
	r.Capacity = m.Capacity
	r.Equipment = m.Equipment
	r.Department = m.Department
	r.Floor = m.Floor
	r.Building = m.Building
	r.Status = status
	r.Metadata.FromModel(m.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromResponses(rooms []RoomResponse, totalData, limit int) {
	r.Rooms = rooms
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)
}
