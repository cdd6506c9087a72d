package service

import (
	"context"
	"fmt"
	"roomify/infras/memstore"
	"roomify/infras/otel"
	bookingModel "roomify/internal/domains/booking/model"
	"roomify/internal/domains/room/model"
	"roomify/internal/domains/room/model/dto"
	"roomify/internal/events"
	"roomify/permissions"
	"roomify/shared"
	"roomify/shared/constant"
	gDto "roomify/shared/dto"
	"roomify/shared/failure"
	"roomify/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

type Room interface {
	GetAll(ctx context.Context, req gDto.QueryParams, filter dto.RoomFilter) (dto.GetRoomsResponse, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	Create(ctx context.Context, req dto.CreateRoomRequest, callerID string) (dto.RoomResponse, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateRoomStatusRequest, callerID string) (dto.RoomResponse, error)
}

type serviceImpl struct {
	store       *memstore.Store
	permissions *permissions.PermissionData
	publisher   events.Publisher
	otel        otel.Otel
}

func New(store *memstore.Store, perms *permissions.PermissionData, publisher events.Publisher, otel otel.Otel) Room {
	return &serviceImpl{
		store:       store,
		permissions: perms,
		publisher:   publisher,
		otel:        otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter dto.RoomFilter) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	rooms := []dto.RoomResponse{}
	now := timezone.Now()

	err = s.store.View(ctx, func(state *memstore.State) error {
		bookings := state.Bookings.Filter(func(b bookingModel.Booking) bool { return b.Status == bookingModel.StatusApproved })

		for _, room := range state.Rooms.All() {
			status := room.EffectiveStatus(bookingModel.Occupying(bookings, room.ID, now))
			if !filter.Match(room, status) {
				continue
			}

			var item dto.RoomResponse
			item.FromModel(room, status)
			rooms = append(rooms, item)
		}

		return nil
	})
	if err != nil {
		return res, err
	}

	res.FromResponses(shared.Paginate(rooms, req), len(rooms), req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.store.View(ctx, func(state *memstore.State) error {
		room, ok := state.Rooms.Get(id)
		if !ok {
			return failure.NotFound("room not found") // nolint:wrapcheck
		}

		res.FromModel(room, effectiveStatus(state, room, timezone.Now()))

		return nil
	})

	return res, err
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest, callerID string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var room model.Room

	err = s.store.Update(ctx, func(tx *memstore.State) error {
		if err := s.authorize(tx, callerID, permissions.RoomCreate); err != nil {
			return err
		}

		room = req.ToModel(callerID, timezone.Now())

		if err := tx.Rooms.Insert(room); err != nil {
			log.Error().Err(err).Msg("failed to create room")

			return fmt.Errorf("failed to create room: %w", err)
		}

		return nil
	})
	if err != nil {
		return res, err
	}

	res.FromModel(room, room.Status)

	events.Emit(ctx, s.publisher, roomEvent(events.TypeRoomCreated, room, callerID))

	return res, nil
}

// UpdateStatus toggles maintenance. Existing bookings are left alone; new
// bookings are refused while the room is in maintenance.
func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateRoomStatusRequest, callerID string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("room.id", id)

	var room model.Room

	err = s.store.Update(ctx, func(tx *memstore.State) error {
		if err := s.authorize(tx, callerID, permissions.RoomUpdateStatus); err != nil {
			return err
		}

		var ok bool
		room, ok = tx.Rooms.Get(id)
		if !ok {
			return failure.NotFound("room not found") // nolint:wrapcheck
		}

		now := timezone.Now()
		room.Status = req.Status
		room.Touch(callerID, now)

		if err := tx.Rooms.Put(room); err != nil {
			log.Error().Err(err).Str("id", id).Msg("failed to update room status")

			return fmt.Errorf("failed to update room status: %w", err)
		}

		res.FromModel(room, effectiveStatus(tx, room, now))

		return nil
	})
	if err != nil {
		return res, err
	}

	events.Emit(ctx, s.publisher, roomEvent(events.TypeRoomStatusChanged, room, callerID))

	return res, nil
}

func (s *serviceImpl) authorize(state *memstore.State, callerID, action string) error {
	caller, ok := state.Users.Get(callerID)
	if !ok {
		return failure.UnidentifiedCaller
	}

	if !s.permissions.Allowed(action, caller.Role, false) {
		return failure.Forbidden(fmt.Sprintf("%s is not allowed to %s", caller.Role, action)) // nolint:wrapcheck
	}

	return nil
}

func effectiveStatus(state *memstore.State, room model.Room, now time.Time) string {
	return room.EffectiveStatus(bookingModel.Occupying(state.Bookings.All(), room.ID, now))
}

func roomEvent(eventType string, room model.Room, actorID string) events.Event {
	return events.Event{
		Type:       eventType,
		RoomID:     room.ID,
		ActorID:    actorID,
		Status:     room.Status,
		OccurredAt: room.ModifiedAt,
	}
}
