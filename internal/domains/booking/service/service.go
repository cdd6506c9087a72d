package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"roomify/config"
	"roomify/infras/memstore"
	"roomify/infras/otel"
	"roomify/internal/domains/booking/model"
	"roomify/internal/domains/booking/model/dto"
	notificationModel "roomify/internal/domains/notification/model"
	notificationService "roomify/internal/domains/notification/service"
	"roomify/internal/events"
	"roomify/permissions"
	"roomify/shared"
	"roomify/shared/constant"
	gDto "roomify/shared/dto"
	"roomify/shared/failure"
	"roomify/shared/timezone"
	"roomify/shared/validator"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest, requesterID string) (dto.BookingResponse, error)
	Approve(ctx context.Context, id, approverID string) (dto.BookingResponse, error)
	Reject(ctx context.Context, id, approverID string) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id, actorID string) (dto.BookingResponse, error)
	CheckIn(ctx context.Context, id, verifierID string) (dto.BookingResponse, error)
	CheckOut(ctx context.Context, id, verifierID string) (dto.BookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter dto.BookingFilter) (dto.GetBookingsResponse, error)
	CheckAvailability(ctx context.Context, roomID string, start, end time.Time) (dto.AvailabilityResponse, error)
}

type serviceImpl struct {
	store         *memstore.Store
	notifications notificationService.Notification
	permissions   *permissions.PermissionData
	publisher     events.Publisher
	cfg           *config.Config
	otel          otel.Otel
}

func New(
	store *memstore.Store,
	notifications notificationService.Notification,
	perms *permissions.PermissionData,
	publisher events.Publisher,
	cfg *config.Config,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		store:         store,
		notifications: notifications,
		permissions:   perms,
		publisher:     publisher,
		cfg:           cfg,
		otel:          otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest, requesterID string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("room.id", req.RoomID)

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	if limit := s.cfg.Booking.MaxDurationHours; limit > 0 && req.End.Sub(req.Start) > time.Duration(limit)*time.Hour {
		return res, failure.BadRequestFromString(fmt.Sprintf("booking cannot be longer than %d hours", limit)) // nolint:wrapcheck
	}

	var booking model.Booking

	err = s.store.Update(ctx, func(tx *memstore.State) error {
		requester, ok := tx.Users.Get(requesterID)
		if !ok {
			return failure.UnidentifiedCaller
		}

		if !s.permissions.Allowed(permissions.BookingCreate, requester.Role, true) {
			return failure.Forbidden(requester.Role + " cannot create bookings") // nolint:wrapcheck
		}

		room, ok := tx.Rooms.Get(req.RoomID)
		if !ok {
			return failure.NotFound("room not found") // nolint:wrapcheck
		}

		if room.InMaintenance() {
			return failure.Conflict(room.Name + " is under maintenance") // nolint:wrapcheck
		}

		if !model.IsRoomAvailable(tx.Bookings.All(), room.ID, req.Start, req.End) {
			return failure.Conflict(room.Name + " is already booked for the requested time") // nolint:wrapcheck
		}

		booking = req.ToModel(requesterID, timezone.Now())

		if err := tx.Bookings.Insert(booking); err != nil {
			log.Error().Err(err).Msg("failed to create booking")

			return fmt.Errorf("failed to create booking: %w", err)
		}

		return s.notify(tx, booking, notificationModel.TypeBookingCreated)
	})
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	events.Emit(ctx, s.publisher, bookingEvent(events.TypeBookingCreated, booking, requesterID))

	return res, nil
}

func (s *serviceImpl) Approve(ctx context.Context, id, approverID string) (dto.BookingResponse, error) {
	return s.transition(ctx, transition{
		name:         "Approve",
		action:       permissions.BookingApprove,
		notification: notificationModel.TypeBookingApproved,
		event:        events.TypeBookingApproved,
		apply: func(tx *memstore.State, b *model.Booking, actorID string, now time.Time) error {
			if err := b.Approve(actorID, now); err != nil {
				return err
			}

			// Pending bookings never block, so two may overlap. Only one can win.
			conflicts := model.Conflicts(tx.Bookings.All(), b.RoomID, b.Start, b.End)
			if len(conflicts) > 0 {
				return failure.Conflict("an approved booking already holds the room for this time") // nolint:wrapcheck
			}

			return nil
		},
	}, id, approverID)
}

func (s *serviceImpl) Reject(ctx context.Context, id, approverID string) (dto.BookingResponse, error) {
	return s.transition(ctx, transition{
		name:         "Reject",
		action:       permissions.BookingReject,
		notification: notificationModel.TypeBookingRejected,
		event:        events.TypeBookingRejected,
		apply: func(_ *memstore.State, b *model.Booking, actorID string, now time.Time) error {
			return b.Reject(actorID, now)
		},
	}, id, approverID)
}

func (s *serviceImpl) Cancel(ctx context.Context, id, actorID string) (dto.BookingResponse, error) {
	return s.transition(ctx, transition{
		name:         "Cancel",
		action:       permissions.BookingCancel,
		notification: notificationModel.TypeBookingCancelled,
		event:        events.TypeBookingCancelled,
		apply: func(_ *memstore.State, b *model.Booking, actorID string, now time.Time) error {
			return b.Cancel(actorID, now)
		},
	}, id, actorID)
}

func (s *serviceImpl) CheckIn(ctx context.Context, id, verifierID string) (dto.BookingResponse, error) {
	return s.transition(ctx, transition{
		name:         "CheckIn",
		action:       permissions.BookingCheckIn,
		notification: notificationModel.TypeBookingCheckedIn,
		event:        events.TypeBookingCheckedIn,
		apply: func(_ *memstore.State, b *model.Booking, actorID string, now time.Time) error {
			return b.RecordCheckIn(actorID, now)
		},
	}, id, verifierID)
}

func (s *serviceImpl) CheckOut(ctx context.Context, id, verifierID string) (dto.BookingResponse, error) {
	return s.transition(ctx, transition{
		name:         "CheckOut",
		action:       permissions.BookingCheckOut,
		notification: notificationModel.TypeBookingCheckedOut,
		event:        events.TypeBookingCheckedOut,
		apply: func(_ *memstore.State, b *model.Booking, actorID string, now time.Time) error {
			return b.RecordCheckOut(actorID, now)
		},
	}, id, verifierID)
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.store.View(ctx, func(state *memstore.State) error {
		booking, ok := state.Bookings.Get(id)
		if !ok {
			return failure.NotFound("booking not found") // nolint:wrapcheck
		}

		res.FromModel(booking)

		return nil
	})

	return res, err
}

// GetAll lists bookings ordered by start time.
func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter dto.BookingFilter) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var bookings []model.Booking

	err = s.store.View(ctx, func(state *memstore.State) error {
		bookings = state.Bookings.Filter(filter.Match)

		return nil
	})
	if err != nil {
		return res, err
	}

	slices.SortStableFunc(bookings, func(a, b model.Booking) int {
		return a.Start.Compare(b.Start)
	})

	if req.Descending() {
		slices.Reverse(bookings)
	}

	res.FromModels(shared.Paginate(bookings, req), len(bookings), req.Limit)

	return res, nil
}

// CheckAvailability answers for [start, end). An unknown room is reported as
// available together with a not-found error.
func (s *serviceImpl) CheckAvailability(ctx context.Context, roomID string, start, end time.Time) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("room.id", roomID)

	if !start.Before(end) {
		return res, failure.BadRequestFromString("end must be after start") // nolint:wrapcheck
	}

	var known bool

	err = s.store.View(ctx, func(state *memstore.State) error {
		known = state.Rooms.Exist(roomID)
		res.FromModels(roomID, start, end, model.Conflicts(state.Bookings.All(), roomID, start, end))

		return nil
	})
	if err != nil {
		return res, err
	}

	if !known {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	return res, nil
}

type transition struct {
	name         string
	action       string
	notification string
	event        string
	apply        func(tx *memstore.State, b *model.Booking, actorID string, now time.Time) error
}

// transition runs one lifecycle move as a single store transaction: the
// booking change and its notification are committed together or not at all.
func (s *serviceImpl) transition(ctx context.Context, t transition, id, actorID string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+"."+t.name)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{"booking.id": id, "actor.id": actorID})

	var booking model.Booking

	err = s.store.Update(ctx, func(tx *memstore.State) error {
		var ok bool
		booking, ok = tx.Bookings.Get(id)
		if !ok {
			return failure.NotFound("booking not found") // nolint:wrapcheck
		}

		actor, ok := tx.Users.Get(actorID)
		if !ok {
			return failure.UnidentifiedCaller
		}

		if !s.permissions.Allowed(t.action, actor.Role, booking.RequesterID == actorID) {
			return failure.Forbidden(fmt.Sprintf("%s is not allowed to %s", actor.Role, t.action)) // nolint:wrapcheck
		}

		if err := t.apply(tx, &booking, actorID, timezone.Now()); err != nil {
			return err
		}

		if err := tx.Bookings.Put(booking); err != nil {
			log.Error().Err(err).Str("id", id).Str("action", t.action).Msg("failed to update booking")

			return fmt.Errorf("failed to update booking: %w", err)
		}

		return s.notify(tx, booking, t.notification)
	})
	if err != nil {
		log.Debug().Err(err).Str("id", id).Str("action", t.action).Msg("booking transition refused")

		return res, err
	}

	res.FromModel(booking)

	events.Emit(ctx, s.publisher, bookingEvent(t.event, booking, actorID))

	return res, nil
}

func (s *serviceImpl) notify(tx *memstore.State, booking model.Booking, notificationType string) error {
	roomName := booking.RoomID
	if room, ok := tx.Rooms.Get(booking.RoomID); ok {
		roomName = room.Name
	}

	title, message := describe(notificationType, roomName, booking.Title)

	_, err := s.notifications.Append(tx, notificationModel.Notification{
		UserID:    booking.RequesterID,
		Type:      notificationType,
		Title:     title,
		Message:   message,
		BookingID: booking.ID,
	})

	return err
}

func describe(notificationType, roomName, title string) (string, string) {
	switch notificationType {
	case notificationModel.TypeBookingCreated:
		return "Booking Request Created", fmt.Sprintf("Your booking request %q for %s has been created and is pending approval.", title, roomName)
	case notificationModel.TypeBookingApproved:
		return "Booking Approved", fmt.Sprintf("Your booking request %q for %s has been approved.", title, roomName)
	case notificationModel.TypeBookingRejected:
		return "Booking Rejected", fmt.Sprintf("Your booking request %q for %s has been rejected.", title, roomName)
	case notificationModel.TypeBookingCancelled:
		return "Booking Cancelled", fmt.Sprintf("Your booking %q for %s has been cancelled.", title, roomName)
	case notificationModel.TypeBookingCheckedIn:
		return "Checked In", fmt.Sprintf("Check-in recorded for %q in %s.", title, roomName)
	case notificationModel.TypeBookingCheckedOut:
		return "Checked Out", fmt.Sprintf("Check-out recorded for %q in %s.", title, roomName)
	default:
		return "Booking Update", fmt.Sprintf("Your booking %q for %s has been updated.", title, roomName)
	}
}

func bookingEvent(eventType string, booking model.Booking, actorID string) events.Event {
	return events.Event{
		Type:       eventType,
		BookingID:  booking.ID,
		RoomID:     booking.RoomID,
		UserID:     booking.RequesterID,
		ActorID:    actorID,
		Status:     booking.Status,
		OccurredAt: booking.ModifiedAt,
	}
}
