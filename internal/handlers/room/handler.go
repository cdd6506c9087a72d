package room

import (
	"fmt"
	"net/http"
	"roomify/infras/otel"
	bookingService "roomify/internal/domains/booking/service"
	"roomify/internal/domains/room/model/dto"
	"roomify/internal/domains/room/service"
	"roomify/shared"
	"roomify/shared/constant"
	gDto "roomify/shared/dto"
	"roomify/shared/failure"
	"roomify/shared/timezone"
	"roomify/shared/validator"
	"roomify/transport/http/response"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service  service.Room
	bookings bookingService.Booking
	otel     otel.Otel
}

func New(service service.Room, bookings bookingService.Booking, otel otel.Otel) Handler {
	return Handler{
		service:  service,
		bookings: bookings,
		otel:     otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRoom)
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Get("/{id}", handler.GetRoomByID)
		routerGroup.Patch("/{id}/status", handler.UpdateRoomStatus)
		routerGroup.Get("/{id}/availability", handler.CheckAvailability)
	})
}

// CreateRoom handles the creation of a new room.
// @Summary Create a new room
// @Description Register a room in the catalogue. Admin only.
// @Tags Room
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Param request body dto.CreateRoomRequest true "Create Room Request"
// @Success 201 {object} response.Data[dto.RoomResponse] "Created room"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/rooms [post]
func (handler *Handler) CreateRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	req := dto.CreateRoomRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	room, err := handler.service.Create(ctx, req, shared.CallerID(ctx))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room created successfully")

	response.WithJSON(writer, http.StatusCreated, room)
}

// GetRooms retrieves all rooms based on query parameters.
// @Summary Get all rooms
// @Description Retrieve the room catalogue with optional filtering and pagination.
// @Tags Room
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param type query string false "Filter by room type (classroom, conference, meeting, lab)"
// @Param department query string false "Filter by department"
// @Param status query string false "Filter by status (available, booked, maintenance)"
// @Param min_capacity query int false "Minimum capacity"
// @Success 200 {object} response.Data[dto.GetRoomsResponse] "List of rooms"
// @Failure 401 {object} response.Error
// @Router /v1/rooms [get]
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter := dto.RoomFilter{}
	filter.FromRequest(r)

	rooms, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Rooms retrieved successfully")

	response.WithJSON(w, http.StatusOK, rooms)
}

// GetRoomByID retrieves a room by its ID.
// @Summary Get a room by ID
// @Tags Room
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Param id path string true "Room ID"
// @Success 200 {object} response.Data[dto.RoomResponse] "Room details"
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/rooms/{id} [get]
func (handler *Handler) GetRoomByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	room, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("room_id", id).Msg("failed to get room by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, room)
}

// UpdateRoomStatus puts a room into or out of maintenance.
// @Summary Update room status
// @Description Set a room to available or maintenance. Admin only.
// @Tags Room
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Param id path string true "Room ID"
// @Param request body dto.UpdateRoomStatusRequest true "Update Room Status Request"
// @Success 200 {object} response.Data[dto.RoomResponse] "Updated room"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/rooms/{id}/status [patch]
func (handler *Handler) UpdateRoomStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoomStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateRoomStatusRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	room, err := handler.service.UpdateStatus(ctx, id, req, shared.CallerID(ctx))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("room_id", id).Msg("failed to update room status")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room status updated to " + req.Status)

	response.WithJSON(w, http.StatusOK, room)
}

// CheckAvailability reports whether a room is free over an interval.
// @Summary Check room availability
// @Description Lists the approved bookings that overlap [start, end). An unknown room answers 404 with both the error and an available result.
// @Tags Room
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Param id path string true "Room ID"
// @Param start query string true "Interval start (RFC3339)"
// @Param end query string true "Interval end (RFC3339)"
// @Success 200 {object} object "Availability envelope"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} object "Availability envelope with error"
// @Router /v1/rooms/{id}/availability [get]
func (handler *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckAvailability")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	start, err := parseTime(r, constant.RequestParamStart)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	end, err := parseTime(r, constant.RequestParamEnd)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	availability, err := handler.bookings.CheckAvailability(ctx, id, start, end)
	if failure.IsNotFound(err) {
		scope.TraceError(err)
		response.WithErrorAndJSON(w, err, availability)

		return
	}

	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("room_id", id).Msg("failed to check availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, availability)
}

func parseTime(r *http.Request, param string) (time.Time, error) {
	value := r.URL.Query().Get(param)
	if value == constant.Empty {
		return time.Time{}, failure.BadRequestFromString(param + " is required") // nolint:wrapcheck
	}

	t, err := timezone.Parse(constant.DateFormat, value)
	if err != nil {
		return time.Time{}, failure.BadRequest(fmt.Errorf("%s must be an RFC3339 timestamp: %w", param, err)) // nolint:wrapcheck
	}

	return t, nil
}
