package notification

import (
	"net/http"
	"roomify/infras/otel"
	"roomify/internal/domains/notification/model/dto"
	"roomify/internal/domains/notification/service"
	"roomify/shared"
	"roomify/shared/constant"
	gDto "roomify/shared/dto"
	"roomify/shared/validator"
	"roomify/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Notification
	otel    otel.Otel
}

func New(service service.Notification, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/notifications", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetNotifications)
		routerGroup.Post("/", handler.CreateNotification)
		routerGroup.Get("/unread-count", handler.GetUnreadCount)
		routerGroup.Post("/{id}/read", handler.MarkAsRead)
	})
}

// GetNotifications lists the caller's notifications in the order they were raised.
// @Summary Get my notifications
// @Tags Notification
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetNotificationsResponse] "Notifications"
// @Failure 401 {object} response.Error
// @Router /v1/notifications [get]
func (handler *Handler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetNotifications")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	notifications, err := handler.service.GetAll(ctx, shared.CallerID(ctx), queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get notifications")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, notifications)
}

// CreateNotification sends an ad-hoc notification to a user.
// @Summary Send a notification
// @Description Faculty, admin and HOD callers can notify any known user.
// @Tags Notification
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Param request body dto.CreateNotificationRequest true "Create Notification Request"
// @Success 201 {object} response.Data[dto.NotificationResponse] "Created notification"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/notifications [post]
func (handler *Handler) CreateNotification(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateNotification")
	defer scope.End()

	req := dto.CreateNotificationRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	notification, err := handler.service.Add(ctx, req, shared.CallerID(ctx))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create notification")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, notification)
}

// GetUnreadCount returns how many of the caller's notifications are unread.
// @Summary Unread notification count
// @Tags Notification
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Success 200 {object} response.Data[dto.UnreadCountResponse] "Unread count"
// @Failure 401 {object} response.Error
// @Router /v1/notifications/unread-count [get]
func (handler *Handler) GetUnreadCount(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUnreadCount")
	defer scope.End()

	unread, err := handler.service.UnreadCount(ctx, shared.CallerID(ctx))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to count unread notifications")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, dto.UnreadCountResponse{Unread: unread})
}

// MarkAsRead marks one of the caller's notifications as read.
// @Summary Mark a notification as read
// @Tags Notification
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Data[dto.NotificationResponse] "Notification"
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/notifications/{id}/read [post]
func (handler *Handler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MarkAsRead")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	notification, err := handler.service.MarkAsRead(ctx, id, shared.CallerID(ctx))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("notification_id", id).Msg("failed to mark notification as read")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, notification)
}
