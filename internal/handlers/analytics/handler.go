package analytics

import (
	"net/http"
	"roomify/infras/otel"
	"roomify/internal/domains/analytics/model/dto"
	"roomify/internal/domains/analytics/service"
	"roomify/shared/constant"
	"roomify/shared/timezone"
	"roomify/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Analytics
	otel    otel.Otel
}

func New(service service.Analytics, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/analytics", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetSummary)
		routerGroup.Get("/rooms/{id}", handler.GetRoomUsage)
		routerGroup.Get("/departments/{department}", handler.GetDepartmentUsage)
		routerGroup.Get("/users/{id}", handler.GetUserStats)
	})
}

// GetSummary returns the dashboard summary.
// @Summary Dashboard summary
// @Tags Analytics
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Success 200 {object} response.Data[dto.SummaryResponse] "Summary"
// @Failure 401 {object} response.Error
// @Router /v1/analytics [get]
func (handler *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSummary")
	defer scope.End()

	summary, err := handler.service.Summary(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build summary")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, summary)
}

// GetRoomUsage returns booked hours and utilization of one room.
// @Summary Room usage
// @Tags Analytics
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Param id path string true "Room ID"
// @Param from query string false "Window start (RFC3339), defaults to a week before to"
// @Param to query string false "Window end (RFC3339), defaults to now"
// @Success 200 {object} response.Data[dto.RoomUsageResponse] "Room usage"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/analytics/rooms/{id} [get]
func (handler *Handler) GetRoomUsage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomUsage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	window, err := dto.WindowFromRequest(r, timezone.Now())
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	usage, err := handler.service.RoomUsage(ctx, id, window)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("room_id", id).Msg("failed to get room usage")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, usage)
}

// GetDepartmentUsage aggregates usage over a department's rooms.
// @Summary Department usage
// @Tags Analytics
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Param department path string true "Department"
// @Param from query string false "Window start (RFC3339)"
// @Param to query string false "Window end (RFC3339)"
// @Success 200 {object} response.Data[dto.DepartmentUsageResponse] "Department usage"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/analytics/departments/{department} [get]
func (handler *Handler) GetDepartmentUsage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDepartmentUsage")
	defer scope.End()

	department := chi.URLParam(r, constant.RequestParamDepartment)

	window, err := dto.WindowFromRequest(r, timezone.Now())
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	usage, err := handler.service.DepartmentUsage(ctx, department, window)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("department", department).Msg("failed to get department usage")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, usage)
}

// GetUserStats returns booking counts for one user.
// @Summary User stats
// @Tags Analytics
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Param id path string true "User ID"
// @Success 200 {object} response.Data[dto.UserStatsResponse] "User stats"
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/analytics/users/{id} [get]
func (handler *Handler) GetUserStats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUserStats")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	stats, err := handler.service.UserStats(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("user_id", id).Msg("failed to get user stats")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, stats)
}
