package user

import (
	"net/http"
	"roomify/infras/otel"
	"roomify/internal/domains/user/model/dto"
	"roomify/internal/domains/user/service"
	"roomify/shared"
	"roomify/shared/constant"
	gDto "roomify/shared/dto"
	"roomify/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.User
	otel    otel.Otel
}

func New(service service.User, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/users", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetUsers)
		routerGroup.Get("/me", handler.GetMe)
		routerGroup.Get("/{id}", handler.GetUserByID)
	})
}

// GetUsers retrieves the user directory.
// @Summary Get all users
// @Description Users ordered by name, optionally narrowed by role or department.
// @Tags User
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param role query string false "Filter by role (student, faculty, admin, hod)"
// @Param department query string false "Filter by department"
// @Success 200 {object} response.Data[dto.GetUsersResponse] "List of users"
// @Failure 401 {object} response.Error
// @Router /v1/users [get]
func (handler *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUsers")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter := dto.UserFilter{}
	filter.FromRequest(r)

	users, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get users")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, users)
}

// GetMe returns the calling user.
// @Summary Get the calling user
// @Tags User
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Success 200 {object} response.Data[dto.UserResponse] "Caller"
// @Failure 401 {object} response.Error
// @Router /v1/users/me [get]
func (handler *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMe")
	defer scope.End()

	user, err := handler.service.Get(ctx, shared.CallerID(ctx))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get caller")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, user)
}

// GetUserByID looks up a single user.
// @Summary Get a user by ID
// @Tags User
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Param id path string true "User ID"
// @Success 200 {object} response.Data[dto.UserResponse] "User"
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/users/{id} [get]
func (handler *Handler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUserByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	user, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("user_id", id).Msg("failed to get user by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, user)
}
