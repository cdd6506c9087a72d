package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"cmp"
	"context"
	"roomify/infras/memstore"
	"roomify/infras/otel"
	"roomify/internal/domains/user/model"
	"roomify/internal/domains/user/model/dto"
	"roomify/shared"
	"roomify/shared/constant"
	gDto "roomify/shared/dto"
	"roomify/shared/failure"
	"slices"
	"strings"
)

type User interface {
	GetAll(ctx context.Context, req gDto.QueryParams, filter dto.UserFilter) (dto.GetUsersResponse, error)
	Get(ctx context.Context, id string) (dto.UserResponse, error)
}

type serviceImpl struct {
	store *memstore.Store
	otel  otel.Otel
}

func New(store *memstore.Store, otel otel.Otel) User {
	return &serviceImpl{
		store: store,
		otel:  otel,
	}
}

// GetAll lists the directory ordered by name.
func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter dto.UserFilter) (res dto.GetUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		"filter.role":       filter.Role,
		"filter.department": filter.Department,
	})

	var users []model.User

	err = s.store.View(ctx, func(state *memstore.State) error {
		for _, user := range state.Users.All() {
			if filter.Match(user) {
				users = append(users, user)
			}
		}

		return nil
	})
	if err != nil {
		return res, err
	}

	slices.SortStableFunc(users, func(a, b model.User) int {
		return cmp.Or(strings.Compare(a.Name, b.Name), strings.Compare(a.ID, b.ID))
	})

	if req.Descending() {
		slices.Reverse(users)
	}

	res.FromModels(shared.Paginate(users, req), len(users), req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.store.View(ctx, func(state *memstore.State) error {
		user, ok := state.Users.Get(id)
		if !ok {
			return failure.NotFound("user not found") // nolint:wrapcheck
		}

		res.FromModel(user)

		return nil
	})

	return res, err
}
