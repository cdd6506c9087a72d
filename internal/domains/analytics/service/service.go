package service

import (
	"context"
	"roomify/infras/memstore"
	"roomify/infras/otel"
	"roomify/internal/domains/analytics/model"
	"roomify/internal/domains/analytics/model/dto"
	roomModel "roomify/internal/domains/room/model"
	"roomify/shared/constant"
	"roomify/shared/failure"
	"roomify/shared/timezone"
)

// Analytics serves read-side projections. Every figure is computed from a
// fresh snapshot; nothing here is stored.
type Analytics interface {
	Summary(ctx context.Context) (dto.SummaryResponse, error)
	RoomUsage(ctx context.Context, roomID string, window model.Window) (dto.RoomUsageResponse, error)
	DepartmentUsage(ctx context.Context, department string, window model.Window) (dto.DepartmentUsageResponse, error)
	UserStats(ctx context.Context, userID string) (dto.UserStatsResponse, error)
}

type serviceImpl struct {
	store *memstore.Store
	otel  otel.Otel
}

func New(store *memstore.Store, otel otel.Otel) Analytics {
	return &serviceImpl{
		store: store,
		otel:  otel,
	}
}

func (s *serviceImpl) Summary(ctx context.Context) (res dto.SummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Summary")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.store.View(ctx, func(state *memstore.State) error {
		res.FromModel(model.Summarize(state.Rooms.All(), state.Bookings.All(), timezone.Now(), timezone.GetLocation()))

		return nil
	})

	return res, err
}

func (s *serviceImpl) RoomUsage(ctx context.Context, roomID string, window model.Window) (res dto.RoomUsageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RoomUsage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.store.View(ctx, func(state *memstore.State) error {
		room, ok := state.Rooms.Get(roomID)
		if !ok {
			return failure.NotFound("room not found") // nolint:wrapcheck
		}

		res.FromModel(model.ProjectRoomUsage(room, state.Bookings.All(), window))

		return nil
	})

	return res, err
}

func (s *serviceImpl) DepartmentUsage(ctx context.Context, department string, window model.Window) (res dto.DepartmentUsageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DepartmentUsage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.store.View(ctx, func(state *memstore.State) error {
		rooms := state.Rooms.Filter(func(r roomModel.Room) bool { return r.Department == department })
		if len(rooms) == 0 {
			return failure.NotFound("department has no rooms") // nolint:wrapcheck
		}

		res.FromModel(model.ProjectDepartmentUsage(department, rooms, state.Bookings.All(), window))

		return nil
	})

	return res, err
}

func (s *serviceImpl) UserStats(ctx context.Context, userID string) (res dto.UserStatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UserStats")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.store.View(ctx, func(state *memstore.State) error {
		if !state.Users.Exist(userID) {
			return failure.NotFound("user not found") // nolint:wrapcheck
		}

		res.FromModel(model.ProjectUserStats(userID, state.Bookings.All()))

		return nil
	})

	return res, err
}
