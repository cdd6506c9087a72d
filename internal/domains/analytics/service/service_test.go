package service_test

import (
	"context"
	"roomify/config"
	"roomify/infras/memstore"
	"roomify/infras/otel/mocks"
	"roomify/internal/domains/analytics/model"
	"roomify/internal/domains/analytics/service"
	bookingModel "roomify/internal/domains/booking/model"
	"roomify/internal/seed"
	"roomify/shared/failure"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*memstore.Store, service.Analytics) {
	t.Helper()

	store := memstore.New(mocks.NewOtel())
	require.NoError(t, seed.Load(context.Background(), store, &config.Config{}))

	return store, service.New(store, mocks.NewOtel())
}

func TestAnalyticsService_ReflectsCurrentState(t *testing.T) {
	store, svc := newService(t)
	ctx := context.Background()

	before, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Zero(t, before.TotalBookings)
	assert.Equal(t, 4, before.TotalRooms)
	assert.Equal(t, 3, before.AvailableRooms)

	start := time.Now().Add(-30 * time.Minute)
	require.NoError(t, store.Update(ctx, func(tx *memstore.State) error {
		return tx.Bookings.Insert(bookingModel.Booking{
			ID:          "b-1",
			RoomID:      "room-1",
			RequesterID: "user1",
			Start:       start,
			End:         start.Add(time.Hour),
			Status:      bookingModel.StatusApproved,
		})
	}))

	after, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, after.TotalBookings)
	assert.Equal(t, 1, after.ApprovedBookings)
	assert.Equal(t, 2, after.AvailableRooms)
	require.Len(t, after.RecentBookings, 1)

	window := model.Window{From: start.Add(-time.Hour), To: start.Add(3 * time.Hour)}
	usage, err := svc.RoomUsage(ctx, "room-1", window)
	require.NoError(t, err)
	assert.Equal(t, 1, usage.Bookings)
	assert.InDelta(t, 0.25, usage.Utilization, 1e-9)

	dept, err := svc.DepartmentUsage(ctx, "Computer Science", window)
	require.NoError(t, err)
	assert.Equal(t, 1, dept.Bookings)

	stats, err := svc.UserStats(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Approved)
	assert.InDelta(t, 1.0, stats.Hours, 1e-9)
}

func TestAnalyticsService_NotFound(t *testing.T) {
	_, svc := newService(t)
	ctx := context.Background()
	window := model.Window{From: time.Now().Add(-time.Hour), To: time.Now()}

	_, err := svc.RoomUsage(ctx, "room-404", window)
	assert.True(t, failure.IsNotFound(err))

	_, err = svc.DepartmentUsage(ctx, "Astrology", window)
	assert.True(t, failure.IsNotFound(err))

	_, err = svc.UserStats(ctx, "ghost")
	assert.True(t, failure.IsNotFound(err))
}
