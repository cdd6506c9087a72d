package service_test

import (
	"context"
	"roomify/config"
	"roomify/infras/memstore"
	"roomify/infras/otel/mocks"
	"roomify/internal/domains/booking/model"
	"roomify/internal/domains/booking/model/dto"
	"roomify/internal/domains/booking/service"
	notificationModel "roomify/internal/domains/notification/model"
	notificationService "roomify/internal/domains/notification/service"
	"roomify/internal/events"
	eventMocks "roomify/internal/events/mocks"
	"roomify/internal/seed"
	"roomify/permissions"
	gDto "roomify/shared/dto"
	"roomify/shared/failure"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const conferenceRoomA = "room-1"

type fixture struct {
	store         *memstore.Store
	svc           service.Booking
	notifications notificationService.Notification
	cfg           *config.Config
}

func newFixture(t *testing.T, publisher events.Publisher) fixture {
	t.Helper()

	ot := mocks.NewOtel()
	cfg := &config.Config{}
	store := memstore.New(ot)
	require.NoError(t, seed.Load(context.Background(), store, cfg))

	perms := permissions.Get()
	notifications := notificationService.New(store, perms, ot)

	return fixture{
		store:         store,
		svc:           service.New(store, notifications, perms, publisher, cfg, ot),
		notifications: notifications,
		cfg:           cfg,
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2024, 1, 1, hour, minute, 0, 0, time.UTC)
}

func request(start, end time.Time) dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		RoomID: conferenceRoomA,
		Title:  "Thesis defense",
		Start:  start,
		End:    end,
	}
}

func (f fixture) snapshot(t *testing.T) ([]model.Booking, []notificationModel.Notification) {
	t.Helper()

	var (
		bookings      []model.Booking
		notifications []notificationModel.Notification
	)

	require.NoError(t, f.store.View(context.Background(), func(state *memstore.State) error {
		bookings = state.Bookings.All()
		notifications = state.Notifications.All()

		return nil
	}))

	return bookings, notifications
}

func (f fixture) notificationsFor(t *testing.T, userID string) []notificationModel.Notification {
	t.Helper()

	_, all := f.snapshot(t)
	res := []notificationModel.Notification{}

	for _, n := range all {
		if n.UserID == userID {
			res = append(res, n)
		}
	}

	return res
}

func TestBookingService_EndToEnd(t *testing.T) {
	f := newFixture(t, events.NewNoopPublisher())
	ctx := context.Background()

	created, err := f.svc.Create(ctx, request(at(10, 0), at(11, 0)), "user1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, created.Status)
	assert.Len(t, f.notificationsFor(t, "user1"), 1)

	approved, err := f.svc.Approve(ctx, created.ID, "fac1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, approved.Status)
	assert.Equal(t, "fac1", approved.ApprovedBy)
	assert.NotEmpty(t, approved.ApprovedAt)

	notes := f.notificationsFor(t, "user1")
	require.Len(t, notes, 2)
	assert.Equal(t, notificationModel.TypeBookingCreated, notes[0].Type)
	assert.Equal(t, notificationModel.TypeBookingApproved, notes[1].Type)
	assert.False(t, notes[1].Read)
	assert.Contains(t, notes[1].Message, "Conference Room A")
	assert.Contains(t, notes[1].Message, "Thesis defense")

	availability, err := f.svc.CheckAvailability(ctx, conferenceRoomA, at(10, 30), at(11, 30))
	require.NoError(t, err)
	assert.False(t, availability.Available)
	require.Len(t, availability.Conflicts, 1)
	assert.Equal(t, created.ID, availability.Conflicts[0].ID)

	_, err = f.svc.Create(ctx, request(at(10, 30), at(11, 30)), "user2")
	assert.True(t, failure.IsConflict(err))
}

func TestBookingService_TouchingIntervalsDoNotOverlap(t *testing.T) {
	f := newFixture(t, events.NewNoopPublisher())
	ctx := context.Background()

	existing, err := f.svc.Create(ctx, request(at(11, 0), at(12, 0)), "user1")
	require.NoError(t, err)
	_, err = f.svc.Approve(ctx, existing.ID, "fac1")
	require.NoError(t, err)

	res, err := f.svc.CheckAvailability(ctx, conferenceRoomA, at(10, 0), at(11, 0))
	require.NoError(t, err)
	assert.True(t, res.Available)

	res, err = f.svc.CheckAvailability(ctx, conferenceRoomA, at(12, 0), at(13, 0))
	require.NoError(t, err)
	assert.True(t, res.Available)

	_, err = f.svc.Create(ctx, request(at(10, 0), at(11, 0)), "user2")
	assert.NoError(t, err)
}

func TestBookingService_OnlyApprovedBookingsBlock(t *testing.T) {
	f := newFixture(t, events.NewNoopPublisher())
	ctx := context.Background()

	pending, err := f.svc.Create(ctx, request(at(9, 0), at(10, 0)), "user1")
	require.NoError(t, err)

	rejected, err := f.svc.Create(ctx, request(at(9, 0), at(10, 0)), "user2")
	require.NoError(t, err)
	_, err = f.svc.Reject(ctx, rejected.ID, "hod")
	require.NoError(t, err)

	cancelled, err := f.svc.Create(ctx, request(at(9, 0), at(10, 0)), "user2")
	require.NoError(t, err)
	_, err = f.svc.Cancel(ctx, cancelled.ID, "user2")
	require.NoError(t, err)

	res, err := f.svc.CheckAvailability(ctx, conferenceRoomA, at(9, 0), at(10, 0))
	require.NoError(t, err)
	assert.True(t, res.Available)
	assert.Empty(t, res.Conflicts)
	assert.Equal(t, model.StatusPending, pending.Status)
}

func TestBookingService_CheckAvailabilityErrors(t *testing.T) {
	f := newFixture(t, events.NewNoopPublisher())
	ctx := context.Background()

	_, err := f.svc.CheckAvailability(ctx, conferenceRoomA, at(11, 0), at(10, 0))
	assert.True(t, failure.IsValidation(err))

	_, err = f.svc.CheckAvailability(ctx, conferenceRoomA, at(10, 0), at(10, 0))
	assert.True(t, failure.IsValidation(err))

	res, err := f.svc.CheckAvailability(ctx, "room-404", at(10, 0), at(11, 0))
	assert.True(t, failure.IsNotFound(err))
	assert.True(t, res.Available)
}

func TestBookingService_CreateValidation(t *testing.T) {
	f := newFixture(t, events.NewNoopPublisher())
	f.cfg.Booking.MaxDurationHours = 4
	ctx := context.Background()

	tests := []struct {
		name        string
		req         dto.CreateBookingRequest
		requesterID string
		wantErr     func(error) bool
	}{
		{name: "end before start", req: request(at(11, 0), at(10, 0)), requesterID: "user1", wantErr: failure.IsValidation},
		{name: "empty interval", req: request(at(10, 0), at(10, 0)), requesterID: "user1", wantErr: failure.IsValidation},
		{name: "blank title", req: dto.CreateBookingRequest{RoomID: conferenceRoomA, Title: "  ", Start: at(10, 0), End: at(11, 0)}, requesterID: "user1", wantErr: failure.IsValidation},
		{name: "unknown type", req: dto.CreateBookingRequest{RoomID: conferenceRoomA, Title: "x", Type: "party", Start: at(10, 0), End: at(11, 0)}, requesterID: "user1", wantErr: failure.IsValidation},
		{name: "too long", req: request(at(8, 0), at(13, 0)), requesterID: "user1", wantErr: failure.IsValidation},
		{name: "unknown room", req: dto.CreateBookingRequest{RoomID: "room-404", Title: "x", Start: at(10, 0), End: at(11, 0)}, requesterID: "user1", wantErr: failure.IsNotFound},
		{name: "room in maintenance", req: dto.CreateBookingRequest{RoomID: "room-4", Title: "x", Start: at(10, 0), End: at(11, 0)}, requesterID: "user1", wantErr: failure.IsConflict},
		{name: "unknown requester", req: request(at(10, 0), at(11, 0)), requesterID: "ghost", wantErr: func(err error) bool { return failure.GetCode(err) == 401 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, tt.req, tt.requesterID)
			assert.True(t, tt.wantErr(err), "unexpected error %v", err)
		})
	}

	bookings, notifications := f.snapshot(t)
	assert.Empty(t, bookings)
	assert.Empty(t, notifications)
}

func TestBookingService_CreateDefaultsType(t *testing.T) {
	f := newFixture(t, events.NewNoopPublisher())

	res, err := f.svc.Create(context.Background(), request(at(10, 0), at(11, 0)), "user1")
	require.NoError(t, err)

	assert.Equal(t, model.TypeRegular, res.Type)
	assert.Equal(t, "user1", res.RequesterID)
	assert.NotEmpty(t, res.ID)
}

func TestBookingService_InvalidTransitions(t *testing.T) {
	f := newFixture(t, events.NewNoopPublisher())
	ctx := context.Background()

	approved, err := f.svc.Create(ctx, request(at(10, 0), at(11, 0)), "user1")
	require.NoError(t, err)
	_, err = f.svc.Approve(ctx, approved.ID, "fac1")
	require.NoError(t, err)

	cancelled, err := f.svc.Create(ctx, request(at(13, 0), at(14, 0)), "user1")
	require.NoError(t, err)
	_, err = f.svc.Cancel(ctx, cancelled.ID, "user1")
	require.NoError(t, err)

	rejected, err := f.svc.Create(ctx, request(at(15, 0), at(16, 0)), "user1")
	require.NoError(t, err)
	_, err = f.svc.Reject(ctx, rejected.ID, "fac1")
	require.NoError(t, err)

	pending, err := f.svc.Create(ctx, request(at(17, 0), at(18, 0)), "user1")
	require.NoError(t, err)

	tests := []struct {
		name string
		call func() error
	}{
		{name: "approve approved", call: func() error { _, err := f.svc.Approve(ctx, approved.ID, "fac1"); return err }},
		{name: "reject approved", call: func() error { _, err := f.svc.Reject(ctx, approved.ID, "fac1"); return err }},
		{name: "approve after cancel", call: func() error { _, err := f.svc.Approve(ctx, cancelled.ID, "fac1"); return err }},
		{name: "cancel cancelled", call: func() error { _, err := f.svc.Cancel(ctx, cancelled.ID, "user1"); return err }},
		{name: "cancel rejected", call: func() error { _, err := f.svc.Cancel(ctx, rejected.ID, "user1"); return err }},
		{name: "check in pending", call: func() error { _, err := f.svc.CheckIn(ctx, pending.ID, "user1"); return err }},
		{name: "check in rejected", call: func() error { _, err := f.svc.CheckIn(ctx, rejected.ID, "user1"); return err }},
		{name: "check out before check in", call: func() error { _, err := f.svc.CheckOut(ctx, approved.ID, "user1"); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before, beforeNotes := f.snapshot(t)

			err := tt.call()
			assert.True(t, failure.IsInvalidTransition(err), "unexpected error %v", err)

			after, afterNotes := f.snapshot(t)
			assert.Equal(t, before, after)
			assert.Equal(t, beforeNotes, afterNotes)
		})
	}
}

func TestBookingService_CheckInAndOut(t *testing.T) {
	f := newFixture(t, events.NewNoopPublisher())
	ctx := context.Background()

	booking, err := f.svc.Create(ctx, request(at(10, 0), at(11, 0)), "user1")
	require.NoError(t, err)
	_, err = f.svc.Approve(ctx, booking.ID, "fac1")
	require.NoError(t, err)

	in, err := f.svc.CheckIn(ctx, booking.ID, "fac1")
	require.NoError(t, err)
	require.NotNil(t, in.CheckIn)
	assert.Equal(t, "fac1", in.CheckIn.VerifiedBy)
	assert.Nil(t, in.CheckOut)

	_, err = f.svc.CheckIn(ctx, booking.ID, "fac1")
	assert.True(t, failure.IsInvalidTransition(err))

	out, err := f.svc.CheckOut(ctx, booking.ID, "user1")
	require.NoError(t, err)
	require.NotNil(t, out.CheckOut)
	assert.Equal(t, "user1", out.CheckOut.VerifiedBy)
	assert.Equal(t, model.StatusApproved, out.Status)

	_, err = f.svc.CheckOut(ctx, booking.ID, "user1")
	assert.True(t, failure.IsInvalidTransition(err))

	_, err = f.svc.Cancel(ctx, booking.ID, "user1")
	assert.True(t, failure.IsInvalidTransition(err))

	notes := f.notificationsFor(t, "user1")
	require.Len(t, notes, 4)
	assert.Equal(t, notificationModel.TypeBookingCheckedIn, notes[2].Type)
	assert.Equal(t, notificationModel.TypeBookingCheckedOut, notes[3].Type)
}

func TestBookingService_CancelAfterCheckIn(t *testing.T) {
	f := newFixture(t, events.NewNoopPublisher())
	ctx := context.Background()

	booking, err := f.svc.Create(ctx, request(at(10, 0), at(11, 0)), "user1")
	require.NoError(t, err)
	_, err = f.svc.Approve(ctx, booking.ID, "fac1")
	require.NoError(t, err)
	_, err = f.svc.CheckIn(ctx, booking.ID, "user1")
	require.NoError(t, err)

	res, err := f.svc.Cancel(ctx, booking.ID, "user1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, res.Status)

	availability, err := f.svc.CheckAvailability(ctx, conferenceRoomA, at(10, 0), at(11, 0))
	require.NoError(t, err)
	assert.True(t, availability.Available)
}

func TestBookingService_Authorization(t *testing.T) {
	f := newFixture(t, events.NewNoopPublisher())
	ctx := context.Background()

	booking, err := f.svc.Create(ctx, request(at(10, 0), at(11, 0)), "user1")
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, booking.ID, "user1")
	assert.True(t, failure.IsForbidden(err))

	_, err = f.svc.Reject(ctx, booking.ID, "user2")
	assert.True(t, failure.IsForbidden(err))

	_, err = f.svc.Cancel(ctx, booking.ID, "user2")
	assert.True(t, failure.IsForbidden(err))

	_, err = f.svc.Approve(ctx, booking.ID, "ghost")
	assert.Equal(t, 401, failure.GetCode(err))

	_, err = f.svc.Approve(ctx, "missing", "fac1")
	assert.True(t, failure.IsNotFound(err))

	assert.Len(t, f.notificationsFor(t, "user1"), 1)

	res, err := f.svc.Cancel(ctx, booking.ID, "user1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, res.Status)
	assert.Equal(t, "user1", res.ModifiedBy)
}

func TestBookingService_ApproveRejectsOverlap(t *testing.T) {
	f := newFixture(t, events.NewNoopPublisher())
	ctx := context.Background()

	first, err := f.svc.Create(ctx, request(at(10, 0), at(11, 0)), "user1")
	require.NoError(t, err)
	second, err := f.svc.Create(ctx, request(at(10, 30), at(11, 30)), "user2")
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, first.ID, "fac1")
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, second.ID, "fac1")
	assert.True(t, failure.IsConflict(err))

	got, err := f.svc.Get(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, got.Status)
	assert.Len(t, f.notificationsFor(t, "user2"), 1)
}

func TestBookingService_ConcurrentCreateAndApprove(t *testing.T) {
	f := newFixture(t, events.NewNoopPublisher())
	ctx := context.Background()

	ids := make([]string, 10)
	for i := range ids {
		res, err := f.svc.Create(ctx, request(at(10, 0), at(11, 0)), "user1")
		require.NoError(t, err)
		ids[i] = res.ID
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		approved int
	)

	for _, id := range ids {
		wg.Add(1)

		go func(id string) {
			defer wg.Done()

			if _, err := f.svc.Approve(ctx, id, "fac1"); err == nil {
				mu.Lock()
				approved++
				mu.Unlock()
			}
		}(id)
	}

	wg.Wait()

	assert.Equal(t, 1, approved)
}

func TestBookingService_GetAll(t *testing.T) {
	f := newFixture(t, events.NewNoopPublisher())
	ctx := context.Background()

	late, err := f.svc.Create(ctx, request(at(15, 0), at(16, 0)), "user1")
	require.NoError(t, err)
	early, err := f.svc.Create(ctx, request(at(8, 0), at(9, 0)), "user2")
	require.NoError(t, err)
	_, err = f.svc.Approve(ctx, early.ID, "fac1")
	require.NoError(t, err)

	res, err := f.svc.GetAll(ctx, gDto.QueryParams{}, dto.BookingFilter{})
	require.NoError(t, err)
	require.Len(t, res.Bookings, 2)
	assert.Equal(t, early.ID, res.Bookings[0].ID)
	assert.Equal(t, late.ID, res.Bookings[1].ID)

	res, err = f.svc.GetAll(ctx, gDto.QueryParams{}, dto.BookingFilter{RequesterID: "user1"})
	require.NoError(t, err)
	require.Len(t, res.Bookings, 1)
	assert.Equal(t, late.ID, res.Bookings[0].ID)

	res, err = f.svc.GetAll(ctx, gDto.QueryParams{}, dto.BookingFilter{Status: model.StatusApproved})
	require.NoError(t, err)
	require.Len(t, res.Bookings, 1)
	assert.Equal(t, early.ID, res.Bookings[0].ID)

	res, err = f.svc.GetAll(ctx, gDto.QueryParams{Page: 1, Limit: 1, SortDir: gDto.SortDirDesc}, dto.BookingFilter{})
	require.NoError(t, err)
	require.Len(t, res.Bookings, 1)
	assert.Equal(t, late.ID, res.Bookings[0].ID)
	assert.Equal(t, 2, res.TotalPage)
}

func TestBookingService_PublishesAfterCommit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	publisher := eventMocks.NewMockPublisher(ctrl)
	f := newFixture(t, publisher)
	ctx := context.Background()

	var published []events.Event
	publisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ev events.Event) error {
			published = append(published, ev)

			return assert.AnError
		}).
		Times(2)

	booking, err := f.svc.Create(ctx, request(at(10, 0), at(11, 0)), "user1")
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, booking.ID, "user1")
	require.Error(t, err)

	_, err = f.svc.Approve(ctx, booking.ID, "fac1")
	require.NoError(t, err)

	require.Len(t, published, 2)
	assert.Equal(t, events.TypeBookingCreated, published[0].Type)
	assert.Equal(t, events.TypeBookingApproved, published[1].Type)
	assert.Equal(t, "fac1", published[1].ActorID)

	got, err := f.svc.Get(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, got.Status)
}
