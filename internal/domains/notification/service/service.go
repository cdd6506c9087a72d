package service

import (
	"context"
	"fmt"
	"roomify/infras/memstore"
	"roomify/infras/otel"
	"roomify/internal/domains/notification/model"
	"roomify/internal/domains/notification/model/dto"
	"roomify/permissions"
	"roomify/shared"
	"roomify/shared/constant"
	gDto "roomify/shared/dto"
	"roomify/shared/failure"
	gModel "roomify/shared/model"
	"roomify/shared/timezone"
	"slices"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Notification interface {
	// Append stamps and stores n inside an open transaction.
	Append(tx *memstore.State, n model.Notification) (model.Notification, error)
	Add(ctx context.Context, req dto.CreateNotificationRequest, callerID string) (dto.NotificationResponse, error)
	MarkAsRead(ctx context.Context, id, userID string) (dto.NotificationResponse, error)
	GetAll(ctx context.Context, userID string, req gDto.QueryParams) (dto.GetNotificationsResponse, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
}

type serviceImpl struct {
	store       *memstore.Store
	permissions *permissions.PermissionData
	otel        otel.Otel
}

func New(store *memstore.Store, perms *permissions.PermissionData, otel otel.Otel) Notification {
	return &serviceImpl{
		store:       store,
		permissions: perms,
		otel:        otel,
	}
}

func (s *serviceImpl) Append(tx *memstore.State, n model.Notification) (model.Notification, error) {
	now := timezone.Now()

	n.ID = uuid.NewString()
	n.Read = false
	n.Metadata = gModel.NewMetadata(constant.SystemUser, now)

	if err := tx.Notifications.Insert(n); err != nil {
		log.Error().Err(err).Str("userID", n.UserID).Msg("failed to append notification")

		return n, fmt.Errorf("failed to append notification: %w", err)
	}

	return n, nil
}

func (s *serviceImpl) Add(ctx context.Context, req dto.CreateNotificationRequest, callerID string) (res dto.NotificationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Add")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.store.Update(ctx, func(tx *memstore.State) error {
		caller, ok := tx.Users.Get(callerID)
		if !ok {
			return failure.UnidentifiedCaller
		}

		if !s.permissions.Allowed(permissions.NotificationCreate, caller.Role, false) {
			return failure.Forbidden(caller.Role + " cannot send notifications") // nolint:wrapcheck
		}

		if !tx.Users.Exist(req.UserID) {
			return failure.NotFound("user not found") // nolint:wrapcheck
		}

		if req.BookingID != constant.Empty && !tx.Bookings.Exist(req.BookingID) {
			return failure.NotFound("booking not found") // nolint:wrapcheck
		}

		n, err := s.Append(tx, req.ToModel())
		if err != nil {
			return err
		}

		res.FromModel(n)

		return nil
	})

	return res, err
}

// MarkAsRead sets the read flag. It never clears it, so repeating the call
// changes nothing.
func (s *serviceImpl) MarkAsRead(ctx context.Context, id, userID string) (res dto.NotificationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkAsRead")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("notification.id", id)

	err = s.store.Update(ctx, func(tx *memstore.State) error {
		n, ok := tx.Notifications.Get(id)
		if !ok {
			return failure.NotFound("notification not found") // nolint:wrapcheck
		}

		if n.UserID != userID {
			return failure.Forbidden("notification belongs to another user") // nolint:wrapcheck
		}

		if !n.Read {
			n.Read = true
			n.Touch(userID, timezone.Now())

			if err := tx.Notifications.Put(n); err != nil {
				log.Error().Err(err).Str("id", id).Msg("failed to mark notification as read")

				return fmt.Errorf("failed to mark notification as read: %w", err)
			}
		}

		res.FromModel(n)

		return nil
	})

	return res, err
}

func (s *serviceImpl) GetAll(ctx context.Context, userID string, req gDto.QueryParams) (res dto.GetNotificationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var (
		items  []model.Notification
		unread int
	)

	err = s.store.View(ctx, func(state *memstore.State) error {
		items = state.Notifications.Filter(func(n model.Notification) bool { return n.UserID == userID })
		unread = countUnread(state, userID)

		return nil
	})
	if err != nil {
		return res, err
	}

	if req.Descending() {
		slices.Reverse(items)
	}

	res.FromModels(shared.Paginate(items, req), unread, len(items), req.Limit)

	return res, nil
}

// UnreadCount is derived from the notifications on every call.
func (s *serviceImpl) UnreadCount(ctx context.Context, userID string) (count int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UnreadCount")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.store.View(ctx, func(state *memstore.State) error {
		count = countUnread(state, userID)

		return nil
	})

	return count, err
}

func countUnread(state *memstore.State, userID string) int {
	return state.Notifications.Count(func(n model.Notification) bool {
		return n.UserID == userID && !n.Read
	})
}
