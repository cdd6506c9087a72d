package memstore

import (
	"context"
	"roomify/infras/otel"
	bookingModel "roomify/internal/domains/booking/model"
	notificationModel "roomify/internal/domains/notification/model"
	roomModel "roomify/internal/domains/room/model"
	userModel "roomify/internal/domains/user/model"
	"roomify/shared/constant"
	"sync"

	"github.com/rs/zerolog/log"
)

// State holds every collection the engine owns.
type State struct {
	Rooms         *Table[roomModel.Room]
	Bookings      *Table[bookingModel.Booking]
	Users         *Table[userModel.User]
	Notifications *Table[notificationModel.Notification]
}

func newState() *State {
	return &State{
		Rooms:         NewTable[roomModel.Room](roomModel.EntityName),
		Bookings:      NewTable[bookingModel.Booking](bookingModel.EntityName),
		Users:         NewTable[userModel.User](userModel.EntityName),
		Notifications: NewTable[notificationModel.Notification](notificationModel.EntityName),
	}
}

func (s *State) fork(readOnly bool) *State {
	return &State{
		Rooms:         s.Rooms.fork(readOnly),
		Bookings:      s.Bookings.fork(readOnly),
		Users:         s.Users.fork(readOnly),
		Notifications: s.Notifications.fork(readOnly),
	}
}

// Store is the single owner of engine state. Readers share the lock, writers
// are serialized and work on a private copy that is swapped in on success.
type Store struct {
	mu    sync.RWMutex
	state *State
	otel  otel.Otel
}

func New(ot otel.Otel) *Store {
	return &Store{
		state: newState(),
		otel:  ot,
	}
}

// View runs fn against a read-only snapshot. fn must not retain the state
// after returning.
func (s *Store) View(ctx context.Context, fn func(state *State) error) (err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".View")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	return fn(s.state.fork(true))
}

// Update runs fn as one transaction. When fn returns an error nothing it did
// is kept.
func (s *Store) Update(ctx context.Context, fn func(tx *State) error) (err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.state.fork(false)
	if err = fn(tx); err != nil {
		log.Debug().Err(err).Msg("store transaction rolled back")

		return err
	}

	s.state = tx

	return nil
}
