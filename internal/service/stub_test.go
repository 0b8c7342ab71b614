package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/queue"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// memStore is an in-memory Transactor.  InTx serializes callers and
// restores the previous state when fn fails.
type memStore struct {
	mu           sync.Mutex
	rooms        map[uint64]model.Room
	reservations []model.Reservation
	nextID       uint64
	inserts      int
	payments     int
	failList     error
}

func newMemStore(rooms ...model.Room) *memStore {
	s := &memStore{rooms: map[uint64]model.Room{}, nextID: 100}
	for _, r := range rooms {
		s.rooms[r.ID] = r
	}
	return s
}

func (s *memStore) InTx(_ context.Context, fn func(repository.ReservationTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := append([]model.Reservation(nil), s.reservations...)
	inserts, payments, nextID := s.inserts, s.payments, s.nextID
	if err := fn(memTx{s}); err != nil {
		s.reservations, s.inserts, s.payments, s.nextID = snapshot, inserts, payments, nextID
		return err
	}
	return nil
}

// add seeds a reservation and returns its id.
func (s *memStore) add(r model.Reservation) uint64 {
	s.nextID++
	r.ID = s.nextID
	s.reservations = append(s.reservations, r)
	return r.ID
}

func (s *memStore) get(id uint64) model.Reservation {
	for _, r := range s.reservations {
		if r.ID == id {
			return r
		}
	}
	return model.Reservation{}
}

type memTx struct{ s *memStore }

func (t memTx) FindRoomForUpdate(_ context.Context, id uint64) (model.Room, error) {
	r, ok := t.s.rooms[id]
	if !ok {
		return model.Room{}, model.ErrRoomNotFound
	}
	return r, nil
}

func (t memTx) ListActiveForRoom(_ context.Context, roomID uint64) ([]model.Reservation, error) {
	if t.s.failList != nil {
		return nil, t.s.failList
	}
	var out []model.Reservation
	for _, r := range t.s.reservations {
		if r.RoomID != nil && *r.RoomID == roomID && r.IsActive() {
			out = append(out, r)
		}
	}
	return out, nil
}

func (t memTx) ListActiveLegacyByType(_ context.Context, roomType string) ([]model.Reservation, error) {
	var out []model.Reservation
	for _, r := range t.s.reservations {
		if r.RoomID == nil && model.NormalizeRoomType(r.RoomType) == roomType && r.IsActive() {
			out = append(out, r)
		}
	}
	return out, nil
}

func (t memTx) InsertReservation(_ context.Context, r *model.Reservation) error {
	t.s.nextID++
	r.ID = t.s.nextID
	r.CreatedAt = time.Now()
	t.s.reservations = append(t.s.reservations, *r)
	t.s.inserts++
	return nil
}

func (t memTx) GetReservationForUpdate(_ context.Context, id uint64) (model.Reservation, error) {
	for _, r := range t.s.reservations {
		if r.ID == id {
			return r, nil
		}
	}
	return model.Reservation{}, model.ErrReservationNotFound
}

func (t memTx) UpdateReservationStatus(_ context.Context, id uint64, status string) error {
	for i := range t.s.reservations {
		if t.s.reservations[i].ID == id {
			t.s.reservations[i].Status = status
			return nil
		}
	}
	return model.ErrReservationNotFound
}

func (t memTx) RecordPayment(_ context.Context, id uint64, method string, amount float64) error {
	for i := range t.s.reservations {
		if t.s.reservations[i].ID == id {
			t.s.reservations[i].Status = model.StatusPaid
			t.s.reservations[i].PaymentMethod = method
			t.s.reservations[i].AmountPaid = &amount
			t.s.payments++
			return nil
		}
	}
	return model.ErrReservationNotFound
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.ReservationEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev queue.ReservationEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

// memUsers is a map-backed UserStore.
type memUsers struct {
	byID    map[uint64]model.User
	nextID  uint64
	pwSets  int
	failPut error
}

func newMemUsers(users ...model.User) *memUsers {
	m := &memUsers{byID: map[uint64]model.User{}}
	for _, u := range users {
		m.byID[u.ID] = u
		if u.ID > m.nextID {
			m.nextID = u.ID
		}
	}
	return m
}

func (m *memUsers) Create(_ context.Context, u *model.User) error {
	for _, existing := range m.byID {
		if existing.Email == u.Email {
			return model.ErrEmailExists
		}
	}
	m.nextID++
	u.ID = m.nextID
	m.byID[u.ID] = *u
	return nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (model.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (m *memUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (m *memUsers) List(context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(m.byID))
	for _, u := range m.byID {
		out = append(out, u)
	}
	return out, nil
}

func (m *memUsers) Update(_ context.Context, u model.User) error {
	cur, ok := m.byID[u.ID]
	if !ok {
		return model.ErrUserNotFound
	}
	cur.FirstName, cur.LastName, cur.Email = u.FirstName, u.LastName, u.Email
	if u.Role != "" {
		cur.Role = u.Role
	}
	if u.Password != "" {
		cur.Password = u.Password
	}
	m.byID[u.ID] = cur
	return nil
}

func (m *memUsers) UpdatePassword(_ context.Context, id uint64, password string) error {
	if m.failPut != nil {
		return m.failPut
	}
	u, ok := m.byID[id]
	if !ok {
		return model.ErrUserNotFound
	}
	u.Password = password
	m.byID[id] = u
	m.pwSets++
	return nil
}

func (m *memUsers) Delete(_ context.Context, id uint64) error {
	if _, ok := m.byID[id]; !ok {
		return model.ErrUserNotFound
	}
	delete(m.byID, id)
	return nil
}

var errStorage = errors.New("storage down")
