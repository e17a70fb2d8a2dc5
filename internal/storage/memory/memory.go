// Package memory is a mutex-guarded in-memory store with the same
// semantics as the postgres driver. It backs local development and the
// invariant tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"ticketgate/internal/models"
	"ticketgate/internal/storage"
)

type event struct {
	models.Event
	coOrganizers map[string]struct{}
}

type registration struct {
	models.Registration
}

type Storage struct {
	mu sync.RWMutex

	users         map[string]*models.User // by id
	usernames     map[string]string       // username -> id
	events        map[string]*event
	registrations map[string][]*registration // by event id
	revoked       map[string]time.Time       // token -> revoked at
}

func New() *Storage {
	return &Storage{
		users:         make(map[string]*models.User),
		usernames:     make(map[string]string),
		events:        make(map[string]*event),
		registrations: make(map[string][]*registration),
		revoked:       make(map[string]time.Time),
	}
}

func cloneUser(u *models.User) *models.User {
	cp := *u
	return &cp
}

func (e *event) clone() *models.Event {
	cp := e.Event
	cp.CoOrganizers = make([]string, 0, len(e.coOrganizers))
	for id := range e.coOrganizers {
		cp.CoOrganizers = append(cp.CoOrganizers, id)
	}
	sort.Strings(cp.CoOrganizers)
	return &cp
}

func (s *Storage) CreateUser(_ context.Context, username, passwordHash string, role models.Role) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.usernames[username]; ok {
		return nil, storage.ErrUserExists
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	s.users[user.ID] = user
	s.usernames[username] = user.ID

	return cloneUser(user), nil
}

func (s *Storage) UserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usernames[username]
	if !ok {
		return nil, storage.ErrUserNotFound
	}

	return cloneUser(s.users[id]), nil
}

func (s *Storage) UserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, storage.ErrUserNotFound
	}

	return cloneUser(user), nil
}

func (s *Storage) CreateEvent(_ context.Context, ev models.Event) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev.ID = uuid.NewString()
	ev.TicketsSold = 0
	ev.CoOrganizers = nil

	stored := &event{
		Event:        ev,
		coOrganizers: make(map[string]struct{}),
	}
	s.events[ev.ID] = stored

	return stored.clone(), nil
}

func (s *Storage) Event(_ context.Context, id string) (*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ev, ok := s.events[id]
	if !ok {
		return nil, storage.ErrEventNotFound
	}

	return ev.clone(), nil
}

func (s *Storage) AllEvents(_ context.Context) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]models.Event, 0, len(s.events))
	for _, ev := range s.events {
		events = append(events, *ev.clone())
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})

	return events, nil
}

// isManager reports whether the user is the creator or a co-organizer.
// Callers must hold the lock.
func (e *event) isManager(userID string) bool {
	if e.CreatedBy == userID {
		return true
	}
	_, ok := e.coOrganizers[userID]
	return ok
}

func (s *Storage) UpdateEvent(_ context.Context, eventID, requesterID string, upd storage.EventUpdate) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, ok := s.events[eventID]
	if !ok {
		return nil, storage.ErrEventNotFound
	}

	if !ev.isManager(requesterID) {
		return nil, storage.ErrNotEventManager
	}

	if upd.Capacity != nil && *upd.Capacity < ev.TicketsSold {
		return nil, storage.ErrCapacityTooLow
	}

	if upd.Name != nil {
		ev.Name = *upd.Name
	}
	if upd.Description != nil {
		ev.Description = *upd.Description
	}
	if upd.Date != nil {
		ev.Date = *upd.Date
	}
	if upd.Price != nil {
		ev.Price = *upd.Price
	}
	if upd.Capacity != nil {
		ev.Capacity = *upd.Capacity
	}

	return ev.clone(), nil
}

// demoteIfUndelegated resets a co-organizer back to attendee unless some
// other event still delegates to them. Callers must hold the lock.
func (s *Storage) demoteIfUndelegated(userID string) {
	for _, ev := range s.events {
		if _, ok := ev.coOrganizers[userID]; ok {
			return
		}
	}

	if user, ok := s.users[userID]; ok && user.Role == models.RoleCoOrganizer {
		user.Role = models.RoleAttendee
	}
}

func (s *Storage) DeleteEvent(_ context.Context, eventID, requesterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, ok := s.events[eventID]
	if !ok {
		return storage.ErrEventNotFound
	}

	if ev.CreatedBy != requesterID {
		return storage.ErrNotEventManager
	}

	coOrganizers := make([]string, 0, len(ev.coOrganizers))
	for id := range ev.coOrganizers {
		coOrganizers = append(coOrganizers, id)
	}

	delete(s.events, eventID)
	delete(s.registrations, eventID)

	for _, id := range coOrganizers {
		s.demoteIfUndelegated(id)
	}

	return nil
}

func (s *Storage) PurchaseTicket(_ context.Context, eventID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, ok := s.events[eventID]
	if !ok {
		return storage.ErrEventNotFound
	}

	if ev.TicketsSold >= ev.Capacity {
		return storage.ErrSoldOut
	}

	for _, reg := range s.registrations[eventID] {
		if reg.UserID == userID && reg.Status == models.RegistrationConfirmed {
			return storage.ErrAlreadyRegistered
		}
	}

	now := time.Now().UTC()
	s.registrations[eventID] = append(s.registrations[eventID], &registration{
		Registration: models.Registration{
			ID:          uuid.NewString(),
			EventID:     eventID,
			UserID:      userID,
			Status:      models.RegistrationConfirmed,
			ConfirmedAt: &now,
		},
	})
	ev.TicketsSold++

	return nil
}

func (s *Storage) CancelTicket(_ context.Context, eventID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, ok := s.events[eventID]
	if !ok {
		return storage.ErrNotRegistered
	}

	for _, reg := range s.registrations[eventID] {
		if reg.UserID == userID && reg.Status == models.RegistrationConfirmed {
			now := time.Now().UTC()
			reg.Status = models.RegistrationCancelled
			reg.CancelledAt = &now
			if ev.TicketsSold > 0 {
				ev.TicketsSold--
			}
			return nil
		}
	}

	return storage.ErrNotRegistered
}

func (s *Storage) TicketsByUser(_ context.Context, userID string) ([]storage.TicketView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var tickets []storage.TicketView
	for eventID, regs := range s.registrations {
		ev, ok := s.events[eventID]
		if !ok {
			continue
		}
		for _, reg := range regs {
			if reg.UserID == userID && reg.Status == models.RegistrationConfirmed {
				tickets = append(tickets, storage.TicketView{
					EventID:     eventID,
					Name:        ev.Name,
					Date:        ev.Date,
					Price:       ev.Price,
					ConfirmedAt: *reg.ConfirmedAt,
				})
			}
		}
	}

	sort.Slice(tickets, func(i, j int) bool {
		return tickets[i].ConfirmedAt.After(tickets[j].ConfirmedAt)
	})

	return tickets, nil
}

func (s *Storage) AttendeesByEvent(_ context.Context, eventID, requesterID string) ([]storage.AttendeeView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ev, ok := s.events[eventID]
	if !ok {
		return nil, storage.ErrEventNotFound
	}

	if !ev.isManager(requesterID) {
		return nil, storage.ErrNotEventManager
	}

	var attendees []storage.AttendeeView
	for _, reg := range s.registrations[eventID] {
		if reg.Status != models.RegistrationConfirmed {
			continue
		}
		username := ""
		if user, ok := s.users[reg.UserID]; ok {
			username = user.Username
		}
		attendees = append(attendees, storage.AttendeeView{
			UserID:      reg.UserID,
			Username:    username,
			ConfirmedAt: *reg.ConfirmedAt,
		})
	}

	sort.Slice(attendees, func(i, j int) bool {
		return attendees[i].ConfirmedAt.Before(attendees[j].ConfirmedAt)
	})

	return attendees, nil
}

func (s *Storage) SalesByOrganizer(_ context.Context, organizerID string) ([]storage.EventSales, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type dated struct {
		sales storage.EventSales
		date  time.Time
	}

	var rows []dated
	for _, ev := range s.events {
		if ev.CreatedBy != organizerID {
			continue
		}
		rows = append(rows, dated{
			sales: storage.EventSales{
				EventID:     ev.ID,
				Name:        ev.Name,
				TicketsSold: ev.TicketsSold,
				Revenue:     float64(ev.TicketsSold) * ev.Price,
			},
			date: ev.Date,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].date.Before(rows[j].date)
	})

	sales := make([]storage.EventSales, 0, len(rows))
	for _, row := range rows {
		sales = append(sales, row.sales)
	}

	return sales, nil
}

func (s *Storage) AssignCoOrganizer(_ context.Context, eventID, requesterID, targetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, ok := s.events[eventID]
	if !ok {
		return storage.ErrEventNotFound
	}

	if !ev.isManager(requesterID) {
		return storage.ErrNotEventManager
	}

	target, ok := s.users[targetID]
	if !ok {
		return storage.ErrUserNotFound
	}

	if targetID == ev.CreatedBy {
		return storage.ErrAlreadyCoOrganizer
	}
	if _, ok := ev.coOrganizers[targetID]; ok {
		return storage.ErrAlreadyCoOrganizer
	}

	ev.coOrganizers[targetID] = struct{}{}
	if target.Role == models.RoleAttendee {
		target.Role = models.RoleCoOrganizer
	}

	return nil
}

func (s *Storage) RemoveCoOrganizer(_ context.Context, eventID, requesterID, targetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, ok := s.events[eventID]
	if !ok {
		return storage.ErrEventNotFound
	}

	if !ev.isManager(requesterID) {
		return storage.ErrNotEventManager
	}

	if _, ok := s.users[targetID]; !ok {
		return storage.ErrUserNotFound
	}

	if _, ok := ev.coOrganizers[targetID]; !ok {
		return storage.ErrNotCoOrganizer
	}

	delete(ev.coOrganizers, targetID)
	s.demoteIfUndelegated(targetID)

	return nil
}

func (s *Storage) RevokeToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.revoked[token]; !ok {
		s.revoked[token] = time.Now().UTC()
	}

	return nil
}

func (s *Storage) IsTokenRevoked(_ context.Context, token string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.revoked[token]

	return ok, nil
}

func (s *Storage) PruneRevokedTokens(_ context.Context, olderThan time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pruned int64
	for token, at := range s.revoked {
		if at.Before(olderThan) {
			delete(s.revoked, token)
			pruned++
		}
	}

	return pruned, nil
}
