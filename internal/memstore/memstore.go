// Package memstore はPostgreSQLとRedisの代わりに使うメモリ上のストアです。
// ローカルでの起動とテストで使います。
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"submitserver/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Store は database.Store と同じ操作をメモリ上で行います。
type Store struct {
	mu           sync.RWMutex
	nextID       uint
	events       map[uint]models.Event
	submissions  map[uint]models.GameSubmission
	availability map[uint]models.EventAvailability
	users        map[uint]models.User
	now          func() time.Time
}

func New() *Store {
	return &Store{
		events:       map[uint]models.Event{},
		submissions:  map[uint]models.GameSubmission{},
		availability: map[uint]models.EventAvailability{},
		users:        map[uint]models.User{},
		now:          time.Now,
	}
}

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

func cloneSubmission(sub models.GameSubmission) models.GameSubmission {
	sub.Categories = append([]models.Category(nil), sub.Categories...)
	sub.User = nil
	return sub
}

// Events

func (s *Store) ListEvents(ctx context.Context, includeHidden bool) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events := make([]models.Event, 0, len(s.events))
	for _, e := range s.events {
		if includeHidden || e.Visible {
			events = append(events, e)
		}
	}
	sort.Slice(events, func(i, j int) bool {
		if !events[i].EventStart.Equal(events[j].EventStart) {
			return events[i].EventStart.Before(events[j].EventStart)
		}
		return events[i].ID < events[j].ID
	})
	return events, nil
}

func (s *Store) GetEvent(ctx context.Context, id uint) (models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.events[id]
	if !ok {
		return models.Event{}, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (s *Store) SaveEvent(ctx context.Context, event *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if event.ID == 0 {
		event.ID = s.id()
		event.CreatedAt = now
	}
	event.UpdatedAt = now
	s.events[event.ID] = *event
	return nil
}

func (s *Store) DeleteEvent(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	for sid, sub := range s.submissions {
		if sub.EventID == id {
			delete(s.submissions, sid)
		}
	}
	for aid, a := range s.availability {
		if a.EventID == id {
			delete(s.availability, aid)
		}
	}
	delete(s.events, id)
	return nil
}

// Submissions

func (s *Store) GetSubmission(ctx context.Context, id uint) (models.GameSubmission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.submissions[id]
	if !ok {
		return models.GameSubmission{}, gorm.ErrRecordNotFound
	}
	return cloneSubmission(sub), nil
}

func (s *Store) CountSubmissions(ctx context.Context, userID, eventID uint) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, sub := range s.submissions {
		if sub.UserID == userID && sub.EventID == eventID {
			n++
		}
	}
	return n, nil
}

func (s *Store) listSubmissions(match func(models.GameSubmission) bool, withUser bool) []models.GameSubmission {
	var out []models.GameSubmission
	for _, sub := range s.submissions {
		if !match(sub) {
			continue
		}
		c := cloneSubmission(sub)
		if withUser {
			if u, ok := s.users[sub.UserID]; ok {
				c.User = &u
			}
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) ListSubmissions(ctx context.Context, eventID uint) ([]models.GameSubmission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listSubmissions(func(sub models.GameSubmission) bool { return sub.EventID == eventID }, true), nil
}

func (s *Store) ListUserSubmissions(ctx context.Context, eventID, userID uint) ([]models.GameSubmission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listSubmissions(func(sub models.GameSubmission) bool {
		return sub.EventID == eventID && sub.UserID == userID
	}, false), nil
}

func (s *Store) SaveSubmission(ctx context.Context, submission *models.GameSubmission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if submission.ID == 0 {
		submission.ID = s.id()
		submission.CreatedAt = now
	}
	submission.UpdatedAt = now
	// カテゴリは毎回作り直す
	for i := range submission.Categories {
		submission.Categories[i].ID = s.id()
		submission.Categories[i].SubmissionID = submission.ID
		submission.Categories[i].Position = i
	}
	s.submissions[submission.ID] = cloneSubmission(*submission)
	return nil
}

func (s *Store) DeleteSubmission(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.submissions, id)
	return nil
}

// Availability

func (s *Store) ListAvailability(ctx context.Context, eventID uint) ([]models.EventAvailability, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.EventAvailability
	for _, a := range s.availability {
		if a.EventID == eventID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) findAvailability(userID, eventID uint) (models.EventAvailability, bool) {
	for _, a := range s.availability {
		if a.UserID == userID && a.EventID == eventID {
			return a, true
		}
	}
	return models.EventAvailability{}, false
}

func (s *Store) FindOrCreateAvailability(ctx context.Context, userID, eventID uint) (models.EventAvailability, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.findAvailability(userID, eventID); ok {
		return a, nil
	}
	now := s.now()
	a := models.EventAvailability{
		ID:        s.id(),
		CreatedAt: now,
		UpdatedAt: now,
		UserID:    userID,
		EventID:   eventID,
		Slots:     datatypes.JSONSlice[time.Time]{},
	}
	s.availability[a.ID] = a
	return a, nil
}

func (s *Store) UpsertAvailability(ctx context.Context, record *models.EventAvailability) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if existing, ok := s.findAvailability(record.UserID, record.EventID); ok {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
	} else {
		record.ID = s.id()
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	record.Slots = append(datatypes.JSONSlice[time.Time]{}, record.Slots...)
	s.availability[record.ID] = *record
	return nil
}

// Users

func (s *Store) GetUser(ctx context.Context, id uint) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (s *Store) UpsertProviderUser(ctx context.Context, providerID, name string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for id, u := range s.users {
		if u.ProviderID == providerID {
			u.Name = name
			u.UpdatedAt = now
			s.users[id] = u
			return u, nil
		}
	}
	u := models.User{
		ID:              s.id(),
		CreatedAt:       now,
		UpdatedAt:       now,
		ProviderID:      providerID,
		Name:            name,
		ShowPronouns:    true,
		ShowSubmissions: true,
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *Store) UpdateProfile(ctx context.Context, userID uint, req models.ProfileRequest) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	u.Apply(req)
	u.UpdatedAt = s.now()
	s.users[userID] = u
	return u, nil
}

// PutUser はテストや初期データ用にユーザーをそのまま登録します。
func (s *Store) PutUser(u models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == 0 {
		u.ID = s.id()
	} else if u.ID > s.nextID {
		s.nextID = u.ID
	}
	if u.ProviderID == "" {
		u.ProviderID = fmt.Sprintf("local-%d", u.ID)
	}
	s.users[u.ID] = u
	return u
}

// Sessions は RedisSessions と同じ操作をメモリ上で行います。
type Sessions struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]models.Session
	now      func() time.Time
}

func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{ttl: ttl, sessions: map[string]models.Session{}, now: time.Now}
}

func (s *Sessions) Create(ctx context.Context, userID uint) (models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session := models.Session{ID: uuid.New().String(), UserID: userID, CreatedAt: s.now()}
	s.sessions[session.ID] = session
	return session, nil
}

func (s *Sessions) Get(ctx context.Context, id string) (models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return models.Session{}, fmt.Errorf("session %q not found", id)
	}
	if s.ttl > 0 && s.now().Sub(session.CreatedAt) > s.ttl {
		delete(s.sessions, id)
		return models.Session{}, fmt.Errorf("session %q expired", id)
	}
	return session, nil
}

func (s *Sessions) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *Sessions) TTL() time.Duration { return s.ttl }
