package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStorage implements NotificationStore, PreferenceStore and UserStore
// in memory. Suitable for development and testing.
type MemoryStorage struct {
	mu            sync.RWMutex
	notifications map[string]*Notification
	byUser        map[string][]string // userID -> ids in creation order
	preferences   map[string]*Preference
	users         map[string]*User
	now           func() time.Time
}

// MemoryOption configures a MemoryStorage.
type MemoryOption func(*MemoryStorage)

// WithMemoryClock overrides the time source.
func WithMemoryClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStorage) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemoryStorage creates a new in-memory storage.
func NewMemoryStorage(opts ...MemoryOption) *MemoryStorage {
	s := &MemoryStorage{
		notifications: make(map[string]*Notification),
		byUser:        make(map[string][]string),
		preferences:   make(map[string]*Preference),
		users:         make(map[string]*User),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStorage) Create(ctx context.Context, userID string, typ Type, title, content string) (*Notification, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	if !typ.Valid() {
		return nil, ErrInvalidType
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := &Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Content:   content,
		Status:    StatusQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.notifications[n.ID] = n
	s.byUser[userID] = append(s.byUser[userID], n.ID)

	out := *n
	return &out, nil
}

func (s *MemoryStorage) Get(ctx context.Context, id string) (*Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.notifications[id]
	if !ok {
		return nil, ErrNotificationNotFound
	}

	out := *n
	return &out, nil
}

// NotificationExists implements queue.NotificationLookup.
func (s *MemoryStorage) NotificationExists(ctx context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.notifications[id]
	return ok, nil
}

func (s *MemoryStorage) ListByUser(ctx context.Context, userID string) ([]Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byUser[userID]
	out := make([]Notification, 0, len(ids))
	for _, id := range ids {
		out = append(out, *s.notifications[id])
	}
	return out, nil
}

func (s *MemoryStorage) UpdateStatus(ctx context.Context, id string, status Status, errorMessage string) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notifications[id]
	if !ok {
		return ErrNotificationNotFound
	}

	now := s.now()
	n.Status = status
	n.UpdatedAt = now
	n.SentAt = nil
	n.ErrorMessage = ""

	switch status {
	case StatusSent:
		n.SentAt = &now
	case StatusFailed, StatusSkipped:
		n.ErrorMessage = errorMessage
	}

	return nil
}

func (s *MemoryStorage) HasDelivered(ctx context.Context, n *Notification, since time.Time) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.byUser[n.UserID] {
		other := s.notifications[id]
		if other.ID == n.ID || other.Type != TypeInApp || other.Status != StatusSent {
			continue
		}
		if other.Title == n.Title && other.Content == n.Content && !other.CreatedAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

// GetOrCreateDefault looks up and inserts under a single lock, so concurrent
// callers for the same user share one record.
func (s *MemoryStorage) GetOrCreateDefault(ctx context.Context, userID string) (*Preference, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.preferences[userID]
	if !ok {
		def := DefaultPreference(userID, s.now())
		p = &def
		s.preferences[userID] = p
	}

	out := *p
	return &out, nil
}

func (s *MemoryStorage) UpdatePreference(ctx context.Context, pref Preference) (*Preference, error) {
	if pref.UserID == "" {
		return nil, ErrUserIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	existing, ok := s.preferences[pref.UserID]
	if ok {
		pref.CreatedAt = existing.CreatedAt
	} else {
		pref.CreatedAt = now
	}
	pref.UpdatedAt = now
	s.preferences[pref.UserID] = &pref

	out := pref
	return &out, nil
}

// PreferenceCount returns the number of stored preference records.
func (s *MemoryStorage) PreferenceCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.preferences)
}

func (s *MemoryStorage) GetUser(ctx context.Context, id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}

	out := *u
	return &out, nil
}

func (s *MemoryStorage) CreateUser(ctx context.Context, user User) (*User, error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[user.ID] = &user

	out := user
	return &out, nil
}
