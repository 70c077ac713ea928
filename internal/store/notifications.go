package store

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/polyhub/timetable-back/internal/models"
	"github.com/polyhub/timetable-back/internal/notify"
	"github.com/polyhub/timetable-back/internal/storage"
)

// NotificationStore holds one inbox per user, newest first. Inboxes are
// loaded lazily from storage and written back whole on every mutation.
// Identity-less calls (empty userID) skip their side effects entirely.
type NotificationStore struct {
	storage storage.Store
	sink    notify.Sink
	now     func() time.Time

	mu      sync.RWMutex
	inboxes map[string][]models.Notification
	lastID  int64
}

func NewNotificationStore(st storage.Store, sink notify.Sink) *NotificationStore {
	return &NotificationStore{
		storage: st,
		sink:    sink,
		now:     time.Now,
		inboxes: make(map[string][]models.Notification),
	}
}

// inbox returns the cached list for userID, loading it from storage on first
// access. A corrupt blob falls back to an empty inbox and is only logged.
// Callers must hold mu.
func (s *NotificationStore) inbox(ctx context.Context, userID string) []models.Notification {
	if list, ok := s.inboxes[userID]; ok {
		return list
	}
	list := []models.Notification{}
	raw, found, err := s.storage.Get(ctx, storage.NotificationsKey(userID))
	if err != nil {
		log.Println("failed to read notifications:", err)
	} else if found {
		if err := json.Unmarshal(raw, &list); err != nil {
			log.Println("error parsing saved notifications:", err)
			list = []models.Notification{}
		}
	}
	s.inboxes[userID] = list
	return list
}

func (s *NotificationStore) persist(ctx context.Context, userID string) {
	raw, err := json.Marshal(s.inboxes[userID])
	if err != nil {
		log.Println("failed to encode notifications:", err)
		return
	}
	if err := s.storage.Put(ctx, storage.NotificationsKey(userID), raw); err != nil {
		log.Println("failed to save notifications:", err)
	}
}

// nextID returns a time-based identifier, bumped to stay unique when two
// notifications land on the same clock reading.
func (s *NotificationStore) nextID() string {
	id := s.now().UnixNano()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}

// Add prepends a new unread notification to userID's inbox and hands it off
// to the alert sink. The "error" type selects the destructive toast channel.
func (s *NotificationStore) Add(ctx context.Context, userID, title, message string, typ models.NotificationType, link string) models.Notification {
	if userID == "" {
		return models.Notification{}
	}

	s.mu.Lock()
	list := s.inbox(ctx, userID)
	n := models.Notification{
		ID:        s.nextID(),
		Title:     title,
		Message:   message,
		Timestamp: s.now().UTC(),
		Read:      false,
		Type:      typ,
		Link:      link,
	}
	s.inboxes[userID] = append([]models.Notification{n}, list...)
	s.persist(ctx, userID)
	s.mu.Unlock()

	severity := notify.SeverityDefault
	if typ == models.NotifyError {
		severity = notify.SeverityDestructive
	}
	s.sink.Push(title, message, severity)

	return n
}

// List returns userID's inbox, newest first.
func (s *NotificationStore) List(ctx context.Context, userID string) []models.Notification {
	if userID == "" {
		return []models.Notification{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.inbox(ctx, userID)
	out := make([]models.Notification, len(list))
	copy(out, list)
	return out
}

// UnreadCount is always recomputed from the inbox, never tracked separately.
func (s *NotificationStore) UnreadCount(ctx context.Context, userID string) int {
	if userID == "" {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, n := range s.inbox(ctx, userID) {
		if !n.Read {
			count++
		}
	}
	return count
}

// MarkAsRead flips one notification to read. No-op when the id is absent.
func (s *NotificationStore) MarkAsRead(ctx context.Context, userID, id string) {
	if userID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.inbox(ctx, userID)
	for i := range list {
		if list[i].ID == id {
			if !list[i].Read {
				list[i].Read = true
				s.persist(ctx, userID)
			}
			return
		}
	}
}

func (s *NotificationStore) MarkAllAsRead(ctx context.Context, userID string) {
	if userID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.inbox(ctx, userID)
	for i := range list {
		list[i].Read = true
	}
	s.persist(ctx, userID)
}

// Clear empties the inbox. Irreversible.
func (s *NotificationStore) Clear(ctx context.Context, userID string) {
	if userID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inbox(ctx, userID)
	s.inboxes[userID] = []models.Notification{}
	s.persist(ctx, userID)
}

// Sync re-reads every cached inbox from storage and adopts blobs written by
// another session. Last writer wins; there is no merge. Content is compared
// by full re-encoding, not length, so reordering or field edits are caught.
func (s *NotificationStore) Sync(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for userID, current := range s.inboxes {
		raw, found, err := s.storage.Get(ctx, storage.NotificationsKey(userID))
		if err != nil {
			log.Println("failed to poll notifications:", err)
			continue
		}
		if !found {
			continue
		}
		ours, err := json.Marshal(current)
		if err != nil || bytes.Equal(ours, raw) {
			continue
		}
		var external []models.Notification
		if err := json.Unmarshal(raw, &external); err != nil {
			log.Println("error parsing saved notifications:", err)
			continue
		}
		s.inboxes[userID] = external
	}
}
