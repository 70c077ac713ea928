package store

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/polyhub/timetable-back/internal/models"
	"github.com/polyhub/timetable-back/internal/notify"
	"github.com/polyhub/timetable-back/internal/storage"
)

type sinkPush struct {
	title    string
	message  string
	severity notify.Severity
}

// sinkRecorder captures alert hand-offs for assertions.
type sinkRecorder struct {
	mu     sync.Mutex
	pushes []sinkPush
}

func (r *sinkRecorder) Push(title, message string, severity notify.Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pushes = append(r.pushes, sinkPush{title: title, message: message, severity: severity})
}

func (r *sinkRecorder) all() []sinkPush {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]sinkPush, len(r.pushes))
	copy(out, r.pushes)
	return out
}

func newNotificationFixture() (*NotificationStore, *storage.Memory, *sinkRecorder) {
	mem := storage.NewMemory()
	sink := &sinkRecorder{}
	s := NewNotificationStore(mem, sink)
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return s, mem, sink
}

func TestAddPrependsNewestFirst(t *testing.T) {
	s, _, _ := newNotificationFixture()
	ctx := context.Background()

	s.Add(ctx, "STD001", "first", "m1", models.NotifyInfo, "")
	s.Add(ctx, "STD001", "second", "m2", models.NotifySuccess, "")
	s.Add(ctx, "STD001", "third", "m3", models.NotifyWarning, "/timetable")

	list := s.List(ctx, "STD001")
	require.Len(t, list, 3)
	require.Equal(t, "third", list[0].Title)
	require.Equal(t, "second", list[1].Title)
	require.Equal(t, "first", list[2].Title)
	require.Equal(t, "/timetable", list[0].Link)

	// ids are unique even with a coarse clock
	require.NotEqual(t, list[0].ID, list[1].ID)
	require.NotEqual(t, list[1].ID, list[2].ID)
	for _, n := range list {
		require.False(t, n.Read)
	}
}

func TestUnreadCountIsRecomputed(t *testing.T) {
	s, _, _ := newNotificationFixture()
	ctx := context.Background()

	require.Equal(t, 0, s.UnreadCount(ctx, "STD001"))

	s.Add(ctx, "STD001", "a", "m", models.NotifyInfo, "")
	s.Add(ctx, "STD001", "b", "m", models.NotifyInfo, "")
	require.Equal(t, 2, s.UnreadCount(ctx, "STD001"))

	list := s.List(ctx, "STD001")
	s.MarkAsRead(ctx, "STD001", list[0].ID)
	require.Equal(t, 1, s.UnreadCount(ctx, "STD001"))

	// marking the same id again changes nothing
	s.MarkAsRead(ctx, "STD001", list[0].ID)
	require.Equal(t, 1, s.UnreadCount(ctx, "STD001"))

	// absent id is a silent no-op
	s.MarkAsRead(ctx, "STD001", "nope")
	require.Equal(t, 1, s.UnreadCount(ctx, "STD001"))
}

func TestMarkAllAsRead(t *testing.T) {
	tests := []struct {
		name string
		adds int
	}{
		{name: "empty inbox", adds: 0},
		{name: "single", adds: 1},
		{name: "several", adds: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := newNotificationFixture()
			ctx := context.Background()
			for i := 0; i < tt.adds; i++ {
				s.Add(ctx, "STD001", "t", "m", models.NotifyInfo, "")
			}
			s.MarkAllAsRead(ctx, "STD001")
			require.Equal(t, 0, s.UnreadCount(ctx, "STD001"))
		})
	}
}

func TestClearThenAdd(t *testing.T) {
	s, _, _ := newNotificationFixture()
	ctx := context.Background()

	s.Add(ctx, "STD001", "a", "m", models.NotifyInfo, "")
	s.Add(ctx, "STD001", "b", "m", models.NotifyInfo, "")
	s.Clear(ctx, "STD001")
	require.Empty(t, s.List(ctx, "STD001"))
	require.Equal(t, 0, s.UnreadCount(ctx, "STD001"))

	s.Add(ctx, "STD001", "after", "m", models.NotifyInfo, "")
	require.Len(t, s.List(ctx, "STD001"), 1)
}

func TestInboxesAreKeyedPerUser(t *testing.T) {
	s, mem, _ := newNotificationFixture()
	ctx := context.Background()

	s.Add(ctx, "STD001", "mine", "m", models.NotifyInfo, "")
	require.Empty(t, s.List(ctx, "STD002"))
	require.Len(t, s.List(ctx, "STD001"), 1)

	// the blob lands under the user-scoped key
	_, found, err := mem.Get(ctx, storage.NotificationsKey("STD001"))
	require.NoError(t, err)
	require.True(t, found)
	_, found, err = mem.Get(ctx, storage.NotificationsKey("STD002"))
	require.NoError(t, err)
	require.False(t, found)
}

func TestIdentityAbsentSkipsSideEffects(t *testing.T) {
	s, _, sink := newNotificationFixture()
	ctx := context.Background()

	n := s.Add(ctx, "", "t", "m", models.NotifyError, "")
	require.Zero(t, n)
	require.Empty(t, sink.all())
	require.Empty(t, s.List(ctx, ""))
	require.Equal(t, 0, s.UnreadCount(ctx, ""))
}

func TestSinkSeverityChannels(t *testing.T) {
	s, _, sink := newNotificationFixture()
	ctx := context.Background()

	s.Add(ctx, "STD001", "oops", "m", models.NotifyError, "")
	s.Add(ctx, "STD001", "fine", "m", models.NotifySuccess, "")

	pushes := sink.all()
	require.Len(t, pushes, 2)
	require.Equal(t, notify.SeverityDestructive, pushes[0].severity)
	require.Equal(t, notify.SeverityDefault, pushes[1].severity)
}

func TestSyncAdoptsExternalChange(t *testing.T) {
	s, mem, _ := newNotificationFixture()
	ctx := context.Background()

	s.Add(ctx, "STD001", "local", "m", models.NotifyInfo, "")

	// another session rewrites the blob: same user, marked read plus one new
	external := s.List(ctx, "STD001")
	external[0].Read = true
	external = append([]models.Notification{{
		ID:        "999",
		Title:     "from elsewhere",
		Message:   "m",
		Timestamp: time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
		Type:      models.NotifyInfo,
	}}, external...)
	raw, err := json.Marshal(external)
	require.NoError(t, err)
	require.NoError(t, mem.Put(ctx, storage.NotificationsKey("STD001"), raw))

	s.Sync(ctx)

	list := s.List(ctx, "STD001")
	require.Len(t, list, 2)
	require.Equal(t, "from elsewhere", list[0].Title)
	require.True(t, list[1].Read)
}

func TestSyncKeepsStateOnEqualOrCorruptBlob(t *testing.T) {
	s, mem, _ := newNotificationFixture()
	ctx := context.Background()

	s.Add(ctx, "STD001", "keep", "m", models.NotifyInfo, "")
	before := s.List(ctx, "STD001")

	// identical content: no change
	s.Sync(ctx)
	require.Equal(t, before, s.List(ctx, "STD001"))

	// corrupt external blob: kept in-memory copy, logged only
	require.NoError(t, mem.Put(ctx, storage.NotificationsKey("STD001"), []byte("{not json")))
	s.Sync(ctx)
	require.Equal(t, before, s.List(ctx, "STD001"))
}

func TestCorruptInboxFallsBackEmpty(t *testing.T) {
	mem := storage.NewMemory()
	ctx := context.Background()
	require.NoError(t, mem.Put(ctx, storage.NotificationsKey("STD001"), []byte("garbage")))

	s := NewNotificationStore(mem, &sinkRecorder{})
	require.Empty(t, s.List(ctx, "STD001"))

	// a fresh add still works and repairs the blob
	s.Add(ctx, "STD001", "t", "m", models.NotifyInfo, "")
	require.Len(t, s.List(ctx, "STD001"), 1)
}

func TestNotificationPersistenceRoundTrip(t *testing.T) {
	s, mem, _ := newNotificationFixture()
	ctx := context.Background()

	s.Add(ctx, "STD001", "a", "m1", models.NotifyInfo, "")
	s.Add(ctx, "STD001", "b", "m2", models.NotifySuccess, "/x")
	s.MarkAsRead(ctx, "STD001", s.List(ctx, "STD001")[0].ID)

	fresh := NewNotificationStore(mem, &sinkRecorder{})
	require.Equal(t, s.List(ctx, "STD001"), fresh.List(ctx, "STD001"))
}
