package storage

import "context"

// Store is the durable local-storage contract both cores persist through:
// whole JSON blobs under fixed keys, always overwritten in full, never
// partially patched. It is the only resource shared across sessions.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// TimetableKey holds the global slot collection (not user-scoped).
const TimetableKey = "timetableData"

// NotificationsKey returns the per-user inbox key.
func NotificationsKey(userID string) string {
	return "notifications_" + userID
}
