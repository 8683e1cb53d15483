package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Entry is one row of the operations trail.
type Entry struct {
	ID         uuid.UUID
	Timestamp  time.Time
	UserID     string
	Table      string
	Operation  string
	RecordID   string
	Query      string
	DurationMS int64
	ErrMessage string
}

type userKey struct{}

// WithUser stamps the acting user onto the context; Record picks it up.
func WithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey{}, userID)
}

// UserFromContext returns the acting user, or empty when unauthenticated.
func UserFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userKey{}).(string)
	return id
}
