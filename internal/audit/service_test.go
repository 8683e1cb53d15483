package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestService_Record_StampsTimestampAndUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepository(ctrl)
	svc := NewService(repo)

	var written *Entry

	repo.EXPECT().CreateEntry(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *Entry) error {
			written = e
			return nil
		})

	ctx := WithUser(context.Background(), "user-42")
	svc.Action(ctx, "ventas", "INSERT", "abc")

	assert.False(t, written.Timestamp.IsZero())
	assert.Equal(t, "user-42", written.UserID)
	assert.Equal(t, "ventas", written.Table)
	assert.Equal(t, "INSERT", written.Operation)
	assert.Equal(t, "abc", written.RecordID)
}

func TestService_Record_SwallowsStoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepository(ctrl)
	svc := NewService(repo)

	repo.EXPECT().CreateEntry(gomock.Any(), gomock.Any()).Return(errors.New("logs table missing"))

	// must not panic or propagate
	svc.Failure(context.Background(), "ventas", "INSERT", "boom")
}

func TestUserFromContext_EmptyWhenUnauthenticated(t *testing.T) {
	assert.Empty(t, UserFromContext(context.Background()))
}
