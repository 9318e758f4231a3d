package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/taxdesk/backoffice-api/internal/domain"
	"github.com/taxdesk/backoffice-api/internal/repository"
	"github.com/taxdesk/backoffice-api/internal/testutil"
)

func newActivityLogService(t *testing.T) *ActivityLogService {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewActivityLogService(repository.NewActivityLogRepository(db), zap.NewNop())
}

func TestActivityLogService_RecordThenGet(t *testing.T) {
	svc := newActivityLogService(t)
	ctx := context.Background()

	entityID := uuid.New()
	entry := &domain.ActivityLog{
		UserEmail:  "reviewer@example.com",
		Action:     "create",
		EntityType: "Client",
		EntityID:   &entityID,
		Details:    `{"fullName":"Jane Doe"}`,
	}
	svc.Record(ctx, entry)

	got, err := svc.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "create", got.Action)
	assert.Equal(t, "Client", got.EntityType)

	_, err = svc.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestActivityLogService_List_SearchAndEntityFilter(t *testing.T) {
	svc := newActivityLogService(t)
	ctx := context.Background()

	clientID := uuid.New()
	svc.Record(ctx, &domain.ActivityLog{
		UserEmail:  "alice@example.com",
		Action:     "create",
		EntityType: "Client",
		EntityID:   &clientID,
	})
	svc.Record(ctx, &domain.ActivityLog{
		UserEmail:  "bob@example.com",
		Action:     "verify",
		EntityType: "Document",
	})

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	verifies, err := svc.List(ctx, "VERIFY")
	require.NoError(t, err)
	require.Len(t, verifies, 1)
	assert.Equal(t, "bob@example.com", verifies[0].UserEmail)

	forClient, err := svc.ListForEntity(ctx, "Client", clientID, 50)
	require.NoError(t, err)
	require.Len(t, forClient, 1)
	assert.Equal(t, "create", forClient[0].Action)
}
