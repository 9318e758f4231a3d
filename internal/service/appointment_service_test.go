package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/taxdesk/backoffice-api/internal/domain"
	"github.com/taxdesk/backoffice-api/internal/repository"
	"github.com/taxdesk/backoffice-api/internal/testutil"
)

func newAppointmentService(t *testing.T) (*AppointmentService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svc := NewAppointmentService(
		repository.NewAppointmentRepository(db),
		repository.NewClientRepository(db),
		repository.NewAgentRepository(db),
		zap.NewNop(),
	)
	return svc, db
}

func TestAppointmentService_Create_AppliesDefaults(t *testing.T) {
	svc, _ := newAppointmentService(t)
	ctx := context.Background()

	appointment, err := svc.Create(ctx, &domain.AppointmentRequest{
		Title:       "Intake call",
		ScheduledAt: time.Date(2026, 2, 10, 14, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, "consultation", appointment.AppointmentType)
	assert.Equal(t, 60, appointment.DurationMinutes)
	assert.Equal(t, domain.AppointmentStatusScheduled, appointment.Status)
}

func TestAppointmentService_Create_KeepsExplicitValues(t *testing.T) {
	svc, _ := newAppointmentService(t)
	ctx := context.Background()

	appointment, err := svc.Create(ctx, &domain.AppointmentRequest{
		Title:           "Extension review",
		AppointmentType: "document_review",
		ScheduledAt:     time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC),
		DurationMinutes: 45,
		Status:          string(domain.AppointmentStatusConfirmed),
	})
	require.NoError(t, err)

	assert.Equal(t, "document_review", appointment.AppointmentType)
	assert.Equal(t, 45, appointment.DurationMinutes)
	assert.Equal(t, domain.AppointmentStatusConfirmed, appointment.Status)
}

func TestAppointmentService_Create_UnknownReferencesRejected(t *testing.T) {
	svc, db := newAppointmentService(t)
	ctx := context.Background()

	missing := uuid.New()
	_, err := svc.Create(ctx, &domain.AppointmentRequest{
		Title:       "Intake call",
		ScheduledAt: time.Now().UTC(),
		ClientID:    &missing,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	client := testutil.CreateTestClient(t, db, "Jane Doe", nil)
	_, err = svc.Create(ctx, &domain.AppointmentRequest{
		Title:       "Intake call",
		ScheduledAt: time.Now().UTC(),
		ClientID:    &client.ID,
		AgentID:     &missing,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAppointmentService_Create_PreloadsParticipants(t *testing.T) {
	svc, db := newAppointmentService(t)
	ctx := context.Background()

	agent := testutil.CreateTestAgent(t, db, "Sam Preparer")
	client := testutil.CreateTestClient(t, db, "Jane Doe", &agent.ID)

	appointment, err := svc.Create(ctx, &domain.AppointmentRequest{
		Title:       "Filing appointment",
		ScheduledAt: time.Date(2026, 3, 15, 11, 0, 0, 0, time.UTC),
		ClientID:    &client.ID,
		AgentID:     &agent.ID,
	})
	require.NoError(t, err)

	require.NotNil(t, appointment.Client)
	require.NotNil(t, appointment.Agent)
	assert.Equal(t, "Jane Doe", appointment.Client.FullName)
	assert.Equal(t, "Sam Preparer", appointment.Agent.FullName)
}

func TestAppointmentService_Update_ReplacesFields(t *testing.T) {
	svc, _ := newAppointmentService(t)
	ctx := context.Background()

	appointment, err := svc.Create(ctx, &domain.AppointmentRequest{
		Title:       "Intake call",
		ScheduledAt: time.Date(2026, 2, 10, 14, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, appointment.ID, &domain.AppointmentRequest{
		Title:       "Intake call",
		ScheduledAt: appointment.ScheduledAt,
		Status:      string(domain.AppointmentStatusCancelled),
		Location:    "Downtown office",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.AppointmentStatusCancelled, updated.Status)
	assert.Equal(t, "Downtown office", updated.Location)
}

func TestAppointmentService_List_SearchMatchesParticipantNames(t *testing.T) {
	svc, db := newAppointmentService(t)
	ctx := context.Background()

	agent := testutil.CreateTestAgent(t, db, "Sam Preparer")
	client := testutil.CreateTestClient(t, db, "Jane Doe", &agent.ID)

	_, err := svc.Create(ctx, &domain.AppointmentRequest{
		Title:       "Filing appointment",
		ScheduledAt: time.Now().UTC(),
		ClientID:    &client.ID,
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &domain.AppointmentRequest{
		Title:       "Walk-in consult",
		ScheduledAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	matches, err := svc.List(ctx, "jane")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Filing appointment", matches[0].Title)
}

func TestAppointmentService_Delete_NotFound(t *testing.T) {
	svc, _ := newAppointmentService(t)

	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
