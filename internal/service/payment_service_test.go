package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taxdesk/backoffice-api/internal/domain"
	"github.com/taxdesk/backoffice-api/internal/repository"
	"github.com/taxdesk/backoffice-api/internal/testutil"
	"go.uber.org/zap"
)

func newPaymentService(t *testing.T) (*PaymentService, *domain.Client) {
	db := testutil.SetupTestDB(t)
	client := testutil.CreateTestClient(t, db, "Jane Doe", nil)
	svc := NewPaymentService(
		repository.NewPaymentRepository(db),
		repository.NewClientRepository(db),
		zap.NewNop(),
	)
	return svc, client
}

func TestPaymentService_Create_RoundsAmountToCents(t *testing.T) {
	svc, client := newPaymentService(t)

	payment, err := svc.Create(context.Background(), &domain.PaymentRequest{
		ClientID:    client.ID,
		Amount:      "150.5",
		PaymentType: "preparation_fee",
	})
	require.NoError(t, err)
	assert.Equal(t, "150.50", payment.Amount.StringFixed(2))
	assert.Equal(t, domain.PaymentStatusPending, payment.Status)
	assert.Nil(t, payment.ProcessedAt)
}

func TestPaymentService_Create_InvalidAmount(t *testing.T) {
	svc, client := newPaymentService(t)

	for _, amount := range []string{"not-money", "-150.00"} {
		_, err := svc.Create(context.Background(), &domain.PaymentRequest{
			ClientID:    client.ID,
			Amount:      amount,
			PaymentType: "preparation_fee",
		})
		assert.ErrorIs(t, err, ErrInvalidInput, "amount %q", amount)
	}
}

func TestPaymentService_Create_UnknownClient(t *testing.T) {
	svc, _ := newPaymentService(t)

	_, err := svc.Create(context.Background(), &domain.PaymentRequest{
		ClientID:    uuid.New(),
		Amount:      "100.00",
		PaymentType: "preparation_fee",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPaymentService_CompletedStampsProcessedAt(t *testing.T) {
	svc, client := newPaymentService(t)

	payment, err := svc.Create(context.Background(), &domain.PaymentRequest{
		ClientID:    client.ID,
		Amount:      "200.00",
		PaymentType: "preparation_fee",
		Status:      "completed",
	})
	require.NoError(t, err)
	require.NotNil(t, payment.ProcessedAt)
}

func TestPaymentService_Update_ProcessedAtLifecycle(t *testing.T) {
	svc, client := newPaymentService(t)
	ctx := context.Background()

	payment, err := svc.Create(ctx, &domain.PaymentRequest{
		ClientID:    client.ID,
		Amount:      "200.00",
		PaymentType: "preparation_fee",
		Status:      "completed",
	})
	require.NoError(t, err)
	require.NotNil(t, payment.ProcessedAt)
	firstProcessed := *payment.ProcessedAt

	// staying completed keeps the original timestamp
	payment, err = svc.Update(ctx, payment.ID, &domain.PaymentRequest{
		ClientID:    client.ID,
		Amount:      "250.00",
		PaymentType: "preparation_fee",
		Status:      "completed",
	})
	require.NoError(t, err)
	require.NotNil(t, payment.ProcessedAt)
	assert.True(t, payment.ProcessedAt.Equal(firstProcessed))

	// leaving completed clears it
	payment, err = svc.Update(ctx, payment.ID, &domain.PaymentRequest{
		ClientID:    client.ID,
		Amount:      "250.00",
		PaymentType: "preparation_fee",
		Status:      "refunded",
	})
	require.NoError(t, err)
	assert.Nil(t, payment.ProcessedAt)
}

func TestPaymentService_List_SearchFiltersInMemory(t *testing.T) {
	svc, client := newPaymentService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &domain.PaymentRequest{
		ClientID:    client.ID,
		Amount:      "100.00",
		PaymentType: "preparation_fee",
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &domain.PaymentRequest{
		ClientID:    client.ID,
		Amount:      "50.00",
		PaymentType: "audit_support",
	})
	require.NoError(t, err)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := svc.List(ctx, "AUDIT")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "audit_support", filtered[0].PaymentType)

	none, err := svc.List(ctx, "nothing-matches")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPaymentService_Delete_NotFound(t *testing.T) {
	svc, _ := newPaymentService(t)
	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
