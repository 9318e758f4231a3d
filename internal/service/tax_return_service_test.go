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

func newTaxReturnService(t *testing.T) (*TaxReturnService, *domain.Client) {
	db := testutil.SetupTestDB(t)
	client := testutil.CreateTestClient(t, db, "Jane Doe", nil)
	svc := NewTaxReturnService(
		repository.NewTaxReturnRepository(db),
		repository.NewClientRepository(db),
		zap.NewNop(),
	)
	return svc, client
}

func TestTaxReturnService_Create_OptionalMoneyStaysNull(t *testing.T) {
	svc, client := newTaxReturnService(t)

	taxReturn, err := svc.Create(context.Background(), &domain.TaxReturnRequest{
		ClientID:      client.ID,
		TaxYear:       2025,
		ReturnType:    "individual",
		FederalRefund: "1200.50",
		StateRefund:   "",          // blank stays null
		FederalOwed:   "not-money", // unparseable stays null
	})
	require.NoError(t, err)

	require.NotNil(t, taxReturn.FederalRefund)
	assert.Equal(t, "1200.50", taxReturn.FederalRefund.StringFixed(2))
	assert.Nil(t, taxReturn.StateRefund)
	assert.Nil(t, taxReturn.FederalOwed)
	assert.Equal(t, domain.TaxReturnStatusPending, taxReturn.Status)
}

func TestTaxReturnService_Create_UnknownClient(t *testing.T) {
	svc, _ := newTaxReturnService(t)

	_, err := svc.Create(context.Background(), &domain.TaxReturnRequest{
		ClientID:   uuid.New(),
		TaxYear:    2025,
		ReturnType: "individual",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTaxReturnService_SubmittedDateStampedOnce(t *testing.T) {
	svc, client := newTaxReturnService(t)
	ctx := context.Background()

	taxReturn, err := svc.Create(ctx, &domain.TaxReturnRequest{
		ClientID:   client.ID,
		TaxYear:    2025,
		ReturnType: "individual",
		Status:     "pending",
	})
	require.NoError(t, err)
	assert.Nil(t, taxReturn.SubmittedDate)

	// first move to submitted stamps the date
	taxReturn, err = svc.Update(ctx, taxReturn.ID, &domain.TaxReturnRequest{
		ClientID:   client.ID,
		TaxYear:    2025,
		ReturnType: "individual",
		Status:     "submitted",
	})
	require.NoError(t, err)
	require.NotNil(t, taxReturn.SubmittedDate)
	firstSubmitted := *taxReturn.SubmittedDate

	// staying submitted keeps the original date
	taxReturn, err = svc.Update(ctx, taxReturn.ID, &domain.TaxReturnRequest{
		ClientID:   client.ID,
		TaxYear:    2025,
		ReturnType: "individual",
		Status:     "submitted",
		Notes:      "resubmitted with corrections",
	})
	require.NoError(t, err)
	require.NotNil(t, taxReturn.SubmittedDate)
	assert.True(t, taxReturn.SubmittedDate.Equal(firstSubmitted))
}

func TestTaxReturnService_GetByID_PreloadsClient(t *testing.T) {
	svc, client := newTaxReturnService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.TaxReturnRequest{
		ClientID:   client.ID,
		TaxYear:    2024,
		ReturnType: "business",
	})
	require.NoError(t, err)

	fetched, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.Client)
	assert.Equal(t, "Jane Doe", fetched.Client.FullName)
}

func TestTaxReturnService_List_SearchByYearAndType(t *testing.T) {
	svc, client := newTaxReturnService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &domain.TaxReturnRequest{
		ClientID: client.ID, TaxYear: 2024, ReturnType: "individual",
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &domain.TaxReturnRequest{
		ClientID: client.ID, TaxYear: 2025, ReturnType: "business",
	})
	require.NoError(t, err)

	byYear, err := svc.List(ctx, "2024")
	require.NoError(t, err)
	require.Len(t, byYear, 1)
	assert.Equal(t, 2024, byYear[0].TaxYear)

	byType, err := svc.List(ctx, "business")
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, "business", byType[0].ReturnType)

	byClient, err := svc.List(ctx, "jane")
	require.NoError(t, err)
	assert.Len(t, byClient, 2)
}

func TestTaxReturnService_Delete(t *testing.T) {
	svc, client := newTaxReturnService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.TaxReturnRequest{
		ClientID: client.ID, TaxYear: 2025, ReturnType: "individual",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
