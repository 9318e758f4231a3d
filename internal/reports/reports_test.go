package reports

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/taxdesk/backoffice-api/internal/domain"
)

func paymentWith(status domain.PaymentStatus, amount string, created time.Time) domain.Payment {
	return domain.Payment{
		BaseModel: domain.BaseModel{ID: uuid.New(), CreatedAt: created},
		Amount:    decimal.RequireFromString(amount),
		Status:    status,
	}
}

func returnWith(status domain.TaxReturnStatus, agentID *uuid.UUID, created time.Time) domain.TaxReturn {
	return domain.TaxReturn{
		BaseModel: domain.BaseModel{ID: uuid.New(), CreatedAt: created},
		Status:    status,
		AgentID:   agentID,
	}
}

func TestTotalRevenue_OnlyCompletedPaymentsCount(t *testing.T) {
	now := time.Now()
	payments := []domain.Payment{
		paymentWith(domain.PaymentStatusCompleted, "100.00", now),
		paymentWith(domain.PaymentStatusCompleted, "50.50", now),
		paymentWith(domain.PaymentStatusPending, "999.00", now),
		paymentWith(domain.PaymentStatusProcessing, "25.00", now),
		paymentWith(domain.PaymentStatusFailed, "10.00", now),
		paymentWith(domain.PaymentStatusRefunded, "75.00", now),
	}

	total := TotalRevenue(payments)
	assert.True(t, total.Equal(decimal.RequireFromString("150.50")),
		"expected 150.50, got %s", total)
}

func TestTotalRevenue_Empty(t *testing.T) {
	total := TotalRevenue(nil)
	assert.True(t, total.Equal(decimal.Zero))
}

func TestRevenueByMonth_TwelveZeroFilledBuckets(t *testing.T) {
	jan := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	payments := []domain.Payment{
		paymentWith(domain.PaymentStatusCompleted, "100.00", jan),
		paymentWith(domain.PaymentStatusCompleted, "200.00", mar),
		paymentWith(domain.PaymentStatusCompleted, "50.00", mar),
		// pending payments never contribute, regardless of month
		paymentWith(domain.PaymentStatusPending, "400.00", jan),
	}

	series := RevenueByMonth(payments)
	assert.Len(t, series, 12)
	assert.Equal(t, "Jan", series[0].Month)
	assert.Equal(t, "Dec", series[11].Month)
	assert.True(t, series[0].Amount.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, series[2].Amount.Equal(decimal.RequireFromString("250.00")))
	for _, i := range []int{1, 3, 4, 5, 6, 7, 8, 9, 10, 11} {
		assert.True(t, series[i].Amount.Equal(decimal.Zero), "month %s should be zero", series[i].Month)
	}
}

func TestReturnsByMonth_BucketsByCreationMonth(t *testing.T) {
	jan := time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)
	dec := time.Date(2025, time.December, 30, 0, 0, 0, 0, time.UTC)
	taxReturns := []domain.TaxReturn{
		returnWith(domain.TaxReturnStatusPending, nil, jan),
		returnWith(domain.TaxReturnStatusSubmitted, nil, jan),
		returnWith(domain.TaxReturnStatusReview, nil, dec),
	}

	series := ReturnsByMonth(taxReturns)
	assert.Len(t, series, 12)
	assert.Equal(t, 2, series[0].Count)
	assert.Equal(t, 1, series[11].Count)
	assert.Equal(t, 0, series[5].Count)
}

func TestReturnsByStatus_AllStatusesPresent(t *testing.T) {
	now := time.Now()
	taxReturns := []domain.TaxReturn{
		returnWith(domain.TaxReturnStatusPending, nil, now),
		returnWith(domain.TaxReturnStatusPending, nil, now),
		returnWith(domain.TaxReturnStatusSubmitted, nil, now),
	}

	distribution := ReturnsByStatus(taxReturns)
	assert.Len(t, distribution, 6)
	assert.Equal(t, "pending", distribution[0].Status)
	assert.Equal(t, 2, distribution[0].Count)
	assert.Equal(t, "in_progress", distribution[1].Status)
	assert.Equal(t, 0, distribution[1].Count)
	assert.Equal(t, "submitted", distribution[4].Status)
	assert.Equal(t, 1, distribution[4].Count)
	assert.Equal(t, "rejected", distribution[5].Status)
	assert.Equal(t, 0, distribution[5].Count)
}

func TestPendingReturns_ExactStatusSet(t *testing.T) {
	now := time.Now()
	taxReturns := []domain.TaxReturn{
		returnWith(domain.TaxReturnStatusPending, nil, now),
		returnWith(domain.TaxReturnStatusInProgress, nil, now),
		returnWith(domain.TaxReturnStatusReview, nil, now),
		returnWith(domain.TaxReturnStatusApproved, nil, now),
		returnWith(domain.TaxReturnStatusSubmitted, nil, now),
		returnWith(domain.TaxReturnStatusRejected, nil, now),
	}

	assert.Equal(t, 3, PendingReturns(taxReturns))
}

func TestCompletionRate(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		pending int
		want    int
	}{
		{"no returns", 0, 0, 0},
		{"all pending", 4, 4, 0},
		{"none pending", 4, 0, 100},
		{"rounds down", 3, 2, 33},
		{"rounds up", 3, 1, 67},
		{"half", 4, 2, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompletionRate(tt.total, tt.pending))
		})
	}
}

func TestTopAgents_RanksByLinkedReturns(t *testing.T) {
	now := time.Now()
	a := domain.Agent{BaseModel: domain.BaseModel{ID: uuid.New()}, FullName: "Alice"}
	b := domain.Agent{BaseModel: domain.BaseModel{ID: uuid.New()}, FullName: "Bob"}
	c := domain.Agent{BaseModel: domain.BaseModel{ID: uuid.New()}, FullName: "Carol"}

	taxReturns := []domain.TaxReturn{
		returnWith(domain.TaxReturnStatusPending, &b.ID, now),
		returnWith(domain.TaxReturnStatusSubmitted, &b.ID, now),
		returnWith(domain.TaxReturnStatusReview, &c.ID, now),
		// unassigned returns rank nobody
		returnWith(domain.TaxReturnStatusPending, nil, now),
	}

	ranked := TopAgents([]domain.Agent{a, b, c}, taxReturns, 5)
	assert.Len(t, ranked, 3)
	assert.Equal(t, "Bob", ranked[0].Agent.FullName)
	assert.Equal(t, 2, ranked[0].ReturnCount)
	assert.Equal(t, "Carol", ranked[1].Agent.FullName)
	assert.Equal(t, 1, ranked[1].ReturnCount)
	assert.Equal(t, "Alice", ranked[2].Agent.FullName)
	assert.Equal(t, 0, ranked[2].ReturnCount)
}

func TestTopAgents_TiesKeepFetchOrder(t *testing.T) {
	now := time.Now()
	a := domain.Agent{BaseModel: domain.BaseModel{ID: uuid.New()}, FullName: "First"}
	b := domain.Agent{BaseModel: domain.BaseModel{ID: uuid.New()}, FullName: "Second"}

	taxReturns := []domain.TaxReturn{
		returnWith(domain.TaxReturnStatusPending, &a.ID, now),
		returnWith(domain.TaxReturnStatusPending, &b.ID, now),
	}

	ranked := TopAgents([]domain.Agent{a, b}, taxReturns, 5)
	assert.Equal(t, "First", ranked[0].Agent.FullName)
	assert.Equal(t, "Second", ranked[1].Agent.FullName)
}

func TestTopAgents_TruncatesToLimit(t *testing.T) {
	agents := make([]domain.Agent, 7)
	for i := range agents {
		agents[i] = domain.Agent{BaseModel: domain.BaseModel{ID: uuid.New()}}
	}

	ranked := TopAgents(agents, nil, 5)
	assert.Len(t, ranked, 5)
}
