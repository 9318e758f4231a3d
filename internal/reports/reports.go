// Package reports derives dashboard statistics and chart series from
// snapshots of the raw collections. Everything here is pure: callers fetch
// the data, these functions only fold it.
package reports

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/taxdesk/backoffice-api/internal/domain"
)

// monthNames are the twelve chart buckets, always emitted in calendar order
var monthNames = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// MonthlyCount is one bucket of a per-month count series
type MonthlyCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// MonthlyAmount is one bucket of a per-month monetary series
type MonthlyAmount struct {
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// StatusCount is one slice of a status distribution
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// AgentRank pairs an agent with the number of tax returns linked to them
type AgentRank struct {
	Agent       domain.Agent `json:"agent"`
	ReturnCount int          `json:"returnCount"`
}

// TotalRevenue sums payment amounts with status exactly completed
func TotalRevenue(payments []domain.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		if p.Status == domain.PaymentStatusCompleted {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// RevenueByMonth buckets completed payment amounts by the calendar month of
// creation. All twelve months are present, zero-filled, Jan through Dec.
func RevenueByMonth(payments []domain.Payment) []MonthlyAmount {
	series := make([]MonthlyAmount, 12)
	for i, name := range monthNames {
		series[i] = MonthlyAmount{Month: name, Amount: decimal.Zero}
	}
	for _, p := range payments {
		if p.Status != domain.PaymentStatusCompleted {
			continue
		}
		idx := int(p.CreatedAt.Month()) - 1
		series[idx].Amount = series[idx].Amount.Add(p.Amount)
	}
	return series
}

// ReturnsByMonth buckets tax returns by the calendar month of creation
func ReturnsByMonth(taxReturns []domain.TaxReturn) []MonthlyCount {
	series := make([]MonthlyCount, 12)
	for i, name := range monthNames {
		series[i] = MonthlyCount{Month: name}
	}
	for _, tr := range taxReturns {
		series[int(tr.CreatedAt.Month())-1].Count++
	}
	return series
}

// ReturnsByStatus counts tax returns per status, in state machine order.
// Statuses with no returns are included with a zero count.
func ReturnsByStatus(taxReturns []domain.TaxReturn) []StatusCount {
	order := []domain.TaxReturnStatus{
		domain.TaxReturnStatusPending,
		domain.TaxReturnStatusInProgress,
		domain.TaxReturnStatusReview,
		domain.TaxReturnStatusApproved,
		domain.TaxReturnStatusSubmitted,
		domain.TaxReturnStatusRejected,
	}
	counts := make(map[domain.TaxReturnStatus]int, len(order))
	for _, tr := range taxReturns {
		counts[tr.Status]++
	}
	distribution := make([]StatusCount, len(order))
	for i, status := range order {
		distribution[i] = StatusCount{Status: string(status), Count: counts[status]}
	}
	return distribution
}

// PendingReturns counts tax returns still being worked: pending, in_progress
// or review. Approved, submitted and rejected do not count.
func PendingReturns(taxReturns []domain.TaxReturn) int {
	pending := 0
	for _, tr := range taxReturns {
		switch tr.Status {
		case domain.TaxReturnStatusPending, domain.TaxReturnStatusInProgress, domain.TaxReturnStatusReview:
			pending++
		}
	}
	return pending
}

// CompletionRate is the percentage of returns past the pending stages,
// rounded to the nearest integer. Zero returns means a rate of 0.
func CompletionRate(totalReturns, pendingReturns int) int {
	if totalReturns == 0 {
		return 0
	}
	rate := float64(totalReturns-pendingReturns) / float64(totalReturns) * 100
	return int(math.Round(rate))
}

// TopAgents ranks agents by the number of tax returns linked to them,
// descending, ties kept in fetch order, truncated to n entries.
func TopAgents(agents []domain.Agent, taxReturns []domain.TaxReturn, n int) []AgentRank {
	counts := make(map[string]int, len(agents))
	for _, tr := range taxReturns {
		if tr.AgentID != nil {
			counts[tr.AgentID.String()]++
		}
	}

	ranked := make([]AgentRank, len(agents))
	for i, agent := range agents {
		ranked[i] = AgentRank{Agent: agent, ReturnCount: counts[agent.ID.String()]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ReturnCount > ranked[j].ReturnCount
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
