package domain

import "github.com/shopspring/decimal"

// DashboardStats is the summary block shown on the dashboard home
type DashboardStats struct {
	TotalClients      int             `json:"totalClients"`
	TotalAgents       int             `json:"totalAgents"`
	TotalReturns      int             `json:"totalReturns"`
	PendingReturns    int             `json:"pendingReturns"`
	ThisMonthReturns  int             `json:"thisMonthReturns"`
	TotalDocuments    int             `json:"totalDocuments"`
	TotalPayments     int             `json:"totalPayments"`
	TotalAppointments int             `json:"totalAppointments"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	CompletionRate    int             `json:"completionRate"`
}
