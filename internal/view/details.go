package view

import (
	"fmt"

	"github.com/taxdesk/backoffice-api/internal/domain"
)

// Per-resource detail panels. Field order matches the admin pages.

func ClientDetail(c *domain.Client) []Field {
	agentName := ""
	if c.AssignedAgent != nil {
		agentName = c.AssignedAgent.FullName
	}
	return []Field{
		Text("Full Name", c.FullName),
		Text("Email", c.Email),
		Text("Phone", c.Phone),
		Text("Address", c.Address),
		Text("SSN (Last 4)", c.SSNLastFour),
		Badge("Filing Status", c.FilingStatus),
		Text("Assigned Agent", agentName),
		Badge("Status", string(c.Status)),
		Text("Notes", c.Notes),
		DateValue("Created", c.CreatedAt),
	}
}

func AgentDetail(a *domain.Agent) []Field {
	return []Field{
		Text("Full Name", a.FullName),
		Text("Email", a.Email),
		Text("Phone", a.Phone),
		Text("License Number", a.LicenseNumber),
		Text("Specialization", a.Specialization),
		Text("Commission Rate", a.CommissionRate.StringFixed(2)+"%"),
		Badge("Status", string(a.Status)),
		Text("Total Clients", fmt.Sprintf("%d", a.TotalClients)),
		Text("Total Returns", fmt.Sprintf("%d", a.TotalReturns)),
		DateValue("Created", a.CreatedAt),
	}
}

func TaxReturnDetail(tr *domain.TaxReturn) []Field {
	clientName := ""
	if tr.Client != nil {
		clientName = tr.Client.FullName
	}
	agentName := ""
	if tr.Agent != nil {
		agentName = tr.Agent.FullName
	}
	return []Field{
		Text("Client", clientName),
		Text("Agent", agentName),
		Text("Tax Year", fmt.Sprintf("%d", tr.TaxYear)),
		Text("Return Type", tr.ReturnType),
		Badge("Status", string(tr.Status)),
		Currency("Federal Refund", tr.FederalRefund),
		Currency("State Refund", tr.StateRefund),
		Currency("Federal Owed", tr.FederalOwed),
		Currency("State Owed", tr.StateOwed),
		Currency("Gross Income", tr.GrossIncome),
		Currency("Adjusted Gross Income", tr.AdjustedGrossIncome),
		Currency("Total Deductions", tr.TotalDeductions),
		Date("Filing Date", tr.FilingDate),
		Date("Submitted", tr.SubmittedDate),
		Text("Notes", tr.Notes),
	}
}

func DocumentDetail(d *domain.Document) []Field {
	clientName := ""
	if d.Client != nil {
		clientName = d.Client.FullName
	}
	size := ""
	if d.FileSize != nil {
		size = fmt.Sprintf("%d bytes", *d.FileSize)
	}
	return []Field{
		Text("Name", d.Name),
		Text("Client", clientName),
		Badge("Type", d.DocumentType),
		Badge("Status", string(d.Status)),
		Text("File Size", size),
		Text("Verified By", d.VerifiedBy),
		Date("Verified At", d.VerifiedAt),
		Text("Notes", d.Notes),
		DateValue("Uploaded", d.CreatedAt),
	}
}

func PaymentDetail(p *domain.Payment) []Field {
	clientName := ""
	if p.Client != nil {
		clientName = p.Client.FullName
	}
	return []Field{
		Text("Client", clientName),
		CurrencyValue("Amount", p.Amount),
		Badge("Type", p.PaymentType),
		Text("Method", p.PaymentMethod),
		Badge("Status", string(p.Status)),
		Text("Transaction ID", p.TransactionID),
		Date("Processed At", p.ProcessedAt),
		Text("Notes", p.Notes),
		DateValue("Created", p.CreatedAt),
	}
}

func AppointmentDetail(a *domain.Appointment) []Field {
	clientName := ""
	if a.Client != nil {
		clientName = a.Client.FullName
	}
	agentName := ""
	if a.Agent != nil {
		agentName = a.Agent.FullName
	}
	return []Field{
		Text("Title", a.Title),
		Text("Client", clientName),
		Text("Agent", agentName),
		Badge("Type", a.AppointmentType),
		DateValue("Scheduled", a.ScheduledAt),
		Text("Duration", fmt.Sprintf("%d min", a.DurationMinutes)),
		Badge("Status", string(a.Status)),
		Text("Location", a.Location),
		Text("Notes", a.Notes),
	}
}

func ServiceDetail(s *domain.Service) []Field {
	active := "no"
	if s.IsActive {
		active = "yes"
	}
	return []Field{
		Text("Name", s.Name),
		Text("Description", s.Description),
		Badge("Category", s.Category),
		CurrencyValue("Price", s.Price),
		Text("Duration Estimate", s.DurationEstimate),
		Badge("Active", active),
		DateValue("Created", s.CreatedAt),
	}
}

func StaffDetail(s *domain.Staff) []Field {
	return []Field{
		Text("Full Name", s.FullName),
		Text("Email", s.Email),
		Text("Phone", s.Phone),
		Badge("Role", string(s.Role)),
		Text("Department", s.Department),
		Badge("Status", string(s.Status)),
		Date("Last Login", s.LastLoginAt),
		DateValue("Created", s.CreatedAt),
	}
}
