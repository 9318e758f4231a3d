package domain

import (
	"time"

	"github.com/google/uuid"
)

// Request payloads. Monetary fields arrive as strings exactly as typed into
// the admin forms; coercion to decimals happens in the service layer.

// LoginRequest is the credential payload for staff sign-in
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginResponse carries the issued token and the authenticated account
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *Staff    `json:"user"`
}

// ClientRequest is the payload for creating or replacing a client
type ClientRequest struct {
	FullName        string     `json:"fullName" validate:"required,max=200"`
	Email           string     `json:"email" validate:"required,email,max=255"`
	Phone           string     `json:"phone" validate:"omitempty,max=50"`
	Address         string     `json:"address" validate:"omitempty,max=500"`
	SSNLastFour     string     `json:"ssnLastFour" validate:"omitempty,len=4,numeric"`
	FilingStatus    string     `json:"filingStatus" validate:"omitempty,max=50"`
	AssignedAgentID *uuid.UUID `json:"assignedAgentId"`
	Status          string     `json:"status" validate:"omitempty,oneof=active inactive pending"`
	Notes           string     `json:"notes"`
}

// AgentRequest is the payload for creating or replacing an agent.
// CommissionRate is free text; anything unparseable falls back to the
// standard 15.00 percent rate.
type AgentRequest struct {
	FullName       string `json:"fullName" validate:"required,max=200"`
	Email          string `json:"email" validate:"required,email,max=255"`
	Phone          string `json:"phone" validate:"omitempty,max=50"`
	LicenseNumber  string `json:"licenseNumber" validate:"omitempty,max=100"`
	Specialization string `json:"specialization" validate:"omitempty,max=200"`
	CommissionRate string `json:"commissionRate"`
	Status         string `json:"status" validate:"omitempty,oneof=active inactive suspended"`
}

// TaxReturnRequest is the payload for creating or replacing a tax return.
// The optional money fields stay null when left blank or unparseable.
type TaxReturnRequest struct {
	ClientID            uuid.UUID  `json:"clientId" validate:"required"`
	AgentID             *uuid.UUID `json:"agentId"`
	TaxYear             int        `json:"taxYear" validate:"required,gte=1990,lte=2100"`
	ReturnType          string     `json:"returnType" validate:"required,max=50"`
	Status              string     `json:"status" validate:"omitempty,oneof=pending in_progress review approved submitted rejected"`
	FederalRefund       string     `json:"federalRefund"`
	StateRefund         string     `json:"stateRefund"`
	FederalOwed         string     `json:"federalOwed"`
	StateOwed           string     `json:"stateOwed"`
	GrossIncome         string     `json:"grossIncome"`
	AdjustedGrossIncome string     `json:"adjustedGrossIncome"`
	TotalDeductions     string     `json:"totalDeductions"`
	FilingDate          *time.Time `json:"filingDate"`
	Notes               string     `json:"notes"`
}

// DocumentRequest is the payload for creating or replacing a document record
type DocumentRequest struct {
	ClientID     uuid.UUID  `json:"clientId" validate:"required"`
	TaxReturnID  *uuid.UUID `json:"taxReturnId"`
	Name         string     `json:"name" validate:"required,max=255"`
	DocumentType string     `json:"documentType" validate:"required,max=100"`
	FileURL      string     `json:"fileUrl" validate:"omitempty,max=500"`
	FileSize     *int64     `json:"fileSize" validate:"omitempty,gte=0"`
	Status       string     `json:"status" validate:"omitempty,oneof=uploaded verified rejected missing"`
	Notes        string     `json:"notes"`
}

// DocumentVerifyRequest accepts or rejects a document during review
type DocumentVerifyRequest struct {
	Accepted bool `json:"accepted"`
}

// PaymentRequest is the payload for creating or replacing a payment
type PaymentRequest struct {
	ClientID      uuid.UUID  `json:"clientId" validate:"required"`
	TaxReturnID   *uuid.UUID `json:"taxReturnId"`
	Amount        string     `json:"amount" validate:"required"`
	PaymentType   string     `json:"paymentType" validate:"required,max=100"`
	PaymentMethod string     `json:"paymentMethod" validate:"omitempty,max=100"`
	Status        string     `json:"status" validate:"omitempty,oneof=pending processing completed failed refunded"`
	TransactionID string     `json:"transactionId" validate:"omitempty,max=200"`
	Notes         string     `json:"notes"`
}

// AppointmentRequest is the payload for creating or replacing an appointment
type AppointmentRequest struct {
	ClientID        *uuid.UUID `json:"clientId"`
	AgentID         *uuid.UUID `json:"agentId"`
	Title           string     `json:"title" validate:"required,max=200"`
	AppointmentType string     `json:"appointmentType" validate:"omitempty,max=100"`
	ScheduledAt     time.Time  `json:"scheduledAt" validate:"required"`
	DurationMinutes int        `json:"durationMinutes" validate:"omitempty,gt=0"`
	Status          string     `json:"status" validate:"omitempty,oneof=scheduled confirmed completed cancelled no_show"`
	Location        string     `json:"location" validate:"omitempty,max=200"`
	Notes           string     `json:"notes"`
}

// ServiceRequest is the payload for creating or replacing a catalog service
type ServiceRequest struct {
	Name             string `json:"name" validate:"required,max=200"`
	Description      string `json:"description"`
	Category         string `json:"category" validate:"omitempty,max=100"`
	Price            string `json:"price" validate:"required"`
	DurationEstimate string `json:"durationEstimate" validate:"omitempty,max=100"`
	IsActive         *bool  `json:"isActive"`
}

// StaffRequest is the payload for creating or replacing a staff account.
// Password is required on create and optional on update, enforced in the
// service since the validator cannot tell the two apart.
type StaffRequest struct {
	FullName   string `json:"fullName" validate:"required,max=200"`
	Email      string `json:"email" validate:"required,email,max=255"`
	Phone      string `json:"phone" validate:"omitempty,max=50"`
	Role       string `json:"role" validate:"omitempty,oneof=superadmin admin staff"`
	Department string `json:"department" validate:"omitempty,max=100"`
	Status     string `json:"status" validate:"omitempty,oneof=active inactive"`
	Password   string `json:"password" validate:"omitempty,min=8"`
}

// ProfileUpdateRequest is the payload for staff editing their own account.
// Role and status are absent; only an admin can change those via /staff.
type ProfileUpdateRequest struct {
	FullName   string `json:"fullName" validate:"required,max=200"`
	Email      string `json:"email" validate:"required,email,max=255"`
	Phone      string `json:"phone" validate:"omitempty,max=50"`
	Department string `json:"department" validate:"omitempty,max=100"`
}

// PasswordChangeRequest is the payload for a self-service password change
type PasswordChangeRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}
