package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Base model with common fields. IDs are assigned client-side in BeforeCreate
// so the same models work against Postgres and the in-memory test database.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// BeforeCreate assigns a UUID when none is set
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// ClientStatus represents the lifecycle status of a client
type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "active"
	ClientStatusInactive ClientStatus = "inactive"
	ClientStatusPending  ClientStatus = "pending"
)

// IsValid checks if the ClientStatus is a valid enum value
func (s ClientStatus) IsValid() bool {
	switch s {
	case ClientStatusActive, ClientStatusInactive, ClientStatusPending:
		return true
	}
	return false
}

// Client represents a tax-preparation client
type Client struct {
	BaseModel
	FullName        string       `gorm:"type:varchar(200);not null;index" json:"fullName"`
	Email           string       `gorm:"type:varchar(255);not null;index" json:"email"`
	Phone           string       `gorm:"type:varchar(50)" json:"phone,omitempty"`
	Address         string       `gorm:"type:varchar(500)" json:"address,omitempty"`
	SSNLastFour     string       `gorm:"type:varchar(4);column:ssn_last_four" json:"ssnLastFour,omitempty"`
	FilingStatus    string       `gorm:"type:varchar(50);column:filing_status" json:"filingStatus,omitempty"`
	AssignedAgentID *uuid.UUID   `gorm:"type:uuid;column:assigned_agent_id;index" json:"assignedAgentId,omitempty"`
	AssignedAgent   *Agent       `gorm:"foreignKey:AssignedAgentID" json:"assignedAgent,omitempty"`
	Status          ClientStatus `gorm:"type:varchar(50);not null;default:'active';index" json:"status"`
	Notes           string       `gorm:"type:text" json:"notes,omitempty"`
	TaxReturns      []TaxReturn  `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"-"`
	Documents       []Document   `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"-"`
	Payments        []Payment    `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"-"`
}

// AgentStatus represents the lifecycle status of an agent
type AgentStatus string

const (
	AgentStatusActive    AgentStatus = "active"
	AgentStatusInactive  AgentStatus = "inactive"
	AgentStatusSuspended AgentStatus = "suspended"
)

// IsValid checks if the AgentStatus is a valid enum value
func (s AgentStatus) IsValid() bool {
	switch s {
	case AgentStatusActive, AgentStatusInactive, AgentStatusSuspended:
		return true
	}
	return false
}

// Agent represents a tax preparer working on client returns.
// TotalClients and TotalReturns are derived counters recomputed by the
// agent-stats background job, never written through the API.
type Agent struct {
	BaseModel
	FullName       string          `gorm:"type:varchar(200);not null;index" json:"fullName"`
	Email          string          `gorm:"type:varchar(255);not null" json:"email"`
	Phone          string          `gorm:"type:varchar(50)" json:"phone,omitempty"`
	LicenseNumber  string          `gorm:"type:varchar(100);column:license_number" json:"licenseNumber,omitempty"`
	Specialization string          `gorm:"type:varchar(200)" json:"specialization,omitempty"`
	CommissionRate decimal.Decimal `gorm:"type:decimal(5,2);not null;column:commission_rate" json:"commissionRate"`
	Status         AgentStatus     `gorm:"type:varchar(50);not null;default:'active';index" json:"status"`
	TotalClients   int             `gorm:"not null;default:0;column:total_clients" json:"totalClients"`
	TotalReturns   int             `gorm:"not null;default:0;column:total_returns" json:"totalReturns"`
}

// TaxReturnStatus represents the state of a tax return
type TaxReturnStatus string

const (
	TaxReturnStatusPending    TaxReturnStatus = "pending"
	TaxReturnStatusInProgress TaxReturnStatus = "in_progress"
	TaxReturnStatusReview     TaxReturnStatus = "review"
	TaxReturnStatusApproved   TaxReturnStatus = "approved"
	TaxReturnStatusSubmitted  TaxReturnStatus = "submitted"
	TaxReturnStatusRejected   TaxReturnStatus = "rejected"
)

// IsValid checks if the TaxReturnStatus is a valid enum value
func (s TaxReturnStatus) IsValid() bool {
	switch s {
	case TaxReturnStatusPending, TaxReturnStatusInProgress, TaxReturnStatusReview,
		TaxReturnStatusApproved, TaxReturnStatusSubmitted, TaxReturnStatusRejected:
		return true
	}
	return false
}

// PendingStatuses are the tax return states counted as open work on the
// dashboard. Exact set, not "everything non-terminal".
var PendingStatuses = []TaxReturnStatus{
	TaxReturnStatusPending,
	TaxReturnStatusInProgress,
	TaxReturnStatusReview,
}

// TaxReturn represents one filing year for a client
type TaxReturn struct {
	BaseModel
	ClientID            uuid.UUID        `gorm:"type:uuid;not null;index;column:client_id" json:"clientId"`
	Client              *Client          `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	AgentID             *uuid.UUID       `gorm:"type:uuid;index;column:agent_id" json:"agentId,omitempty"`
	Agent               *Agent           `gorm:"foreignKey:AgentID" json:"agent,omitempty"`
	TaxYear             int              `gorm:"not null;index;column:tax_year" json:"taxYear"`
	ReturnType          string           `gorm:"type:varchar(50);not null;column:return_type" json:"returnType"`
	Status              TaxReturnStatus  `gorm:"type:varchar(50);not null;default:'pending';index" json:"status"`
	FederalRefund       *decimal.Decimal `gorm:"type:decimal(15,2);column:federal_refund" json:"federalRefund,omitempty"`
	StateRefund         *decimal.Decimal `gorm:"type:decimal(15,2);column:state_refund" json:"stateRefund,omitempty"`
	FederalOwed         *decimal.Decimal `gorm:"type:decimal(15,2);column:federal_owed" json:"federalOwed,omitempty"`
	StateOwed           *decimal.Decimal `gorm:"type:decimal(15,2);column:state_owed" json:"stateOwed,omitempty"`
	GrossIncome         *decimal.Decimal `gorm:"type:decimal(15,2);column:gross_income" json:"grossIncome,omitempty"`
	AdjustedGrossIncome *decimal.Decimal `gorm:"type:decimal(15,2);column:adjusted_gross_income" json:"adjustedGrossIncome,omitempty"`
	TotalDeductions     *decimal.Decimal `gorm:"type:decimal(15,2);column:total_deductions" json:"totalDeductions,omitempty"`
	FilingDate          *time.Time       `gorm:"type:date;column:filing_date" json:"filingDate,omitempty"`
	SubmittedDate       *time.Time       `gorm:"column:submitted_date" json:"submittedDate,omitempty"`
	Notes               string           `gorm:"type:text" json:"notes,omitempty"`
}

// DocumentStatus represents the verification state of a document
type DocumentStatus string

const (
	DocumentStatusUploaded DocumentStatus = "uploaded"
	DocumentStatusVerified DocumentStatus = "verified"
	DocumentStatusRejected DocumentStatus = "rejected"
	DocumentStatusMissing  DocumentStatus = "missing"
)

// IsValid checks if the DocumentStatus is a valid enum value
func (s DocumentStatus) IsValid() bool {
	switch s {
	case DocumentStatusUploaded, DocumentStatusVerified, DocumentStatusRejected, DocumentStatusMissing:
		return true
	}
	return false
}

// Document represents a client tax document (W-2, 1099, receipts, ...)
type Document struct {
	BaseModel
	ClientID     uuid.UUID      `gorm:"type:uuid;not null;index;column:client_id" json:"clientId"`
	Client       *Client        `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	TaxReturnID  *uuid.UUID     `gorm:"type:uuid;index;column:tax_return_id" json:"taxReturnId,omitempty"`
	TaxReturn    *TaxReturn     `gorm:"foreignKey:TaxReturnID" json:"-"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	DocumentType string         `gorm:"type:varchar(100);not null;column:document_type" json:"documentType"`
	FileURL      string         `gorm:"type:varchar(500);column:file_url" json:"fileUrl,omitempty"`
	FileSize     *int64         `gorm:"column:file_size" json:"fileSize,omitempty"`
	Status       DocumentStatus `gorm:"type:varchar(50);not null;default:'uploaded';index" json:"status"`
	VerifiedBy   string         `gorm:"type:varchar(200);column:verified_by" json:"verifiedBy,omitempty"`
	VerifiedAt   *time.Time     `gorm:"column:verified_at" json:"verifiedAt,omitempty"`
	Notes        string         `gorm:"type:text" json:"notes,omitempty"`
}

// PaymentStatus represents the state of a payment
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusCompleted  PaymentStatus = "completed"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusRefunded   PaymentStatus = "refunded"
)

// IsValid checks if the PaymentStatus is a valid enum value
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusProcessing, PaymentStatusCompleted,
		PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// Payment represents money received from a client
type Payment struct {
	BaseModel
	ClientID      uuid.UUID       `gorm:"type:uuid;not null;index;column:client_id" json:"clientId"`
	Client        *Client         `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	TaxReturnID   *uuid.UUID      `gorm:"type:uuid;index;column:tax_return_id" json:"taxReturnId,omitempty"`
	TaxReturn     *TaxReturn      `gorm:"foreignKey:TaxReturnID" json:"-"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	PaymentType   string          `gorm:"type:varchar(100);not null;column:payment_type" json:"paymentType"`
	PaymentMethod string          `gorm:"type:varchar(100);column:payment_method" json:"paymentMethod,omitempty"`
	Status        PaymentStatus   `gorm:"type:varchar(50);not null;default:'pending';index" json:"status"`
	TransactionID string          `gorm:"type:varchar(200);column:transaction_id" json:"transactionId,omitempty"`
	ProcessedAt   *time.Time      `gorm:"column:processed_at" json:"processedAt,omitempty"`
	Notes         string          `gorm:"type:text" json:"notes,omitempty"`
}

// AppointmentStatus represents the state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusNoShow    AppointmentStatus = "no_show"
)

// IsValid checks if the AppointmentStatus is a valid enum value
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusConfirmed, AppointmentStatusCompleted,
		AppointmentStatusCancelled, AppointmentStatusNoShow:
		return true
	}
	return false
}

// Appointment represents a scheduled meeting with a client
type Appointment struct {
	BaseModel
	ClientID        *uuid.UUID        `gorm:"type:uuid;index;column:client_id" json:"clientId,omitempty"`
	Client          *Client           `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	AgentID         *uuid.UUID        `gorm:"type:uuid;index;column:agent_id" json:"agentId,omitempty"`
	Agent           *Agent            `gorm:"foreignKey:AgentID" json:"agent,omitempty"`
	Title           string            `gorm:"type:varchar(200);not null" json:"title"`
	AppointmentType string            `gorm:"type:varchar(100);not null;column:appointment_type" json:"appointmentType"`
	ScheduledAt     time.Time         `gorm:"not null;index;column:scheduled_at" json:"scheduledAt"`
	DurationMinutes int               `gorm:"not null;default:60;column:duration_minutes" json:"durationMinutes"`
	Status          AppointmentStatus `gorm:"type:varchar(50);not null;default:'scheduled';index" json:"status"`
	Location        string            `gorm:"type:varchar(200)" json:"location,omitempty"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`
}

// Service represents a catalog entry for offered services
type Service struct {
	BaseModel
	Name             string          `gorm:"type:varchar(200);not null;index" json:"name"`
	Description      string          `gorm:"type:text" json:"description,omitempty"`
	Category         string          `gorm:"type:varchar(100);not null;index" json:"category"`
	Price            decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"price"`
	DurationEstimate string          `gorm:"type:varchar(100);column:duration_estimate" json:"durationEstimate,omitempty"`
	IsActive         bool            `gorm:"not null;default:true;column:is_active" json:"isActive"`
}

// StaffRole represents a dashboard user role
type StaffRole string

const (
	RoleSuperAdmin StaffRole = "superadmin"
	RoleAdmin      StaffRole = "admin"
	RoleStaff      StaffRole = "staff"
)

// IsValid checks if the StaffRole is a valid enum value
func (r StaffRole) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleStaff:
		return true
	}
	return false
}

// StaffStatus represents the lifecycle status of a staff account
type StaffStatus string

const (
	StaffStatusActive   StaffStatus = "active"
	StaffStatusInactive StaffStatus = "inactive"
)

// IsValid checks if the StaffStatus is a valid enum value
func (s StaffStatus) IsValid() bool {
	switch s {
	case StaffStatusActive, StaffStatusInactive:
		return true
	}
	return false
}

// Staff represents a back-office user account
type Staff struct {
	BaseModel
	FullName     string      `gorm:"type:varchar(200);not null" json:"fullName"`
	Email        string      `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Phone        string      `gorm:"type:varchar(50)" json:"phone,omitempty"`
	Role         StaffRole   `gorm:"type:varchar(50);not null;default:'staff';index" json:"role"`
	Department   string      `gorm:"type:varchar(100)" json:"department,omitempty"`
	Status       StaffStatus `gorm:"type:varchar(50);not null;default:'active';index" json:"status"`
	PasswordHash string      `gorm:"type:varchar(200);not null;column:password_hash" json:"-"`
	LastLoginAt  *time.Time  `gorm:"column:last_login_at" json:"lastLoginAt,omitempty"`
}

// TableName overrides the default table name
func (Staff) TableName() string {
	return "staff"
}

// ActivityLog represents one append-only audit trail entry. Entries are
// created as a side effect of other actions and never updated or deleted.
type ActivityLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;column:user_id" json:"userId,omitempty"`
	UserEmail  string     `gorm:"type:varchar(255);column:user_email" json:"userEmail,omitempty"`
	Action     string     `gorm:"type:varchar(100);not null" json:"action"`
	EntityType string     `gorm:"type:varchar(50);column:entity_type" json:"entityType,omitempty"`
	EntityID   *uuid.UUID `gorm:"type:uuid;column:entity_id" json:"entityId,omitempty"`
	Details    string     `gorm:"type:text" json:"details,omitempty"`
	IPAddress  string     `gorm:"type:varchar(64);column:ip_address" json:"ipAddress,omitempty"`
	CreatedAt  time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"createdAt"`
}

// TableName overrides the default table name
func (ActivityLog) TableName() string {
	return "activity_log"
}

// BeforeCreate assigns a UUID when none is set
func (a *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
