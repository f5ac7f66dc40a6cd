package model

import (
	"time"

	"github.com/google/uuid"
)

// Email kinds. Matching is case/whitespace-insensitive at dispatch time.
const (
	KindInvoiceClient       = "INVOICE_CLIENT"
	KindInvoicePlatform     = "INVOICE_PLATFORM"
	KindSettlementStatement = "SETTLEMENT_STATEMENT"
)

// Queue statuses. A job transitions pending → sent|failed exactly once per
// attempt and never re-enters pending on its own; requeueing a failed job
// is an operator action.
const (
	StatutPending = "pending"
	StatutSent    = "sent"
	StatutFailed  = "failed"
)

// EmailSortant is one pending outbound communication, created by the
// upstream order/billing logic and consumed by the dispatch worker.
type EmailSortant struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TypeEmail string    `gorm:"type:varchar(40);not null"`
	FactureID uuid.UUID `gorm:"type:uuid;index;not null"`
	Statut    string    `gorm:"type:varchar(20);not null;default:'pending'"`
	// LockedAt is the claim timestamp; concurrent workers skip locked rows.
	LockedAt          *time.Time
	LastError         *string
	SentAt            *time.Time
	ProviderMessageID *string `gorm:"type:varchar(120)"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (EmailSortant) TableName() string { return "emails_sortants" }
