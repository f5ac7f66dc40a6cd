package model

import (
	"time"

	"github.com/google/uuid"
)

// Document series. The series decides the storage folder and which line
// items are pulled for the PDF.
const (
	SerieFactureClient     = "facture_client"
	SerieFacturePlateforme = "facture_plateforme"
)

// Facture is a billing document. MontantTTCCents is the authoritative
// tax-inclusive total in minor units; recomputed line sums never replace it.
type Facture struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero             string    `gorm:"type:varchar(40);uniqueIndex;not null"`
	TypeDocument       string    `gorm:"type:varchar(30);not null"`
	MontantTTCCents    int64     `gorm:"not null"`
	Devise             string    `gorm:"type:varchar(3);not null;default:'EUR'"`
	ProducteurProfilID uuid.UUID `gorm:"type:uuid;index;not null"`
	ClientProfilID     uuid.UUID `gorm:"type:uuid;index;not null"`
	CommandeID         *uuid.UUID `gorm:"type:uuid;index"`
	// PDFPath is the object-storage key; stable once set, only rewritten if
	// the freshly computed deterministic key differs.
	PDFPath   *string `gorm:"column:pdf_path"`
	EmiseLe   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Facture) TableName() string { return "factures" }
