package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Commande is a group order organized by a sharer, who acts as the local
// pickup point.
type Commande struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code               string    `gorm:"type:varchar(40);uniqueIndex;not null"`
	ProducteurProfilID uuid.UUID `gorm:"type:uuid;index;not null"`
	PartageurProfilID  uuid.UUID `gorm:"type:uuid;index;not null"`
	RetraitAdresse     string    `gorm:"type:varchar(200)"`
	RetraitCodePostal  string    `gorm:"type:varchar(12)"`
	RetraitVille       string    `gorm:"type:varchar(80)"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (Commande) TableName() string { return "commandes" }

// Participant is one client's slot in a commande. CodeRetrait identifies
// them at the physical handoff.
type Participant struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CommandeID     uuid.UUID `gorm:"type:uuid;index;not null"`
	ClientProfilID uuid.UUID `gorm:"type:uuid;index;not null"`
	CodeRetrait    string    `gorm:"type:varchar(16)"`
	CreatedAt      time.Time
}

func (Participant) TableName() string { return "participants" }

// CommandeItem is one ordered product line for a participant. Prices are
// tax-inclusive minor units.
type CommandeItem struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ParticipantID        uuid.UUID `gorm:"type:uuid;index;not null"`
	ProduitID            uuid.UUID `gorm:"type:uuid;index;not null"`
	Quantite             int64     `gorm:"not null"`
	PrixUnitaireTTCCents int64     `gorm:"not null;column:prix_unitaire_ttc_cents"`
	TotalTTCCents        int64     `gorm:"not null;column:total_ttc_cents"`
	CreatedAt            time.Time
}

func (CommandeItem) TableName() string { return "commande_items" }

// Produit carries the name, unit label and VAT rate joined onto line items.
type Produit struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nom       string          `gorm:"type:varchar(120);not null"`
	Unite     string          `gorm:"type:varchar(30)"`
	TauxTVA   decimal.Decimal `gorm:"type:decimal(6,4);not null;default:0;column:taux_tva"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Produit) TableName() string { return "produits" }
