package model

import (
	"time"

	"github.com/google/uuid"
)

// RegimeTVAFranchise marks a party under the French VAT exemption regime
// (franchise en base); their VAT number is suppressed on rendered documents.
const RegimeTVAFranchise = "franchise"

// Profil is a producer, sharer or client profile. Address fields may be
// blank; document rendering degrades to empty lines rather than failing.
type Profil struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompteID      uuid.UUID `gorm:"type:uuid;index;not null"`
	NomAffichage  string    `gorm:"type:varchar(120);not null"`
	AdresseLigne1 string    `gorm:"type:varchar(200)"`
	AdresseLigne2 string    `gorm:"type:varchar(200)"`
	CodePostal    string    `gorm:"type:varchar(12)"`
	Ville         string    `gorm:"type:varchar(80)"`
	Siret         *string   `gorm:"type:varchar(20)"`
	NumeroTVA     *string   `gorm:"type:varchar(20);column:numero_tva"`
	RegimeTVA     string    `gorm:"type:varchar(30);column:regime_tva"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Profil) TableName() string { return "profils" }

// Compte is the identity/auth collaborator row, the only place an email
// address lives.
type Compte struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	CreatedAt time.Time
}

func (Compte) TableName() string { return "comptes" }
