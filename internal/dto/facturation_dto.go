package dto

import (
	"time"

	"partage/internal/model"
)

// ─── Factures ────────────────────────────────────────────────────────────────

type FactureResponse struct {
	ID                 string    `json:"id"`
	Numero             string    `json:"numero"`
	TypeDocument       string    `json:"type_document"`
	MontantTTCCents    int64     `json:"montant_ttc_cents"`
	Devise             string    `json:"devise"`
	ProducteurProfilID string    `json:"producteur_profil_id"`
	ClientProfilID     string    `json:"client_profil_id"`
	CommandeID         *string   `json:"commande_id,omitempty"`
	PDFPath            *string   `json:"pdf_path,omitempty"`
	EmiseLe            time.Time `json:"emise_le"`
}

func ToFactureResponse(f *model.Facture) FactureResponse {
	resp := FactureResponse{
		ID:                 f.ID.String(),
		Numero:             f.Numero,
		TypeDocument:       f.TypeDocument,
		MontantTTCCents:    f.MontantTTCCents,
		Devise:             f.Devise,
		ProducteurProfilID: f.ProducteurProfilID.String(),
		ClientProfilID:     f.ClientProfilID.String(),
		PDFPath:            f.PDFPath,
		EmiseLe:            f.EmiseLe,
	}
	if f.CommandeID != nil {
		s := f.CommandeID.String()
		resp.CommandeID = &s
	}
	return resp
}

// ─── Emails sortants (operator view) ─────────────────────────────────────────

type EmailSortantFilter struct {
	Statut string `form:"statut" validate:"omitempty,oneof=pending sent failed"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type EmailSortantResponse struct {
	ID                string     `json:"id"`
	TypeEmail         string     `json:"type_email"`
	FactureID         string     `json:"facture_id"`
	Statut            string     `json:"statut"`
	LastError         *string    `json:"last_error,omitempty"`
	SentAt            *time.Time `json:"sent_at,omitempty"`
	ProviderMessageID *string    `json:"provider_message_id,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

func ToEmailSortantResponse(e *model.EmailSortant) EmailSortantResponse {
	return EmailSortantResponse{
		ID:                e.ID.String(),
		TypeEmail:         e.TypeEmail,
		FactureID:         e.FactureID.String(),
		Statut:            e.Statut,
		LastError:         e.LastError,
		SentAt:            e.SentAt,
		ProviderMessageID: e.ProviderMessageID,
		CreatedAt:         e.CreatedAt,
	}
}

type EmailSortantListResponse struct {
	Data  []EmailSortantResponse `json:"data"`
	Total int                    `json:"total"`
}
