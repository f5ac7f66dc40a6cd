package repository

import (
	"context"

	"partage/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type FactureRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Facture, error)
	// UpdatePDFPath persists the storage key, but only when it differs from
	// what is already stored.
	UpdatePDFPath(ctx context.Context, id uuid.UUID, path string) error
	FindLignesForParticipant(ctx context.Context, participantID uuid.UUID) ([]LigneRow, error)
}

// LigneRow is a commande_items row joined with its produit, as needed for
// document rendering.
type LigneRow struct {
	Nom                  string
	Unite                string
	Quantite             int64
	PrixUnitaireTTCCents int64
	TotalTTCCents        int64
	TauxTVA              decimal.Decimal
}

type factureRepo struct{ db *gorm.DB }

func NewFactureRepository(db *gorm.DB) FactureRepository { return &factureRepo{db: db} }

func (r *factureRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Facture, error) {
	var f model.Facture
	err := r.db.WithContext(ctx).First(&f, id).Error
	return &f, err
}

func (r *factureRepo) UpdatePDFPath(ctx context.Context, id uuid.UUID, path string) error {
	return r.db.WithContext(ctx).Model(&model.Facture{}).
		Where("id = ? AND (pdf_path IS NULL OR pdf_path <> ?)", id, path).
		Update("pdf_path", path).Error
}

func (r *factureRepo) FindLignesForParticipant(ctx context.Context, participantID uuid.UUID) ([]LigneRow, error) {
	var rows []LigneRow
	err := r.db.WithContext(ctx).
		Table("commande_items").
		Select(`produits.nom, produits.unite, produits.taux_tva,
		        commande_items.quantite, commande_items.prix_unitaire_ttc_cents, commande_items.total_ttc_cents`).
		Joins("JOIN produits ON produits.id = commande_items.produit_id").
		Where("commande_items.participant_id = ?", participantID).
		Order("commande_items.created_at ASC").
		Scan(&rows).Error
	return rows, err
}
