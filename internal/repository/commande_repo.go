package repository

import (
	"context"

	"partage/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommandeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Commande, error)
	FindParticipant(ctx context.Context, commandeID, clientProfilID uuid.UUID) (*model.Participant, error)
}

type commandeRepo struct{ db *gorm.DB }

func NewCommandeRepository(db *gorm.DB) CommandeRepository { return &commandeRepo{db: db} }

func (r *commandeRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Commande, error) {
	var c model.Commande
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *commandeRepo) FindParticipant(ctx context.Context, commandeID, clientProfilID uuid.UUID) (*model.Participant, error) {
	var p model.Participant
	err := r.db.WithContext(ctx).
		Where("commande_id = ? AND client_profil_id = ?", commandeID, clientProfilID).
		First(&p).Error
	return &p, err
}
