package repository

import (
	"context"

	"partage/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfilRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Profil, error)
	// FindEmailByProfilID resolves the delivery address through the profile's
	// compte. gorm.ErrRecordNotFound when either row is missing.
	FindEmailByProfilID(ctx context.Context, profilID uuid.UUID) (string, error)
}

type profilRepo struct{ db *gorm.DB }

func NewProfilRepository(db *gorm.DB) ProfilRepository { return &profilRepo{db: db} }

func (r *profilRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Profil, error) {
	var p model.Profil
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *profilRepo) FindEmailByProfilID(ctx context.Context, profilID uuid.UUID) (string, error) {
	var email string
	err := r.db.WithContext(ctx).
		Table("profils").
		Select("comptes.email").
		Joins("JOIN comptes ON comptes.id = profils.compte_id").
		Where("profils.id = ?", profilID).
		Scan(&email).Error
	if err != nil {
		return "", err
	}
	if email == "" {
		return "", gorm.ErrRecordNotFound
	}
	return email, nil
}
