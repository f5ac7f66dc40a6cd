package repository

import (
	"context"
	"time"

	"partage/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmailSortantRepository interface {
	Create(ctx context.Context, e *model.EmailSortant) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.EmailSortant, error)
	ClaimPending(ctx context.Context, limit int, lockTTL time.Duration) ([]model.EmailSortant, error)
	MarkSent(ctx context.Context, id uuid.UUID, providerMessageID string) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
	Requeue(ctx context.Context, id uuid.UUID) (int64, error)
	ListByStatut(ctx context.Context, statut string, limit int) ([]model.EmailSortant, error)
}

type emailSortantRepo struct{ db *gorm.DB }

func NewEmailSortantRepository(db *gorm.DB) EmailSortantRepository {
	return &emailSortantRepo{db: db}
}

func (r *emailSortantRepo) Create(ctx context.Context, e *model.EmailSortant) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *emailSortantRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.EmailSortant, error) {
	var e model.EmailSortant
	err := r.db.WithContext(ctx).First(&e, id).Error
	return &e, err
}

// ClaimPending atomically locks up to limit pending jobs for this worker.
// FOR UPDATE SKIP LOCKED guarantees two concurrent callers never claim the
// same row. A row whose lock is older than lockTTL is treated as abandoned
// by a crashed worker and becomes claimable again.
func (r *emailSortantRepo) ClaimPending(ctx context.Context, limit int, lockTTL time.Duration) ([]model.EmailSortant, error) {
	var claimed []model.EmailSortant
	err := r.db.WithContext(ctx).Raw(`
		UPDATE emails_sortants
		   SET locked_at = NOW(), updated_at = NOW()
		 WHERE id IN (
		       SELECT id FROM emails_sortants
		        WHERE statut = ?
		          AND (locked_at IS NULL OR locked_at < NOW() - make_interval(secs => ?))
		        ORDER BY created_at ASC
		        LIMIT ?
		        FOR UPDATE SKIP LOCKED)
		RETURNING *`,
		model.StatutPending,
		lockTTL.Seconds(),
		limit,
	).Scan(&claimed).Error
	return claimed, err
}

func (r *emailSortantRepo) MarkSent(ctx context.Context, id uuid.UUID, providerMessageID string) error {
	updates := map[string]interface{}{
		"statut":     model.StatutSent,
		"sent_at":    time.Now(),
		"last_error": nil,
		"locked_at":  nil,
	}
	if providerMessageID != "" {
		updates["provider_message_id"] = providerMessageID
	}
	return r.db.WithContext(ctx).Model(&model.EmailSortant{}).Where("id = ?", id).Updates(updates).Error
}

func (r *emailSortantRepo) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	return r.db.WithContext(ctx).Model(&model.EmailSortant{}).Where("id = ?", id).Updates(map[string]interface{}{
		"statut":     model.StatutFailed,
		"last_error": reason,
		"locked_at":  nil,
	}).Error
}

// Requeue flips a failed job back to pending. Returns the number of rows
// touched so the caller can 404 on unknown ids or non-failed jobs.
func (r *emailSortantRepo) Requeue(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.EmailSortant{}).
		Where("id = ? AND statut = ?", id, model.StatutFailed).
		Updates(map[string]interface{}{
			"statut":     model.StatutPending,
			"last_error": nil,
			"locked_at":  nil,
		})
	return res.RowsAffected, res.Error
}

func (r *emailSortantRepo) ListByStatut(ctx context.Context, statut string, limit int) ([]model.EmailSortant, error) {
	var jobs []model.EmailSortant
	q := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if statut != "" {
		q = q.Where("statut = ?", statut)
	}
	err := q.Find(&jobs).Error
	return jobs, err
}
