package service

import (
	"context"
	"database/sql"
	"encoding/json"

	"partage/internal/dto"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// DispatchFlusher triggers a best-effort drain of the notification queue.
// Satisfied by infra.DispatchClient.
type DispatchFlusher interface {
	Flush(ctx context.Context) (json.RawMessage, error)
}

type PaiementService interface {
	// Finaliser runs the database-side payment finalization scoped to the
	// authenticated user, then flushes the dispatch queue. The returned
	// error covers the finalization only; a flush failure is reported
	// inside the response and never fails the call.
	Finaliser(ctx context.Context, userID uuid.UUID, paymentID uuid.UUID) (*dto.FinaliserPaiementResponse, error)
}

type paiementService struct {
	db      *gorm.DB
	flusher DispatchFlusher
}

func NewPaiementService(db *gorm.DB, flusher DispatchFlusher) PaiementService {
	return &paiementService{db: db, flusher: flusher}
}

func (s *paiementService) Finaliser(ctx context.Context, userID uuid.UUID, paymentID uuid.UUID) (*dto.FinaliserPaiementResponse, error) {
	var raw sql.NullString
	procErr := s.db.WithContext(ctx).
		Raw(`SELECT finaliser_simulation_paiement(?::uuid, ?::uuid)::text`, paymentID, userID).
		Scan(&raw).Error

	// The finalization may have enqueued notifications even on failure
	// paths; always attempt the flush.
	flush := s.flushQueue(ctx)

	if procErr != nil {
		return &dto.FinaliserPaiementResponse{Ok: false, Email: flush}, procErr
	}

	resp := &dto.FinaliserPaiementResponse{Ok: true, Email: flush}
	if raw.Valid && json.Valid([]byte(raw.String)) {
		resp.Data = json.RawMessage(raw.String)
	}
	return resp, nil
}

func (s *paiementService) flushQueue(ctx context.Context) dto.EmailFlushResult {
	result, err := s.flusher.Flush(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("paiement: dispatch flush failed")
		return dto.EmailFlushResult{Ok: false, Error: err.Error()}
	}
	return dto.EmailFlushResult{Ok: true, Result: result}
}
