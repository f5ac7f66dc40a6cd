package service

import (
	"context"
	"errors"

	"partage/internal/dto"
	"partage/internal/repository"

	"github.com/google/uuid"
)

// ErrNotRequeueable is returned when the job does not exist or is not in
// the failed state.
var ErrNotRequeueable = errors.New("job is not in a requeueable state")

type EmailSortantService interface {
	List(ctx context.Context, filter dto.EmailSortantFilter) (*dto.EmailSortantListResponse, error)
	Requeue(ctx context.Context, id uuid.UUID) error
}

type emailSortantService struct {
	repo repository.EmailSortantRepository
}

func NewEmailSortantService(repo repository.EmailSortantRepository) EmailSortantService {
	return &emailSortantService{repo: repo}
}

func (s *emailSortantService) List(ctx context.Context, filter dto.EmailSortantFilter) (*dto.EmailSortantListResponse, error) {
	jobs, err := s.repo.ListByStatut(ctx, filter.Statut, filter.Limit)
	if err != nil {
		return nil, err
	}
	resp := &dto.EmailSortantListResponse{
		Data:  make([]dto.EmailSortantResponse, 0, len(jobs)),
		Total: len(jobs),
	}
	for i := range jobs {
		resp.Data = append(resp.Data, dto.ToEmailSortantResponse(&jobs[i]))
	}
	return resp, nil
}

func (s *emailSortantService) Requeue(ctx context.Context, id uuid.UUID) error {
	n, err := s.repo.Requeue(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotRequeueable
	}
	return nil
}
