package repository

import (
	"context"
	"encoding/json"
	"time"

	"partage/internal/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const profilCacheTTL = 1 * time.Hour

// cachedProfilRepo is a read-through Redis cache over ProfilRepository.
// Profiles change rarely relative to how often dispatch re-reads them, and
// every cache interaction is best effort: a Redis error falls back to the
// database silently.
type cachedProfilRepo struct {
	inner ProfilRepository
	rdb   *redis.Client
}

// NewCachedProfilRepository wraps inner with a Redis cache. A nil client
// returns inner unchanged.
func NewCachedProfilRepository(inner ProfilRepository, rdb *redis.Client) ProfilRepository {
	if rdb == nil {
		return inner
	}
	return &cachedProfilRepo{inner: inner, rdb: rdb}
}

func (r *cachedProfilRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Profil, error) {
	cacheKey := "profil:" + id.String()

	if cached, err := r.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var p model.Profil
		if jsonErr := json.Unmarshal(cached, &p); jsonErr == nil {
			return &p, nil
		}
	}

	p, err := r.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b, jsonErr := json.Marshal(p); jsonErr == nil {
		_ = r.rdb.Set(ctx, cacheKey, b, profilCacheTTL).Err()
	}
	return p, nil
}

// FindEmailByProfilID is never cached: the address drives delivery and must
// reflect the comptes row at send time.
func (r *cachedProfilRepo) FindEmailByProfilID(ctx context.Context, profilID uuid.UUID) (string, error) {
	return r.inner.FindEmailByProfilID(ctx, profilID)
}
