package infra

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// ObjectStore persists rendered documents at deterministic keys with
// overwrite semantics: re-uploading the same key replaces the object.
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
}

// GCSStore is the production ObjectStore, one bucket shared by all
// invocations.
type GCSStore struct {
	client *storage.Client
	bucket string
}

// NewGCSStore builds the client from ADC, or from explicit JSON credentials
// when provided (local development).
func NewGCSStore(ctx context.Context, bucket, credentialsJSON string) (*GCSStore, error) {
	var (
		client *storage.Client
		err    error
	)
	if strings.TrimSpace(credentialsJSON) != "" {
		client, err = storage.NewClient(ctx, option.WithCredentialsJSON([]byte(credentialsJSON)))
	} else {
		client, err = storage.NewClient(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: create client: %w", err)
	}
	return &GCSStore{client: client, bucket: bucket}, nil
}

// Upload writes data to key, replacing any previous object (last write
// wins; identical content is expected on concurrent retries).
func (s *GCSStore) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	wc := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	wc.ContentType = contentType
	if _, err := wc.Write(data); err != nil {
		return fmt.Errorf("storage: write %s: %w", key, err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("storage: close %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying client.
func (s *GCSStore) Close() error { return s.client.Close() }

// DocumentKey computes the deterministic storage key for a facture:
// <series folder>/<producer profile id>/<numero>.pdf.
func DocumentKey(serie, producteurProfilID, numero string) string {
	folder := "factures_client"
	if serie == "facture_plateforme" {
		folder = "factures_plateforme"
	}
	return fmt.Sprintf("%s/%s/%s.pdf", folder, producteurProfilID, numero)
}
