package service

import (
	"context"
	"encoding/json"

	"catgw/internal/catapi"
)

// CatService exposes the breed and image lookups backed by the upstream API.
type CatService interface {
	Breeds(ctx context.Context) (json.RawMessage, error)
	BreedByID(ctx context.Context, breedID string) (json.RawMessage, error)
	SearchBreeds(ctx context.Context, query string) (json.RawMessage, error)
	ImagesByBreed(ctx context.Context, breedID string, limit int) (json.RawMessage, error)
}

type catService struct {
	client *catapi.Client
}

// NewCatService creates a cat service delegating to the upstream client.
func NewCatService(client *catapi.Client) CatService {
	return &catService{client: client}
}

func (s *catService) Breeds(ctx context.Context) (json.RawMessage, error) {
	return s.client.Breeds(ctx)
}

func (s *catService) BreedByID(ctx context.Context, breedID string) (json.RawMessage, error) {
	return s.client.BreedByID(ctx, breedID)
}

func (s *catService) SearchBreeds(ctx context.Context, query string) (json.RawMessage, error) {
	return s.client.SearchBreeds(ctx, query)
}

func (s *catService) ImagesByBreed(ctx context.Context, breedID string, limit int) (json.RawMessage, error) {
	return s.client.ImagesByBreed(ctx, breedID, limit)
}
