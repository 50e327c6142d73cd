package storage

import (
	"context"

	"felogen/internal/model"
)

// Store defines persistence operations for the population, the gene catalog
// document and litter history.
type Store interface {
	Init(ctx context.Context) error
	SaveIndividual(ctx context.Context, ind model.Individual) error
	GetIndividual(ctx context.Context, id string) (model.Individual, bool, error)
	ListIndividuals(ctx context.Context) ([]model.Individual, error)
	DeleteIndividual(ctx context.Context, id string) error
	SaveGeneCatalog(ctx context.Context, catalog map[string]model.GeneDefinition) error
	GetGeneCatalog(ctx context.Context) (map[string]model.GeneDefinition, bool, error)
	SaveLitter(ctx context.Context, litter model.LitterRecord) error
	ListLitters(ctx context.Context) ([]model.LitterRecord, error)
}
