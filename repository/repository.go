// Package repository provides a generic data access layer for the trends
// services. A Repository manages one entity type; SQLRepository is the
// database/sql implementation.
package repository

import (
	"context"

	"trends-shared/pagination"
)

// Filters are column/value equality conditions applied to a query.
type Filters map[string]interface{}

// Repository defines the standard CRUD and filtering interface implemented
// by concrete repositories for specific data sources.
type Repository[T any] interface {
	// Create persists a new entity.
	Create(ctx context.Context, entity *T) error

	// All retrieves every entity.
	All(ctx context.Context) ([]*T, error)

	// GetByID retrieves a single entity by its unique identifier.
	GetByID(ctx context.Context, id interface{}) (*T, error)

	// GetBy retrieves the single entity matching the filters.
	GetBy(ctx context.Context, filters Filters) (*T, error)

	// FilterBy retrieves the entities matching the filters.
	FilterBy(ctx context.Context, filters Filters) ([]*T, error)

	// Count returns how many entities match the filters.
	Count(ctx context.Context, filters Filters) (int64, error)

	// Update applies the given column values to the entity with the given
	// ID and returns the updated entity.
	Update(ctx context.Context, id interface{}, fields map[string]interface{}) (*T, error)

	// Delete removes the entity with the given ID.
	Delete(ctx context.Context, id interface{}) error

	// Paginated returns one page of the entities matching the filters.
	Paginated(ctx context.Context, filters Filters, params pagination.PageParams) (*pagination.Page[*T], error)
}
