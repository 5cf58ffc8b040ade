// ABOUTME: Generic database/sql repository implementation
// ABOUTME: Provides CRUD, filtering, and pagination for any mapped entity

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	coreerrors "trends-shared/core/errors"
	"trends-shared/db"
	"trends-shared/pagination"
)

// RowScanner abstracts *sql.Row and *sql.Rows for mappers.
type RowScanner interface {
	Scan(dest ...interface{}) error
}

// RowMapper describes how an entity type maps to its table. One mapper is
// written per entity; the repository handles the SQL.
type RowMapper[T any] interface {
	// Table returns the table name.
	Table() string

	// PrimaryKey returns the primary key column name.
	PrimaryKey() string

	// Columns returns all column names, including the primary key, in the
	// order Values produces them.
	Columns() []string

	// Values extracts the column values of an entity in Columns order.
	Values(entity *T) ([]interface{}, error)

	// Scan reads one row into a new entity. The row's columns are in
	// Columns order.
	Scan(row RowScanner) (*T, error)
}

// SQLRepository is a generic repository over database/sql.
type SQLRepository[T any] struct {
	db     *sql.DB
	mapper RowMapper[T]
}

// NewSQLRepository creates a repository for the mapped entity using the
// given session's connection pool.
func NewSQLRepository[T any](session *db.Session, mapper RowMapper[T]) *SQLRepository[T] {
	return &SQLRepository[T]{
		db:     session.DB(),
		mapper: mapper,
	}
}

// Create persists a new entity.
func (r *SQLRepository[T]) Create(ctx context.Context, entity *T) error {
	values, err := r.mapper.Values(entity)
	if err != nil {
		return coreerrors.WrapError(err, "failed to map entity")
	}

	columns := r.mapper.Columns()
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		r.mapper.Table(), strings.Join(columns, ", "), placeholders)

	if _, err := r.db.ExecContext(ctx, query, values...); err != nil {
		return coreerrors.WrapError(err, "failed to create entity")
	}

	return nil
}

// All retrieves every entity.
func (r *SQLRepository[T]) All(ctx context.Context) ([]*T, error) {
	qb := NewQueryBuilder(r.mapper.Table()).
		Select(r.mapper.Columns()...).
		OrderBy(r.mapper.PrimaryKey(), false)

	return r.queryMany(ctx, qb)
}

// GetByID retrieves a single entity by its unique identifier.
func (r *SQLRepository[T]) GetByID(ctx context.Context, id interface{}) (*T, error) {
	return r.GetBy(ctx, Filters{r.mapper.PrimaryKey(): id})
}

// GetBy retrieves the single entity matching the filters.
// Returns a NotFoundError when no entity matches.
func (r *SQLRepository[T]) GetBy(ctx context.Context, filters Filters) (*T, error) {
	qb := r.filterQuery(filters).Limit(1)

	results, err := r.queryMany(ctx, qb)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, &coreerrors.NotFoundError{
			Resource: r.mapper.Table(),
			ID:       filterID(filters),
		}
	}

	return results[0], nil
}

// FilterBy retrieves the entities matching the filters.
func (r *SQLRepository[T]) FilterBy(ctx context.Context, filters Filters) ([]*T, error) {
	return r.queryMany(ctx, r.filterQuery(filters))
}

// Count returns how many entities match the filters.
func (r *SQLRepository[T]) Count(ctx context.Context, filters Filters) (int64, error) {
	query, params, err := r.filterQuery(filters).BuildCount()
	if err != nil {
		return 0, err
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, query, params...).Scan(&count); err != nil {
		return 0, coreerrors.WrapError(err, "failed to count entities")
	}

	return count, nil
}

// Update applies the given column values to the entity with the given ID
// and returns the updated entity. Nil values are skipped.
func (r *SQLRepository[T]) Update(ctx context.Context, id interface{}, fields map[string]interface{}) (*T, error) {
	assignments := make([]string, 0, len(fields))
	params := make([]interface{}, 0, len(fields)+1)

	for _, column := range sortedKeys(fields) {
		value := fields[column]
		if value == nil {
			continue
		}

		if err := validateName(column); err != nil {
			return nil, err
		}

		assignments = append(assignments, column+" = ?")
		params = append(params, value)
	}

	if len(assignments) == 0 {
		return r.GetByID(ctx, id)
	}

	params = append(params, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?",
		r.mapper.Table(), strings.Join(assignments, ", "), r.mapper.PrimaryKey())

	result, err := r.db.ExecContext(ctx, query, params...)
	if err != nil {
		return nil, coreerrors.WrapError(err, "failed to update entity")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}

	if affected == 0 {
		return nil, &coreerrors.NotFoundError{
			Resource: r.mapper.Table(),
			ID:       fmt.Sprintf("%v", id),
		}
	}

	return r.GetByID(ctx, id)
}

// Delete removes the entity with the given ID.
// Returns a NotFoundError when no entity has that ID.
func (r *SQLRepository[T]) Delete(ctx context.Context, id interface{}) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = ?",
		r.mapper.Table(), r.mapper.PrimaryKey())

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return coreerrors.WrapError(err, "failed to delete entity")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return &coreerrors.NotFoundError{
			Resource: r.mapper.Table(),
			ID:       fmt.Sprintf("%v", id),
		}
	}

	return nil
}

// Paginated returns one page of the entities matching the filters, ordered
// by primary key, along with the total match count.
func (r *SQLRepository[T]) Paginated(ctx context.Context, filters Filters, params pagination.PageParams) (*pagination.Page[*T], error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	totalCount, err := r.Count(ctx, filters)
	if err != nil {
		return nil, err
	}

	qb := r.filterQuery(filters).
		OrderBy(r.mapper.PrimaryKey(), false).
		Limit(params.Limit()).
		Offset(params.Offset())

	results, err := r.queryMany(ctx, qb)
	if err != nil {
		return nil, err
	}

	page := pagination.NewPage(results, totalCount, params)
	return &page, nil
}

// filterQuery builds the base SELECT for the given filters. Filter keys are
// applied in sorted order so generated SQL is deterministic.
func (r *SQLRepository[T]) filterQuery(filters Filters) *QueryBuilder {
	qb := NewQueryBuilder(r.mapper.Table()).Select(r.mapper.Columns()...)

	for _, column := range sortedKeys(filters) {
		qb.Where(column, "=", filters[column])
	}

	return qb
}

// queryMany executes a built SELECT and scans all rows through the mapper.
func (r *SQLRepository[T]) queryMany(ctx context.Context, qb *QueryBuilder) ([]*T, error) {
	query, params, err := qb.BuildSelect()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, coreerrors.WrapError(err, "query failed")
	}
	defer rows.Close()

	var results []*T
	for rows.Next() {
		entity, err := r.mapper.Scan(rows)
		if err != nil {
			return nil, coreerrors.WrapError(err, "failed to scan row")
		}
		results = append(results, entity)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// filterID renders filters for NotFoundError messages.
func filterID(filters Filters) string {
	if len(filters) == 0 {
		return "<no filters>"
	}

	parts := make([]string, 0, len(filters))
	for _, k := range sortedKeys(filters) {
		parts = append(parts, fmt.Sprintf("%s=%v", k, filters[k]))
	}
	return strings.Join(parts, ", ")
}
