// ABOUTME: Safe SQL query builder for repository operations
// ABOUTME: Enforces parameterization and prevents SQL injection attacks

package repository

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Table and column name validation - only alphanumeric, underscore allowed
var safeNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// allowedOperators restricts WHERE clauses to comparison operators.
var allowedOperators = map[string]bool{
	"=":  true,
	"!=": true,
	">":  true,
	"<":  true,
	">=": true,
	"<=": true,
}

// QueryBuilder provides a safe way to build SQL queries with automatic
// parameterization. Invalid names or operators are collected and reported
// when the query is built, so a malformed query is never executed.
type QueryBuilder struct {
	table   string
	columns []string
	wheres  []string
	params  []interface{}
	orderBy string
	limit   int
	offset  int
	errs    []error
}

// NewQueryBuilder creates a builder for the given table.
func NewQueryBuilder(table string) *QueryBuilder {
	qb := &QueryBuilder{
		params: make([]interface{}, 0),
		limit:  -1,
		offset: -1,
	}

	if err := validateName(table); err != nil {
		qb.errs = append(qb.errs, err)
		return qb
	}

	qb.table = table
	return qb
}

// validateName validates table/column names to prevent SQL injection
func validateName(name string) error {
	if name == "" {
		return errors.New("name cannot be empty")
	}

	if !safeNamePattern.MatchString(name) {
		return fmt.Errorf("invalid name: %s (only alphanumeric and underscore allowed)", name)
	}

	if len(name) > 64 {
		return fmt.Errorf("name too long: %s (max 64 characters)", name)
	}

	return nil
}

// Select sets the columns to fetch. No columns means SELECT *.
func (qb *QueryBuilder) Select(columns ...string) *QueryBuilder {
	for _, col := range columns {
		if err := validateName(col); err != nil {
			qb.errs = append(qb.errs, err)
			return qb
		}
	}

	qb.columns = columns
	return qb
}

// Where adds a parameterized condition. Conditions are combined with AND.
func (qb *QueryBuilder) Where(column string, operator string, value interface{}) *QueryBuilder {
	if err := validateName(column); err != nil {
		qb.errs = append(qb.errs, err)
		return qb
	}

	if !allowedOperators[operator] {
		qb.errs = append(qb.errs, fmt.Errorf("operator not allowed: %s", operator))
		return qb
	}

	qb.wheres = append(qb.wheres, column+" "+operator+" ?")
	qb.params = append(qb.params, value)
	return qb
}

// OrderBy sorts the results by the given column.
func (qb *QueryBuilder) OrderBy(column string, descending bool) *QueryBuilder {
	if err := validateName(column); err != nil {
		qb.errs = append(qb.errs, err)
		return qb
	}

	direction := "ASC"
	if descending {
		direction = "DESC"
	}

	qb.orderBy = column + " " + direction
	return qb
}

// Limit caps the number of rows returned.
func (qb *QueryBuilder) Limit(n int) *QueryBuilder {
	if n < 0 {
		qb.errs = append(qb.errs, fmt.Errorf("limit cannot be negative: %d", n))
		return qb
	}

	qb.limit = n
	return qb
}

// Offset skips the first n rows.
func (qb *QueryBuilder) Offset(n int) *QueryBuilder {
	if n < 0 {
		qb.errs = append(qb.errs, fmt.Errorf("offset cannot be negative: %d", n))
		return qb
	}

	qb.offset = n
	return qb
}

// BuildSelect assembles the SELECT statement and its parameters.
func (qb *QueryBuilder) BuildSelect() (string, []interface{}, error) {
	if err := qb.err(); err != nil {
		return "", nil, err
	}

	columns := "*"
	if len(qb.columns) > 0 {
		columns = strings.Join(qb.columns, ", ")
	}

	var sb strings.Builder
	sb.WriteString("SELECT " + columns + " FROM " + qb.table)
	qb.writeClauses(&sb)

	return sb.String(), qb.params, nil
}

// BuildCount assembles a SELECT COUNT(*) statement over the same conditions.
// Ordering, limit, and offset do not apply to counts.
func (qb *QueryBuilder) BuildCount() (string, []interface{}, error) {
	if err := qb.err(); err != nil {
		return "", nil, err
	}

	var sb strings.Builder
	sb.WriteString("SELECT COUNT(*) FROM " + qb.table)
	if len(qb.wheres) > 0 {
		sb.WriteString(" WHERE " + strings.Join(qb.wheres, " AND "))
	}

	return sb.String(), qb.params, nil
}

func (qb *QueryBuilder) writeClauses(sb *strings.Builder) {
	if len(qb.wheres) > 0 {
		sb.WriteString(" WHERE " + strings.Join(qb.wheres, " AND "))
	}

	if qb.orderBy != "" {
		sb.WriteString(" ORDER BY " + qb.orderBy)
	}

	if qb.limit >= 0 {
		sb.WriteString(fmt.Sprintf(" LIMIT %d", qb.limit))
	}

	if qb.offset >= 0 {
		sb.WriteString(fmt.Sprintf(" OFFSET %d", qb.offset))
	}
}

func (qb *QueryBuilder) err() error {
	if len(qb.errs) > 0 {
		return errors.Join(qb.errs...)
	}
	return nil
}
