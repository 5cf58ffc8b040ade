// ABOUTME: Repository mapping for trends tasks
// ABOUTME: Persists task lifecycle state with JSON request/result payloads

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"trends-shared/core/domain"
	"trends-shared/db"
)

// TrendsTasksSchema is the DDL for the trends task table. Services pass it
// to Session.Migrate at startup.
const TrendsTasksSchema = `
	CREATE TABLE IF NOT EXISTS trends_tasks (
		task_id TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL,
		status TEXT NOT NULL,
		request_data TEXT,
		schedule_at TIMESTAMP NOT NULL,
		result_data TEXT,
		error_message TEXT NOT NULL DEFAULT '',
		retry_count INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_trends_tasks_user ON trends_tasks(user_id);
	CREATE INDEX IF NOT EXISTS idx_trends_tasks_status ON trends_tasks(status);
`

// TrendsTaskMapper maps domain.TrendsTask to the trends_tasks table.
type TrendsTaskMapper struct{}

// Table returns the table name
func (TrendsTaskMapper) Table() string { return "trends_tasks" }

// PrimaryKey returns the primary key column
func (TrendsTaskMapper) PrimaryKey() string { return "task_id" }

// Columns returns all columns in Values order
func (TrendsTaskMapper) Columns() []string {
	return []string{
		"task_id", "user_id", "status", "request_data", "schedule_at",
		"result_data", "error_message", "retry_count", "created_at", "updated_at",
	}
}

// Values extracts column values from a task
func (TrendsTaskMapper) Values(task *domain.TrendsTask) ([]interface{}, error) {
	var request, result interface{}

	if task.Request != nil {
		data, err := json.Marshal(task.Request)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		request = string(data)
	}

	if task.Result != nil {
		data, err := json.Marshal(task.Result)
		if err != nil {
			return nil, fmt.Errorf("failed to encode result: %w", err)
		}
		result = string(data)
	}

	return []interface{}{
		task.TaskID, task.UserID, string(task.Status), request, task.ScheduleAt,
		result, task.ErrorMessage, task.RetryCount, task.CreatedAt, task.UpdatedAt,
	}, nil
}

// Scan reads one row into a task
func (TrendsTaskMapper) Scan(row RowScanner) (*domain.TrendsTask, error) {
	var task domain.TrendsTask
	var status string
	var request, result sql.NullString

	err := row.Scan(
		&task.TaskID, &task.UserID, &status, &request, &task.ScheduleAt,
		&result, &task.ErrorMessage, &task.RetryCount, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Status = domain.TaskStatus(status)

	if request.Valid && request.String != "" {
		var query domain.TrendsQuery
		if err := json.Unmarshal([]byte(request.String), &query); err != nil {
			return nil, fmt.Errorf("failed to decode request: %w", err)
		}
		task.Request = &query
	}

	if result.Valid && result.String != "" {
		if err := json.Unmarshal([]byte(result.String), &task.Result); err != nil {
			return nil, fmt.Errorf("failed to decode result: %w", err)
		}
	}

	return &task, nil
}

// TrendsTaskRepository is the repository for trends tasks.
type TrendsTaskRepository struct {
	*SQLRepository[domain.TrendsTask]
}

// NewTrendsTaskRepository creates a trends task repository on the session.
func NewTrendsTaskRepository(session *db.Session) *TrendsTaskRepository {
	return &TrendsTaskRepository{
		SQLRepository: NewSQLRepository[domain.TrendsTask](session, TrendsTaskMapper{}),
	}
}

// Save inserts the task or replaces its row when it already exists. The task
// worker calls this on every status change.
func (r *TrendsTaskRepository) Save(ctx context.Context, task *domain.TrendsTask) error {
	values, err := TrendsTaskMapper{}.Values(task)
	if err != nil {
		return err
	}

	columns := TrendsTaskMapper{}.Columns()
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")

	query := fmt.Sprintf("INSERT OR REPLACE INTO %s (%s) VALUES (%s)",
		TrendsTaskMapper{}.Table(), strings.Join(columns, ", "), placeholders)

	_, err = r.db.ExecContext(ctx, query, values...)
	return err
}
