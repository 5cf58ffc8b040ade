package repository

import (
	"context"
	"testing"
	"time"

	"trends-shared/core/domain"
	"trends-shared/core/errors"
	"trends-shared/db"
	"trends-shared/pagination"
	"trends-shared/pkg/config"
)

func newTestRepo(t *testing.T) *TrendsTaskRepository {
	t.Helper()

	session, err := db.Open(config.DatabaseConfig{URL: ":memory:"})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { session.Close() })

	if err := session.Migrate(context.Background(), TrendsTasksSchema); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return NewTrendsTaskRepository(session)
}

func newTask(userID int64) *domain.TrendsTask {
	return domain.NewTrendsTask(userID, domain.NewTrendsQuery("golang"))
}

func TestSQLRepository_CreateAndGetByID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	task := newTask(1)
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.GetByID(ctx, task.TaskID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}

	if got.TaskID != task.TaskID {
		t.Errorf("TaskID = %v, want %v", got.TaskID, task.TaskID)
	}

	if got.Status != domain.TaskStatusPending {
		t.Errorf("Status = %v, want pending", got.Status)
	}

	if got.Request == nil || got.Request.Terms[0] != "golang" {
		t.Errorf("Request = %+v, want the stored query", got.Request)
	}
}

func TestSQLRepository_GetByID_Missing(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetByID(context.Background(), "no-such-task")
	if err == nil {
		t.Fatal("GetByID() should fail for a missing task")
	}

	if !errors.IsNotFound(err) {
		t.Errorf("expected NotFoundError, got %T: %v", err, err)
	}
}

func TestSQLRepository_FilterBy(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		repo.Create(ctx, newTask(1))
	}
	repo.Create(ctx, newTask(2))

	mine, err := repo.FilterBy(ctx, Filters{"user_id": 1})
	if err != nil {
		t.Fatalf("FilterBy() error = %v", err)
	}

	if len(mine) != 3 {
		t.Errorf("FilterBy() returned %d tasks, want 3", len(mine))
	}
}

func TestSQLRepository_Count(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	repo.Create(ctx, newTask(1))
	repo.Create(ctx, newTask(1))
	repo.Create(ctx, newTask(2))

	count, err := repo.Count(ctx, Filters{"user_id": 1})
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}

	if count != 2 {
		t.Errorf("Count() = %d, want 2", count)
	}

	total, err := repo.Count(ctx, Filters{})
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}

	if total != 3 {
		t.Errorf("Count() with no filters = %d, want 3", total)
	}
}

func TestSQLRepository_Update(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	task := newTask(1)
	repo.Create(ctx, task)

	updated, err := repo.Update(ctx, task.TaskID, map[string]interface{}{
		"status":      string(domain.TaskStatusInProgress),
		"retry_count": 1,
		"updated_at":  time.Now(),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.Status != domain.TaskStatusInProgress {
		t.Errorf("Status = %v, want in_progress", updated.Status)
	}

	if updated.RetryCount != 1 {
		t.Errorf("RetryCount = %d, want 1", updated.RetryCount)
	}
}

func TestSQLRepository_Update_SkipsNilValues(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	task := newTask(1)
	repo.Create(ctx, task)

	updated, err := repo.Update(ctx, task.TaskID, map[string]interface{}{
		"status":        nil,
		"error_message": "boom",
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.Status != domain.TaskStatusPending {
		t.Errorf("Status = %v, nil value should not overwrite it", updated.Status)
	}

	if updated.ErrorMessage != "boom" {
		t.Errorf("ErrorMessage = %v, want boom", updated.ErrorMessage)
	}
}

func TestSQLRepository_Update_Missing(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Update(context.Background(), "ghost", map[string]interface{}{
		"retry_count": 5,
	})
	if !errors.IsNotFound(err) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestSQLRepository_Update_RejectsBadColumn(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	task := newTask(1)
	repo.Create(ctx, task)

	_, err := repo.Update(ctx, task.TaskID, map[string]interface{}{
		"status = 'x'; --": "pwned",
	})
	if err == nil {
		t.Error("Update() should reject a column name that fails validation")
	}
}

func TestSQLRepository_Delete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	task := newTask(1)
	repo.Create(ctx, task)

	if err := repo.Delete(ctx, task.TaskID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := repo.GetByID(ctx, task.TaskID); !errors.IsNotFound(err) {
		t.Errorf("GetByID() after delete = %v, want NotFoundError", err)
	}
}

func TestSQLRepository_Delete_Missing(t *testing.T) {
	repo := newTestRepo(t)

	if err := repo.Delete(context.Background(), "ghost"); !errors.IsNotFound(err) {
		t.Errorf("Delete() of missing task = %v, want NotFoundError", err)
	}
}

func TestSQLRepository_Paginated(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		repo.Create(ctx, newTask(1))
	}

	page, err := repo.Paginated(ctx, Filters{"user_id": 1}, pagination.PageParams{Page: 2, Size: 3})
	if err != nil {
		t.Fatalf("Paginated() error = %v", err)
	}

	if page.TotalCount != 7 {
		t.Errorf("TotalCount = %d, want 7", page.TotalCount)
	}

	if len(page.Results) != 3 {
		t.Errorf("len(Results) = %d, want 3", len(page.Results))
	}

	if page.PreviousPage == nil || *page.PreviousPage != 1 {
		t.Errorf("PreviousPage = %v, want 1", page.PreviousPage)
	}

	if page.NextPage == nil || *page.NextPage != 3 {
		t.Errorf("NextPage = %v, want 3", page.NextPage)
	}
}

func TestSQLRepository_Paginated_InvalidParams(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Paginated(context.Background(), Filters{}, pagination.PageParams{Page: 0, Size: 10})
	if !errors.IsValidation(err) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestTrendsTaskRepository_SaveUpserts(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	task := newTask(1)
	if err := repo.Save(ctx, task); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	task.Status = domain.TaskStatusCompleted
	task.Result = map[string]interface{}{"interest": float64(87)}
	if err := repo.Save(ctx, task); err != nil {
		t.Fatalf("Save() on existing task error = %v", err)
	}

	got, err := repo.GetByID(ctx, task.TaskID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}

	if got.Status != domain.TaskStatusCompleted {
		t.Errorf("Status = %v, want completed", got.Status)
	}

	if got.Result["interest"] != float64(87) {
		t.Errorf("Result = %v, want stored payload", got.Result)
	}

	count, _ := repo.Count(ctx, Filters{})
	if count != 1 {
		t.Errorf("Count() = %d, Save should not duplicate rows", count)
	}
}
