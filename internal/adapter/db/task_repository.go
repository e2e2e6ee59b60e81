package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"studyplanner/internal/core/domain"
	"studyplanner/internal/core/ports"
)

const listTasksQuery = `
SELECT
  t.*,
  c.items AS checklist_items
FROM tasks t
LEFT JOIN checklists c ON c.task_id = t.id
`

type TaskRepository struct {
	db *sqlx.DB
}

type taskRow struct {
	ID             string    `db:"id"`
	UserID         string    `db:"user_id"`
	Title          string    `db:"title"`
	Description    string    `db:"description"`
	Deadline       time.Time `db:"deadline"`
	Priority       string    `db:"priority"`
	Progress       int       `db:"progress"`
	Plan           []byte    `db:"plan"`
	Checklist      []byte    `db:"checklist"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
	ChecklistItems []byte    `db:"checklist_items"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// CreateTask inserts the task row and its checklist record in one
// transaction.
func (r *TaskRepository) CreateTask(ctx context.Context, task domain.Task, checklist domain.ChecklistRecord) error {
	planJSON, err := json.Marshal(task.Plan)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	namesJSON, err := json.Marshal(task.Checklist)
	if err != nil {
		return fmt.Errorf("marshal checklist names: %w", err)
	}
	itemsJSON, err := json.Marshal(checklist.Items)
	if err != nil {
		return fmt.Errorf("marshal checklist items: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
INSERT INTO tasks (id, user_id, title, description, deadline, priority, progress, plan, checklist, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.UserID, task.Title, task.Description,
		task.Deadline.Format("2006-01-02"), string(task.Priority), task.Progress,
		planJSON, namesJSON, task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
INSERT INTO checklists (id, task_id, items, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)`,
		checklist.ID, checklist.TaskID, itemsJSON, task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *TaskRepository) ListTasks(ctx context.Context, userID string) ([]domain.Task, error) {
	query := listTasksQuery
	args := []any{}
	if userID != "" {
		query += "WHERE t.user_id = ?\n"
		args = append(args, userID)
	}
	query += "ORDER BY t.created_at DESC"

	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		task, err := mapTaskRowToDomainTask(row)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

func (r *TaskRepository) GetTask(ctx context.Context, taskID string) (domain.Task, error) {
	var row taskRow
	err := r.db.GetContext(ctx, &row, listTasksQuery+"WHERE t.id = ?", taskID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	if err != nil {
		return domain.Task{}, err
	}
	return mapTaskRowToDomainTask(row)
}

// DeleteTask removes the task and its checklist record together.
func (r *TaskRepository) DeleteTask(ctx context.Context, taskID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", taskID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM checklists WHERE task_id = ?", taskID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *TaskRepository) GetChecklist(ctx context.Context, taskID string) (domain.ChecklistRecord, error) {
	var row struct {
		ID     string `db:"id"`
		TaskID string `db:"task_id"`
		Items  []byte `db:"items"`
	}
	err := r.db.GetContext(ctx, &row, "SELECT id, task_id, items FROM checklists WHERE task_id = ? LIMIT 1", taskID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ChecklistRecord{}, domain.ErrChecklistNotFound
	}
	if err != nil {
		return domain.ChecklistRecord{}, err
	}

	record := domain.ChecklistRecord{ID: row.ID, TaskID: row.TaskID}
	if err := json.Unmarshal(row.Items, &record.Items); err != nil {
		return domain.ChecklistRecord{}, fmt.Errorf("unmarshal checklist items: %w", err)
	}
	return record, nil
}

// SaveToggle writes the checklist items and the task's denormalized progress
// in one transaction.
func (r *TaskRepository) SaveToggle(ctx context.Context, checklist domain.ChecklistRecord, progress int) error {
	itemsJSON, err := json.Marshal(checklist.Items)
	if err != nil {
		return fmt.Errorf("marshal checklist items: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"UPDATE checklists SET items = ?, updated_at = ? WHERE id = ?",
		itemsJSON, time.Now(), checklist.ID,
	); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE tasks SET progress = ?, updated_at = ? WHERE id = ?",
		progress, time.Now(), checklist.TaskID,
	); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *TaskRepository) ListDueSoon(ctx context.Context, now time.Time, horizon time.Duration) ([]domain.Task, error) {
	until := now.Add(horizon)

	var rows []taskRow
	err := r.db.SelectContext(ctx, &rows,
		listTasksQuery+"WHERE t.progress < 100 AND t.deadline <= ? ORDER BY t.deadline",
		until.Format("2006-01-02"),
	)
	if err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		task, err := mapTaskRowToDomainTask(row)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

func mapTaskRowToDomainTask(row taskRow) (domain.Task, error) {
	task := domain.Task{
		ID:          row.ID,
		UserID:      row.UserID,
		Title:       row.Title,
		Description: row.Description,
		Deadline:    row.Deadline,
		Priority:    domain.Priority(row.Priority),
		Progress:    row.Progress,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}

	if len(row.Plan) > 0 {
		if err := json.Unmarshal(row.Plan, &task.Plan); err != nil {
			return domain.Task{}, fmt.Errorf("unmarshal plan: %w", err)
		}
	}
	if len(row.Checklist) > 0 {
		if err := json.Unmarshal(row.Checklist, &task.Checklist); err != nil {
			return domain.Task{}, fmt.Errorf("unmarshal checklist names: %w", err)
		}
	}

	if len(row.ChecklistItems) > 0 {
		if err := json.Unmarshal(row.ChecklistItems, &task.ResolvedItems); err != nil {
			return domain.Task{}, fmt.Errorf("unmarshal checklist items: %w", err)
		}
	} else {
		// No checklist record: fall back to the denormalized names.
		for _, name := range task.Checklist {
			task.ResolvedItems = append(task.ResolvedItems, domain.ChecklistItem{Step: name})
		}
	}

	return task, nil
}
