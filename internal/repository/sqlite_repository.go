package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/haconeco/task-tracker/internal/domain"
)

// SQLiteTaskRepository はSQLiteベースのTaskリポジトリ実装。
type SQLiteTaskRepository struct {
	db     *sql.DB
	nextID IDGenerator
}

// NewSQLiteTaskRepository は新しいSQLiteTaskRepositoryを生成する。
func NewSQLiteTaskRepository(db *sql.DB) (*SQLiteTaskRepository, error) {
	repo := &SQLiteTaskRepository{db: db, nextID: NewRandomID}
	if err := repo.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate tasks table: %w", err)
	}
	return repo, nil
}

func (r *SQLiteTaskRepository) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS tasks (
		id          INTEGER PRIMARY KEY,
		project_id  INTEGER NOT NULL,
		title       TEXT NOT NULL,
		deadline    DATETIME NOT NULL,
		hours_spent REAL NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_project_id ON tasks(project_id);
	`
	_, err := r.db.Exec(query)
	return err
}

// Add は新しいTaskをSQLiteに保存する。
func (r *SQLiteTaskRepository) Add(ctx context.Context, task *domain.Task) (domain.ID, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := unusedID(ctx, tx, "tasks", r.nextID)
	if err != nil {
		return 0, err
	}

	query := `
	INSERT INTO tasks (id, project_id, title, deadline, hours_spent)
	VALUES (?, ?, ?, ?, ?)
	`
	if _, err := tx.ExecContext(ctx, query,
		int64(id),
		int64(task.ProjectID),
		task.Title,
		// オフセット付きの時刻は読み戻せないため UTC で保存する
		task.Deadline.UTC(),
		task.HoursSpent,
	); err != nil {
		return 0, fmt.Errorf("failed to insert task: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit task: %w", err)
	}

	task.ID = id
	return id, nil
}

// Get はIDでTaskを取得する。
func (r *SQLiteTaskRepository) Get(ctx context.Context, id domain.ID) (*domain.Task, error) {
	query := `
	SELECT id, project_id, title, deadline, hours_spent
	FROM tasks WHERE id = ?
	`
	var (
		task      domain.Task
		taskID    int64
		projectID int64
	)
	err := r.db.QueryRowContext(ctx, query, int64(id)).Scan(
		&taskID,
		&projectID,
		&task.Title,
		&task.Deadline,
		&task.HoursSpent,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan task: %w", err)
	}
	task.ID = domain.ID(taskID)
	task.ProjectID = domain.ID(projectID)
	return &task, nil
}

// AddHours はトランザクション内で累計作業時間を加算する。
func (r *SQLiteTaskRepository) AddHours(ctx context.Context, id domain.ID, hours float64) (float64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var current float64
	err = tx.QueryRowContext(ctx, `SELECT hours_spent FROM tasks WHERE id = ?`, int64(id)).Scan(&current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("failed to read hours: %w", err)
	}

	total := current + hours
	if _, err := tx.ExecContext(ctx, `UPDATE tasks SET hours_spent = ? WHERE id = ?`, total, int64(id)); err != nil {
		return 0, fmt.Errorf("failed to update hours: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit hours: %w", err)
	}
	return total, nil
}

// Clear は全Taskを削除する。
func (r *SQLiteTaskRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("failed to clear tasks: %w", err)
	}
	return nil
}

// SQLiteProjectRepository はSQLiteベースのProjectリポジトリ実装。
type SQLiteProjectRepository struct {
	db     *sql.DB
	nextID IDGenerator
}

// NewSQLiteProjectRepository は新しいSQLiteProjectRepositoryを生成する。
func NewSQLiteProjectRepository(db *sql.DB) (*SQLiteProjectRepository, error) {
	repo := &SQLiteProjectRepository{db: db, nextID: NewRandomID}
	if err := repo.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate projects table: %w", err)
	}
	return repo, nil
}

func (r *SQLiteProjectRepository) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS projects (
		id       INTEGER PRIMARY KEY,
		name     TEXT NOT NULL,
		deadline DATETIME
	);
	`
	_, err := r.db.Exec(query)
	return err
}

// Add は新しいProjectをSQLiteに保存する。
func (r *SQLiteProjectRepository) Add(ctx context.Context, project *domain.Project) (domain.ID, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := unusedID(ctx, tx, "projects", r.nextID)
	if err != nil {
		return 0, err
	}

	var deadline sql.NullTime
	if project.Deadline != nil {
		deadline = sql.NullTime{Time: project.Deadline.UTC(), Valid: true}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO projects (id, name, deadline) VALUES (?, ?, ?)`,
		int64(id), project.Name, deadline,
	); err != nil {
		return 0, fmt.Errorf("failed to insert project: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit project: %w", err)
	}

	project.ID = id
	return id, nil
}

// Get はIDでProjectを取得する。
func (r *SQLiteProjectRepository) Get(ctx context.Context, id domain.ID) (*domain.Project, error) {
	var (
		project   domain.Project
		projectID int64
		deadline  sql.NullTime
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, deadline FROM projects WHERE id = ?`, int64(id),
	).Scan(&projectID, &project.Name, &deadline)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan project: %w", err)
	}
	project.ID = domain.ID(projectID)
	if deadline.Valid {
		project.Deadline = timePtr(deadline.Time)
	}
	return &project, nil
}

// Clear は全Projectを削除する。
func (r *SQLiteProjectRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM projects`); err != nil {
		return fmt.Errorf("failed to clear projects: %w", err)
	}
	return nil
}

// unusedID は table に存在しないIDが得られるまで採番を繰り返す。
func unusedID(ctx context.Context, tx *sql.Tx, table string, next IDGenerator) (domain.ID, error) {
	query := fmt.Sprintf(`SELECT 1 FROM %s WHERE id = ?`, table)
	for {
		id := next()
		var one int
		err := tx.QueryRowContext(ctx, query, int64(id)).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return id, nil
		}
		if err != nil {
			return 0, fmt.Errorf("failed to check id in %s: %w", table, err)
		}
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
