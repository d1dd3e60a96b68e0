package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/haconeco/task-tracker/internal/config"

	_ "modernc.org/sqlite"
)

// Repositories は全リポジトリを束ねる構造体。
type Repositories struct {
	Task    TaskRepository
	Project ProjectRepository

	db *sql.DB // closeのために保持
}

// NewMemoryRepositories はインメモリ実装のリポジトリを生成する。
func NewMemoryRepositories() *Repositories {
	return &Repositories{
		Task:    NewMemoryTaskRepository(),
		Project: NewMemoryProjectRepository(),
	}
}

// NewRepositories は設定に基づいて全リポジトリを初期化する。
func NewRepositories(cfg *config.Config) (*Repositories, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return NewMemoryRepositories(), nil
	case config.DriverSQLite:
		return newSQLiteRepositories(cfg.SQLiteDSN())
	default:
		return nil, fmt.Errorf("unsupported storage driver: %q", cfg.Storage.Driver)
	}
}

func newSQLiteRepositories(dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	// 共有キャッシュのインメモリDBはテーブルロックを取り合うため1接続に制限する
	db.SetMaxOpenConns(1)

	taskRepo, err := NewSQLiteTaskRepository(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	projectRepo, err := NewSQLiteProjectRepository(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Repositories{
		Task:    taskRepo,
		Project: projectRepo,
		db:      db,
	}, nil
}

// Reset は全リポジトリの内容を削除する。
func (r *Repositories) Reset(ctx context.Context) error {
	return errors.Join(r.Task.Clear(ctx), r.Project.Clear(ctx))
}

// Close はリポジトリのリソースを解放する。
func (r *Repositories) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}
