package repository

import (
	"context"

	"github.com/haconeco/task-tracker/internal/domain"
)

// TaskRepository はTaskの保管を担うインターフェース。
// 実装はIDを採番し、エンティティの所有権を持つ。
type TaskRepository interface {
	// Add は新しいIDを採番してTaskを保存し、task.ID にも設定する。
	Add(ctx context.Context, task *domain.Task) (domain.ID, error)

	// Get はIDでTaskのコピーを取得する。存在しない場合は domain.ErrNotFound。
	Get(ctx context.Context, id domain.ID) (*domain.Task, error)

	// AddHours は累計作業時間に hours を加算し、加算後の値を返す。
	// 読み出しから書き込みまでを1つのクリティカルセクションで行う。
	AddHours(ctx context.Context, id domain.ID, hours float64) (float64, error)

	// Clear は全Taskを削除する。
	Clear(ctx context.Context) error
}

// ProjectRepository はProjectの保管を担うインターフェース。
type ProjectRepository interface {
	// Add は新しいIDを採番してProjectを保存し、project.ID にも設定する。
	Add(ctx context.Context, project *domain.Project) (domain.ID, error)

	// Get はIDでProjectのコピーを取得する。存在しない場合は domain.ErrNotFound。
	Get(ctx context.Context, id domain.ID) (*domain.Project, error)

	// Clear は全Projectを削除する。
	Clear(ctx context.Context) error
}
