package domain

import "time"

// TaskStatus は通知文面に使うタスクの状態語。
type TaskStatus string

const (
	StatusCreated   TaskStatus = "created"
	StatusCompleted TaskStatus = "completed"
	StatusOverdue   TaskStatus = "overdue"
)

// TaskInfo は通知対象タスクの情報。
type TaskInfo struct {
	Title     string     `json:"title"`
	Deadline  *time.Time `json:"deadline,omitempty"`
	Completed bool       `json:"completed,omitempty"`
}

// Status は完了フラグと期限から状態語を決定する。
// 完了が最優先で、次に期限切れ、それ以外は created。
func (i TaskInfo) Status(now time.Time) TaskStatus {
	if i.Completed {
		return StatusCompleted
	}
	if i.Deadline != nil && !i.Deadline.IsZero() && i.Deadline.Before(now) {
		return StatusOverdue
	}
	return StatusCreated
}
