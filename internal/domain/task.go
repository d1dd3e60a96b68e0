package domain

import (
	"math"
	"strings"
	"time"
)

// ID はリポジトリが採番するエンティティ識別子。
type ID int64

// Task はプロジェクトに属し、作業時間を積み上げるタスクを表す。
type Task struct {
	ID         ID        `json:"id"`          // リポジトリ登録時に採番
	ProjectID  ID        `json:"project_id"`  // 所属プロジェクトID（存在確認はサービス層）
	Title      string    `json:"title"`       // タイトル
	Deadline   time.Time `json:"deadline"`    // 期限
	HoursSpent float64   `json:"hours_spent"` // 累計作業時間
}

// NewTask は検証済みのTaskを生成する。HoursSpent は 0 から始まる。
func NewTask(projectID ID, title string, deadline time.Time) (*Task, error) {
	t := &Task{
		ProjectID: projectID,
		Title:     title,
		Deadline:  deadline,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate はTaskのフィールド不変条件を検証する。
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return invalidField("title", "must not be empty")
	}
	if t.Deadline.IsZero() {
		return invalidField("deadline", "is required")
	}
	if math.IsNaN(t.HoursSpent) || math.IsInf(t.HoursSpent, 0) {
		return invalidField("hours_spent", "must be a finite number")
	}
	if t.HoursSpent < 0 {
		return invalidField("hours_spent", "must not be negative")
	}
	return nil
}

// Clone はTaskのコピーを返す。
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
