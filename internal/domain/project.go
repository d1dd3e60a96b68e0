package domain

import (
	"strings"
	"time"
)

// DefaultProjectName は名前が指定されなかったプロジェクトに付与される名前。
const DefaultProjectName = "Untitled"

// Project は期限を持ち得るプロジェクトを表す。
type Project struct {
	ID       ID         `json:"id"`       // リポジトリ登録時に採番
	Name     string     `json:"name"`     // プロジェクト名
	Deadline *time.Time `json:"deadline"` // nil の場合は期限なし
}

// NewProject は検証済みのProjectを生成する。IDは未採番のまま返す。
func NewProject(name string, deadline *time.Time) (*Project, error) {
	if strings.TrimSpace(name) == "" {
		name = DefaultProjectName
	}
	if deadline != nil && deadline.IsZero() {
		return nil, invalidField("deadline", "must be a valid time or omitted")
	}
	p := &Project{Name: name}
	if deadline != nil {
		d := *deadline
		p.Deadline = &d
	}
	return p, nil
}

// IsOverdue は now が期限を過ぎているかを返す。期限が同時刻の場合は false。
func (p *Project) IsOverdue(now time.Time) bool {
	if p.Deadline == nil {
		return false
	}
	return now.After(*p.Deadline)
}

// Clone はProjectのコピーを返す。
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	c := *p
	if p.Deadline != nil {
		d := *p.Deadline
		c.Deadline = &d
	}
	return &c
}
