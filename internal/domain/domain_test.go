package domain

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestNewTask(t *testing.T) {
	deadline := time.Now().Add(24 * time.Hour)

	tests := []struct {
		name     string
		title    string
		deadline time.Time
		field    string
	}{
		{"valid", "Some Task", deadline, ""},
		{"empty title", "", deadline, "title"},
		{"whitespace title", "  \t ", deadline, "title"},
		{"zero deadline", "Some Task", time.Time{}, "deadline"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := NewTask(7, tt.title, tt.deadline)
			if tt.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if task.ProjectID != 7 || task.Title != tt.title || !task.Deadline.Equal(tt.deadline) {
					t.Fatalf("unexpected task: %+v", task)
				}
				if task.HoursSpent != 0 {
					t.Fatalf("expected hours_spent 0, got %v", task.HoursSpent)
				}
				return
			}

			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Field != tt.field {
				t.Fatalf("expected validation error on %s, got %v", tt.field, err)
			}
		})
	}
}

func TestTaskValidateHours(t *testing.T) {
	task := &Task{Title: "x", Deadline: time.Now()}

	for _, hours := range []float64{-0.5, math.NaN(), math.Inf(1)} {
		task.HoursSpent = hours
		if err := task.Validate(); !errors.Is(err, ErrValidation) {
			t.Errorf("hours %v: expected ErrValidation, got %v", hours, err)
		}
	}

	task.HoursSpent = 3.5
	if err := task.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNewProject(t *testing.T) {
	p, err := NewProject("", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != DefaultProjectName {
		t.Errorf("expected default name %s, got %s", DefaultProjectName, p.Name)
	}
	if p.Deadline != nil {
		t.Errorf("expected no deadline")
	}

	var zero time.Time
	if _, err := NewProject("Apollo", &zero); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for zero deadline, got %v", err)
	}

	deadline := time.Now().Add(48 * time.Hour)
	p, err = NewProject("Apollo", &deadline)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	deadline = deadline.Add(time.Hour)
	if p.Deadline.Equal(deadline) {
		t.Errorf("project deadline must not alias the caller's value")
	}
}

func TestProjectIsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	before := now.Add(-time.Second)
	after := now.Add(time.Second)

	tests := []struct {
		name     string
		deadline *time.Time
		expected bool
	}{
		{"no deadline", nil, false},
		{"past deadline", &before, true},
		{"exact deadline", &now, false},
		{"future deadline", &after, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Project{Name: "p", Deadline: tt.deadline}
			if got := p.IsOverdue(now); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestTaskInfoStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	var zero time.Time

	tests := []struct {
		name     string
		info     TaskInfo
		expected TaskStatus
	}{
		{"default", TaskInfo{Title: "x"}, StatusCreated},
		{"future deadline", TaskInfo{Title: "x", Deadline: &future}, StatusCreated},
		{"past deadline", TaskInfo{Title: "x", Deadline: &past}, StatusOverdue},
		{"zero deadline", TaskInfo{Title: "x", Deadline: &zero}, StatusCreated},
		{"exact deadline", TaskInfo{Title: "x", Deadline: &now}, StatusCreated},
		{"completed wins over overdue", TaskInfo{Title: "x", Deadline: &past, Completed: true}, StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.Status(now); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	deadline := time.Now()
	p := &Project{ID: 1, Name: "p", Deadline: &deadline}
	c := p.Clone()
	*c.Deadline = deadline.Add(time.Hour)
	if !p.Deadline.Equal(deadline) {
		t.Fatalf("project clone shares deadline pointer")
	}

	task := &Task{ID: 2, Title: "t", Deadline: deadline}
	tc := task.Clone()
	tc.HoursSpent = 5
	if task.HoursSpent != 0 {
		t.Fatalf("task clone shares state")
	}
}
