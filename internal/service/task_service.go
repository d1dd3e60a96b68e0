package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/haconeco/task-tracker/internal/domain"
	"github.com/haconeco/task-tracker/internal/repository"
)

// TaskService はタスク作成、作業時間の記録、プロジェクト期限の判定を提供する。
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	logger      *log.Logger
	now         func() time.Time
}

// NewTaskService は新しいTaskServiceを生成する。
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, logger *log.Logger) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		logger:      loggerOrDiscard(logger),
		now:         time.Now,
	}
}

// CreateProject は新しいProjectを登録してIDを返す。
func (s *TaskService) CreateProject(ctx context.Context, name string, deadline *time.Time) (id domain.ID, err error) {
	ctx, span := startSpan(ctx, "TaskService.CreateProject")
	defer func() { endSpan(span, err) }()

	project, err := domain.NewProject(name, deadline)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrInvalidOperation, err)
	}
	id, err = s.projectRepo.Add(ctx, project)
	if err != nil {
		return 0, fmt.Errorf("failed to add project: %w", err)
	}
	span.SetAttributes(attribute.Int64("project.id", int64(id)))

	s.logger.WithFields(log.Fields{
		"project_id":   id,
		"has_deadline": project.Deadline != nil,
	}).Info("project created")
	return id, nil
}

// GetProject はIDでProjectを取得する。
func (s *TaskService) GetProject(ctx context.Context, id domain.ID) (*domain.Project, error) {
	project, err := s.projectRepo.Get(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "project", id)
	}
	return project, nil
}

// GetTask はIDでTaskを取得する。
func (s *TaskService) GetTask(ctx context.Context, id domain.ID) (*domain.Task, error) {
	task, err := s.taskRepo.Get(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "task", id)
	}
	return task, nil
}

// CreateTask はプロジェクト配下に新しいTaskを作成してIDを返す。
// 期限が現在時刻より前の場合、またはプロジェクトが存在しない場合は ErrInvalidOperation。
func (s *TaskService) CreateTask(ctx context.Context, projectID domain.ID, title string, deadline time.Time) (id domain.ID, err error) {
	ctx, span := startSpan(ctx, "TaskService.CreateTask", attribute.Int64("project.id", int64(projectID)))
	defer func() { endSpan(span, err) }()

	if deadline.Before(s.now()) {
		return 0, fmt.Errorf("%w: deadline %s is in the past", domain.ErrInvalidOperation, deadline.Format(time.RFC3339))
	}

	if _, err := s.projectRepo.Get(ctx, projectID); err != nil {
		return 0, translateNotFound(err, "project", projectID)
	}

	task, err := domain.NewTask(projectID, title, deadline)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrInvalidOperation, err)
	}

	id, err = s.taskRepo.Add(ctx, task)
	if err != nil {
		return 0, fmt.Errorf("failed to add task: %w", err)
	}
	span.SetAttributes(attribute.Int64("task.id", int64(id)))

	s.logger.WithFields(log.Fields{
		"task_id":    id,
		"project_id": projectID,
	}).Info("task created")
	return id, nil
}

// TrackTime はTaskの累計作業時間に hours を加算し、加算後の合計を返す。
// hours は正の有限値でなければならない。
func (s *TaskService) TrackTime(ctx context.Context, taskID domain.ID, hours float64) (total float64, err error) {
	ctx, span := startSpan(ctx, "TaskService.TrackTime",
		attribute.Int64("task.id", int64(taskID)),
		attribute.Float64("hours", hours),
	)
	defer func() { endSpan(span, err) }()

	if math.IsNaN(hours) || math.IsInf(hours, 0) {
		return 0, fmt.Errorf("%w: hours must be a finite number", domain.ErrInvalidOperation)
	}
	if hours <= 0 {
		return 0, fmt.Errorf("%w: hours must be positive, got %v", domain.ErrInvalidOperation, hours)
	}

	total, err = s.taskRepo.AddHours(ctx, taskID, hours)
	if err != nil {
		return 0, translateNotFound(err, "task", taskID)
	}

	s.logger.WithFields(log.Fields{
		"task_id": taskID,
		"hours":   hours,
		"total":   total,
	}).Debug("time tracked")
	return total, nil
}

// CheckProjectDeadline はプロジェクトが期限切れかを返す。
// 期限が未設定なら false、期限と同時刻も false。
func (s *TaskService) CheckProjectDeadline(ctx context.Context, projectID domain.ID) (overdue bool, err error) {
	ctx, span := startSpan(ctx, "TaskService.CheckProjectDeadline", attribute.Int64("project.id", int64(projectID)))
	defer func() { endSpan(span, err) }()

	project, err := s.projectRepo.Get(ctx, projectID)
	if err != nil {
		return false, translateNotFound(err, "project", projectID)
	}

	overdue = project.IsOverdue(s.now())
	span.SetAttributes(attribute.Bool("project.overdue", overdue))
	return overdue, nil
}

// translateNotFound はリポジトリの ErrNotFound を ErrInvalidOperation に変換する。
func translateNotFound(err error, kind string, id domain.ID) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: %s with id=%d not found", domain.ErrInvalidOperation, kind, id)
	}
	return fmt.Errorf("failed to load %s %d: %w", kind, id, err)
}
