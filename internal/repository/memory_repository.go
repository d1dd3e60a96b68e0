package repository

import (
	"context"
	"sync"

	"github.com/haconeco/task-tracker/internal/domain"
)

// memoryStore はIDをキーにエンティティを保持する汎用インメモリストア。
type memoryStore[T any] struct {
	mu     sync.RWMutex
	items  map[domain.ID]*T
	nextID IDGenerator
	clone  func(*T) *T
}

func newMemoryStore[T any](clone func(*T) *T) *memoryStore[T] {
	return &memoryStore[T]{
		items:  make(map[domain.ID]*T),
		nextID: NewRandomID,
		clone:  clone,
	}
}

// add は未使用のIDを採番して item のコピーを保存する。
// assign は呼び出し元のエンティティにIDを書き戻すために使う。
func (s *memoryStore[T]) add(item *T, assign func(*T, domain.ID)) domain.ID {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID()
	for {
		if _, exists := s.items[id]; !exists {
			break
		}
		id = s.nextID()
	}
	assign(item, id)
	s.items[id] = s.clone(item)
	return id
}

func (s *memoryStore[T]) get(id domain.ID) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s.clone(item), nil
}

// update は id のエンティティをロック下で変更する。
func (s *memoryStore[T]) update(id domain.ID, fn func(*T)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	fn(item)
	return nil
}

func (s *memoryStore[T]) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[domain.ID]*T)
}

func (s *memoryStore[T]) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// MemoryTaskRepository はインメモリのTaskリポジトリ実装。
type MemoryTaskRepository struct {
	store *memoryStore[domain.Task]
}

// NewMemoryTaskRepository は新しいMemoryTaskRepositoryを生成する。
func NewMemoryTaskRepository() *MemoryTaskRepository {
	return &MemoryTaskRepository{store: newMemoryStore((*domain.Task).Clone)}
}

// Add はTaskを保存しIDを返す。
func (r *MemoryTaskRepository) Add(ctx context.Context, task *domain.Task) (domain.ID, error) {
	return r.store.add(task, func(t *domain.Task, id domain.ID) { t.ID = id }), nil
}

// Get はIDでTaskを取得する。
func (r *MemoryTaskRepository) Get(ctx context.Context, id domain.ID) (*domain.Task, error) {
	return r.store.get(id)
}

// AddHours は累計作業時間を加算する。
func (r *MemoryTaskRepository) AddHours(ctx context.Context, id domain.ID, hours float64) (float64, error) {
	var total float64
	err := r.store.update(id, func(t *domain.Task) {
		t.HoursSpent += hours
		total = t.HoursSpent
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// Clear は全Taskを削除する。
func (r *MemoryTaskRepository) Clear(ctx context.Context) error {
	r.store.clear()
	return nil
}

// MemoryProjectRepository はインメモリのProjectリポジトリ実装。
type MemoryProjectRepository struct {
	store *memoryStore[domain.Project]
}

// NewMemoryProjectRepository は新しいMemoryProjectRepositoryを生成する。
func NewMemoryProjectRepository() *MemoryProjectRepository {
	return &MemoryProjectRepository{store: newMemoryStore((*domain.Project).Clone)}
}

// Add はProjectを保存しIDを返す。
func (r *MemoryProjectRepository) Add(ctx context.Context, project *domain.Project) (domain.ID, error) {
	return r.store.add(project, func(p *domain.Project, id domain.ID) { p.ID = id }), nil
}

// Get はIDでProjectを取得する。
func (r *MemoryProjectRepository) Get(ctx context.Context, id domain.ID) (*domain.Project, error) {
	return r.store.get(id)
}

// Clear は全Projectを削除する。
func (r *MemoryProjectRepository) Clear(ctx context.Context) error {
	r.store.clear()
	return nil
}
