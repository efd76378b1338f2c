package store

import (
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"task-manager/errors"
	"task-manager/tasks"
)

// Compile-time check to ensure MemoryTaskStore implements TaskStore interface
var _ TaskStore = (*MemoryTaskStore)(nil)

// MemoryTaskStore provides an in-memory implementation of a task store.
// All access is serialized through a single mutex so the counter and the
// status/completed_at read-modify-write stay atomic under concurrent callers.
type MemoryTaskStore struct {
	mu     sync.RWMutex
	tasks  map[string]*tasks.Task
	nextID int
}

// NewMemoryTaskStore creates and initializes a new MemoryTaskStore.
func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{
		tasks:  make(map[string]*tasks.Task),
		nextID: 1,
	}
}

// Create allocates the next ID and stores a new task.
// The counter advances on every call, even when due-date parsing fails,
// so IDs stay strictly increasing across mixed success/failure sequences.
func (s *MemoryTaskStore) Create(req tasks.CreateRequest) (*tasks.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strconv.Itoa(s.nextID)
	s.nextID++

	var dueDate *time.Time
	if req.DueDate != "" {
		parsed, err := tasks.ParseDueDate(req.DueDate)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		dueDate = &parsed
	}

	priority := req.Priority
	if priority == "" {
		priority = tasks.PriorityMedium
	}

	task := &tasks.Task{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Status:      tasks.StatusTodo,
		Priority:    priority,
		CreatedAt:   time.Now(),
		DueDate:     dueDate,
		Tags:        append([]string{}, req.Tags...),
	}

	s.tasks[id] = task
	return copyTask(task), nil
}

// Get retrieves a task by its ID.
// It returns a copy of the task to prevent external callers from unintentionally
// modifying the state of the task stored within the map.
func (s *MemoryTaskStore) Get(id string) (*tasks.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, errors.NewNotFoundError(fmt.Sprintf("Task with ID %s not found", id))
	}

	return copyTask(task), nil
}

// Update applies a sparse patch to an existing task. The due date is parsed
// before any field is touched, so a malformed patch leaves the task unchanged.
// The first transition into completed also stamps completed_at; repeated
// updates that keep the status at completed do not re-stamp it.
func (s *MemoryTaskStore) Update(id string, patch tasks.UpdateRequest) (*tasks.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, errors.NewNotFoundError(fmt.Sprintf("Task with ID %s not found", id))
	}

	var dueDate *time.Time
	if patch.DueDate != nil && *patch.DueDate != "" {
		parsed, err := tasks.ParseDueDate(*patch.DueDate)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		dueDate = &parsed
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Status != nil {
		if *patch.Status == tasks.StatusCompleted && task.Status != tasks.StatusCompleted {
			now := time.Now()
			task.CompletedAt = &now
		}
		task.Status = *patch.Status
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.DueDate != nil {
		// An explicit empty string clears the due date.
		task.DueDate = dueDate
	}
	if patch.Tags != nil {
		task.Tags = append([]string{}, (*patch.Tags)...)
	}

	return copyTask(task), nil
}

// Delete removes a task, reporting whether it existed.
// IDs are never reused: the counter is untouched by deletions.
func (s *MemoryTaskStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return false
	}
	delete(s.tasks, id)
	return true
}

// List returns tasks matching both filters (when given), sorted by priority
// rank ascending then created_at ascending. The sort is stable, so tasks
// with identical priority and creation time keep insertion order.
func (s *MemoryTaskStore) List(status *tasks.TaskStatus, tag string) []*tasks.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*tasks.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		if status != nil && task.Status != *status {
			continue
		}
		if tag != "" && !hasTag(task, tag) {
			continue
		}
		result = append(result, copyTask(task))
	}

	// Map iteration order is random; sort by ID first so the stable sort
	// below has a deterministic base order for full ties.
	sort.Slice(result, func(i, j int) bool {
		return idLess(result[i].ID, result[j].ID)
	})
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Priority.Rank() != result[j].Priority.Rank() {
			return result[i].Priority.Rank() < result[j].Priority.Rank()
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result
}

// Stats aggregates counts by status and priority plus overdue tasks.
// A task is overdue when its due date has passed and it is not completed.
func (s *MemoryTaskStore) Stats() tasks.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := tasks.Stats{
		ByStatus:   make(map[string]int),
		ByPriority: make(map[string]int),
	}

	now := time.Now()
	for _, task := range s.tasks {
		stats.Total++
		stats.ByStatus[string(task.Status)]++
		stats.ByPriority[string(task.Priority)]++
		if task.DueDate != nil && task.DueDate.Before(now) && task.Status != tasks.StatusCompleted {
			stats.Overdue++
		}
	}

	return stats
}

// Count returns the number of stored tasks.
func (s *MemoryTaskStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.tasks)
}

// copyTask returns a snapshot of a task, including its tags slice,
// so callers never alias store-internal state.
func copyTask(task *tasks.Task) *tasks.Task {
	copied := *task
	copied.Tags = append([]string{}, task.Tags...)
	if task.DueDate != nil {
		due := *task.DueDate
		copied.DueDate = &due
	}
	if task.CompletedAt != nil {
		completed := *task.CompletedAt
		copied.CompletedAt = &completed
	}
	return &copied
}

func hasTag(task *tasks.Task, tag string) bool {
	for _, t := range task.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// idLess orders counter IDs numerically, falling back to string order for
// anything that is not a plain integer.
func idLess(a, b string) bool {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		return ai < bi
	}
	return a < b
}
