// Package api adapts raw tool input into store calls and wraps every
// outcome in a uniform success/error envelope. It is the single recovery
// boundary: store-level errors never propagate past it.
package api

import (
	"fmt"
	"time"

	"task-manager/config"
	"task-manager/tasks"
	"task-manager/tasks/store"

	"github.com/google/uuid"
)

// Facade exposes the task operations with envelope semantics.
type Facade struct {
	store      store.TaskStore
	serverName string
	version    string
	instanceID string
}

// NewFacade creates a facade over the given store. The instance ID is
// assigned once per process and reported by health checks.
func NewFacade(ts store.TaskStore, cfg *config.Config) *Facade {
	return &Facade{
		store:      ts,
		serverName: cfg.ServerName,
		version:    cfg.Version,
		instanceID: uuid.New().String(),
	}
}

// CreateTaskInput is the raw shape of a create_task request.
type CreateTaskInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	DueDate     string   `json:"due_date,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// UpdateTaskInput is the raw shape of an update_task request.
// Only non-nil fields are applied.
type UpdateTaskInput struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Status      *string   `json:"status,omitempty"`
	Priority    *string   `json:"priority,omitempty"`
	DueDate     *string   `json:"due_date,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
}

// TaskResponse is the success envelope for single-task operations.
type TaskResponse struct {
	Success bool        `json:"success"`
	Task    *tasks.Task `json:"task"`
	Message string      `json:"message,omitempty"`
}

// TaskListResponse is the success envelope for list_tasks.
type TaskListResponse struct {
	Success bool          `json:"success"`
	Tasks   []*tasks.Task `json:"tasks"`
	Count   int           `json:"count"`
}

// StatsResponse is the success envelope for get_task_stats.
type StatsResponse struct {
	Success bool        `json:"success"`
	Stats   tasks.Stats `json:"stats"`
}

// MessageResponse is the success envelope for operations without a payload.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// HealthResponse is the fixed-shape liveness payload.
type HealthResponse struct {
	Status     string `json:"status"`
	Server     string `json:"server"`
	Timestamp  string `json:"timestamp"`
	TaskCount  int    `json:"task_count"`
	InstanceID string `json:"instance_id"`
	Version    string `json:"version"`
}

func errorEnvelope(err error) ErrorResponse {
	return ErrorResponse{Success: false, Error: err.Error()}
}

// CreateTask creates a new task with the specified details.
func (f *Facade) CreateTask(in CreateTaskInput) any {
	priority := tasks.PriorityMedium
	if in.Priority != "" {
		parsed, err := tasks.ParsePriority(in.Priority)
		if err != nil {
			return ErrorResponse{Success: false, Error: fmt.Sprintf("Invalid priority: %s", in.Priority)}
		}
		priority = parsed
	}

	task, err := f.store.Create(tasks.CreateRequest{
		Title:       in.Title,
		Description: in.Description,
		Priority:    priority,
		DueDate:     in.DueDate,
		Tags:        in.Tags,
	})
	if err != nil {
		return errorEnvelope(err)
	}

	return TaskResponse{
		Success: true,
		Task:    task,
		Message: fmt.Sprintf("Task '%s' created successfully with ID %s", task.Title, task.ID),
	}
}

// GetTask retrieves a specific task by its ID.
func (f *Facade) GetTask(taskID string) any {
	task, err := f.store.Get(taskID)
	if err != nil {
		return errorEnvelope(err)
	}
	return TaskResponse{Success: true, Task: task}
}

// UpdateTask applies a partial patch to an existing task.
func (f *Facade) UpdateTask(taskID string, in UpdateTaskInput) any {
	patch := tasks.UpdateRequest{
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Tags:        in.Tags,
	}

	if in.Status != nil {
		status, err := tasks.ParseStatus(*in.Status)
		if err != nil {
			return ErrorResponse{Success: false, Error: fmt.Sprintf("Invalid status: %s", *in.Status)}
		}
		patch.Status = &status
	}
	if in.Priority != nil {
		priority, err := tasks.ParsePriority(*in.Priority)
		if err != nil {
			return ErrorResponse{Success: false, Error: fmt.Sprintf("Invalid priority: %s", *in.Priority)}
		}
		patch.Priority = &priority
	}

	task, err := f.store.Update(taskID, patch)
	if err != nil {
		return errorEnvelope(err)
	}

	return TaskResponse{
		Success: true,
		Task:    task,
		Message: fmt.Sprintf("Task %s updated successfully", taskID),
	}
}

// DeleteTask deletes a task by its ID.
func (f *Facade) DeleteTask(taskID string) any {
	if !f.store.Delete(taskID) {
		return ErrorResponse{Success: false, Error: fmt.Sprintf("Task with ID %s not found", taskID)}
	}
	return MessageResponse{
		Success: true,
		Message: fmt.Sprintf("Task %s deleted successfully", taskID),
	}
}

// ListTasks lists all tasks, optionally filtered by status or tag.
func (f *Facade) ListTasks(status, tag string) any {
	var statusFilter *tasks.TaskStatus
	if status != "" {
		parsed, err := tasks.ParseStatus(status)
		if err != nil {
			return ErrorResponse{Success: false, Error: fmt.Sprintf("Invalid status: %s", status)}
		}
		statusFilter = &parsed
	}

	listed := f.store.List(statusFilter, tag)
	return TaskListResponse{Success: true, Tasks: listed, Count: len(listed)}
}

// CompleteTask marks a task as completed. It is sugar over UpdateTask.
func (f *Facade) CompleteTask(taskID string) any {
	completed := string(tasks.StatusCompleted)
	return f.UpdateTask(taskID, UpdateTaskInput{Status: &completed})
}

// TaskStats returns statistics about all tasks.
func (f *Facade) TaskStats() any {
	return StatsResponse{Success: true, Stats: f.store.Stats()}
}

// HealthCheck reports liveness. It always succeeds.
func (f *Facade) HealthCheck() HealthResponse {
	return HealthResponse{
		Status:     "healthy",
		Server:     f.serverName,
		Timestamp:  time.Now().Format(time.RFC3339),
		TaskCount:  f.store.Count(),
		InstanceID: f.instanceID,
		Version:    f.version,
	}
}
