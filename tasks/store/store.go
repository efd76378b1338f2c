package store

import "task-manager/tasks"

// TaskStore defines the contract for task persistence and queries.
type TaskStore interface {
	// Create allocates an ID, stamps created_at, and stores a new task.
	Create(req tasks.CreateRequest) (*tasks.Task, error)

	// Get retrieves a task by its ID.
	Get(id string) (*tasks.Task, error)

	// Update applies a sparse patch to an existing task. Only fields
	// present in the patch are touched.
	Update(id string, patch tasks.UpdateRequest) (*tasks.Task, error)

	// Delete removes a task, reporting whether it existed.
	Delete(id string) bool

	// List returns tasks matching the optional filters, sorted by
	// priority rank then creation time.
	List(status *tasks.TaskStatus, tag string) []*tasks.Task

	// Stats aggregates counts by status and priority plus overdue tasks.
	Stats() tasks.Stats

	// Count returns the number of stored tasks.
	Count() int
}
