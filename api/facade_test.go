package api_test

import (
	"strings"
	"testing"
	"time"

	"task-manager/api"
	"task-manager/config"
	"task-manager/tasks"
	"task-manager/tasks/store"

	"github.com/stretchr/testify/require"
	"gotest.tools/v3/assert"
)

func newTestFacade(t *testing.T) (*api.Facade, *store.MemoryTaskStore) {
	t.Helper()
	cfg := &config.Config{
		ServerPort:      8000,
		ServerName:      "Task Manager Server",
		LogLevel:        "INFO",
		ShutdownTimeout: 15 * time.Second,
		Version:         "1.0.0",
	}
	s := store.NewMemoryTaskStore()
	return api.NewFacade(s, cfg), s
}

func TestFacade_CreateTask_Success(t *testing.T) {
	t.Parallel()
	facade, _ := newTestFacade(t)

	result := facade.CreateTask(api.CreateTaskInput{
		Title: "write docs",
		Tags:  []string{"docs"},
	})

	resp, ok := result.(api.TaskResponse)
	require.True(t, ok, "expected TaskResponse, got %T", result)
	assert.Assert(t, resp.Success)
	require.NotNil(t, resp.Task)
	assert.Equal(t, "1", resp.Task.ID)
	assert.Equal(t, tasks.PriorityMedium, resp.Task.Priority)
	assert.Equal(t, "Task 'write docs' created successfully with ID 1", resp.Message)
}

func TestFacade_CreateTask_InvalidDueDate(t *testing.T) {
	t.Parallel()
	facade, _ := newTestFacade(t)

	result := facade.CreateTask(api.CreateTaskInput{Title: "bad", DueDate: "not-a-date"})

	resp, ok := result.(api.ErrorResponse)
	require.True(t, ok, "expected ErrorResponse, got %T", result)
	assert.Assert(t, !resp.Success)
	assert.Assert(t, strings.Contains(resp.Error, "invalid due date"), "got %q", resp.Error)
}

func TestFacade_CreateTask_InvalidPriority(t *testing.T) {
	t.Parallel()
	facade, _ := newTestFacade(t)

	result := facade.CreateTask(api.CreateTaskInput{Title: "bad", Priority: "critical"})

	resp, ok := result.(api.ErrorResponse)
	require.True(t, ok, "expected ErrorResponse, got %T", result)
	assert.Equal(t, "Invalid priority: critical", resp.Error)
}

func TestFacade_GetTask(t *testing.T) {
	t.Parallel()
	facade, _ := newTestFacade(t)
	facade.CreateTask(api.CreateTaskInput{Title: "find me"})

	result := facade.GetTask("1")
	resp, ok := result.(api.TaskResponse)
	require.True(t, ok, "expected TaskResponse, got %T", result)
	assert.Assert(t, resp.Success)
	assert.Equal(t, "find me", resp.Task.Title)

	result = facade.GetTask("999")
	errResp, ok := result.(api.ErrorResponse)
	require.True(t, ok, "expected ErrorResponse, got %T", result)
	assert.Equal(t, "Task with ID 999 not found", errResp.Error)
}

func TestFacade_UpdateTask(t *testing.T) {
	t.Parallel()
	facade, _ := newTestFacade(t)
	facade.CreateTask(api.CreateTaskInput{Title: "before"})

	newTitle := "after"
	result := facade.UpdateTask("1", api.UpdateTaskInput{Title: &newTitle})

	resp, ok := result.(api.TaskResponse)
	require.True(t, ok, "expected TaskResponse, got %T", result)
	assert.Assert(t, resp.Success)
	assert.Equal(t, "after", resp.Task.Title)
	assert.Equal(t, "Task 1 updated successfully", resp.Message)
}

func TestFacade_UpdateTask_Errors(t *testing.T) {
	t.Parallel()
	facade, _ := newTestFacade(t)
	facade.CreateTask(api.CreateTaskInput{Title: "target"})

	badStatus := "archived"
	badPriority := "sev1"
	title := "x"

	testCases := []struct {
		name     string
		taskID   string
		input    api.UpdateTaskInput
		expected string
	}{
		{
			name:     "unknown status",
			taskID:   "1",
			input:    api.UpdateTaskInput{Status: &badStatus},
			expected: "Invalid status: archived",
		},
		{
			name:     "unknown priority",
			taskID:   "1",
			input:    api.UpdateTaskInput{Priority: &badPriority},
			expected: "Invalid priority: sev1",
		},
		{
			name:     "not found",
			taskID:   "42",
			input:    api.UpdateTaskInput{Title: &title},
			expected: "Task with ID 42 not found",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := facade.UpdateTask(tc.taskID, tc.input)

			resp, ok := result.(api.ErrorResponse)
			require.True(t, ok, "expected ErrorResponse, got %T", result)
			assert.Assert(t, !resp.Success)
			assert.Equal(t, tc.expected, resp.Error)
		})
	}
}

func TestFacade_DeleteTask(t *testing.T) {
	t.Parallel()
	facade, _ := newTestFacade(t)
	facade.CreateTask(api.CreateTaskInput{Title: "doomed"})

	result := facade.DeleteTask("1")
	resp, ok := result.(api.MessageResponse)
	require.True(t, ok, "expected MessageResponse, got %T", result)
	assert.Assert(t, resp.Success)
	assert.Equal(t, "Task 1 deleted successfully", resp.Message)

	result = facade.DeleteTask("1")
	errResp, ok := result.(api.ErrorResponse)
	require.True(t, ok, "expected ErrorResponse, got %T", result)
	assert.Equal(t, "Task with ID 1 not found", errResp.Error)
}

func TestFacade_ListTasks(t *testing.T) {
	t.Parallel()
	facade, _ := newTestFacade(t)
	facade.CreateTask(api.CreateTaskInput{Title: "m", Priority: "medium"})
	facade.CreateTask(api.CreateTaskInput{Title: "u", Priority: "urgent"})
	facade.CreateTask(api.CreateTaskInput{Title: "l", Priority: "low", Tags: []string{"x"}})

	result := facade.ListTasks("", "")
	resp, ok := result.(api.TaskListResponse)
	require.True(t, ok, "expected TaskListResponse, got %T", result)
	assert.Assert(t, resp.Success)
	assert.Equal(t, 3, resp.Count)
	assert.Equal(t, "u", resp.Tasks[0].Title)
	assert.Equal(t, "m", resp.Tasks[1].Title)
	assert.Equal(t, "l", resp.Tasks[2].Title)

	result = facade.ListTasks("", "x")
	resp, ok = result.(api.TaskListResponse)
	require.True(t, ok)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "l", resp.Tasks[0].Title)
}

func TestFacade_ListTasks_InvalidStatus(t *testing.T) {
	t.Parallel()
	facade, _ := newTestFacade(t)

	result := facade.ListTasks("bogus", "")

	resp, ok := result.(api.ErrorResponse)
	require.True(t, ok, "expected ErrorResponse, got %T", result)
	assert.Assert(t, !resp.Success)
	assert.Equal(t, "Invalid status: bogus", resp.Error)
}

func TestFacade_ListTasks_EmptyStore(t *testing.T) {
	t.Parallel()
	facade, _ := newTestFacade(t)

	result := facade.ListTasks("", "")

	resp, ok := result.(api.TaskListResponse)
	require.True(t, ok)
	assert.Equal(t, 0, resp.Count)
	assert.Assert(t, resp.Tasks != nil)
}

func TestFacade_CompleteTask(t *testing.T) {
	t.Parallel()
	facade, _ := newTestFacade(t)
	facade.CreateTask(api.CreateTaskInput{Title: "done soon"})

	result := facade.CompleteTask("1")

	resp, ok := result.(api.TaskResponse)
	require.True(t, ok, "expected TaskResponse, got %T", result)
	assert.Assert(t, resp.Success)
	assert.Equal(t, tasks.StatusCompleted, resp.Task.Status)
	assert.Assert(t, resp.Task.CompletedAt != nil)
}

func TestFacade_TaskStats(t *testing.T) {
	t.Parallel()
	facade, _ := newTestFacade(t)
	facade.CreateTask(api.CreateTaskInput{Title: "one", DueDate: "2020-01-01T00:00:00Z"})

	result := facade.TaskStats()

	resp, ok := result.(api.StatsResponse)
	require.True(t, ok, "expected StatsResponse, got %T", result)
	assert.Assert(t, resp.Success)
	assert.Equal(t, 1, resp.Stats.Total)
	assert.Equal(t, 1, resp.Stats.Overdue)
}

func TestFacade_HealthCheck(t *testing.T) {
	t.Parallel()
	facade, _ := newTestFacade(t)
	facade.CreateTask(api.CreateTaskInput{Title: "counted"})

	health := facade.HealthCheck()

	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "Task Manager Server", health.Server)
	assert.Equal(t, 1, health.TaskCount)
	assert.Equal(t, "1.0.0", health.Version)
	assert.Assert(t, health.InstanceID != "")

	_, err := time.Parse(time.RFC3339, health.Timestamp)
	assert.NilError(t, err)
}
