package mcp

import (
	"context"
	"encoding/json"

	"task-manager/api"
	"task-manager/logger"

	"github.com/mark3labs/mcp-go/mcp"
)

// Tools holds the facade-backed handlers for every tool the server exposes.
type Tools struct {
	facade *api.Facade
	lg     *logger.Logger
}

// NewTools creates the tool set backed by the given facade.
func NewTools(facade *api.Facade, lg *logger.Logger) *Tools {
	return &Tools{facade: facade, lg: lg}
}

// toolResult marshals an envelope into a text tool result. The envelope is
// the caller-visible contract; marshal failures are the only path that
// surfaces as a protocol-level tool error.
func toolResult(envelope any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(envelope)
	if err != nil {
		return mcp.NewToolResultError("failed to encode response: " + err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (t *Tools) CreateTaskTool() mcp.Tool {
	return mcp.NewTool("create_task",
		mcp.WithDescription("Create a new task with the specified details."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Short title of the task")),
		mcp.WithString("description", mcp.Description("Longer free-form description")),
		mcp.WithString("priority",
			mcp.Description("Task priority"),
			mcp.Enum("low", "medium", "high", "urgent"),
			mcp.DefaultString("medium"),
		),
		mcp.WithString("due_date", mcp.Description("Due date as an ISO-8601 timestamp")),
		mcp.WithArray("tags",
			mcp.Description("Tags for categorization"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)
}

func (t *Tools) HandleCreateTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := request.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	in := api.CreateTaskInput{
		Title:       title,
		Description: request.GetString("description", ""),
		Priority:    request.GetString("priority", ""),
		DueDate:     request.GetString("due_date", ""),
		Tags:        request.GetStringSlice("tags", nil),
	}

	t.lg.Tool("create_task", "tool invoked", map[string]any{"title": title})
	return toolResult(t.facade.CreateTask(in))
}

func (t *Tools) GetTaskTool() mcp.Tool {
	return mcp.NewTool("get_task",
		mcp.WithDescription("Retrieve a specific task by its ID."),
		mcp.WithString("task_id", mcp.Required(), mcp.Description("ID of the task")),
	)
}

func (t *Tools) HandleGetTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID, err := request.RequireString("task_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	t.lg.Tool("get_task", "tool invoked", map[string]any{"task_id": taskID})
	return toolResult(t.facade.GetTask(taskID))
}

func (t *Tools) UpdateTaskTool() mcp.Tool {
	return mcp.NewTool("update_task",
		mcp.WithDescription("Update an existing task with new information. Only the provided fields are changed."),
		mcp.WithString("task_id", mcp.Required(), mcp.Description("ID of the task")),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithString("description", mcp.Description("New description")),
		mcp.WithString("status",
			mcp.Description("New status"),
			mcp.Enum("todo", "in_progress", "completed", "cancelled"),
		),
		mcp.WithString("priority",
			mcp.Description("New priority"),
			mcp.Enum("low", "medium", "high", "urgent"),
		),
		mcp.WithString("due_date", mcp.Description("New due date as an ISO-8601 timestamp")),
		mcp.WithArray("tags",
			mcp.Description("Replacement tag list"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)
}

func (t *Tools) HandleUpdateTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID, err := request.RequireString("task_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Presence in the argument map decides which fields the patch touches.
	args := request.GetArguments()
	in := api.UpdateTaskInput{
		Title:       optString(args, "title"),
		Description: optString(args, "description"),
		Status:      optString(args, "status"),
		Priority:    optString(args, "priority"),
		DueDate:     optString(args, "due_date"),
		Tags:        optStringSlice(args, "tags"),
	}

	t.lg.Tool("update_task", "tool invoked", map[string]any{"task_id": taskID})
	return toolResult(t.facade.UpdateTask(taskID, in))
}

func (t *Tools) DeleteTaskTool() mcp.Tool {
	return mcp.NewTool("delete_task",
		mcp.WithDescription("Delete a task by its ID."),
		mcp.WithString("task_id", mcp.Required(), mcp.Description("ID of the task")),
	)
}

func (t *Tools) HandleDeleteTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID, err := request.RequireString("task_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	t.lg.Tool("delete_task", "tool invoked", map[string]any{"task_id": taskID})
	return toolResult(t.facade.DeleteTask(taskID))
}

func (t *Tools) ListTasksTool() mcp.Tool {
	return mcp.NewTool("list_tasks",
		mcp.WithDescription("List all tasks, optionally filtered by status or tag."),
		mcp.WithString("status",
			mcp.Description("Only return tasks with this status"),
			mcp.Enum("todo", "in_progress", "completed", "cancelled"),
		),
		mcp.WithString("tag", mcp.Description("Only return tasks carrying this tag")),
	)
}

func (t *Tools) HandleListTasks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status := request.GetString("status", "")
	tag := request.GetString("tag", "")

	t.lg.Tool("list_tasks", "tool invoked", map[string]any{"status": status, "tag": tag})
	return toolResult(t.facade.ListTasks(status, tag))
}

func (t *Tools) CompleteTaskTool() mcp.Tool {
	return mcp.NewTool("complete_task",
		mcp.WithDescription("Mark a task as completed."),
		mcp.WithString("task_id", mcp.Required(), mcp.Description("ID of the task")),
	)
}

func (t *Tools) HandleCompleteTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID, err := request.RequireString("task_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	t.lg.Tool("complete_task", "tool invoked", map[string]any{"task_id": taskID})
	return toolResult(t.facade.CompleteTask(taskID))
}

func (t *Tools) TaskStatsTool() mcp.Tool {
	return mcp.NewTool("get_task_stats",
		mcp.WithDescription("Get statistics about all tasks."),
	)
}

func (t *Tools) HandleTaskStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.lg.Tool("get_task_stats", "tool invoked")
	return toolResult(t.facade.TaskStats())
}

func (t *Tools) HealthCheckTool() mcp.Tool {
	return mcp.NewTool("health_check",
		mcp.WithDescription("Check if the server is running properly."),
	)
}

func (t *Tools) HandleHealthCheck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.lg.Tool("health_check", "tool invoked")
	return toolResult(t.facade.HealthCheck())
}

func optString(args map[string]any, key string) *string {
	if v, ok := args[key]; ok {
		if s, ok := v.(string); ok {
			return &s
		}
	}
	return nil
}

func optStringSlice(args map[string]any, key string) *[]string {
	v, ok := args[key]
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return &out
}
