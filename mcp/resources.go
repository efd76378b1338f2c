package mcp

import (
	"context"
	"fmt"
	"strings"

	"task-manager/tasks"
	"task-manager/tasks/store"

	"github.com/mark3labs/mcp-go/mcp"
)

const timestampLayout = "2006-01-02 15:04:05"

var statusEmoji = map[tasks.TaskStatus]string{
	tasks.StatusTodo:       "📋",
	tasks.StatusInProgress: "⏳",
	tasks.StatusCompleted:  "✅",
	tasks.StatusCancelled:  "❌",
}

var priorityEmoji = map[tasks.Priority]string{
	tasks.PriorityLow:    "🟢",
	tasks.PriorityMedium: "🟡",
	tasks.PriorityHigh:   "🟠",
	tasks.PriorityUrgent: "🔴",
}

// statusOrder fixes the rendering order of per-status counts.
var statusOrder = []tasks.TaskStatus{
	tasks.StatusTodo,
	tasks.StatusInProgress,
	tasks.StatusCompleted,
	tasks.StatusCancelled,
}

// ResourceHandler serves the read-only textual views over store data.
type ResourceHandler struct {
	store store.TaskStore
}

// NewResourceHandler creates a resource handler backed by the given store.
func NewResourceHandler(ts store.TaskStore) *ResourceHandler {
	return &ResourceHandler{store: ts}
}

// TaskDetailTemplate describes the per-task detail view, addressed as
// task://{task_id}.
func (h *ResourceHandler) TaskDetailTemplate() mcp.ResourceTemplate {
	return mcp.NewResourceTemplate("task://{task_id}", "Task Detail",
		mcp.WithTemplateDescription("Detailed information about a specific task"),
		mcp.WithTemplateMIMEType("text/markdown"),
	)
}

// HandleTaskDetail renders the detail view for the task addressed by the URI.
func (h *ResourceHandler) HandleTaskDetail(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	taskID := strings.TrimPrefix(request.Params.URI, "task://")

	var text string
	task, err := h.store.Get(taskID)
	if err != nil {
		text = fmt.Sprintf("Task %s not found", taskID)
	} else {
		text = renderTaskDetail(task)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "text/markdown",
			Text:     text,
		},
	}, nil
}

// SummaryResource describes the aggregate view, addressed as tasks://all.
func (h *ResourceHandler) SummaryResource() mcp.Resource {
	return mcp.NewResource("tasks://all", "All Tasks",
		mcp.WithResourceDescription("A summary of all tasks"),
		mcp.WithMIMEType("text/markdown"),
	)
}

// HandleSummary renders the aggregate summary view.
func (h *ResourceHandler) HandleSummary(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	listed := h.store.List(nil, "")
	stats := h.store.Stats()

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "text/markdown",
			Text:     renderTaskSummary(listed, stats),
		},
	}, nil
}

// renderTaskDetail builds the emoji-decorated markdown view of a single task.
func renderTaskDetail(task *tasks.Task) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Task: %s\n\n", task.Title)
	fmt.Fprintf(&b, "%s **Status**: %s\n", statusEmoji[task.Status], titleWords(string(task.Status)))
	fmt.Fprintf(&b, "%s **Priority**: %s\n", priorityEmoji[task.Priority], titleWords(string(task.Priority)))
	fmt.Fprintf(&b, "📅 **Created**: %s\n", task.CreatedAt.Format(timestampLayout))

	if task.Description != "" {
		fmt.Fprintf(&b, "\n📝 **Description**: %s", task.Description)
	}
	if task.DueDate != nil {
		fmt.Fprintf(&b, "\n⏰ **Due Date**: %s", task.DueDate.Format(timestampLayout))
	}
	if task.CompletedAt != nil {
		fmt.Fprintf(&b, "\n✅ **Completed**: %s", task.CompletedAt.Format(timestampLayout))
	}
	if len(task.Tags) > 0 {
		fmt.Fprintf(&b, "\n🏷️ **Tags**: %s", strings.Join(task.Tags, ", "))
	}

	return b.String()
}

// summaryPreviewLimit caps how many tasks the summary view lists.
const summaryPreviewLimit = 10

// renderTaskSummary builds the aggregate markdown view: stats first, then up
// to the first ten tasks in store sort order with a "more" suffix when cut.
func renderTaskSummary(listed []*tasks.Task, stats tasks.Stats) string {
	if len(listed) == 0 {
		return "No tasks found. Create your first task to get started!"
	}

	var b strings.Builder

	fmt.Fprintf(&b, "# Task Summary\n\n")
	fmt.Fprintf(&b, "📊 **Statistics**:\n")
	fmt.Fprintf(&b, "- Total Tasks: %d\n", stats.Total)
	fmt.Fprintf(&b, "- Overdue: %d\n\n", stats.Overdue)

	fmt.Fprintf(&b, "## Tasks by Status:\n")
	for _, status := range statusOrder {
		if count, ok := stats.ByStatus[string(status)]; ok {
			label := titleWords(strings.ReplaceAll(string(status), "_", " "))
			fmt.Fprintf(&b, "- %s: %d\n", label, count)
		}
	}

	fmt.Fprintf(&b, "\n## Recent Tasks:\n")
	for i, task := range listed {
		if i == summaryPreviewLimit {
			break
		}
		fmt.Fprintf(&b, "- %s %s **%s** (ID: %s)\n",
			statusEmoji[task.Status], priorityEmoji[task.Priority], task.Title, task.ID)
	}

	if len(listed) > summaryPreviewLimit {
		fmt.Fprintf(&b, "\n... and %d more tasks", len(listed)-summaryPreviewLimit)
	}

	return b.String()
}

// titleWords capitalizes the first letter of every word, treating any
// non-letter rune as a word boundary ("in_progress" -> "In_Progress").
func titleWords(s string) string {
	runes := []rune(s)
	prevIsLetter := false
	for i, r := range runes {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if isLetter && !prevIsLetter && r >= 'a' && r <= 'z' {
			runes[i] = r - ('a' - 'A')
		}
		prevIsLetter = isLetter
	}
	return string(runes)
}
