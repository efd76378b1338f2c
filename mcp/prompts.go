package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"task-manager/tasks/store"

	"github.com/mark3labs/mcp-go/mcp"
)

// planningPromptTemplate is static guidance text for a calling agent; the
// live stats snapshot is interpolated at render time.
const planningPromptTemplate = `You are a helpful task management assistant. Help the user plan and organize their tasks effectively.

Available task statuses:
- todo: Task is planned but not started
- in_progress: Task is currently being worked on
- completed: Task is finished
- cancelled: Task was cancelled

Available priorities:
- low: Nice to have, no rush
- medium: Normal priority
- high: Important, should be done soon
- urgent: Critical, needs immediate attention

When helping users:
1. Break down complex tasks into smaller, manageable pieces
2. Suggest appropriate priorities based on deadlines and importance
3. Recommend useful tags for categorization
4. Help identify dependencies between tasks
5. Suggest realistic timelines

Current task statistics: %s

How can I help you organize your tasks today?`

// PromptHandler serves the prompt templates the server exposes.
type PromptHandler struct {
	store store.TaskStore
}

// NewPromptHandler creates a prompt handler backed by the given store.
func NewPromptHandler(ts store.TaskStore) *PromptHandler {
	return &PromptHandler{store: ts}
}

// PlanningPrompt describes the task-planning prompt template.
func (h *PromptHandler) PlanningPrompt() mcp.Prompt {
	return mcp.NewPrompt("task_planning_prompt",
		mcp.WithPromptDescription("A prompt template for helping with task planning and organization."),
	)
}

// HandlePlanning renders the planning prompt with a live stats snapshot.
func (h *PromptHandler) HandlePlanning(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	stats := h.store.Stats()
	snapshot, err := json.Marshal(stats)
	if err != nil {
		return nil, fmt.Errorf("encoding stats snapshot: %w", err)
	}

	text := fmt.Sprintf(planningPromptTemplate, snapshot)

	return mcp.NewGetPromptResult(
		"Task planning and organization guidance",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		},
	), nil
}
