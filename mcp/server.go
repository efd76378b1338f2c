// Package mcp wires the task-manager components into an MCP server
// instance. This is the composition root: it registers every tool,
// resource, and prompt against the facade and store. No business logic
// lives here.
package mcp

import (
	"task-manager/api"
	"task-manager/config"
	"task-manager/logger"
	"task-manager/tasks/store"

	"github.com/mark3labs/mcp-go/server"
)

// New creates and configures the MCP server with all tools, resources,
// and prompts registered.
func New(facade *api.Facade, ts store.TaskStore, cfg *config.Config, lg *logger.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	tools := NewTools(facade, lg)
	s.AddTool(tools.CreateTaskTool(), tools.HandleCreateTask)
	s.AddTool(tools.GetTaskTool(), tools.HandleGetTask)
	s.AddTool(tools.UpdateTaskTool(), tools.HandleUpdateTask)
	s.AddTool(tools.DeleteTaskTool(), tools.HandleDeleteTask)
	s.AddTool(tools.ListTasksTool(), tools.HandleListTasks)
	s.AddTool(tools.CompleteTaskTool(), tools.HandleCompleteTask)
	s.AddTool(tools.TaskStatsTool(), tools.HandleTaskStats)
	s.AddTool(tools.HealthCheckTool(), tools.HandleHealthCheck)

	resources := NewResourceHandler(ts)
	s.AddResourceTemplate(resources.TaskDetailTemplate(), resources.HandleTaskDetail)
	s.AddResource(resources.SummaryResource(), resources.HandleSummary)

	prompts := NewPromptHandler(ts)
	s.AddPrompt(prompts.PlanningPrompt(), prompts.HandlePlanning)

	return s
}

// serverInstructions tells a connected agent what the server offers.
func serverInstructions() string {
	return `This server tracks tasks in memory for the current session.

Tools: create_task, get_task, update_task, delete_task, list_tasks,
complete_task, get_task_stats, health_check.

Resources: task://{task_id} renders a detailed view of one task;
tasks://all renders statistics plus a preview of the first ten tasks.

Prompts: task_planning_prompt provides planning guidance with a live
statistics snapshot.

Tasks are lost when the server stops. Task IDs are assigned by the server;
use list_tasks or the creation response to discover them.`
}
