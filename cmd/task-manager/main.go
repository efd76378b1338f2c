package main

import (
	"log"

	"task-manager/api"
	"task-manager/config"
	"task-manager/logger"
	"task-manager/mcp"
	"task-manager/server"
	"task-manager/tasks/store"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	// Create logger
	lg := logger.New(cfg.LogLevel, nil)

	// Log startup using the centralized logger
	lg.Info("Starting task manager server", map[string]any{
		"server":    cfg.ServerName,
		"version":   cfg.Version,
		"port":      cfg.ServerPort,
		"log_level": cfg.LogLevel,
	})

	// Wire up business logic dependencies
	taskStore := store.NewMemoryTaskStore()
	facade := api.NewFacade(taskStore, cfg)
	mcpSrv := mcp.New(facade, taskStore, cfg, lg)

	lg.Info("Registered MCP surface", map[string]any{
		"tools": []string{
			"create_task", "get_task", "update_task", "delete_task",
			"list_tasks", "complete_task", "get_task_stats", "health_check",
		},
		"resources": []string{"task://{task_id}", "tasks://all"},
		"prompts":   []string{"task_planning_prompt"},
	})

	// Create and start server
	srv := server.New(mcpSrv, cfg, lg)
	if err := srv.Start(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
