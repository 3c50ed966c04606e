package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework

	"lifetrack/internal/service" // Business logic
)

// CreateTaskHandler creates a task for the authenticated user
func CreateTaskHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actingUserID(c)
		if !ok {
			return
		}
		var req service.CreateTaskRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		task, err := svc.CreateTask(userID, req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Task created", "task": task})
	}
}

// ListTasksHandler returns the authenticated user's tasks with optional
// status, priority and overdue filters
func ListTasksHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actingUserID(c)
		if !ok {
			return
		}
		filters := service.TaskFilters{
			Status:   c.Query("status"),            // pending, in_progress or completed
			Priority: c.Query("priority"),          // low, medium or high
			Overdue:  c.Query("overdue") == "true", // Only overdue tasks
		}
		tasks, err := svc.ListTasks(userID, filters)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"tasks": tasks})
	}
}

// GetTaskHandler returns one task of the authenticated user
func GetTaskHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actingUserID(c)
		if !ok {
			return
		}
		taskID, ok := idParam(c, "id")
		if !ok {
			return
		}
		task, err := svc.GetTask(userID, taskID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"task": task})
	}
}

// UpdateTaskHandler applies a partial edit to a task
func UpdateTaskHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actingUserID(c)
		if !ok {
			return
		}
		taskID, ok := idParam(c, "id")
		if !ok {
			return
		}
		var req service.UpdateTaskRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		task, err := svc.UpdateTask(userID, taskID, req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Task updated", "task": task})
	}
}

// DeleteTaskHandler removes a task of the authenticated user
func DeleteTaskHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actingUserID(c)
		if !ok {
			return
		}
		taskID, ok := idParam(c, "id")
		if !ok {
			return
		}
		if err := svc.DeleteTask(userID, taskID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
	}
}
