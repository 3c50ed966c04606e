package service

import (
	"errors" // Sentinel error checks
	"time"   // Date parsing and overdue cutoff

	"github.com/sirupsen/logrus" // Structured logging
	"gorm.io/gorm"               // GORM ORM library

	"lifetrack/internal/domain" // Domain models
)

// CreateTaskRequest carries the input for creating a task
type CreateTaskRequest struct {
	Title       string  `json:"title"`       // Required, at most 255 chars
	Description *string `json:"description"` // Optional details
	Status      string  `json:"status"`      // pending, in_progress or completed
	Priority    string  `json:"priority"`    // low, medium or high
	DueDate     *string `json:"due_date"`    // Optional, YYYY-MM-DD
}

// UpdateTaskRequest carries a partial task edit. Nil fields are untouched.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`       // New title
	Description *string `json:"description"` // New details
	Status      *string `json:"status"`      // New status
	Priority    *string `json:"priority"`    // New priority
	DueDate     *string `json:"due_date"`    // New due date, empty string clears it
}

// TaskFilters narrows ListTasks. Zero values mean "no filter".
type TaskFilters struct {
	Status   string // Restrict to one status
	Priority string // Restrict to one priority
	Overdue  bool   // Only tasks past their due date and not completed
}

// CreateTask creates a task for the acting user
func (s *Service) CreateTask(actingUserID uint, req CreateTaskRequest) (*domain.Task, error) {
	fields := map[string]string{}
	if req.Title == "" {
		fields["title"] = "is required"
	} else if len(req.Title) > 255 {
		fields["title"] = "must be at most 255 characters"
	}
	if !domain.ValidTaskStatus(req.Status) {
		fields["status"] = "must be pending, in_progress or completed"
	}
	if !domain.ValidTaskPriority(req.Priority) {
		fields["priority"] = "must be low, medium or high"
	}
	var due *time.Time
	if req.DueDate != nil && *req.DueDate != "" {
		d, err := time.Parse(DateLayout, *req.DueDate)
		if err != nil {
			fields["due_date"] = "must be a date in YYYY-MM-DD format"
		} else {
			due = &d
		}
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}
	task := domain.Task{
		UserID:      actingUserID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     due,
	}
	if err := s.db.Create(&task).Error; err != nil {
		return nil, &StorageError{Err: err}
	}
	s.log.WithFields(logrus.Fields{
		"user_id": actingUserID,
		"task_id": task.ID,
	}).Info("Task created")
	return &task, nil
}

// ListTasks returns the acting user's tasks, optionally filtered
func (s *Service) ListTasks(actingUserID uint, f TaskFilters) ([]domain.Task, error) {
	query := s.db.Where("user_id = ?", actingUserID)
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		query = query.Where("priority = ?", f.Priority)
	}
	if f.Overdue {
		query = query.Where("due_date < ?", time.Now()).
			Where("status <> ?", domain.TaskStatusCompleted)
	}
	var tasks []domain.Task
	if err := query.Order("id").Find(&tasks).Error; err != nil {
		return nil, &StorageError{Err: err}
	}
	return tasks, nil
}

// GetTask returns one task of the acting user
func (s *Service) GetTask(actingUserID, taskID uint) (*domain.Task, error) {
	return s.ownedTask(actingUserID, taskID)
}

// UpdateTask applies a partial edit to a task of the acting user
func (s *Service) UpdateTask(actingUserID, taskID uint, req UpdateTaskRequest) (*domain.Task, error) {
	task, err := s.ownedTask(actingUserID, taskID)
	if err != nil {
		return nil, err
	}
	fields := map[string]string{}
	updates := map[string]any{}
	if req.Title != nil {
		if *req.Title == "" {
			fields["title"] = "is required"
		} else if len(*req.Title) > 255 {
			fields["title"] = "must be at most 255 characters"
		} else {
			updates["title"] = *req.Title
		}
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		if !domain.ValidTaskStatus(*req.Status) {
			fields["status"] = "must be pending, in_progress or completed"
		} else {
			updates["status"] = *req.Status
		}
	}
	if req.Priority != nil {
		if !domain.ValidTaskPriority(*req.Priority) {
			fields["priority"] = "must be low, medium or high"
		} else {
			updates["priority"] = *req.Priority
		}
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			updates["due_date"] = nil // Clear the due date
		} else if d, err := time.Parse(DateLayout, *req.DueDate); err != nil {
			fields["due_date"] = "must be a date in YYYY-MM-DD format"
		} else {
			updates["due_date"] = d
		}
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}
	if len(updates) == 0 {
		return task, nil
	}
	if err := s.db.Model(task).Updates(updates).Error; err != nil {
		return nil, &StorageError{Err: err}
	}
	return task, nil
}

// DeleteTask removes a task of the acting user
func (s *Service) DeleteTask(actingUserID, taskID uint) error {
	task, err := s.ownedTask(actingUserID, taskID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(task).Error; err != nil {
		return &StorageError{Err: err}
	}
	s.log.WithFields(logrus.Fields{
		"user_id": actingUserID,
		"task_id": taskID,
	}).Info("Task deleted")
	return nil
}

// ownedTask resolves a task and verifies the acting user owns it
func (s *Service) ownedTask(actingUserID, taskID uint) (*domain.Task, error) {
	var task domain.Task
	if err := s.db.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "task", ID: taskID}
		}
		return nil, &StorageError{Err: err}
	}
	if task.UserID != actingUserID {
		return nil, &AuthorizationError{Resource: "task", ID: taskID}
	}
	return &task, nil
}
