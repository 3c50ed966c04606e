package domain

import "time"

// Task statuses
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
)

// Task priorities
const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

// ValidTaskStatus reports whether s is one of the enumerated statuses
func ValidTaskStatus(s string) bool {
	return s == TaskStatusPending || s == TaskStatusInProgress || s == TaskStatusCompleted
}

// ValidTaskPriority reports whether p is one of the enumerated priorities
func ValidTaskPriority(p string) bool {
	return p == TaskPriorityLow || p == TaskPriorityMedium || p == TaskPriorityHigh
}

// Task Model
type Task struct {
	ID          uint       `gorm:"primaryKey"`        // Primary key
	UserID      uint       `gorm:"index;not null"`    // Foreign key to User
	Title       string     `gorm:"size:255;not null"` // Task title
	Description *string    `gorm:"size:255"`          // Optional details
	Status      string     `gorm:"size:16;not null;default:pending"` // pending, in_progress or completed
	Priority    string     `gorm:"size:16;not null;default:medium"`  // low, medium or high
	DueDate     *time.Time // Optional due date
	CreatedAt   time.Time  // Timestamp of creation
	UpdatedAt   time.Time  // Timestamp of last update
}
