package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifetrack/internal/domain"
)

func TestCreateTask(t *testing.T) {
	svc, db := newTestService(t)
	userID := createUser(t, db, "alice")

	due := "2025-08-01"
	desc := "renew before it lapses"
	task, err := svc.CreateTask(userID, CreateTaskRequest{
		Title:       "Renew insurance",
		Description: &desc,
		Status:      domain.TaskStatusPending,
		Priority:    domain.TaskPriorityHigh,
		DueDate:     &due,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renew insurance", task.Title)
	assert.Equal(t, domain.TaskStatusPending, task.Status)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, due, task.DueDate.Format(DateLayout))
}

func TestCreateTaskValidation(t *testing.T) {
	svc, db := newTestService(t)
	userID := createUser(t, db, "alice")

	_, err := svc.CreateTask(userID, CreateTaskRequest{Status: "done", Priority: "urgent"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "title")
	assert.Contains(t, verr.Fields, "status")
	assert.Contains(t, verr.Fields, "priority")
}

func TestListTasksFilters(t *testing.T) {
	svc, db := newTestService(t)
	userID := createUser(t, db, "alice")

	past := time.Now().AddDate(0, 0, -3).Format(DateLayout)
	future := time.Now().AddDate(0, 0, 3).Format(DateLayout)
	seed := []CreateTaskRequest{
		{Title: "overdue errand", Status: domain.TaskStatusPending, Priority: domain.TaskPriorityLow, DueDate: &past},
		{Title: "finished chore", Status: domain.TaskStatusCompleted, Priority: domain.TaskPriorityHigh, DueDate: &past},
		{Title: "upcoming work", Status: domain.TaskStatusInProgress, Priority: domain.TaskPriorityHigh, DueDate: &future},
	}
	for _, req := range seed {
		_, err := svc.CreateTask(userID, req)
		require.NoError(t, err)
	}

	tasks, err := svc.ListTasks(userID, TaskFilters{Status: domain.TaskStatusCompleted})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "finished chore", tasks[0].Title)

	tasks, err = svc.ListTasks(userID, TaskFilters{Priority: domain.TaskPriorityHigh})
	require.NoError(t, err)
	assert.Len(t, tasks, 2)

	// Overdue excludes completed tasks even when past due
	tasks, err = svc.ListTasks(userID, TaskFilters{Overdue: true})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "overdue errand", tasks[0].Title)
}

func TestUpdateTaskPartial(t *testing.T) {
	svc, db := newTestService(t)
	userID := createUser(t, db, "alice")

	task, err := svc.CreateTask(userID, CreateTaskRequest{
		Title: "write report", Status: domain.TaskStatusPending, Priority: domain.TaskPriorityMedium,
	})
	require.NoError(t, err)

	status := domain.TaskStatusCompleted
	_, err = svc.UpdateTask(userID, task.ID, UpdateTaskRequest{Status: &status})
	require.NoError(t, err)
	var fresh domain.Task
	require.NoError(t, db.First(&fresh, task.ID).Error)
	assert.Equal(t, domain.TaskStatusCompleted, fresh.Status)
	assert.Equal(t, "write report", fresh.Title, "unset fields stay untouched")

	bad := "urgent"
	_, err = svc.UpdateTask(userID, task.ID, UpdateTaskRequest{Priority: &bad})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "priority")

	// Explicit empty string clears the due date
	due := "2025-08-01"
	_, err = svc.UpdateTask(userID, task.ID, UpdateTaskRequest{DueDate: &due})
	require.NoError(t, err)
	empty := ""
	_, err = svc.UpdateTask(userID, task.ID, UpdateTaskRequest{DueDate: &empty})
	require.NoError(t, err)
	require.NoError(t, db.First(&fresh, task.ID).Error)
	assert.Nil(t, fresh.DueDate)
}

func TestTaskOwnership(t *testing.T) {
	svc, db := newTestService(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	task, err := svc.CreateTask(alice, CreateTaskRequest{
		Title: "private", Status: domain.TaskStatusPending, Priority: domain.TaskPriorityLow,
	})
	require.NoError(t, err)

	var az *AuthorizationError
	_, err = svc.GetTask(bob, task.ID)
	require.ErrorAs(t, err, &az)
	require.ErrorAs(t, svc.DeleteTask(bob, task.ID), &az)

	var nf *NotFoundError
	_, err = svc.GetTask(alice, 999)
	require.ErrorAs(t, err, &nf)

	tasks, err := svc.ListTasks(bob, TaskFilters{})
	require.NoError(t, err)
	assert.Empty(t, tasks)

	require.NoError(t, svc.DeleteTask(alice, task.ID))
	var count int64
	require.NoError(t, db.Model(&domain.Task{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
