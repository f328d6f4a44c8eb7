package services

import (
	"fmt"
	"time"

	"worklog/models"
)

// TaskService enforces the task lifecycle and writes the audit trail
// for transitions.
type TaskService struct {
	tasks   TaskStore
	records RecordStore
}

func NewTaskService(tasks TaskStore, records RecordStore) *TaskService {
	return &TaskService{tasks: tasks, records: records}
}

// Create opens a new task on a job.
func (ts *TaskService) Create(jobID, content string, due *time.Time, uri string) (*models.LogTask, error) {
	task := &models.LogTask{
		JobID:   jobID,
		Content: content,
		Due:     due,
		URI:     uri,
	}
	if err := ts.tasks.Create(task, true); err != nil {
		return nil, err
	}
	return task, nil
}

// Complete moves an open task to its completed terminal state and logs
// one record documenting the transition.
func (ts *TaskService) Complete(taskID string) error {
	return ts.transition(taskID, "Completed", ts.tasks.Complete)
}

// Cancel moves an open task to its cancelled terminal state and logs
// one record documenting the transition.
func (ts *TaskService) Cancel(taskID string) error {
	return ts.transition(taskID, "Cancelled", ts.tasks.Cancel)
}

func (ts *TaskService) transition(taskID, verb string, apply func(id string, save bool) error) error {
	task, err := ts.tasks.ByID(taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return ErrTaskNotFound
	}
	if !task.Open() {
		return ErrTaskFinished
	}

	if err := apply(taskID, true); err != nil {
		return err
	}

	// Audit write on the task's job
	return ts.records.Create(&models.LogRecord{
		JobID:     &task.JobID,
		Message:   fmt.Sprintf("%s: %s", verb, task.Content),
		Timestamp: time.Now(),
	}, true)
}
