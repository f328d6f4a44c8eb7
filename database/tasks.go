package database

import (
	"database/sql"
	"sync"
	"time"

	"worklog/models"
	"worklog/pkg/interval"
)

const taskColumns = "t.id, t.job_id, t.content, t.due, t.completed, t.cancelled, t.uri, t.has_notification, t.created, t.last_update"

// Tasks is the accessor for LogTask rows. Lifecycle: both dates nil =
// open; setting either completed or cancelled is terminal.
type Tasks struct {
	db *DB
	mu sync.Mutex
}

func NewTasks(db *DB) *Tasks {
	return &Tasks{db: db}
}

func scanTask(s scanner) (*models.LogTask, error) {
	var t models.LogTask
	var due, completed, cancelled, lastUpdate sql.NullTime

	err := s.Scan(&t.ID, &t.JobID, &t.Content, &due, &completed, &cancelled,
		&t.URI, &t.HasNotification, &t.Created, &lastUpdate)
	if err != nil {
		return nil, err
	}

	t.Due = timePtr(due)
	t.Completed = timePtr(completed)
	t.Cancelled = timePtr(cancelled)
	t.LastUpdate = timePtr(lastUpdate)
	return &t, nil
}

func (s *Tasks) Create(t *models.LogTask, save bool) error {
	if t.ID == "" {
		t.ID = newID()
	}
	if t.Created.IsZero() {
		t.Created = time.Now()
	}

	return s.db.exec(save, `
		INSERT INTO tasks (id, job_id, content, due, completed, cancelled, uri, has_notification, created, last_update)
		VALUES (?, ?, ?, ?, NULL, NULL, ?, ?, ?, ?)
	`, t.ID, t.JobID, t.Content, nullTime(t.Due), t.URI, t.HasNotification,
		t.Created, nullTime(t.LastUpdate))
}

func (s *Tasks) CreateAndReturn(t *models.LogTask) (*models.LogTask, error) {
	if err := s.Create(t, true); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Tasks) query(q Query) ([]models.LogTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query, args := q.SQL()
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]models.LogTask, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}

	return tasks, rows.Err()
}

// openTaskFilter keeps open tasks on visible jobs.
func openTaskFilter() Expr {
	return And(
		IsNull("t.completed"),
		IsNull("t.cancelled"),
		Eq("j.alive", 1),
		Or(IsNull("j.project_id"), IsNull("p.company_id"), Eq("c.hidden", 0)),
	)
}

var taskOwnershipJoins = []string{
	"LEFT JOIN jobs j ON t.job_id = j.id",
	"LEFT JOIN projects p ON j.project_id = p.id",
	"LEFT JOIN companies c ON p.company_id = c.id",
}

// All lists open tasks on visible jobs, soonest due first.
func (s *Tasks) All() ([]models.LogTask, error) {
	return s.query(Query{
		Table:   "tasks t",
		Columns: []string{taskColumns},
		Joins:   taskOwnershipJoins,
		Where:   openTaskFilter(),
		Order:   []Sort{Asc("COALESCE(t.due, t.created)")},
	})
}

func (s *Tasks) ByID(id string) (*models.LogTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query, args := Query{
		Table:   "tasks t",
		Columns: []string{taskColumns},
		Where:   Eq("t.id", id),
	}.SQL()

	t, err := scanTask(s.db.QueryRow(query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Tasks) ByJob(jobID string) ([]models.LogTask, error) {
	return s.query(Query{
		Table:   "tasks t",
		Columns: []string{taskColumns},
		Where:   And(Eq("t.job_id", jobID), IsNull("t.completed"), IsNull("t.cancelled")),
		Order:   []Sort{Asc("COALESCE(t.due, t.created)")},
	})
}

// Upcoming lists open tasks due at or after the given instant.
func (s *Tasks) Upcoming(from time.Time) ([]models.LogTask, error) {
	return s.query(Query{
		Table:   "tasks t",
		Columns: []string{taskColumns},
		Joins:   taskOwnershipJoins,
		Where:   And(openTaskFilter(), Gte("t.due", from)),
		Order:   []Sort{Asc("t.due")},
	})
}

// Overdue lists open tasks whose due date has passed.
func (s *Tasks) Overdue(asOf time.Time) ([]models.LogTask, error) {
	return s.query(Query{
		Table:   "tasks t",
		Columns: []string{taskColumns},
		Joins:   taskOwnershipJoins,
		Where:   And(openTaskFilter(), NotNull("t.due"), Lt("t.due", asOf)),
		Order:   []Sort{Asc("t.due")},
	})
}

// NoDueDate lists open tasks without a due date.
func (s *Tasks) NoDueDate() ([]models.LogTask, error) {
	return s.query(Query{
		Table:   "tasks t",
		Columns: []string{taskColumns},
		Joins:   taskOwnershipJoins,
		Where:   And(openTaskFilter(), IsNull("t.due")),
		Order:   []Sort{Asc("t.created")},
	})
}

// DueOn lists open tasks due inside the given day's window.
func (s *Tasks) DueOn(date time.Time) ([]models.LogTask, error) {
	start, end := interval.Day(date)
	return s.query(Query{
		Table:   "tasks t",
		Columns: []string{taskColumns},
		Joins:   taskOwnershipJoins,
		Where:   And(openTaskFilter(), Gte("t.due", start), Lt("t.due", end)),
		Order:   []Sort{Asc("t.due")},
	})
}

func (s *Tasks) CountDueOn(date time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start, end := interval.Day(date)
	return s.db.count(Query{
		Table:   "tasks t",
		Columns: []string{"t.id"},
		Joins:   taskOwnershipJoins,
		Where:   And(openTaskFilter(), Gte("t.due", start), Lt("t.due", end)),
	})
}

func (s *Tasks) Update(t *models.LogTask, save bool) error {
	now := time.Now()
	t.LastUpdate = &now

	return s.db.exec(save, `
		UPDATE tasks SET
			content = ?,
			due = ?,
			uri = ?,
			has_notification = ?,
			last_update = ?
		WHERE id = ?
	`, t.Content, nullTime(t.Due), t.URI, t.HasNotification, now, t.ID)
}

// Complete stamps the completed date. The guard keeps terminal tasks
// terminal: a completed or cancelled task never transitions again.
func (s *Tasks) Complete(id string, save bool) error {
	now := time.Now()
	return s.db.exec(save, `
		UPDATE tasks SET completed = ?, last_update = ?
		WHERE id = ? AND completed IS NULL AND cancelled IS NULL
	`, now, now, id)
}

// Cancel stamps the cancelled date under the same terminality guard.
func (s *Tasks) Cancel(id string, save bool) error {
	now := time.Now()
	return s.db.exec(save, `
		UPDATE tasks SET cancelled = ?, last_update = ?
		WHERE id = ? AND completed IS NULL AND cancelled IS NULL
	`, now, now, id)
}

func (s *Tasks) HardDelete(id string) error {
	_, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	return err
}
