package database

import (
	"database/sql"
	"sync"
	"time"

	"worklog/models"
	"worklog/pkg/interval"
)

const planColumns = "pl.id, pl.job_ids, pl.task_ids, pl.note_ids, pl.project_ids, pl.company_ids, pl.created"

// Plans is the accessor for day-scoped Plan snapshots. The store does
// not enforce one plan per day; ForDate resolves ties to the newest.
type Plans struct {
	db *DB
	mu sync.Mutex
}

func NewPlans(db *DB) *Plans {
	return &Plans{db: db}
}

func scanPlan(s scanner) (*models.Plan, error) {
	var p models.Plan
	var jobs, tasks, notes, projects, companies string

	err := s.Scan(&p.ID, &jobs, &tasks, &notes, &projects, &companies, &p.Created)
	if err != nil {
		return nil, err
	}

	p.JobIDs = splitIDs(jobs)
	p.TaskIDs = splitIDs(tasks)
	p.NoteIDs = splitIDs(notes)
	p.ProjectIDs = splitIDs(projects)
	p.CompanyIDs = splitIDs(companies)
	return &p, nil
}

func (s *Plans) Create(p *models.Plan, save bool) error {
	if p.ID == "" {
		p.ID = newID()
	}
	if p.Created.IsZero() {
		p.Created = time.Now()
	}

	return s.db.exec(save, `
		INSERT INTO plans (id, job_ids, task_ids, note_ids, project_ids, company_ids, created)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, p.ID, joinIDs(p.JobIDs), joinIDs(p.TaskIDs), joinIDs(p.NoteIDs),
		joinIDs(p.ProjectIDs), joinIDs(p.CompanyIDs), p.Created)
}

func (s *Plans) CreateAndReturn(p *models.Plan) (*models.Plan, error) {
	if err := s.Create(p, true); err != nil {
		return nil, err
	}
	return p, nil
}

// ForDate returns the newest plan created inside the day's window, or
// nil when the day has no plan.
func (s *Plans) ForDate(date time.Time) (*models.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start, end := interval.Day(date)
	query, args := Query{
		Table:   "plans pl",
		Columns: []string{planColumns},
		Where:   And(Gte("pl.created", start), Lt("pl.created", end)),
		Order:   []Sort{Desc("pl.created")},
		Limit:   1,
	}.SQL()

	p, err := scanPlan(s.db.QueryRow(query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Plans) ForToday() (*models.Plan, error) {
	return s.ForDate(time.Now())
}

func (s *Plans) All() ([]models.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query, args := Query{
		Table:   "plans pl",
		Columns: []string{planColumns},
		Order:   []Sort{Desc("pl.created")},
	}.SQL()

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := make([]models.Plan, 0)
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *p)
	}

	return plans, rows.Err()
}

// DeleteForDate removes every plan in the day's window, so a caller can
// rewrite the day in one delete-then-create pass.
func (s *Plans) DeleteForDate(date time.Time) error {
	start, end := interval.Day(date)
	_, err := s.db.Exec(`DELETE FROM plans WHERE created >= ? AND created < ?`, start, end)
	return err
}
