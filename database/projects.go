package database

import (
	"database/sql"
	"sync"
	"time"

	"worklog/models"
	"worklog/pkg/interval"
)

const projectColumns = "p.id, p.company_id, p.name, p.abbreviation, p.colour, p.pid, p.ignored_jobs, p.alive, p.created, p.last_update"

// Projects is the accessor for Project rows.
type Projects struct {
	db        *DB
	companies *Companies
	mu        sync.Mutex
}

func NewProjects(db *DB, companies *Companies) *Projects {
	return &Projects{db: db, companies: companies}
}

func scanProject(s scanner) (*models.Project, error) {
	var p models.Project
	var companyID sql.NullString
	var colour, ignored string
	var lastUpdate sql.NullTime

	err := s.Scan(&p.ID, &companyID, &p.Name, &p.Abbreviation, &colour,
		&p.PID, &ignored, &p.Alive, &p.Created, &lastUpdate)
	if err != nil {
		return nil, err
	}

	p.CompanyID = strPtr(companyID)
	p.Colour = models.ParseColour(colour)
	p.IgnoredJobs = splitJIDs(ignored)
	p.LastUpdate = timePtr(lastUpdate)
	return &p, nil
}

// Create stages or writes a new project. A project created without a
// company falls back to the current default company.
func (s *Projects) Create(p *models.Project, save bool) error {
	if p.ID == "" {
		p.ID = newID()
	}
	if p.PID == 0 {
		p.PID = newHumanID()
	}
	if p.Created.IsZero() {
		p.Created = time.Now()
	}
	p.Alive = true

	if p.CompanyID == nil {
		def, err := s.companies.Default()
		if err != nil {
			return err
		}
		if def != nil {
			p.CompanyID = &def.ID
		}
	}

	return s.db.exec(save, `
		INSERT INTO projects (id, company_id, name, abbreviation, colour, pid, ignored_jobs, alive, created, last_update)
		VALUES (?, ?, ?, ?, ?, ?, ?, 1, ?, ?)
	`, p.ID, nullStr(p.CompanyID), p.Name, p.Abbreviation, p.Colour.String(),
		p.PID, joinJIDs(p.IgnoredJobs), p.Created, nullTime(p.LastUpdate))
}

func (s *Projects) CreateAndReturn(p *models.Project) (*models.Project, error) {
	if err := s.Create(p, true); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Projects) query(q Query) ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query, args := q.SQL()
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]models.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}

	return projects, rows.Err()
}

func (s *Projects) one(q Query) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query, args := q.SQL()
	p, err := scanProject(s.db.QueryRow(query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// defaultProjectFilter excludes dead projects and the whole subtree of
// hidden companies. Unowned projects stay visible.
func defaultProjectFilter() Expr {
	return And(
		Eq("p.alive", 1),
		Or(IsNull("p.company_id"), Eq("c.hidden", 0)),
	)
}

var projectCompanyJoin = []string{"LEFT JOIN companies c ON p.company_id = c.id"}

func (s *Projects) All() ([]models.Project, error) {
	return s.query(Query{
		Table:   "projects p",
		Columns: []string{projectColumns},
		Joins:   projectCompanyJoin,
		Where:   defaultProjectFilter(),
		Order:   []Sort{Asc("p.name")},
	})
}

func (s *Projects) ByID(id string) (*models.Project, error) {
	return s.one(Query{
		Table:   "projects p",
		Columns: []string{projectColumns},
		Where:   And(Eq("p.id", id), Eq("p.alive", 1)),
	})
}

func (s *Projects) ByPID(pid int64) (*models.Project, error) {
	return s.one(Query{
		Table:   "projects p",
		Columns: []string{projectColumns},
		Where:   And(Eq("p.pid", pid), Eq("p.alive", 1)),
	})
}

func (s *Projects) ByCompany(companyID string) ([]models.Project, error) {
	return s.query(Query{
		Table:   "projects p",
		Columns: []string{projectColumns},
		Joins:   projectCompanyJoin,
		Where:   And(Eq("p.company_id", companyID), defaultProjectFilter()),
		Order:   []Sort{Asc("p.name")},
	})
}

// Unowned lists projects with no owning company.
func (s *Projects) Unowned() ([]models.Project, error) {
	return s.query(Query{
		Table:   "projects p",
		Columns: []string{projectColumns},
		Where:   And(Eq("p.alive", 1), IsNull("p.company_id")),
		Order:   []Sort{Asc("p.name")},
	})
}

func (s *Projects) Update(p *models.Project, save bool) error {
	now := time.Now()
	p.LastUpdate = &now

	return s.db.exec(save, `
		UPDATE projects SET
			name = ?,
			abbreviation = ?,
			colour = ?,
			company_id = ?,
			ignored_jobs = ?,
			last_update = ?
		WHERE id = ?
	`, p.Name, p.Abbreviation, p.Colour.String(), nullStr(p.CompanyID),
		joinJIDs(p.IgnoredJobs), now, p.ID)
}

// SetIgnoredJobs rewrites the project configuration's ignored-job list.
// Ignored jobs are excluded from exports but stay queryable.
func (s *Projects) SetIgnoredJobs(projectID string, jids []int64, save bool) error {
	return s.db.exec(save, `UPDATE projects SET ignored_jobs = ?, last_update = ? WHERE id = ?`,
		joinJIDs(jids), time.Now(), projectID)
}

func (s *Projects) CountAll() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.count(Query{
		Table:   "projects p",
		Columns: []string{"p.id"},
		Joins:   projectCompanyJoin,
		Where:   defaultProjectFilter(),
	})
}

// InteractionsIn unions projects updated in the window with projects
// reachable through an in-window log record on one of their jobs.
func (s *Projects) InteractionsIn(start, end time.Time) ([]models.Project, error) {
	return s.query(Query{
		Table:    "projects p",
		Columns:  []string{projectColumns},
		Distinct: true,
		Joins: []string{
			"LEFT JOIN companies c ON p.company_id = c.id",
			"LEFT JOIN jobs j ON j.project_id = p.id",
			"LEFT JOIN records r ON r.job_id = j.id AND r.alive = 1",
		},
		Where: And(
			defaultProjectFilter(),
			Or(
				And(Gte("p.last_update", start), Lt("p.last_update", end)),
				And(Gte("r.timestamp", start), Lt("r.timestamp", end)),
			),
		),
		Order: []Sort{Desc("COALESCE(p.last_update, CURRENT_TIMESTAMP)")},
	})
}

func (s *Projects) InteractionsOn(date time.Time) ([]models.Project, error) {
	start, end := interval.Day(date)
	return s.InteractionsIn(start, end)
}

func (s *Projects) SoftDelete(id string, save bool) error {
	return s.db.exec(save, `UPDATE projects SET alive = 0, last_update = ? WHERE id = ?`, time.Now(), id)
}

func (s *Projects) HardDelete(id string) error {
	_, err := s.db.Exec(`DELETE FROM projects WHERE id = ?`, id)
	return err
}
