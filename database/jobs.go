package database

import (
	"database/sql"
	"sync"
	"time"

	"worklog/models"
	"worklog/pkg/interval"
)

const jobColumns = "j.id, j.project_id, j.jid, j.title, j.overview, j.uri, j.shredable, j.colour, j.alive, j.created, j.last_update"

// Jobs is the accessor for Job rows.
type Jobs struct {
	db *DB
	mu sync.Mutex
}

func NewJobs(db *DB) *Jobs {
	return &Jobs{db: db}
}

func scanJob(s scanner) (*models.Job, error) {
	var j models.Job
	var projectID sql.NullString
	var colour string
	var lastUpdate sql.NullTime

	err := s.Scan(&j.ID, &projectID, &j.JID, &j.Title, &j.Overview, &j.URI,
		&j.Shredable, &colour, &j.Alive, &j.Created, &lastUpdate)
	if err != nil {
		return nil, err
	}

	j.ProjectID = strPtr(projectID)
	j.Colour = models.ParseColour(colour)
	j.LastUpdate = timePtr(lastUpdate)
	return &j, nil
}

func (s *Jobs) Create(j *models.Job, save bool) error {
	if j.ID == "" {
		j.ID = newID()
	}
	if j.JID == 0 {
		j.JID = newHumanID()
	}
	if j.Created.IsZero() {
		j.Created = time.Now()
	}
	j.Alive = true

	return s.db.exec(save, `
		INSERT INTO jobs (id, project_id, jid, title, overview, uri, shredable, colour, alive, created, last_update)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?)
	`, j.ID, nullStr(j.ProjectID), j.JID, j.Title, j.Overview, j.URI,
		j.Shredable, j.Colour.String(), j.Created, nullTime(j.LastUpdate))
}

func (s *Jobs) CreateAndReturn(j *models.Job) (*models.Job, error) {
	if err := s.Create(j, true); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *Jobs) query(q Query) ([]models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query, args := q.SQL()
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]models.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *j)
	}

	return jobs, rows.Err()
}

func (s *Jobs) one(q Query) (*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query, args := q.SQL()
	j, err := scanJob(s.db.QueryRow(query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return j, nil
}

// defaultJobFilter excludes dead jobs and jobs under hidden companies.
// Unowned jobs and jobs on unowned projects stay visible.
func defaultJobFilter() Expr {
	return And(
		Eq("j.alive", 1),
		Or(IsNull("p.company_id"), IsNull("j.project_id"), Eq("c.hidden", 0)),
	)
}

var jobOwnershipJoins = []string{
	"LEFT JOIN projects p ON j.project_id = p.id",
	"LEFT JOIN companies c ON p.company_id = c.id",
}

func (s *Jobs) All() ([]models.Job, error) {
	return s.query(Query{
		Table:   "jobs j",
		Columns: []string{jobColumns},
		Joins:   jobOwnershipJoins,
		Where:   defaultJobFilter(),
		Order:   []Sort{Asc("j.jid")},
	})
}

func (s *Jobs) ByID(id string) (*models.Job, error) {
	return s.one(Query{
		Table:   "jobs j",
		Columns: []string{jobColumns},
		Where:   And(Eq("j.id", id), Eq("j.alive", 1)),
	})
}

func (s *Jobs) ByJID(jid int64) (*models.Job, error) {
	return s.one(Query{
		Table:   "jobs j",
		Columns: []string{jobColumns},
		Where:   And(Eq("j.jid", jid), Eq("j.alive", 1)),
	})
}

func (s *Jobs) ByProject(projectID string) ([]models.Job, error) {
	return s.query(Query{
		Table:   "jobs j",
		Columns: []string{jobColumns},
		Joins:   jobOwnershipJoins,
		Where:   And(Eq("j.project_id", projectID), defaultJobFilter()),
		Order:   []Sort{Asc("j.jid")},
	})
}

func (s *Jobs) Unowned() ([]models.Job, error) {
	return s.query(Query{
		Table:   "jobs j",
		Columns: []string{jobColumns},
		Where:   And(Eq("j.alive", 1), IsNull("j.project_id")),
		Order:   []Sort{Asc("j.jid")},
	})
}

// Recent lists the n most recently touched jobs.
func (s *Jobs) Recent(n int) ([]models.Job, error) {
	return s.query(Query{
		Table:   "jobs j",
		Columns: []string{jobColumns},
		Joins:   jobOwnershipJoins,
		Where:   defaultJobFilter(),
		Order:   []Sort{Desc("COALESCE(j.last_update, j.created)")},
		Limit:   n,
	})
}

func (s *Jobs) Update(j *models.Job, save bool) error {
	now := time.Now()
	j.LastUpdate = &now

	return s.db.exec(save, `
		UPDATE jobs SET
			project_id = ?,
			title = ?,
			overview = ?,
			uri = ?,
			shredable = ?,
			colour = ?,
			last_update = ?
		WHERE id = ?
	`, nullStr(j.ProjectID), j.Title, j.Overview, j.URI, j.Shredable,
		j.Colour.String(), now, j.ID)
}

func (s *Jobs) CountAll() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.count(Query{
		Table:   "jobs j",
		Columns: []string{"j.id"},
		Joins:   jobOwnershipJoins,
		Where:   defaultJobFilter(),
	})
}

// InteractionsIn unions jobs updated in the window with jobs that own an
// in-window log record.
func (s *Jobs) InteractionsIn(start, end time.Time) ([]models.Job, error) {
	return s.query(Query{
		Table:    "jobs j",
		Columns:  []string{jobColumns},
		Distinct: true,
		Joins: append(jobOwnershipJoins,
			"LEFT JOIN records r ON r.job_id = j.id AND r.alive = 1"),
		Where: And(
			defaultJobFilter(),
			Or(
				And(Gte("j.last_update", start), Lt("j.last_update", end)),
				And(Gte("r.timestamp", start), Lt("r.timestamp", end)),
			),
		),
		Order: []Sort{Desc("COALESCE(j.last_update, CURRENT_TIMESTAMP)")},
	})
}

func (s *Jobs) InteractionsOn(date time.Time) ([]models.Job, error) {
	start, end := interval.Day(date)
	return s.InteractionsIn(start, end)
}

func (s *Jobs) SoftDelete(id string, save bool) error {
	return s.db.exec(save, `UPDATE jobs SET alive = 0, last_update = ? WHERE id = ?`, time.Now(), id)
}

func (s *Jobs) HardDelete(id string) error {
	_, err := s.db.Exec(`DELETE FROM jobs WHERE id = ?`, id)
	return err
}
