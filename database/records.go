package database

import (
	"database/sql"
	"sync"
	"time"

	"worklog/models"
	"worklog/pkg/interval"
)

const recordColumns = "r.id, r.job_id, r.timestamp, r.message, r.alive, r.created, r.last_update"

// Records is the accessor for LogRecord rows.
type Records struct {
	db *DB
	mu sync.Mutex
}

func NewRecords(db *DB) *Records {
	return &Records{db: db}
}

func scanRecord(s scanner) (*models.LogRecord, error) {
	var r models.LogRecord
	var jobID sql.NullString
	var lastUpdate sql.NullTime

	err := s.Scan(&r.ID, &jobID, &r.Timestamp, &r.Message, &r.Alive, &r.Created, &lastUpdate)
	if err != nil {
		return nil, err
	}

	r.JobID = strPtr(jobID)
	r.LastUpdate = timePtr(lastUpdate)
	return &r, nil
}

func (s *Records) Create(r *models.LogRecord, save bool) error {
	if r.ID == "" {
		r.ID = newID()
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now()
	}
	if r.Created.IsZero() {
		r.Created = r.Timestamp
	}
	r.Alive = true

	return s.db.exec(save, `
		INSERT INTO records (id, job_id, timestamp, message, alive, created, last_update)
		VALUES (?, ?, ?, ?, 1, ?, ?)
	`, r.ID, nullStr(r.JobID), r.Timestamp, r.Message, r.Created, nullTime(r.LastUpdate))
}

func (s *Records) CreateAndReturn(r *models.LogRecord) (*models.LogRecord, error) {
	if err := s.Create(r, true); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Records) query(q Query) ([]models.LogRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query, args := q.SQL()
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]models.LogRecord, 0)
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *r)
	}

	return records, rows.Err()
}

// defaultRecordFilter excludes dead records and records on jobs under a
// hidden company.
func defaultRecordFilter() Expr {
	return And(
		Eq("r.alive", 1),
		Or(IsNull("r.job_id"), IsNull("j.project_id"), IsNull("p.company_id"), Eq("c.hidden", 0)),
	)
}

var recordOwnershipJoins = []string{
	"LEFT JOIN jobs j ON r.job_id = j.id",
	"LEFT JOIN projects p ON j.project_id = p.id",
	"LEFT JOIN companies c ON p.company_id = c.id",
}

func (s *Records) All() ([]models.LogRecord, error) {
	return s.query(Query{
		Table:   "records r",
		Columns: []string{recordColumns},
		Joins:   recordOwnershipJoins,
		Where:   defaultRecordFilter(),
		Order:   []Sort{Desc("r.timestamp")},
	})
}

func (s *Records) ByID(id string) (*models.LogRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query, args := Query{
		Table:   "records r",
		Columns: []string{recordColumns},
		Where:   And(Eq("r.id", id), Eq("r.alive", 1)),
	}.SQL()

	r, err := scanRecord(s.db.QueryRow(query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// InRange lists records with timestamps in the half-open window,
// newest first.
func (s *Records) InRange(start, end time.Time) ([]models.LogRecord, error) {
	return s.query(Query{
		Table:   "records r",
		Columns: []string{recordColumns},
		Joins:   recordOwnershipJoins,
		Where: And(
			defaultRecordFilter(),
			Gte("r.timestamp", start),
			Lt("r.timestamp", end),
		),
		Order: []Sort{Desc("r.timestamp")},
	})
}

func (s *Records) ForDate(date time.Time) ([]models.LogRecord, error) {
	start, end := interval.Day(date)
	return s.InRange(start, end)
}

func (s *Records) ByJob(jobID string, limit int) ([]models.LogRecord, error) {
	return s.query(Query{
		Table:   "records r",
		Columns: []string{recordColumns},
		Where:   And(Eq("r.alive", 1), Eq("r.job_id", jobID)),
		Order:   []Sort{Desc("r.timestamp")},
		Limit:   limit,
	})
}

// Matching lists records whose message contains the term,
// case-insensitively.
func (s *Records) Matching(term string) ([]models.LogRecord, error) {
	return s.query(Query{
		Table:   "records r",
		Columns: []string{recordColumns},
		Joins:   recordOwnershipJoins,
		Where:   And(defaultRecordFilter(), Contains("r.message", term)),
		Order:   []Sort{Desc("r.timestamp")},
	})
}

func (s *Records) CountAll() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.count(Query{
		Table:   "records r",
		Columns: []string{"r.id"},
		Joins:   recordOwnershipJoins,
		Where:   defaultRecordFilter(),
	})
}

func (s *Records) CountForDate(date time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start, end := interval.Day(date)
	return s.db.count(Query{
		Table:   "records r",
		Columns: []string{"r.id"},
		Joins:   recordOwnershipJoins,
		Where: And(
			defaultRecordFilter(),
			Gte("r.timestamp", start),
			Lt("r.timestamp", end),
		),
	})
}

func (s *Records) Update(r *models.LogRecord, save bool) error {
	now := time.Now()
	r.LastUpdate = &now

	return s.db.exec(save, `
		UPDATE records SET
			message = ?,
			job_id = ?,
			last_update = ?
		WHERE id = ?
	`, r.Message, nullStr(r.JobID), now, r.ID)
}

func (s *Records) SoftDelete(id string, save bool) error {
	return s.db.exec(save, `UPDATE records SET alive = 0, last_update = ? WHERE id = ?`, time.Now(), id)
}

func (s *Records) HardDelete(id string) error {
	_, err := s.db.Exec(`DELETE FROM records WHERE id = ?`, id)
	return err
}
