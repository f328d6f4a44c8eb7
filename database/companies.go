package database

import (
	"database/sql"
	"sync"
	"time"

	"worklog/models"
	"worklog/pkg/interval"
)

const companyColumns = "c.id, c.name, c.abbreviation, c.colour, c.is_default, c.hidden, c.pid, c.alive, c.created, c.last_update"

// Companies is the accessor for Company rows.
type Companies struct {
	db *DB
	mu sync.Mutex
}

func NewCompanies(db *DB) *Companies {
	return &Companies{db: db}
}

func scanCompany(s scanner) (*models.Company, error) {
	var c models.Company
	var colour string
	var lastUpdate sql.NullTime

	err := s.Scan(&c.ID, &c.Name, &c.Abbreviation, &colour, &c.IsDefault,
		&c.Hidden, &c.PID, &c.Alive, &c.Created, &lastUpdate)
	if err != nil {
		return nil, err
	}

	c.Colour = models.ParseColour(colour)
	c.LastUpdate = timePtr(lastUpdate)
	return &c, nil
}

// Create stages or writes a new company. Identifier, PID and created
// default when unset.
func (s *Companies) Create(c *models.Company, save bool) error {
	if c.ID == "" {
		c.ID = newID()
	}
	if c.PID == 0 {
		c.PID = newHumanID()
	}
	if c.Created.IsZero() {
		c.Created = time.Now()
	}
	c.Alive = true

	return s.db.exec(save, `
		INSERT INTO companies (id, name, abbreviation, colour, is_default, hidden, pid, alive, created, last_update)
		VALUES (?, ?, ?, ?, ?, ?, ?, 1, ?, ?)
	`, c.ID, c.Name, c.Abbreviation, c.Colour.String(), c.IsDefault, c.Hidden, c.PID, c.Created, nullTime(c.LastUpdate))
}

func (s *Companies) CreateAndReturn(c *models.Company) (*models.Company, error) {
	if err := s.Create(c, true); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Companies) query(q Query) ([]models.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query, args := q.SQL()
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	companies := make([]models.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, *c)
	}

	return companies, rows.Err()
}

func (s *Companies) one(q Query) (*models.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query, args := q.SQL()
	c, err := scanCompany(s.db.QueryRow(query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func defaultCompanyFilter() Expr {
	return And(Eq("c.alive", 1), Eq("c.hidden", 0))
}

// All lists visible companies, newest activity first.
func (s *Companies) All() ([]models.Company, error) {
	return s.query(Query{
		Table:   "companies c",
		Columns: []string{companyColumns},
		Where:   defaultCompanyFilter(),
		Order:   []Sort{Asc("c.name")},
	})
}

func (s *Companies) ByID(id string) (*models.Company, error) {
	return s.one(Query{
		Table:   "companies c",
		Columns: []string{companyColumns},
		Where:   And(Eq("c.id", id), Eq("c.alive", 1)),
	})
}

func (s *Companies) ByPID(pid int64) (*models.Company, error) {
	return s.one(Query{
		Table:   "companies c",
		Columns: []string{companyColumns},
		Where:   And(Eq("c.pid", pid), Eq("c.alive", 1)),
	})
}

func (s *Companies) ByName(name string) (*models.Company, error) {
	return s.one(Query{
		Table:   "companies c",
		Columns: []string{companyColumns},
		Where:   And(Eq("c.name", name), defaultCompanyFilter()),
	})
}

// Default returns the default company, or nil when none is flagged.
func (s *Companies) Default() (*models.Company, error) {
	return s.one(Query{
		Table:   "companies c",
		Columns: []string{companyColumns},
		Where:   And(Eq("c.is_default", 1), Eq("c.alive", 1)),
	})
}

// SetDefault flags one company as default and clears the flag on every
// other, in one transaction. The single-default rule lives here, not in
// the schema.
func (s *Companies) SetDefault(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`UPDATE companies SET is_default = 0 WHERE id <> ?`, id); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec(`UPDATE companies SET is_default = 1, last_update = ? WHERE id = ?`, time.Now(), id); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (s *Companies) Update(c *models.Company, save bool) error {
	now := time.Now()
	c.LastUpdate = &now

	return s.db.exec(save, `
		UPDATE companies SET
			name = ?,
			abbreviation = ?,
			colour = ?,
			hidden = ?,
			last_update = ?
		WHERE id = ?
	`, c.Name, c.Abbreviation, c.Colour.String(), c.Hidden, now, c.ID)
}

func (s *Companies) CountAll() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.count(Query{
		Table:   "companies c",
		Columns: []string{"c.id"},
		Where:   defaultCompanyFilter(),
	})
}

// InteractionsIn returns companies touched inside the half-open window,
// either by their own update timestamp or through a log record on a job
// beneath them, deduped and sorted by last activity.
func (s *Companies) InteractionsIn(start, end time.Time) ([]models.Company, error) {
	return s.query(Query{
		Table:    "companies c",
		Columns:  []string{companyColumns},
		Distinct: true,
		Joins: []string{
			"LEFT JOIN projects p ON p.company_id = c.id",
			"LEFT JOIN jobs j ON j.project_id = p.id",
			"LEFT JOIN records r ON r.job_id = j.id AND r.alive = 1",
		},
		Where: And(
			defaultCompanyFilter(),
			Or(
				And(Gte("c.last_update", start), Lt("c.last_update", end)),
				And(Gte("r.timestamp", start), Lt("r.timestamp", end)),
			),
		),
		Order: []Sort{Desc("COALESCE(c.last_update, CURRENT_TIMESTAMP)")},
	})
}

// InteractionsOn is InteractionsIn over one calendar day.
func (s *Companies) InteractionsOn(date time.Time) ([]models.Company, error) {
	start, end := interval.Day(date)
	return s.InteractionsIn(start, end)
}

// SoftDelete marks the company dead but keeps the row for history.
func (s *Companies) SoftDelete(id string, save bool) error {
	return s.db.exec(save, `UPDATE companies SET alive = 0, last_update = ? WHERE id = ?`, time.Now(), id)
}

func (s *Companies) HardDelete(id string) error {
	_, err := s.db.Exec(`DELETE FROM companies WHERE id = ?`, id)
	return err
}
