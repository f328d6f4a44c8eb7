package database

import (
	"database/sql"
	"sync"
	"time"

	"worklog/models"
)

const definitionColumns = "d.id, d.term_id, d.job_id, d.definition, d.alive, d.created, d.last_update"

// Definitions is the accessor for TaxonomyTermDefinition rows. Every
// definition binds one term to one job.
type Definitions struct {
	db *DB
	mu sync.Mutex
}

func NewDefinitions(db *DB) *Definitions {
	return &Definitions{db: db}
}

func scanDefinition(s scanner) (*models.TaxonomyTermDefinition, error) {
	var d models.TaxonomyTermDefinition
	var lastUpdate sql.NullTime

	err := s.Scan(&d.ID, &d.TermID, &d.JobID, &d.Definition, &d.Alive, &d.Created, &lastUpdate)
	if err != nil {
		return nil, err
	}

	d.LastUpdate = timePtr(lastUpdate)
	return &d, nil
}

func (s *Definitions) Create(d *models.TaxonomyTermDefinition, save bool) error {
	if d.ID == "" {
		d.ID = newID()
	}
	if d.Created.IsZero() {
		d.Created = time.Now()
	}
	d.Alive = true

	return s.db.exec(save, `
		INSERT INTO definitions (id, term_id, job_id, definition, alive, created, last_update)
		VALUES (?, ?, ?, ?, 1, ?, ?)
	`, d.ID, d.TermID, d.JobID, d.Definition, d.Created, nullTime(d.LastUpdate))
}

func (s *Definitions) CreateAndReturn(d *models.TaxonomyTermDefinition) (*models.TaxonomyTermDefinition, error) {
	if err := s.Create(d, true); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Definitions) query(q Query) ([]models.TaxonomyTermDefinition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query, args := q.SQL()
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	defs := make([]models.TaxonomyTermDefinition, 0)
	for rows.Next() {
		d, err := scanDefinition(rows)
		if err != nil {
			return nil, err
		}
		defs = append(defs, *d)
	}

	return defs, rows.Err()
}

func (s *Definitions) ByTerm(termID string) ([]models.TaxonomyTermDefinition, error) {
	return s.query(Query{
		Table:   "definitions d",
		Columns: []string{definitionColumns},
		Where:   And(Eq("d.term_id", termID), Eq("d.alive", 1)),
		Order:   []Sort{Asc("d.created")},
	})
}

func (s *Definitions) ByJob(jobID string) ([]models.TaxonomyTermDefinition, error) {
	return s.query(Query{
		Table:   "definitions d",
		Columns: []string{definitionColumns},
		Where:   And(Eq("d.job_id", jobID), Eq("d.alive", 1)),
		Order:   []Sort{Asc("d.created")},
	})
}

func (s *Definitions) All() ([]models.TaxonomyTermDefinition, error) {
	return s.query(Query{
		Table:   "definitions d",
		Columns: []string{definitionColumns},
		Where:   Eq("d.alive", 1),
		Order:   []Sort{Asc("d.created")},
	})
}

func (s *Definitions) SoftDelete(id string, save bool) error {
	return s.db.exec(save, `UPDATE definitions SET alive = 0, last_update = ? WHERE id = ?`, time.Now(), id)
}
