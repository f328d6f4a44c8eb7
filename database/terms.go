package database

import (
	"database/sql"
	"sync"
	"time"

	"worklog/models"
)

const termColumns = "t.id, t.name, t.alive, t.created, t.last_update"

// Terms is the accessor for TaxonomyTerm rows. The name is the natural
// key; ByName is the primary lookup.
type Terms struct {
	db *DB
	mu sync.Mutex
}

func NewTerms(db *DB) *Terms {
	return &Terms{db: db}
}

func scanTerm(s scanner) (*models.TaxonomyTerm, error) {
	var t models.TaxonomyTerm
	var lastUpdate sql.NullTime

	err := s.Scan(&t.ID, &t.Name, &t.Alive, &t.Created, &lastUpdate)
	if err != nil {
		return nil, err
	}

	t.LastUpdate = timePtr(lastUpdate)
	return &t, nil
}

func (s *Terms) Create(t *models.TaxonomyTerm, save bool) error {
	if t.ID == "" {
		t.ID = newID()
	}
	if t.Created.IsZero() {
		t.Created = time.Now()
	}
	t.Alive = true

	return s.db.exec(save, `
		INSERT INTO terms (id, name, alive, created, last_update)
		VALUES (?, ?, 1, ?, ?)
	`, t.ID, t.Name, t.Created, nullTime(t.LastUpdate))
}

func (s *Terms) CreateAndReturn(t *models.TaxonomyTerm) (*models.TaxonomyTerm, error) {
	if err := s.Create(t, true); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Terms) All() ([]models.TaxonomyTerm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query, args := Query{
		Table:   "terms t",
		Columns: []string{termColumns},
		Where:   Eq("t.alive", 1),
		Order:   []Sort{Asc("t.name")},
	}.SQL()

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	terms := make([]models.TaxonomyTerm, 0)
	for rows.Next() {
		t, err := scanTerm(rows)
		if err != nil {
			return nil, err
		}
		terms = append(terms, *t)
	}

	return terms, rows.Err()
}

func (s *Terms) ByName(name string) (*models.TaxonomyTerm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query, args := Query{
		Table:   "terms t",
		Columns: []string{termColumns},
		Where:   And(Eq("t.name", name), Eq("t.alive", 1)),
	}.SQL()

	t, err := scanTerm(s.db.QueryRow(query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Terms) ByID(id string) (*models.TaxonomyTerm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query, args := Query{
		Table:   "terms t",
		Columns: []string{termColumns},
		Where:   And(Eq("t.id", id), Eq("t.alive", 1)),
	}.SQL()

	t, err := scanTerm(s.db.QueryRow(query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Matching lists terms whose name contains the fragment,
// case-insensitively.
func (s *Terms) Matching(fragment string) ([]models.TaxonomyTerm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query, args := Query{
		Table:   "terms t",
		Columns: []string{termColumns},
		Where:   And(Eq("t.alive", 1), Contains("t.name", fragment)),
		Order:   []Sort{Asc("t.name")},
	}.SQL()

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	terms := make([]models.TaxonomyTerm, 0)
	for rows.Next() {
		t, err := scanTerm(rows)
		if err != nil {
			return nil, err
		}
		terms = append(terms, *t)
	}

	return terms, rows.Err()
}

func (s *Terms) CountAll() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.count(Query{
		Table:   "terms t",
		Columns: []string{"t.id"},
		Where:   Eq("t.alive", 1),
	})
}

func (s *Terms) SoftDelete(id string, save bool) error {
	return s.db.exec(save, `UPDATE terms SET alive = 0, last_update = ? WHERE id = ?`, time.Now(), id)
}
