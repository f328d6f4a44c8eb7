package database

import (
	"database/sql"
	"sync"
	"time"

	"worklog/models"
)

const personColumns = "pe.id, pe.company_id, pe.name, pe.created, pe.last_update"

// People is the accessor for Person rows.
type People struct {
	db *DB
	mu sync.Mutex
}

func NewPeople(db *DB) *People {
	return &People{db: db}
}

func scanPerson(s scanner) (*models.Person, error) {
	var p models.Person
	var companyID sql.NullString
	var lastUpdate sql.NullTime

	err := s.Scan(&p.ID, &companyID, &p.Name, &p.Created, &lastUpdate)
	if err != nil {
		return nil, err
	}

	p.CompanyID = strPtr(companyID)
	p.LastUpdate = timePtr(lastUpdate)
	return &p, nil
}

func (s *People) Create(p *models.Person, save bool) error {
	if p.ID == "" {
		p.ID = newID()
	}
	if p.Created.IsZero() {
		p.Created = time.Now()
	}

	return s.db.exec(save, `
		INSERT INTO people (id, company_id, name, created, last_update)
		VALUES (?, ?, ?, ?, ?)
	`, p.ID, nullStr(p.CompanyID), p.Name, p.Created, nullTime(p.LastUpdate))
}

func (s *People) CreateAndReturn(p *models.Person) (*models.Person, error) {
	if err := s.Create(p, true); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *People) query(q Query) ([]models.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query, args := q.SQL()
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	people := make([]models.Person, 0)
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		people = append(people, *p)
	}

	return people, rows.Err()
}

// All lists people whose company (if any) is visible.
func (s *People) All() ([]models.Person, error) {
	return s.query(Query{
		Table:   "people pe",
		Columns: []string{personColumns},
		Joins:   []string{"LEFT JOIN companies c ON pe.company_id = c.id"},
		Where:   Or(IsNull("pe.company_id"), Eq("c.hidden", 0)),
		Order:   []Sort{Asc("pe.name")},
	})
}

func (s *People) ByCompany(companyID string) ([]models.Person, error) {
	return s.query(Query{
		Table:   "people pe",
		Columns: []string{personColumns},
		Where:   Eq("pe.company_id", companyID),
		Order:   []Sort{Asc("pe.name")},
	})
}

func (s *People) ByName(name string) (*models.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query, args := Query{
		Table:   "people pe",
		Columns: []string{personColumns},
		Where:   Eq("pe.name", name),
	}.SQL()

	p, err := scanPerson(s.db.QueryRow(query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *People) Update(p *models.Person, save bool) error {
	now := time.Now()
	p.LastUpdate = &now

	return s.db.exec(save, `
		UPDATE people SET name = ?, company_id = ?, last_update = ? WHERE id = ?
	`, p.Name, nullStr(p.CompanyID), now, p.ID)
}

func (s *People) HardDelete(id string) error {
	_, err := s.db.Exec(`DELETE FROM people WHERE id = ?`, id)
	return err
}
