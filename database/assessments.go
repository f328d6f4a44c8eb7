package database

import (
	"sync"
	"time"

	"worklog/models"
)

const factorColumns = "f.id, f.description, f.value, f.weight, f.alive, f.created"
const thresholdColumns = "th.id, th.label, th.value, th.default_value, th.colour, th.emoji, th.created"

// Assessments is the accessor for day-score configuration: factors and
// the threshold bands they score against.
type Assessments struct {
	db *DB
	mu sync.Mutex
}

func NewAssessments(db *DB) *Assessments {
	return &Assessments{db: db}
}

func (s *Assessments) CreateFactor(f *models.AssessmentFactor, save bool) error {
	if f.ID == "" {
		f.ID = newID()
	}
	if f.Created.IsZero() {
		f.Created = time.Now()
	}
	f.Alive = true

	return s.db.exec(save, `
		INSERT INTO assessment_factors (id, description, value, weight, alive, created)
		VALUES (?, ?, ?, ?, 1, ?)
	`, f.ID, f.Description, f.Value, f.Weight, f.Created)
}

func (s *Assessments) Factors() ([]models.AssessmentFactor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query, args := Query{
		Table:   "assessment_factors f",
		Columns: []string{factorColumns},
		Where:   Eq("f.alive", 1),
		Order:   []Sort{Asc("f.created")},
	}.SQL()

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	factors := make([]models.AssessmentFactor, 0)
	for rows.Next() {
		var f models.AssessmentFactor
		if err := rows.Scan(&f.ID, &f.Description, &f.Value, &f.Weight, &f.Alive, &f.Created); err != nil {
			return nil, err
		}
		factors = append(factors, f)
	}

	return factors, rows.Err()
}

func (s *Assessments) UpdateFactor(f *models.AssessmentFactor, save bool) error {
	return s.db.exec(save, `
		UPDATE assessment_factors SET description = ?, value = ?, weight = ? WHERE id = ?
	`, f.Description, f.Value, f.Weight, f.ID)
}

func (s *Assessments) DeleteFactor(id string, save bool) error {
	return s.db.exec(save, `UPDATE assessment_factors SET alive = 0 WHERE id = ?`, id)
}

func (s *Assessments) Thresholds() ([]models.AssessmentThreshold, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query, args := Query{
		Table:   "assessment_thresholds th",
		Columns: []string{thresholdColumns},
		Order:   []Sort{Asc("th.value")},
	}.SQL()

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	thresholds := make([]models.AssessmentThreshold, 0)
	for rows.Next() {
		var th models.AssessmentThreshold
		var colour string
		if err := rows.Scan(&th.ID, &th.Label, &th.Value, &th.DefaultValue, &colour, &th.Emoji, &th.Created); err != nil {
			return nil, err
		}
		th.Colour = models.ParseColour(colour)
		thresholds = append(thresholds, th)
	}

	return thresholds, rows.Err()
}

// ResetThresholds drops every threshold and rebuilds the set from the
// fixed weight enumeration, in one transaction.
func (s *Assessments) ResetThresholds() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM assessment_thresholds`); err != nil {
		tx.Rollback()
		return err
	}

	now := time.Now()
	for _, th := range models.DefaultThresholds {
		_, err := tx.Exec(`
			INSERT INTO assessment_thresholds (id, label, value, default_value, colour, emoji, created)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, newID(), th.Label, th.Value, th.DefaultValue, th.Colour.String(), th.Emoji, now)
		if err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}
