package database

import (
	"sync"
	"time"

	"worklog/models"
)

const wordColumns = "w.id, w.project_id, w.word, w.created"

// BannedWords is the accessor for per-project redaction words. Words
// shape read-time output only; stored text is never rewritten.
type BannedWords struct {
	db *DB
	mu sync.Mutex
}

func NewBannedWords(db *DB) *BannedWords {
	return &BannedWords{db: db}
}

func (s *BannedWords) Create(w *models.BannedWord, save bool) error {
	if w.ID == "" {
		w.ID = newID()
	}
	if w.Created.IsZero() {
		w.Created = time.Now()
	}

	return s.db.exec(save, `
		INSERT INTO banned_words (id, project_id, word, created)
		VALUES (?, ?, ?, ?)
	`, w.ID, w.ProjectID, w.Word, w.Created)
}

func (s *BannedWords) query(q Query) ([]models.BannedWord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query, args := q.SQL()
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	words := make([]models.BannedWord, 0)
	for rows.Next() {
		var w models.BannedWord
		if err := rows.Scan(&w.ID, &w.ProjectID, &w.Word, &w.Created); err != nil {
			return nil, err
		}
		words = append(words, w)
	}

	return words, rows.Err()
}

func (s *BannedWords) All() ([]models.BannedWord, error) {
	return s.query(Query{
		Table:   "banned_words w",
		Columns: []string{wordColumns},
		Order:   []Sort{Asc("w.word")},
	})
}

func (s *BannedWords) ByProject(projectID string) ([]models.BannedWord, error) {
	return s.query(Query{
		Table:   "banned_words w",
		Columns: []string{wordColumns},
		Where:   Eq("w.project_id", projectID),
		Order:   []Sort{Asc("w.word")},
	})
}

func (s *BannedWords) HardDelete(id string) error {
	_, err := s.db.Exec(`DELETE FROM banned_words WHERE id = ?`, id)
	return err
}
