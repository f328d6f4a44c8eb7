package database

import (
	"sync"
	"time"

	"worklog/models"
)

const searchColumns = "s.id, s.term, s.alive, s.created"

// SavedSearches is the accessor for search history bookmarks.
type SavedSearches struct {
	db *DB
	mu sync.Mutex
}

func NewSavedSearches(db *DB) *SavedSearches {
	return &SavedSearches{db: db}
}

func (st *SavedSearches) Create(term string, save bool) error {
	return st.db.exec(save, `
		INSERT INTO saved_searches (id, term, alive, created)
		VALUES (?, ?, 1, ?)
	`, newID(), term, time.Now())
}

func (st *SavedSearches) All() ([]models.SavedSearch, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	query, args := Query{
		Table:   "saved_searches s",
		Columns: []string{searchColumns},
		Where:   Eq("s.alive", 1),
		Order:   []Sort{Desc("s.created")},
	}.SQL()

	rows, err := st.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	searches := make([]models.SavedSearch, 0)
	for rows.Next() {
		var s models.SavedSearch
		if err := rows.Scan(&s.ID, &s.Term, &s.Alive, &s.Created); err != nil {
			return nil, err
		}
		searches = append(searches, s)
	}

	return searches, rows.Err()
}

// Delete soft-deletes every bookmark of the term.
func (st *SavedSearches) Delete(term string, save bool) error {
	return st.db.exec(save, `UPDATE saved_searches SET alive = 0 WHERE term = ?`, term)
}
