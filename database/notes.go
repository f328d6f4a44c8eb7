package database

import (
	"database/sql"
	"sync"
	"time"

	"worklog/models"
)

const noteColumns = "n.id, n.job_id, n.title, n.body, n.starred, n.posted_date, n.alive, n.created, n.last_update"
const versionColumns = "v.id, v.note_id, v.title, v.content, v.starred, v.source, v.created"

// Notes is the accessor for Note rows. Every create and every content
// update appends one immutable NoteVersion snapshot.
type Notes struct {
	db *DB
	mu sync.Mutex
}

func NewNotes(db *DB) *Notes {
	return &Notes{db: db}
}

func scanNote(s scanner) (*models.Note, error) {
	var n models.Note
	var jobID sql.NullString
	var lastUpdate sql.NullTime

	err := s.Scan(&n.ID, &jobID, &n.Title, &n.Body, &n.Starred,
		&n.PostedDate, &n.Alive, &n.Created, &lastUpdate)
	if err != nil {
		return nil, err
	}

	n.JobID = strPtr(jobID)
	n.LastUpdate = timePtr(lastUpdate)
	return &n, nil
}

func scanVersion(s scanner) (*models.NoteVersion, error) {
	var v models.NoteVersion
	var source string

	err := s.Scan(&v.ID, &v.NoteID, &v.Title, &v.Content, &v.Starred, &source, &v.Created)
	if err != nil {
		return nil, err
	}

	v.Source = models.VersionSource(source)
	return &v, nil
}

// Create stages or writes a new note plus its first version snapshot.
func (s *Notes) Create(n *models.Note, source models.VersionSource, save bool) error {
	if n.ID == "" {
		n.ID = newID()
	}
	if n.Created.IsZero() {
		n.Created = time.Now()
	}
	if n.PostedDate.IsZero() {
		n.PostedDate = n.Created
	}
	n.Alive = true

	err := s.db.exec(save, `
		INSERT INTO notes (id, job_id, title, body, starred, posted_date, alive, created, last_update)
		VALUES (?, ?, ?, ?, ?, ?, 1, ?, ?)
	`, n.ID, nullStr(n.JobID), n.Title, n.Body, n.Starred, n.PostedDate,
		n.Created, nullTime(n.LastUpdate))
	if err != nil {
		return err
	}

	return s.appendVersion(n, source, save)
}

func (s *Notes) CreateAndReturn(n *models.Note, source models.VersionSource) (*models.Note, error) {
	if err := s.Create(n, source, true); err != nil {
		return nil, err
	}
	return n, nil
}

// Update rewrites the note's content and appends exactly one version
// snapshot of the new state.
func (s *Notes) Update(n *models.Note, source models.VersionSource, save bool) error {
	now := time.Now()
	n.LastUpdate = &now

	err := s.db.exec(save, `
		UPDATE notes SET
			title = ?,
			body = ?,
			starred = ?,
			job_id = ?,
			last_update = ?
		WHERE id = ?
	`, n.Title, n.Body, n.Starred, nullStr(n.JobID), now, n.ID)
	if err != nil {
		return err
	}

	return s.appendVersion(n, source, save)
}

// appendVersion writes the snapshot. Versions are append-only; nothing
// in this accessor updates or deletes a version row.
func (s *Notes) appendVersion(n *models.Note, source models.VersionSource, save bool) error {
	if source == "" {
		source = models.VersionSourceManual
	}
	return s.db.exec(save, `
		INSERT INTO note_versions (id, note_id, title, content, starred, source, created)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, newID(), n.ID, n.Title, n.Body, n.Starred, string(source), time.Now())
}

func (s *Notes) query(q Query) ([]models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query, args := q.SQL()
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]models.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *n)
	}

	return notes, rows.Err()
}

func defaultNoteFilter() Expr {
	return And(
		Eq("n.alive", 1),
		Or(IsNull("n.job_id"), IsNull("j.project_id"), IsNull("p.company_id"), Eq("c.hidden", 0)),
	)
}

var noteOwnershipJoins = []string{
	"LEFT JOIN jobs j ON n.job_id = j.id",
	"LEFT JOIN projects p ON j.project_id = p.id",
	"LEFT JOIN companies c ON p.company_id = c.id",
}

func (s *Notes) All() ([]models.Note, error) {
	return s.query(Query{
		Table:   "notes n",
		Columns: []string{noteColumns},
		Joins:   noteOwnershipJoins,
		Where:   defaultNoteFilter(),
		Order:   []Sort{Desc("COALESCE(n.last_update, n.created)")},
	})
}

func (s *Notes) Starred() ([]models.Note, error) {
	return s.query(Query{
		Table:   "notes n",
		Columns: []string{noteColumns},
		Joins:   noteOwnershipJoins,
		Where:   And(defaultNoteFilter(), Eq("n.starred", 1)),
		Order:   []Sort{Desc("COALESCE(n.last_update, n.created)")},
	})
}

func (s *Notes) ByJob(jobID string) ([]models.Note, error) {
	return s.query(Query{
		Table:   "notes n",
		Columns: []string{noteColumns},
		Where:   And(Eq("n.alive", 1), Eq("n.job_id", jobID)),
		Order:   []Sort{Desc("COALESCE(n.last_update, n.created)")},
	})
}

func (s *Notes) ByID(id string) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query, args := Query{
		Table:   "notes n",
		Columns: []string{noteColumns},
		Where:   And(Eq("n.id", id), Eq("n.alive", 1)),
	}.SQL()

	n, err := scanNote(s.db.QueryRow(query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

// VersionsOf lists a note's snapshots in creation order.
func (s *Notes) VersionsOf(noteID string) ([]models.NoteVersion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query, args := Query{
		Table:   "note_versions v",
		Columns: []string{versionColumns},
		Where:   Eq("v.note_id", noteID),
		Order:   []Sort{Asc("v.created"), Asc("v.id")},
	}.SQL()

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	versions := make([]models.NoteVersion, 0)
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, err
		}
		versions = append(versions, *v)
	}

	return versions, rows.Err()
}

func (s *Notes) CountAll() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.count(Query{
		Table:   "notes n",
		Columns: []string{"n.id"},
		Joins:   noteOwnershipJoins,
		Where:   defaultNoteFilter(),
	})
}

func (s *Notes) SoftDelete(id string, save bool) error {
	return s.db.exec(save, `UPDATE notes SET alive = 0, last_update = ? WHERE id = ?`, time.Now(), id)
}

func (s *Notes) HardDelete(id string) error {
	_, err := s.db.Exec(`DELETE FROM notes WHERE id = ?`, id)
	return err
}
