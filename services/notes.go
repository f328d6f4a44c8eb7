package services

import "worklog/models"

// NoteService handles note content mutations. The versioning rule —
// one snapshot per mutating operation — lives in the accessor; this
// layer adds lookups and not-found semantics.
type NoteService struct {
	notes NoteStore
}

func NewNoteService(notes NoteStore) *NoteService {
	return &NoteService{notes: notes}
}

func (ns *NoteService) Create(title, body string, starred bool, jobID *string, source models.VersionSource) (*models.Note, error) {
	note := &models.Note{
		Title:   title,
		Body:    body,
		Starred: starred,
		JobID:   jobID,
	}
	if err := ns.notes.Create(note, source, true); err != nil {
		return nil, err
	}
	return note, nil
}

func (ns *NoteService) Update(noteID, title, body string, starred bool, source models.VersionSource) (*models.Note, error) {
	note, err := ns.notes.ByID(noteID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}

	note.Title = title
	note.Body = body
	note.Starred = starred

	if err := ns.notes.Update(note, source, true); err != nil {
		return nil, err
	}
	return note, nil
}

func (ns *NoteService) Versions(noteID string) ([]models.NoteVersion, error) {
	note, err := ns.notes.ByID(noteID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}
	return ns.notes.VersionsOf(noteID)
}

func (ns *NoteService) Delete(noteID string) error {
	note, err := ns.notes.ByID(noteID)
	if err != nil {
		return err
	}
	if note == nil {
		return ErrNoteNotFound
	}
	return ns.notes.SoftDelete(noteID, true)
}
