package services

import (
	"testing"

	"worklog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNoteService_Update(t *testing.T) {
	t.Run("Updates the stored note with the new content", func(t *testing.T) {
		notes := new(MockNoteStore)
		svc := NewNoteService(notes)

		existing := &models.Note{ID: "n1", Title: "old", Body: "old body"}
		notes.On("ByID", "n1").Return(existing, nil)
		notes.On("Update", mock.MatchedBy(func(n *models.Note) bool {
			return n.ID == "n1" && n.Title == "new" && n.Body == "new body"
		}), models.VersionSourceManual, true).Return(nil)

		note, err := svc.Update("n1", "new", "new body", false, models.VersionSourceManual)

		assert.NoError(t, err)
		assert.Equal(t, "new", note.Title)
		notes.AssertExpectations(t)
	})

	t.Run("Unknown note", func(t *testing.T) {
		notes := new(MockNoteStore)
		svc := NewNoteService(notes)

		notes.On("ByID", "missing").Return(nil, nil)

		_, err := svc.Update("missing", "x", "y", false, models.VersionSourceManual)

		assert.ErrorIs(t, err, ErrNoteNotFound)
		notes.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestNoteService_Delete(t *testing.T) {
	notes := new(MockNoteStore)
	svc := NewNoteService(notes)

	notes.On("ByID", "n1").Return(&models.Note{ID: "n1"}, nil)
	notes.On("SoftDelete", "n1", true).Return(nil)

	assert.NoError(t, svc.Delete("n1"))
	notes.AssertExpectations(t)
}

func TestNoteService_Versions(t *testing.T) {
	notes := new(MockNoteStore)
	svc := NewNoteService(notes)

	notes.On("ByID", "n1").Return(&models.Note{ID: "n1"}, nil)
	notes.On("VersionsOf", "n1").Return([]models.NoteVersion{
		{NoteID: "n1", Content: "v1"},
		{NoteID: "n1", Content: "v2"},
	}, nil)

	versions, err := svc.Versions("n1")

	assert.NoError(t, err)
	assert.Len(t, versions, 2)
}
