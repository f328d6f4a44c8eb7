package services

import (
	"time"

	"worklog/models"

	"github.com/stretchr/testify/mock"
)

// ==================== MOCKS ====================

type MockRecordStore struct {
	mock.Mock
}

var _ RecordStore = (*MockRecordStore)(nil)

func (m *MockRecordStore) Create(r *models.LogRecord, save bool) error {
	args := m.Called(r, save)
	return args.Error(0)
}

func (m *MockRecordStore) CreateAndReturn(r *models.LogRecord) (*models.LogRecord, error) {
	args := m.Called(r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LogRecord), args.Error(1)
}

func (m *MockRecordStore) ForDate(date time.Time) ([]models.LogRecord, error) {
	args := m.Called(date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LogRecord), args.Error(1)
}

func (m *MockRecordStore) InRange(start, end time.Time) ([]models.LogRecord, error) {
	args := m.Called(start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LogRecord), args.Error(1)
}

func (m *MockRecordStore) Matching(term string) ([]models.LogRecord, error) {
	args := m.Called(term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LogRecord), args.Error(1)
}

type MockTermStore struct {
	mock.Mock
}

var _ TermStore = (*MockTermStore)(nil)

func (m *MockTermStore) ByName(name string) (*models.TaxonomyTerm, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TaxonomyTerm), args.Error(1)
}

func (m *MockTermStore) CreateAndReturn(t *models.TaxonomyTerm) (*models.TaxonomyTerm, error) {
	args := m.Called(t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TaxonomyTerm), args.Error(1)
}

type MockDefinitionStore struct {
	mock.Mock
}

var _ DefinitionStore = (*MockDefinitionStore)(nil)

func (m *MockDefinitionStore) Create(d *models.TaxonomyTermDefinition, save bool) error {
	args := m.Called(d, save)
	return args.Error(0)
}

type MockTaskStore struct {
	mock.Mock
}

var _ TaskStore = (*MockTaskStore)(nil)

func (m *MockTaskStore) ByID(id string) (*models.LogTask, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LogTask), args.Error(1)
}

func (m *MockTaskStore) Create(t *models.LogTask, save bool) error {
	args := m.Called(t, save)
	return args.Error(0)
}

func (m *MockTaskStore) Complete(id string, save bool) error {
	args := m.Called(id, save)
	return args.Error(0)
}

func (m *MockTaskStore) Cancel(id string, save bool) error {
	args := m.Called(id, save)
	return args.Error(0)
}

type MockJobStore struct {
	mock.Mock
}

var _ JobStore = (*MockJobStore)(nil)

func (m *MockJobStore) ByID(id string) (*models.Job, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

func (m *MockJobStore) ByJID(jid int64) (*models.Job, error) {
	args := m.Called(jid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

type MockProjectStore struct {
	mock.Mock
}

var _ ProjectStore = (*MockProjectStore)(nil)

func (m *MockProjectStore) ByID(id string) (*models.Project, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

type MockWordStore struct {
	mock.Mock
}

var _ WordStore = (*MockWordStore)(nil)

func (m *MockWordStore) ByProject(projectID string) ([]models.BannedWord, error) {
	args := m.Called(projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BannedWord), args.Error(1)
}

type MockNoteStore struct {
	mock.Mock
}

var _ NoteStore = (*MockNoteStore)(nil)

func (m *MockNoteStore) ByID(id string) (*models.Note, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}

func (m *MockNoteStore) Create(n *models.Note, source models.VersionSource, save bool) error {
	args := m.Called(n, source, save)
	return args.Error(0)
}

func (m *MockNoteStore) Update(n *models.Note, source models.VersionSource, save bool) error {
	args := m.Called(n, source, save)
	return args.Error(0)
}

func (m *MockNoteStore) VersionsOf(noteID string) ([]models.NoteVersion, error) {
	args := m.Called(noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.NoteVersion), args.Error(1)
}

func (m *MockNoteStore) SoftDelete(id string, save bool) error {
	args := m.Called(id, save)
	return args.Error(0)
}
