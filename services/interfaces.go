package services

import (
	"time"

	"worklog/models"
)

// RecordStore defines the log-record data access the services need.
type RecordStore interface {
	Create(r *models.LogRecord, save bool) error
	CreateAndReturn(r *models.LogRecord) (*models.LogRecord, error)
	ForDate(date time.Time) ([]models.LogRecord, error)
	InRange(start, end time.Time) ([]models.LogRecord, error)
	Matching(term string) ([]models.LogRecord, error)
}

// TermStore defines taxonomy-term data access.
type TermStore interface {
	ByName(name string) (*models.TaxonomyTerm, error)
	CreateAndReturn(t *models.TaxonomyTerm) (*models.TaxonomyTerm, error)
}

// DefinitionStore defines term-definition data access.
type DefinitionStore interface {
	Create(d *models.TaxonomyTermDefinition, save bool) error
}

// TaskStore defines log-task data access.
type TaskStore interface {
	ByID(id string) (*models.LogTask, error)
	Create(t *models.LogTask, save bool) error
	Complete(id string, save bool) error
	Cancel(id string, save bool) error
}

// NoteStore defines note data access, including version snapshots.
type NoteStore interface {
	ByID(id string) (*models.Note, error)
	Create(n *models.Note, source models.VersionSource, save bool) error
	Update(n *models.Note, source models.VersionSource, save bool) error
	VersionsOf(noteID string) ([]models.NoteVersion, error)
	SoftDelete(id string, save bool) error
}

// JobStore defines the job lookups report building needs.
type JobStore interface {
	ByID(id string) (*models.Job, error)
	ByJID(jid int64) (*models.Job, error)
}

// ProjectStore defines the project lookups report building needs.
type ProjectStore interface {
	ByID(id string) (*models.Project, error)
}

// WordStore defines banned-word data access.
type WordStore interface {
	ByProject(projectID string) ([]models.BannedWord, error)
}

// PlanStore defines daily-plan data access.
type PlanStore interface {
	Create(p *models.Plan, save bool) error
	ForDate(date time.Time) (*models.Plan, error)
	DeleteForDate(date time.Time) error
}

// SearchStore defines saved-search data access.
type SearchStore interface {
	Create(term string, save bool) error
	All() ([]models.SavedSearch, error)
}
