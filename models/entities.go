package models

import "time"

// Company groups projects. At most one company is the default; hidden
// companies (and everything beneath them) stay out of default queries.
type Company struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Abbreviation string     `json:"abbreviation"`
	Colour       Colour     `json:"colour"`
	IsDefault    bool       `json:"is_default"`
	Hidden       bool       `json:"hidden"`
	PID          int64      `json:"pid"`
	Alive        bool       `json:"alive"`
	Created      time.Time  `json:"created"`
	LastUpdate   *time.Time `json:"last_update,omitempty"`
}

// Project belongs to at most one company. Unowned projects are legal;
// creation without a company falls back to the default company.
type Project struct {
	ID           string     `json:"id"`
	CompanyID    *string    `json:"company_id,omitempty"`
	Name         string     `json:"name"`
	Abbreviation string     `json:"abbreviation"`
	Colour       Colour     `json:"colour"`
	PID          int64      `json:"pid"`
	IgnoredJobs  []int64    `json:"ignored_jobs,omitempty"`
	Alive        bool       `json:"alive"`
	Created      time.Time  `json:"created"`
	LastUpdate   *time.Time `json:"last_update,omitempty"`
}

// Job is the unit records, tasks, notes and definitions hang off.
// JID is a human-facing random numeric ID, unique by keyspace rather
// than by constraint.
type Job struct {
	ID         string     `json:"id"`
	ProjectID  *string    `json:"project_id,omitempty"`
	JID        int64      `json:"jid"`
	Title      string     `json:"title,omitempty"`
	Overview   string     `json:"overview,omitempty"`
	URI        string     `json:"uri,omitempty"`
	Shredable  bool       `json:"shredable"`
	Colour     Colour     `json:"colour"`
	Alive      bool       `json:"alive"`
	Created    time.Time  `json:"created"`
	LastUpdate *time.Time `json:"last_update,omitempty"`
}

// LogRecord is a single timestamped journal line against a job.
type LogRecord struct {
	ID         string     `json:"id"`
	JobID      *string    `json:"job_id,omitempty"`
	Timestamp  time.Time  `json:"timestamp"`
	Message    string     `json:"message"`
	Alive      bool       `json:"alive"`
	Created    time.Time  `json:"created"`
	LastUpdate *time.Time `json:"last_update,omitempty"`
}

// LogTask lifecycle: both dates nil = open, Completed set = done,
// Cancelled set = cancelled. Terminal once either date is set.
type LogTask struct {
	ID               string     `json:"id"`
	JobID            string     `json:"job_id"`
	Content          string     `json:"content"`
	Due              *time.Time `json:"due,omitempty"`
	Completed        *time.Time `json:"completed,omitempty"`
	Cancelled        *time.Time `json:"cancelled,omitempty"`
	URI              string     `json:"uri,omitempty"`
	HasNotification  bool       `json:"has_notification"`
	Created          time.Time  `json:"created"`
	LastUpdate       *time.Time `json:"last_update,omitempty"`
}

func (t *LogTask) Open() bool {
	return t.Completed == nil && t.Cancelled == nil
}

// Note carries freeform text; every content mutation appends a
// NoteVersion snapshot.
type Note struct {
	ID         string     `json:"id"`
	JobID      *string    `json:"job_id,omitempty"`
	Title      string     `json:"title"`
	Body       string     `json:"body"`
	Starred    bool       `json:"starred"`
	PostedDate time.Time  `json:"posted_date"`
	Alive      bool       `json:"alive"`
	Created    time.Time  `json:"created"`
	LastUpdate *time.Time `json:"last_update,omitempty"`
}

// VersionSource tags how a note version came to be written.
type VersionSource string

const (
	VersionSourceManual VersionSource = "manual"
	VersionSourceAuto   VersionSource = "auto"
)

// NoteVersion is an immutable point-in-time snapshot of a note.
type NoteVersion struct {
	ID      string        `json:"id"`
	NoteID  string        `json:"note_id"`
	Title   string        `json:"title"`
	Content string        `json:"content"`
	Starred bool          `json:"starred"`
	Source  VersionSource `json:"source"`
	Created time.Time     `json:"created"`
}

// Person is a named contact, optionally attached to a company.
type Person struct {
	ID         string     `json:"id"`
	CompanyID  *string    `json:"company_id,omitempty"`
	Name       string     `json:"name"`
	Created    time.Time  `json:"created"`
	LastUpdate *time.Time `json:"last_update,omitempty"`
}

// Plan snapshots a day's intended work as unordered ID sets.
type Plan struct {
	ID         string    `json:"id"`
	JobIDs     []string  `json:"job_ids,omitempty"`
	TaskIDs    []string  `json:"task_ids,omitempty"`
	NoteIDs    []string  `json:"note_ids,omitempty"`
	ProjectIDs []string  `json:"project_ids,omitempty"`
	CompanyIDs []string  `json:"company_ids,omitempty"`
	Created    time.Time `json:"created"`
}

// TaxonomyTerm is looked up by name; the name is its natural key.
type TaxonomyTerm struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Alive      bool       `json:"alive"`
	Created    time.Time  `json:"created"`
	LastUpdate *time.Time `json:"last_update,omitempty"`
}

// TaxonomyTermDefinition binds a definition to one term and one job.
type TaxonomyTermDefinition struct {
	ID         string     `json:"id"`
	TermID     string     `json:"term_id"`
	JobID      string     `json:"job_id"`
	Definition string     `json:"definition"`
	Alive      bool       `json:"alive"`
	Created    time.Time  `json:"created"`
	LastUpdate *time.Time `json:"last_update,omitempty"`
}

// BannedWord is redacted from record/note/task text at read time,
// never in the store.
type BannedWord struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Word      string    `json:"word"`
	Created   time.Time `json:"created"`
}

// SavedSearch is a bookmark of a past search query.
type SavedSearch struct {
	ID      string    `json:"id"`
	Term    string    `json:"term"`
	Alive   bool      `json:"alive"`
	Created time.Time `json:"created"`
}

// AssessmentFactor weights one kind of activity in a day's score.
type AssessmentFactor struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Value       int64     `json:"value"`
	Weight      int64     `json:"weight"`
	Alive       bool      `json:"alive"`
	Created     time.Time `json:"created"`
}

// AssessmentThreshold maps a score band to a label/colour/emoji.
type AssessmentThreshold struct {
	ID           string    `json:"id"`
	Label        string    `json:"label"`
	Value        int64     `json:"value"`
	DefaultValue int64     `json:"default_value"`
	Colour       Colour    `json:"colour"`
	Emoji        string    `json:"emoji"`
	Created      time.Time `json:"created"`
}
